package handlers

import (
	"crypto/subtle"
	"net/http"

	"service-rider-dispatch/internal/apperr"
	"service-rider-dispatch/internal/auth"
	"service-rider-dispatch/internal/domain"
	"service-rider-dispatch/internal/logx"
)

// CronSecretHeader carries the shared secret of the sweep trigger.
const CronSecretHeader = "X-Cron-Secret"

// DispatchHandler serves the assignment engine endpoints.
type DispatchHandler struct {
	uc         dispatchUsecase
	logger     logx.Logger
	cronSecret string
}

// NewDispatchHandler wires a dispatch usecase into HTTP handlers.
// An empty cronSecret disables Sweep.
func NewDispatchHandler(logger logx.Logger, uc dispatchUsecase, cronSecret string) *DispatchHandler {
	return &DispatchHandler{uc: uc, logger: logger, cronSecret: cronSecret}
}

// SweepEnabled reports whether a cron secret is configured.
func (h *DispatchHandler) SweepEnabled() bool { return h.cronSecret != "" }

// Assign handles POST /dispatch/assign.
func (h *DispatchHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	res, err := h.uc.Assign(r.Context(), req.OrderID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, assignToResponse(res))
}

// Accept handles POST /dispatch/accept.
func (h *DispatchHandler) Accept(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	driver, ok := h.currentDriver(w, r)
	if !ok {
		return
	}

	if err := h.uc.Accept(r.Context(), driver.ID, req.OrderID); err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, successResponse{Success: true})
}

// Reject handles POST /dispatch/reject. The rejection stands even when the
// follow-up offer fails; the reason is reported in reassign_error.
func (h *DispatchHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	driver, ok := h.currentDriver(w, r)
	if !ok {
		return
	}

	res, err := h.uc.Reject(r.Context(), driver.ID, req.OrderID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}

	resp := rejectResponse{Success: true}
	if res.Next != nil {
		resp.NextDriverID = &res.Next.DriverID
		resp.NextExpiresAt = &res.Next.ExpiresAt
	}
	if res.ReassignErr != nil {
		resp.ReassignError = codeInternal
		if code, ok := apperr.CodeOf(res.ReassignErr); ok {
			resp.ReassignError = string(code)
		}
	}
	writeJSON(h.logger, w, r, http.StatusOK, resp)
}

// Claim handles POST /dispatch/claim. Drivers claim for themselves; admins
// must name the driver.
func (h *DispatchHandler) Claim(w http.ResponseWriter, r *http.Request) {
	var req claimRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	p, ok := auth.FromContext(r.Context())
	if !ok {
		writeFailure(h.logger, w, r, http.StatusUnauthorized, codeUnauthorized)
		return
	}

	var driverID int64
	switch p.Role {
	case domain.RoleAdmin:
		if req.DriverID == nil || *req.DriverID <= 0 {
			writeFailure(h.logger, w, r, http.StatusBadRequest, codeInvalidInput)
			return
		}
		driverID = *req.DriverID
	default:
		driver, ok := h.currentDriver(w, r)
		if !ok {
			return
		}
		if req.DriverID != nil && *req.DriverID != driver.ID {
			writeFailure(h.logger, w, r, http.StatusForbidden, codeForbidden)
			return
		}
		driverID = driver.ID
	}

	if err := h.uc.Claim(r.Context(), driverID, req.OrderID); err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, successResponse{Success: true})
}

// Sweep handles POST /dispatch/sweep for an external scheduler.
func (h *DispatchHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	if !h.SweepEnabled() {
		writeFailure(h.logger, w, r, http.StatusNotFound, codeNotFound)
		return
	}
	secret := r.Header.Get(CronSecretHeader)
	if secret == "" {
		secret = r.URL.Query().Get("secret")
	}
	if subtle.ConstantTimeCompare([]byte(secret), []byte(h.cronSecret)) != 1 {
		writeFailure(h.logger, w, r, http.StatusUnauthorized, codeUnauthorized)
		return
	}

	res, err := h.uc.Sweep(r.Context())
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, sweepResponse{
		Success:   true,
		Processed: res.Processed,
		Reoffered: res.Reoffered,
	})
}

// Offers handles GET /dispatch/offers.
func (h *DispatchHandler) Offers(w http.ResponseWriter, r *http.Request) {
	driver, ok := h.currentDriver(w, r)
	if !ok {
		return
	}

	list, err := h.uc.PendingOffers(r.Context(), driver.ID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, offersToResponse(list))
}

// currentDriver resolves the driver profile of the authenticated user.
func (h *DispatchHandler) currentDriver(w http.ResponseWriter, r *http.Request) (*domain.Driver, bool) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		writeFailure(h.logger, w, r, http.StatusUnauthorized, codeUnauthorized)
		return nil, false
	}
	d, err := h.uc.DriverForUser(r.Context(), p.UserID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return nil, false
	}
	return d, true
}
