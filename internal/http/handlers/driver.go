package handlers

import (
	"net/http"
	"strconv"

	"service-rider-dispatch/internal/auth"
	"service-rider-dispatch/internal/logx"
)

// DriverHandler serves driver directory endpoints for admins and the
// driver portal.
type DriverHandler struct {
	uc     driverUsecase
	logger logx.Logger
}

// NewDriverHandler wires a driver usecase into HTTP handlers.
func NewDriverHandler(logger logx.Logger, uc driverUsecase) *DriverHandler {
	return &DriverHandler{uc: uc, logger: logger}
}

// GetByID handles GET /drivers/{id}.
func (h *DriverHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeFailure(h.logger, w, r, http.StatusBadRequest, codeInvalidInput)
		return
	}

	d, err := h.uc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, driverToResponse(*d))
}

// List handles GET /drivers.
func (h *DriverHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeFailure(h.logger, w, r, http.StatusBadRequest, codeInvalidInput)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		writeFailure(h.logger, w, r, http.StatusBadRequest, codeInvalidInput)
		return
	}

	list, err := h.uc.List(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, driversToResponse(list))
}

// Create handles POST /drivers.
func (h *DriverHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDriverRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	id, err := h.uc.Create(r.Context(), req.toModel())
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/drivers/"+strconv.FormatInt(id, 10))
	writeJSON(h.logger, w, r, http.StatusCreated, map[string]any{"id": id})
}

// Update handles PATCH /drivers/{id}.
func (h *DriverHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeFailure(h.logger, w, r, http.StatusBadRequest, codeInvalidInput)
		return
	}
	var req updateDriverRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	if _, err := h.uc.UpdatePartial(r.Context(), req.toModel(id)); err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, successResponse{Success: true})
}

// Me handles GET /drivers/me.
func (h *DriverHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		writeFailure(h.logger, w, r, http.StatusUnauthorized, codeUnauthorized)
		return
	}

	d, err := h.uc.Me(r.Context(), p.UserID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, driverToResponse(*d))
}

// SetAvailability handles PATCH /drivers/me/availability.
func (h *DriverHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		writeFailure(h.logger, w, r, http.StatusUnauthorized, codeUnauthorized)
		return
	}
	var req availabilityRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	d, err := h.uc.SetAvailability(r.Context(), p.UserID, req.toModel())
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, driverToResponse(*d))
}

// ReportLocation handles PUT /drivers/me/location.
func (h *DriverHandler) ReportLocation(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		writeFailure(h.logger, w, r, http.StatusUnauthorized, codeUnauthorized)
		return
	}
	var req locationRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	d, err := h.uc.ReportLocation(r.Context(), p.UserID, req.toModel())
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, driverToResponse(*d))
}
