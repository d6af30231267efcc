package handlers

import (
	"context"
	"net/http"
	"time"

	"service-rider-dispatch/internal/logx"
)

const (
	healthTimeout        = time.Second
	codeMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

// Pinger is the database probe behind HEAD /healthcheck.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers serves the unauthenticated service endpoints.
type Handlers struct {
	logger logx.Logger
	db     Pinger
}

// New builds the service endpoints. With a nil db the healthcheck only
// reports that the process is up.
func New(logger logx.Logger, db Pinger) *Handlers {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Handlers{logger: logger, db: db}
}

func (h *Handlers) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"message": "pong"})
}

// HealthcheckHead answers 204 while the database responds and 503 otherwise.
func (h *Handlers) HealthcheckHead(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			h.logger.Warn("healthcheck: database unreachable",
				logx.String("request_id", reqID(r.Context())),
				logx.Err(err),
			)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	writeFailure(h.logger, w, r, http.StatusNotFound, codeNotFound)
}

func (h *Handlers) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeFailure(h.logger, w, r, http.StatusMethodNotAllowed, codeMethodNotAllowed)
}
