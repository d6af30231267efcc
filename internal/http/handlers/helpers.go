package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"service-rider-dispatch/internal/apperr"
	"service-rider-dispatch/internal/logx"
)

const (
	bodyLimit = 1 << 20

	codeInvalidInput = "INVALID_INPUT"
	codeInternal     = "INTERNAL"
	codeNotFound     = "NOT_FOUND"
	codeConflict     = "CONFLICT"
	codeForbidden    = "FORBIDDEN"
	codeUnauthorized = "UNAUTHORIZED"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func reqID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return "-"
}

func writeJSON(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil && logger != nil {
		logger.Error("json encode error",
			logx.String("request_id", reqID(r.Context())),
			logx.Err(err),
		)
	}
}

type failureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeFailure(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, code string) {
	if logger != nil {
		logger.Debug("http failure",
			logx.String("request_id", reqID(r.Context())),
			logx.Int("status", status),
			logx.String("code", code),
		)
	}
	writeJSON(logger, w, r, status, failureResponse{Error: code})
}

// writeServiceError renders err as {success:false, error:CODE}.
func writeServiceError(logger logx.Logger, w http.ResponseWriter, r *http.Request, err error) {
	if code, ok := apperr.CodeOf(err); ok {
		status := http.StatusConflict
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, apperr.ErrInvalid):
			status = http.StatusBadRequest
		}
		writeFailure(logger, w, r, status, string(code))
		return
	}

	switch {
	case errors.Is(err, apperr.ErrInvalid):
		writeFailure(logger, w, r, http.StatusBadRequest, codeInvalidInput)
	case errors.Is(err, apperr.ErrNotFound):
		writeFailure(logger, w, r, http.StatusNotFound, codeNotFound)
	case errors.Is(err, apperr.ErrConflict):
		writeFailure(logger, w, r, http.StatusConflict, codeConflict)
	case errors.Is(err, apperr.ErrForbidden):
		writeFailure(logger, w, r, http.StatusForbidden, codeForbidden)
	case errors.Is(err, apperr.ErrUnauthorized):
		writeFailure(logger, w, r, http.StatusUnauthorized, codeUnauthorized)
	default:
		if logger != nil {
			logger.Error("request failed",
				logx.String("request_id", reqID(r.Context())),
				logx.String("path", r.URL.Path),
				logx.Err(err),
			)
		}
		writeFailure(logger, w, r, http.StatusInternalServerError, codeInternal)
	}
}

// decodeJSON reads a single JSON object into dst and validates its tags.
func decodeJSON[T any](logger logx.Logger, w http.ResponseWriter, r *http.Request, dst *T) bool {
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeFailure(logger, w, r, http.StatusBadRequest, codeInvalidInput)
		return false
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		writeFailure(logger, w, r, http.StatusBadRequest, codeInvalidInput)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		if logger != nil {
			logger.Debug("request validation failed",
				logx.String("request_id", reqID(r.Context())),
				logx.Err(err),
			)
		}
		writeFailure(logger, w, r, http.StatusBadRequest, codeInvalidInput)
		return false
	}
	return true
}

func idFromURL(r *http.Request, name string) (int64, error) {
	idStr := chi.URLParam(r, name)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

func queryInt(r *http.Request, name string) (*int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return nil, errors.New("invalid " + name)
	}
	return &v, nil
}
