package auth

import (
	"io"
	"net/http"
	"slices"

	"service-rider-dispatch/internal/domain"
	"service-rider-dispatch/internal/logx"
)

const (
	unauthorizedBody = `{"success":false,"error":"UNAUTHORIZED"}`
	forbiddenBody    = `{"success":false,"error":"FORBIDDEN"}`
)

// Authenticate rejects requests without a valid bearer token and stores the
// principal in the request context.
func Authenticate(v *Verifier, logger logx.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := v.ParseBearer(r.Header.Get("Authorization"))
			if err != nil {
				logger.Debug("authentication failed",
					logx.String("path", r.URL.Path),
					logx.Err(err),
				)
				reply(w, http.StatusUnauthorized, unauthorizedBody)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// RequireRoles lets through principals holding one of roles.
func RequireRoles(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := FromContext(r.Context())
			if !ok {
				reply(w, http.StatusUnauthorized, unauthorizedBody)
				return
			}
			if !slices.Contains(roles, p.Role) {
				reply(w, http.StatusForbidden, forbiddenBody)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func reply(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
