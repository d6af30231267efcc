package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"service-rider-dispatch/internal/auth"
	"service-rider-dispatch/internal/domain"
	"service-rider-dispatch/internal/http/handlers"
	mw "service-rider-dispatch/internal/http/middleware"
	"service-rider-dispatch/internal/http/middleware/ratelimit"
	"service-rider-dispatch/internal/logx"
)

const requestTimeout = 5 * time.Second

// Handlers groups the HTTP handlers mounted by New.
type Handlers struct {
	Base     *handlers.Handlers
	Dispatch *handlers.DispatchHandler
	Drivers  *handlers.DriverHandler
	Orders   *handlers.OrderHandler
}

// New constructs a chi-based http.Handler with base middleware and routes.
// Everything under /api/v1 except the sweep trigger requires a bearer token.
func New(h Handlers, verifier *auth.Verifier, limiter *ratelimit.Middleware, logger logx.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Observability(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/ping", h.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(h.Base.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())
	r.NotFound(h.Base.NotFound)
	r.MethodNotAllowed(h.Base.MethodNotAllowed)

	r.Route("/api/v1", func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Handler())
		}

		if h.Dispatch.SweepEnabled() {
			r.Post("/dispatch/sweep", h.Dispatch.Sweep)
		}

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate(verifier, logger))

			r.With(auth.RequireRoles(domain.RoleAdmin, domain.RoleMerchant)).Post("/dispatch/assign", h.Dispatch.Assign)
			r.With(auth.RequireRoles(domain.RoleDriver, domain.RoleAdmin)).Post("/dispatch/claim", h.Dispatch.Claim)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRoles(domain.RoleDriver))
				r.Post("/dispatch/accept", h.Dispatch.Accept)
				r.Post("/dispatch/reject", h.Dispatch.Reject)
				r.Get("/dispatch/offers", h.Dispatch.Offers)

				r.Get("/drivers/me", h.Drivers.Me)
				r.Patch("/drivers/me/availability", h.Drivers.SetAvailability)
				r.Put("/drivers/me/location", h.Drivers.ReportLocation)
			})

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRoles(domain.RoleAdmin))
				r.Get("/drivers", h.Drivers.List)
				r.Post("/drivers", h.Drivers.Create)
				r.Get("/drivers/{id}", h.Drivers.GetByID)
				r.Patch("/drivers/{id}", h.Drivers.Update)
				r.Post("/orders/{id}/cancel", h.Orders.Cancel)
			})

			r.With(auth.RequireRoles(domain.RoleAdmin, domain.RoleMerchant)).Get("/orders/{id}", h.Orders.Get)
		})
	})

	return r
}
