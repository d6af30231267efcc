package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-rider-dispatch/internal/config"
	"service-rider-dispatch/internal/http/middleware/ratelimit"
	"service-rider-dispatch/internal/logx"
)

// newRateLimiter builds the per-client bucket table from RATE_LIMIT_*.
func newRateLimiter(cfg *config.Config, clock ratelimit.Clock) ratelimit.Limiter {
	if !cfg.RateLimit.Enabled {
		return ratelimit.AllowAll{}
	}
	return ratelimit.NewBuckets(clock, ratelimit.Config{
		Rate:       cfg.RateLimit.Rate,
		Burst:      cfg.RateLimit.Burst,
		TTL:        cfg.RateLimit.TTL,
		MaxBuckets: cfg.RateLimit.MaxBuckets,
	})
}

func newRateLimitClock() ratelimit.Clock { return ratelimit.SystemClock{} }

type rateLimitIn struct {
	dig.In

	Config  *config.Config
	Logger  logx.Logger
	Denied  prometheus.Counter `name:"rate_limit_exceeded_total"`
	Limiter ratelimit.Limiter
}

func newRateLimitMiddleware(in rateLimitIn) *ratelimit.Middleware {
	if !in.Config.RateLimit.Enabled {
		return nil
	}
	return ratelimit.New(in.Logger.With(logx.String("component", "ratelimit")), in.Denied, in.Limiter)
}
