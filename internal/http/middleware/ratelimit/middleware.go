package ratelimit

import (
	"io"
	"math"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"service-rider-dispatch/internal/logx"
)

const limitedBody = `{"success":false,"error":"TOO_MANY_REQUESTS"}`

// Middleware answers 429 to clients whose bucket is empty.
type Middleware struct {
	logger  logx.Logger
	denied  prometheus.Counter
	limiter Limiter
}

// New wraps limiter. A nil limiter admits everything and a nil counter is
// skipped.
func New(logger logx.Logger, denied prometheus.Counter, limiter Limiter) *Middleware {
	if logger == nil {
		logger = logx.Nop()
	}
	if limiter == nil {
		limiter = AllowAll{}
	}
	return &Middleware{logger: logger, denied: denied, limiter: limiter}
}

// Handler returns the chi middleware.
func (m *Middleware) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r.RemoteAddr)
			if m.limiter.Allow(key) {
				next.ServeHTTP(w, r)
				return
			}
			m.reject(w, r, key)
		})
	}
}

func (m *Middleware) reject(w http.ResponseWriter, r *http.Request, key string) {
	if m.denied != nil {
		m.denied.Inc()
	}
	m.logger.Warn("rate limit exceeded",
		logx.String("request_id", middleware.GetReqID(r.Context())),
		logx.String("client", key),
		logx.String("method", r.Method),
		logx.String("path", r.URL.Path),
	)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", retryAfterSeconds(m.limiter))
	w.WriteHeader(http.StatusTooManyRequests)
	if _, err := io.WriteString(w, limitedBody); err != nil {
		m.logger.Debug("429 body write failed", logx.String("client", key), logx.Err(err))
	}
}

func retryAfterSeconds(l Limiter) string {
	secs := 1
	if ra, ok := l.(interface{ RetryAfter() time.Duration }); ok {
		secs = max(int(math.Ceil(ra.RetryAfter().Seconds())), 1)
	}
	return strconv.Itoa(secs)
}

// clientKey reduces a remote address to the bucket key. IPv6 clients share
// a bucket per /64 since a single host usually owns the whole prefix.
func clientKey(remoteAddr string) string {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	if host == "" {
		return "unknown"
	}

	addr, err := netip.ParseAddr(host)
	if err != nil {
		return host
	}
	addr = addr.Unmap()
	if addr.Is4() {
		return addr.String()
	}
	prefix, err := addr.WithZone("").Prefix(64)
	if err != nil {
		return addr.String()
	}
	return prefix.String()
}
