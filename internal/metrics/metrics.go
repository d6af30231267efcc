package metrics

import "github.com/prometheus/client_golang/prometheus"

// Names of the standalone counters. The app container also uses them as dig
// value names.
const (
	RateLimitExceeded = "rate_limit_exceeded_total"
	SweepSkipped      = "dispatch_sweep_skipped_total"
)

func counter(name, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: help})
}

// NewRateLimitExceededTotal counts requests answered 429 by the per-client limiter.
func NewRateLimitExceededTotal() prometheus.Counter {
	return counter(RateLimitExceeded, "HTTP requests rejected by the per-client rate limiter.")
}

// NewSweepSkippedTotal counts sweep ticks that found the lease held by another worker.
func NewSweepSkippedTotal() prometheus.Counter {
	return counter(SweepSkipped, "Expiry sweep ticks skipped because another worker held the lease.")
}
