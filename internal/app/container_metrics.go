package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-rider-dispatch/internal/metrics"
)

type metricsOut struct {
	dig.Out

	RateLimitExceededTotal prometheus.Counter `name:"rate_limit_exceeded_total"`
	SweepSkippedTotal      prometheus.Counter `name:"dispatch_sweep_skipped_total"`
}

// provideMetrics registers the process counters with the default registerer.
// A collector that is already registered is reused.
func provideMetrics() (metricsOut, error) {
	rl, err := registerCounter(metrics.RateLimitExceeded, metrics.NewRateLimitExceededTotal())
	if err != nil {
		return metricsOut{}, err
	}
	skipped, err := registerCounter(metrics.SweepSkipped, metrics.NewSweepSkippedTotal())
	if err != nil {
		return metricsOut{}, err
	}
	return metricsOut{
		RateLimitExceededTotal: rl,
		SweepSkippedTotal:      skipped,
	}, nil
}

func registerCounter(name string, c prometheus.Counter) (prometheus.Counter, error) {
	if err := prometheus.DefaultRegisterer.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("register %s: %w", name, err)
	}
	return c, nil
}

func provideDispatchMetrics() (*metrics.Dispatch, error) {
	m, err := metrics.NewDispatch(prometheus.DefaultRegisterer)
	if err != nil {
		return nil, fmt.Errorf("register dispatch metrics: %w", err)
	}
	return m, nil
}
