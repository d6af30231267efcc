package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"service-rider-dispatch/internal/apperr"
	"service-rider-dispatch/internal/domain"
)

// Dispatch records assignment engine outcomes.
type Dispatch struct {
	operations    *prometheus.CounterVec
	sweepOffers   *prometheus.CounterVec
	sweepDuration prometheus.Histogram
}

// NewDispatch creates the engine collectors and registers them with reg.
func NewDispatch(reg prometheus.Registerer) (*Dispatch, error) {
	d := &Dispatch{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dispatch_operations_total",
				Help: "Assignment operations by name and outcome",
			},
			[]string{"operation", "outcome"},
		),
		sweepOffers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dispatch_sweep_offers_total",
				Help: "Offers handled by the expiry sweep by result",
			},
			[]string{"result"},
		),
		sweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dispatch_sweep_duration_seconds",
			Help:    "Duration of expiry sweeps.",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
	}
	for _, c := range []prometheus.Collector{d.operations, d.sweepOffers, d.sweepDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// ObserveOperation counts one engine call. Business failures are labelled
// with their lower-cased code; anything else is "error".
func (d *Dispatch) ObserveOperation(op string, err error) {
	d.operations.WithLabelValues(op, Outcome(err)).Inc()
}

// ObserveSweep records one sweep run.
func (d *Dispatch) ObserveSweep(res domain.SweepResult, elapsed time.Duration) {
	d.sweepOffers.WithLabelValues("expired").Add(float64(res.Processed))
	d.sweepOffers.WithLabelValues("reoffered").Add(float64(res.Reoffered))
	d.sweepOffers.WithLabelValues("failed").Add(float64(res.Failed))
	d.sweepDuration.Observe(elapsed.Seconds())
}

// Outcome maps an operation error onto a bounded label value.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if code, ok := apperr.CodeOf(err); ok {
		return strings.ToLower(string(code))
	}
	return "error"
}
