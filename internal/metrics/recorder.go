// Package metrics exposes prediction lookup metrics in Prometheus format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vadiminshakov/predictor/internal/domain"
)

// Recorder counts lookups per mode and outcome and tracks their latency.
type Recorder struct {
	lookups  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New registers the predictor metrics on reg.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		lookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "predictor_lookups_total",
				Help: "Total number of finished prediction lookups",
			},
			[]string{"mode", "outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "predictor_lookup_duration_seconds",
				Help:    "Duration of prediction lookups in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"mode"},
		),
	}
}

// ObserveLookup records a finished lookup.
func (r *Recorder) ObserveLookup(mode domain.Mode, outcome string, took time.Duration) {
	r.lookups.WithLabelValues(mode.String(), outcome).Inc()
	r.duration.WithLabelValues(mode.String()).Observe(took.Seconds())
}
