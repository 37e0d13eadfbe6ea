package orbitalguard

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	propagationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orbitalguard_propagations_total",
			Help: "Total number of track propagations.",
		},
		[]string{"status"},
	)

	encountersTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orbitalguard_encounters_total",
			Help: "Total number of close approaches detected.",
		},
	)

	screeningDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "orbitalguard_screening_duration_seconds",
			Help:    "Pairwise screening duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(propagationsTotal)
	prometheus.MustRegister(encountersTotal)
	prometheus.MustRegister(screeningDurationSeconds)
}

// MetricsHandler returns the Prometheus metrics HTTP handler.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
