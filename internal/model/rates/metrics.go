package rates

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	histogramResolveTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "expense_tracker",
			Subsystem: "rates",
			Name:      "histogram_resolve_time_seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"source", "fallback"},
	)

	counterFallback = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "expense_tracker",
			Subsystem: "rates",
			Name:      "fallback_total",
			Help:      "Rate resolutions that ended with the fallback rate.",
		},
		[]string{"source"},
	)
)

func observeResolution(source string, elapsed time.Duration, fallback bool) {
	histogramResolveTime.
		WithLabelValues(source, strconv.FormatBool(fallback)).
		Observe(elapsed.Seconds())
	if fallback {
		counterFallback.WithLabelValues(source).Inc()
	}
}
