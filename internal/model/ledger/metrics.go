package ledger

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"max.ks1230/expense-tracker/internal/model/customerr"
)

var histogramOperationTime = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "expense_tracker",
		Subsystem: "ledger",
		Name:      "histogram_operation_time_seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
	},
	[]string{"operation", "result"},
)

func observeOperation(op string, elapsed time.Duration, err error) {
	histogramOperationTime.
		WithLabelValues(op, resultLabel(err)).
		Observe(elapsed.Seconds())
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case customerr.IsValidation(err):
		return "invalid"
	case customerr.IsNotFound(err):
		return "not_found"
	}
	return "error"
}
