package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OperationLabel = "operation"
	OutcomeLabel   = "outcome"
	CodecLabel     = "codec"
	DirectionLabel = "direction"

	Succeeded = "succeeded"
	Failed    = "failed"

	Encoded = "encoded"
	Decoded = "decoded"
)

// To add new metrics:
// 1. Register new metrics in MustRegister() below.
// 2. Add an Observe/Emit helper next to the others.
var (
	solverCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pla_solver_calls_total",
			Help: "Monotonic count of calls made to the external minimizer, by operation and outcome",
		},
		[]string{OperationLabel, OutcomeLabel},
	)

	solverDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pla_solver_duration_seconds",
			Help:    "The duration of a single call to the external minimizer",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		},
		[]string{OperationLabel},
	)

	tableRows = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pla_rows",
			Help:    "Number of rows in tables sent to or received from the minimizer",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
		[]string{CodecLabel, DirectionLabel},
	)
)

// MustRegister adds every collector to r.
func MustRegister(r prometheus.Registerer) {
	r.MustRegister(solverCalls)
	r.MustRegister(solverDuration)
	r.MustRegister(tableRows)
}

func ObserveSolverSuccess(operation string, duration time.Duration) {
	solverCalls.WithLabelValues(operation, Succeeded).Inc()
	solverDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func ObserveSolverFailure(operation string, duration time.Duration) {
	solverCalls.WithLabelValues(operation, Failed).Inc()
	solverDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SolverCalls returns the call counter for an operation and outcome.
func SolverCalls(operation, outcome string) prometheus.Counter {
	return solverCalls.WithLabelValues(operation, outcome)
}

func ObserveRows(codec, direction string, rows int) {
	tableRows.WithLabelValues(codec, direction).Observe(float64(rows))
}
