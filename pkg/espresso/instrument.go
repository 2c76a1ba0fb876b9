package espresso

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/operator-framework/pla/pkg/metrics"
)

type instrumented struct {
	Solver
	op     Operation
	logger logrus.FieldLogger
}

// Instrument wraps s so that every call is timed, counted and logged
// at debug level.
func Instrument(s Solver, op Operation, logger logrus.FieldLogger) Solver {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return instrumented{Solver: s, op: op, logger: logger}
}

func (i instrumented) Solve(ctx context.Context, doc []byte) (string, error) {
	start := time.Now()
	out, err := i.Solver.Solve(ctx, doc)
	elapsed := time.Since(start)

	log := i.logger.WithFields(logrus.Fields{
		"operation": i.op.String(),
		"in":        len(doc),
		"out":       len(out),
		"duration":  elapsed,
	})
	if err != nil {
		metrics.ObserveSolverFailure(i.op.String(), elapsed)
		log.WithError(err).Debug("minimizer call failed")
		return "", err
	}
	metrics.ObserveSolverSuccess(i.op.String(), elapsed)
	log.Debug("minimizer call")
	return out, nil
}
