//go:build espresso_native && cgo

package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/operator-framework/pla/pkg/espresso"
)

func init() {
	flagBinders = append(flagBinders, bindNativeFlag)
}

// bindNativeFlag adds --native, which swaps the espresso process for
// the library linked into this binary.
func bindNativeFlag(o *options, flags *pflag.FlagSet) {
	var native bool
	flags.BoolVar(&native, "native", false, "call the linked espresso library instead of running --espresso")

	next := o.newSolver
	o.newSolver = func(op espresso.Operation, logger logrus.FieldLogger) (espresso.Solver, error) {
		if !native {
			return next(op, logger)
		}
		logger.WithField("operation", op).Debug("using linked espresso")
		return espresso.NewNative(op), nil
	}
}
