package main

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/operator-framework/pla/pkg/espresso"
	"github.com/operator-framework/pla/pkg/lib/filemonitor"
	"github.com/operator-framework/pla/pkg/lib/signals"
	"github.com/operator-framework/pla/pkg/metrics"
)

type options struct {
	debug    bool
	espresso string
	merge    bool
	diff     bool
	metrics  bool
	watch    bool
	files    []string
	output   string

	logger   *logrus.Logger
	registry *prometheus.Registry
	// newSolver builds the solver for an operation. Tests replace it.
	newSolver func(op espresso.Operation, logger logrus.FieldLogger) (espresso.Solver, error)
}

func newOptions() *options {
	o := &options{
		logger:   logrus.New(),
		registry: prometheus.NewRegistry(),
	}
	o.newSolver = o.execSolver
	metrics.MustRegister(o.registry)
	return o
}

func newRootCmd() *cobra.Command {
	return newCommand(newOptions())
}

func newCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pla",
		Short: "pla",
		Long: `Minimize truth tables, clause sets and value matrices with espresso.

Input is read from --file or standard input, results are written to
--output or standard output.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			o.logger.SetOutput(cmd.ErrOrStderr())
			if o.debug {
				o.logger.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !o.metrics {
				return nil
			}
			return o.writeMetrics(cmd.ErrOrStderr())
		},
	}

	o.bindFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newTableCmd(o),
		newCNFCmd(o),
		newMatrixCmd(o, compressMode),
		newMatrixCmd(o, reduceMode),
		newBatchCmd(o),
		newVersionCmd(),
	)
	return cmd
}

// flagBinders add flags that only exist in some builds.
var flagBinders []func(o *options, flags *pflag.FlagSet)

func (o *options) bindFlags(flags *pflag.FlagSet) {
	for _, bind := range flagBinders {
		bind(o, flags)
	}
	flags.BoolVar(&o.debug, "debug", false, "use debug log level")
	flags.StringVar(&o.espresso, "espresso", espresso.DefaultBinary, "the espresso executable")
	flags.BoolVar(&o.merge, "merge", false, "run the distance-1 merge instead of the full minimization")
	flags.BoolVar(&o.diff, "diff", false, "print the difference between the document sent to espresso and its answer")
	flags.BoolVar(&o.metrics, "metrics", false, "print solver metrics to standard error on exit")
	flags.BoolVar(&o.watch, "watch", false, "run again whenever the input file changes, until interrupted")
	flags.StringArrayVarP(&o.files, "file", "f", nil, "input file, - for standard input")
	flags.StringVarP(&o.output, "output", "o", "", "output file (default standard output)")
}

func (o *options) operation() espresso.Operation {
	if o.merge {
		return espresso.Merge
	}
	return espresso.Minimize
}

func (o *options) execSolver(op espresso.Operation, logger logrus.FieldLogger) (espresso.Solver, error) {
	opts := []espresso.Option{espresso.WithBinary(o.espresso), espresso.WithLogger(logger)}
	if op == espresso.Merge {
		return espresso.NewMerger(opts...)
	}
	return espresso.NewMinimizer(opts...)
}

// solver returns the instrumented solver for the current flags, with
// --diff output sent to w.
func (o *options) solver(w io.Writer) (espresso.Solver, error) {
	op := o.operation()
	s, err := o.newSolver(op, o.logger)
	if err != nil {
		return nil, err
	}
	s = espresso.Instrument(s, op, o.logger)
	if o.diff {
		s = diffing(s, w)
	}
	return s, nil
}

// context returns the command context cancelled on interrupt.
func (o *options) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signals.Context(parent, o.logger)
}

// run calls once, then with --watch again on every change of the
// input file until interrupted. Failures of later runs are logged.
func (o *options) run(cmd *cobra.Command, once func(ctx context.Context) error) error {
	if o.watch && len(o.files) != 1 {
		return errors.New("--watch needs a single --file")
	}
	ctx, stop := o.context(cmd)
	defer stop()

	if err := once(ctx); err != nil || !o.watch {
		return err
	}
	return filemonitor.Watch(ctx, o.logger, o.files, func(path string) {
		o.logger.WithField("file", path).Info("input changed")
		if err := once(ctx); err != nil {
			o.logger.WithError(err).Warn("run failed")
		}
	})
}

// input opens the single input of a command.
func (o *options) input(cmd *cobra.Command) (io.ReadCloser, error) {
	switch len(o.files) {
	case 0:
		return io.NopCloser(cmd.InOrStdin()), nil
	case 1:
		return open(cmd, o.files[0])
	}
	return nil, errors.Errorf("%s takes a single input, got %d", cmd.Name(), len(o.files))
}

func open(cmd *cobra.Command, name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", name)
	}
	return f, nil
}

// write hands the result destination to fn.
func (o *options) write(cmd *cobra.Command, fn func(io.Writer) error) error {
	if o.output == "" || o.output == "-" {
		return fn(cmd.OutOrStdout())
	}
	f, err := os.Create(o.output)
	if err != nil {
		return errors.Wrapf(err, "creating %s", o.output)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "closing %s", o.output)
}

func (o *options) writeMetrics(w io.Writer) error {
	families, err := o.registry.Gather()
	if err != nil {
		return errors.Wrap(err, "gathering metrics")
	}
	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, f := range families {
		if err := enc.Encode(f); err != nil {
			return errors.Wrap(err, "writing metrics")
		}
	}
	return nil
}
