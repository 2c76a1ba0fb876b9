package espresso

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultBinary is the espresso executable looked up on PATH.
const DefaultBinary = "espresso"

var defaultArgs = map[Operation][]string{
	Minimize: {"-of"},
	Merge:    {"-Dd1merge", "-of"},
}

type execSolver struct {
	op     Operation
	binary string
	args   []string
	logger logrus.FieldLogger
}

// Option configures an exec-backed solver.
type Option func(s *execSolver) error

// WithBinary sets the espresso executable.
func WithBinary(path string) Option {
	return func(s *execSolver) error {
		if path == "" {
			return errors.New("empty espresso binary path")
		}
		s.binary = path
		return nil
	}
}

// WithArgs replaces the command line arguments chosen for the
// operation.
func WithArgs(args ...string) Option {
	return func(s *execSolver) error {
		s.args = append([]string{}, args...)
		return nil
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *execSolver) error {
		s.logger = logger
		return nil
	}
}

func withOperation(op Operation) Option {
	return func(s *execSolver) error {
		s.op = op
		return nil
	}
}

var defaults = []Option{
	func(s *execSolver) error {
		if s.binary == "" {
			s.binary = DefaultBinary
		}
		return nil
	},
	func(s *execSolver) error {
		if s.args == nil {
			s.args = defaultArgs[s.op]
		}
		return nil
	},
	func(s *execSolver) error {
		if s.logger == nil {
			s.logger = logrus.StandardLogger()
		}
		return nil
	},
}

// New returns a solver that pipes documents through a child espresso
// process. Without options it minimizes with the espresso found on
// PATH.
func New(options ...Option) (Solver, error) {
	var s execSolver
	all := make([]Option, 0, len(options)+len(defaults))
	all = append(all, options...)
	all = append(all, defaults...)
	for _, option := range all {
		if err := option(&s); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

// NewMinimizer returns an exec-backed solver running the full
// minimization.
func NewMinimizer(options ...Option) (Solver, error) {
	return New(append([]Option{withOperation(Minimize)}, options...)...)
}

// NewMerger returns an exec-backed solver running the distance-1
// merge.
func NewMerger(options ...Option) (Solver, error) {
	return New(append([]Option{withOperation(Merge)}, options...)...)
}

func (s *execSolver) Solve(ctx context.Context, doc []byte) (string, error) {
	if err := checkDocument(doc); err != nil {
		return "", err
	}

	var (
		stdout pipeBuffer
		stderr bytes.Buffer
	)
	cmd := exec.CommandContext(ctx, s.binary, s.args...)
	cmd.Stdin = bytes.NewReader(doc)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	s.logger.WithField("operation", s.op).Debugf("running %s %s", s.binary, strings.Join(s.args, " "))
	if err := cmd.Run(); err != nil {
		stdout.Release()
		if ctx.Err() != nil {
			return "", errors.Wrapf(ctx.Err(), "%s interrupted", s.binary)
		}
		return "", errors.Wrapf(err, "running %s: %s", s.binary, strings.TrimSpace(stderr.String()))
	}
	return takeOwned(&stdout)
}
