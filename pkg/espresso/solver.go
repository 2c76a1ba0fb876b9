// Package espresso calls the espresso logic minimizer.
//
// The minimizer is treated as a pure text transform: a complete table
// document goes in and a reduced document comes out. Whatever carries
// the call (a child process, a linked C library, or a Go function),
// the returned text is copied into memory owned by the caller and the
// carrier's buffer is released exactly once.
package espresso

import (
	"context"
	"unicode/utf8"

	"github.com/pkg/errors"
)

var (
	// ErrEmptyDocument is returned without calling the minimizer when
	// the document has no content.
	ErrEmptyDocument = errors.New("empty document")
	// ErrNoOutput is returned when the minimizer produced nothing.
	ErrNoOutput = errors.New("minimizer produced no output")
	// ErrInvalidOutput is returned when the result is not UTF-8 text.
	ErrInvalidOutput = errors.New("minimizer output is not valid UTF-8")
)

// Operation names what the minimizer is asked to do.
type Operation int

const (
	// Minimize runs the full espresso heuristic.
	Minimize Operation = iota
	// Merge runs the distance-1 merge over every variable, absorbing
	// redundant rows without the full heuristic.
	Merge
)

func (op Operation) String() string {
	switch op {
	case Minimize:
		return "minimize"
	case Merge:
		return "merge"
	}
	return "unknown"
}

// Solver transforms a table document into its reduced form.
type Solver interface {
	Solve(ctx context.Context, doc []byte) (string, error)
}

// SolverFunc adapts an in-process function to Solver. The document is
// validated and the function's result is checked the same way as for
// the other carriers.
type SolverFunc func(ctx context.Context, doc []byte) (string, error)

func (f SolverFunc) Solve(ctx context.Context, doc []byte) (string, error) {
	if err := checkDocument(doc); err != nil {
		return "", err
	}
	out, err := f(ctx, doc)
	if err != nil {
		return "", err
	}
	if !utf8.ValidString(out) {
		return "", ErrInvalidOutput
	}
	return out, nil
}

func checkDocument(doc []byte) error {
	if len(doc) == 0 {
		return ErrEmptyDocument
	}
	return nil
}
