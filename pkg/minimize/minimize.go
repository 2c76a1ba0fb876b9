// Package minimize runs tables, clause sets and matrices through an
// espresso solver: encode, solve, decode.
package minimize

import (
	"context"

	"github.com/pkg/errors"

	"github.com/operator-framework/pla/pkg/espresso"
	"github.com/operator-framework/pla/pkg/itemizer"
	"github.com/operator-framework/pla/pkg/metrics"
	"github.com/operator-framework/pla/pkg/mv"
	"github.com/operator-framework/pla/pkg/pla"
	"github.com/operator-framework/pla/pkg/pla/cnf"
)

const (
	tableCodec = "table"
	cnfCodec   = "cnf"
)

// Table minimizes a single-valued table.
func Table(ctx context.Context, s espresso.Solver, t *pla.Table) (*pla.Table, error) {
	return table(ctx, s, t, tableCodec)
}

func table(ctx context.Context, s espresso.Solver, t *pla.Table, codec string) (*pla.Table, error) {
	doc, err := t.MarshalText()
	if err != nil {
		return nil, err
	}
	metrics.ObserveRows(codec, metrics.Encoded, t.Len())

	out, err := s.Solve(ctx, doc)
	if err != nil {
		return nil, errors.Wrap(err, "solving table")
	}
	r, err := pla.Parse(out)
	if err != nil {
		return nil, errors.Wrap(err, "reading solver output")
	}
	metrics.ObserveRows(codec, metrics.Decoded, r.Len())
	return r, nil
}

// CNF minimizes a clause set over variables 1..maxVars. The result
// is logically equivalent to f when s is a sound minimizer.
func CNF(ctx context.Context, s espresso.Solver, f cnf.CNF, maxVars int) (cnf.CNF, error) {
	t, err := cnf.Encode(f, maxVars)
	if err != nil {
		return nil, err
	}
	r, err := table(ctx, s, t, cnfCodec)
	if err != nil {
		return nil, err
	}
	if r.Inputs != maxVars {
		return nil, errors.Errorf("solver returned %d inputs, expected %d", r.Inputs, maxVars)
	}
	return cnf.Decode(r), nil
}

// Compress minimizes m as a multi-valued on-set. When vars is nil the
// itemizers are built from m.
func Compress[V comparable](ctx context.Context, s espresso.Solver, m *mv.Matrix[V], vars []*itemizer.Itemizer[V]) (*mv.Matrix[V], error) {
	return matrix(ctx, s, mv.Compress, m, vars)
}

// Reduce minimizes m treating its last column as distinguished. When
// vars is nil the itemizers are built from m.
func Reduce[V comparable](ctx context.Context, s espresso.Solver, m *mv.Matrix[V], vars []*itemizer.Itemizer[V]) (*mv.Matrix[V], error) {
	return matrix(ctx, s, mv.Reduce, m, vars)
}

func matrix[V comparable](ctx context.Context, s espresso.Solver, mode mv.Mode, m *mv.Matrix[V], vars []*itemizer.Itemizer[V]) (*mv.Matrix[V], error) {
	if vars == nil {
		vars = mv.Scan(m)
	}
	c := mv.NewCodec(mode, vars)
	doc, err := c.Encode(m)
	if err != nil {
		return nil, err
	}
	rows, _ := m.Dims()
	metrics.ObserveRows(mode.String(), metrics.Encoded, rows)

	out, err := s.Solve(ctx, doc)
	if err != nil {
		return nil, errors.Wrapf(err, "solving %s matrix", mode)
	}
	r, err := c.Decode([]byte(out))
	if err != nil {
		return nil, errors.Wrap(err, "reading solver output")
	}
	rows, _ = r.Dims()
	metrics.ObserveRows(mode.String(), metrics.Decoded, rows)
	return r, nil
}
