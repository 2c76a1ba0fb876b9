// Package cnf bridges conjunctive normal form formulas and
// single-valued tables.
//
// A clause is satisfied by every assignment except the one that
// falsifies all of its literals. Each clause therefore becomes one
// row holding that blocking assignment: a positive literal is written
// as 0, a negative literal as 1, and every other variable is a
// don't-care. Minimizing the cover of blocking rows and reading the
// rows back as clauses yields an equivalent, usually smaller, formula.
package cnf

import (
	"sort"

	"github.com/go-air/gini/z"
	"github.com/pkg/errors"

	"github.com/operator-framework/pla/pkg/pla"
)

// ErrVariableOutOfRange is returned when a literal does not fit in
// the requested row width.
var ErrVariableOutOfRange = errors.New("variable out of range")

// Clause is a disjunction of literals. Variables are numbered from 1,
// as in DIMACS.
type Clause []z.Lit

// CNF is a conjunction of clauses.
type CNF []Clause

// Lits builds a clause from DIMACS-coded integers.
func Lits(ms ...int) Clause {
	c := make(Clause, len(ms))
	for i, m := range ms {
		c[i] = z.Dimacs2Lit(m)
	}
	return c
}

// MaxVar returns the largest variable appearing in f, or 0 if f has no
// literals.
func MaxVar(f CNF) int {
	n := 0
	for _, c := range f {
		for _, m := range c {
			if v := int(m.Var()); v > n {
				n = v
			}
		}
	}
	return n
}

// Encode returns a table with one blocking row per clause. Variable v
// occupies input position v-1, so maxVars must be at least MaxVar(f).
// Each row carries a single true output.
func Encode(f CNF, maxVars int) (*pla.Table, error) {
	if maxVars < 0 {
		return nil, errors.Wrapf(ErrVariableOutOfRange, "negative width %d", maxVars)
	}
	t := pla.NewTable(maxVars, 1)
	t.Rows = make([]pla.Row, 0, len(f))
	for i, c := range f {
		inputs := make([]pla.Ternary, maxVars)
		for _, m := range c {
			v := int(m.Var())
			if m == z.LitNull || v > maxVars {
				return nil, errors.Wrapf(ErrVariableOutOfRange, "clause %d: literal %s with %d variables", i, m, maxVars)
			}
			inputs[v-1] = pla.Lift(!m.IsPos())
		}
		t.Rows = append(t.Rows, pla.Row{Inputs: inputs, Outputs: []pla.Ternary{pla.True}})
	}
	return t, nil
}

// Decode reads every row of t back as a clause: a true input becomes a
// negative literal, a false input a positive one.
func Decode(t *pla.Table) CNF {
	f := make(CNF, 0, len(t.Rows))
	for _, r := range t.Rows {
		var c Clause
		for i, val := range r.Inputs {
			v := z.Var(i + 1)
			switch val {
			case pla.True:
				c = append(c, v.Neg())
			case pla.False:
				c = append(c, v.Pos())
			}
		}
		f = append(f, c)
	}
	return f
}

// Normalize sorts the literals of every clause and then the clauses
// themselves, so that formulas differing only in order compare equal.
func Normalize(f CNF) CNF {
	out := make(CNF, len(f))
	for i, c := range f {
		n := make(Clause, len(c))
		copy(n, c)
		sort.Slice(n, func(a, b int) bool { return n[a] < n[b] })
		out[i] = n
	}
	sort.Slice(out, func(a, b int) bool {
		x, y := out[a], out[b]
		for k := 0; k < len(x) && k < len(y); k++ {
			if x[k] != y[k] {
				return x[k] < y[k]
			}
		}
		return len(x) < len(y)
	})
	return out
}
