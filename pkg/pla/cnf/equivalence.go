package cnf

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
)

// Equivalent reports whether a and b admit exactly the same models.
// Each clause of one side must be implied by the other side, which is
// checked by asking the SAT solver for a model of the other side that
// falsifies the clause.
func Equivalent(a, b CNF) (bool, error) {
	ok, err := implies(a, b)
	if err != nil || !ok {
		return false, err
	}
	return implies(b, a)
}

// Implies reports whether every model of premise is a model of
// conclusion.
func Implies(premise, conclusion CNF) (bool, error) {
	return implies(premise, conclusion)
}

func implies(premise, conclusion CNF) (bool, error) {
	for _, c := range premise {
		if len(c) == 0 {
			// An empty clause cannot be satisfied.
			return true, nil
		}
	}

	g := gini.NewV(max(MaxVar(premise), MaxVar(conclusion)))
	for _, c := range premise {
		for _, m := range c {
			g.Add(m)
		}
		g.Add(z.LitNull)
	}
	// Register every variable of the conclusion so that assumptions
	// never refer to a variable the solver has not seen.
	for v := z.Var(1); int(v) <= MaxVar(conclusion); v++ {
		g.Add(v.Pos())
		g.Add(v.Neg())
		g.Add(z.LitNull)
	}

	for i, c := range conclusion {
		for _, m := range c {
			g.Assume(m.Not())
		}
		switch g.Solve() {
		case unsatisfiable:
			continue
		case satisfiable:
			return false, nil
		default:
			return false, errors.Errorf("solver gave no answer for clause %d", i)
		}
	}
	return true, nil
}
