package cnf

import (
	"bufio"
	"fmt"
	"io"

	"github.com/go-air/gini/dimacs"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
)

// collector is a dimacs.CnfVis accumulating clauses.
type collector struct {
	vars    int
	clauses int
	f       CNF
	cur     Clause
}

func (c *collector) Init(v, n int) {
	c.vars, c.clauses = v, n
	c.f = make(CNF, 0, min(n, 1024))
}

func (c *collector) Add(m z.Lit) {
	if m == z.LitNull {
		c.f = append(c.f, c.cur)
		c.cur = nil
		return
	}
	c.cur = append(c.cur, m)
}

// Eof flushes a clause left open at the end of the input.
func (c *collector) Eof() {
	if len(c.cur) > 0 {
		c.f = append(c.f, c.cur)
		c.cur = nil
	}
}

// ReadDimacs parses a DIMACS cnf problem. It returns the clauses and
// the variable count declared by the problem line, or the largest
// variable used when there is no problem line. A final clause missing
// its terminating 0 is kept.
func ReadDimacs(r io.Reader) (CNF, int, error) {
	br := bufio.NewReader(dimacs.NewCommentFilter(r))
	b, err := br.Peek(1)
	declared := err == nil && b[0] == 'p'

	var c collector
	if err := dimacs.ReadCnf(br, &c); err != nil {
		return nil, 0, errors.Wrap(err, "reading dimacs")
	}
	c.Eof()

	n := MaxVar(c.f)
	if !declared {
		return c.f, n, nil
	}
	if n > c.vars {
		return nil, 0, errors.Wrapf(ErrVariableOutOfRange, "problem line declares %d variables, clauses use %d", c.vars, n)
	}
	return c.f, c.vars, nil
}

// WriteDimacs writes f as a DIMACS cnf problem over vars variables.
func WriteDimacs(w io.Writer, f CNF, vars int) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "p cnf %d %d\n", vars, len(f))
	for _, c := range f {
		for _, m := range c {
			fmt.Fprintf(bw, "%d ", m.Dimacs())
		}
		bw.WriteString("0\n")
	}
	return errors.Wrap(bw.Flush(), "writing dimacs")
}
