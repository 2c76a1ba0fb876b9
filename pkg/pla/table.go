package pla

import (
	"github.com/pkg/errors"
)

// ErrWidthMismatch is returned when a row does not match the widths
// declared by its table.
var ErrWidthMismatch = errors.New("row width does not match table header")

// Row is one line of a single-valued table.
type Row struct {
	Inputs  []Ternary
	Outputs []Ternary
}

// Table is a single-valued (binary) truth table. Inputs and Outputs
// record the header; every row carries exactly that many values.
type Table struct {
	Inputs  int
	Outputs int
	Rows    []Row
}

// NewTable returns an empty table with the given header. The header
// holds even when it is 0/0.
func NewTable(inputs, outputs int) *Table {
	return &Table{Inputs: inputs, Outputs: outputs, Rows: []Row{}}
}

// AddRow appends a row. The first row added to a zero Table fixes its
// header.
func (t *Table) AddRow(inputs, outputs []Ternary) error {
	if t.Rows == nil && t.Inputs == 0 && t.Outputs == 0 {
		t.Inputs, t.Outputs = len(inputs), len(outputs)
	}
	if len(inputs) != t.Inputs || len(outputs) != t.Outputs {
		return errors.Wrapf(ErrWidthMismatch, "got %d/%d, header is %d/%d", len(inputs), len(outputs), t.Inputs, t.Outputs)
	}
	t.Rows = append(t.Rows, Row{Inputs: inputs, Outputs: outputs})
	return nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Equal reports whether t and o have the same header and rows.
func (t *Table) Equal(o *Table) bool {
	if t.Inputs != o.Inputs || t.Outputs != o.Outputs || len(t.Rows) != len(o.Rows) {
		return false
	}
	for i := range t.Rows {
		if !equalTernaries(t.Rows[i].Inputs, o.Rows[i].Inputs) || !equalTernaries(t.Rows[i].Outputs, o.Rows[i].Outputs) {
			return false
		}
	}
	return true
}

func equalTernaries(a, b []Ternary) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
