package mv

import (
	"github.com/pkg/errors"

	"github.com/operator-framework/pla/pkg/itemizer"
)

// Cell is the content of one matrix position: the set of values the
// column's variable may take. A nil Cell is a wildcard and matches any
// value.
type Cell[V comparable] []V

// Wildcard reports whether c places no constraint on its variable.
func (c Cell[V]) Wildcard() bool {
	return c == nil
}

// Matrix is a dense rows × columns grid of cells.
type Matrix[V comparable] struct {
	rows, cols int
	cells      []Cell[V]
}

// NewMatrix returns a matrix of the given size with every cell a
// wildcard.
func NewMatrix[V comparable](rows, cols int) *Matrix[V] {
	return &Matrix[V]{rows: rows, cols: cols, cells: make([]Cell[V], rows*cols)}
}

// FromRows builds a matrix from row slices, which must all have the
// same length.
func FromRows[V comparable](rows [][]Cell[V]) (*Matrix[V], error) {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	m := NewMatrix[V](len(rows), cols)
	for i, r := range rows {
		if len(r) != cols {
			return nil, errors.Errorf("row %d has %d cells, want %d", i, len(r), cols)
		}
		copy(m.cells[i*cols:], r)
	}
	return m, nil
}

// Dims returns the number of rows and columns.
func (m *Matrix[V]) Dims() (rows, cols int) {
	return m.rows, m.cols
}

func (m *Matrix[V]) At(i, j int) Cell[V] {
	return m.cells[m.offset(i, j)]
}

func (m *Matrix[V]) Set(i, j int, c Cell[V]) {
	m.cells[m.offset(i, j)] = c
}

func (m *Matrix[V]) add(i, j int, v V) {
	o := m.offset(i, j)
	m.cells[o] = append(m.cells[o], v)
}

func (m *Matrix[V]) offset(i, j int) int {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(errors.Errorf("cell (%d, %d) outside %dx%d matrix", i, j, m.rows, m.cols))
	}
	return i*m.cols + j
}

// Row returns the cells of row i. The slice aliases the matrix.
func (m *Matrix[V]) Row(i int) []Cell[V] {
	if i < 0 || i >= m.rows {
		panic(errors.Errorf("row %d outside %dx%d matrix", i, m.rows, m.cols))
	}
	return m.cells[i*m.cols : (i+1)*m.cols]
}

// Rows returns a copy of the matrix as row slices.
func (m *Matrix[V]) Rows() [][]Cell[V] {
	out := make([][]Cell[V], m.rows)
	for i := range out {
		out[i] = make([]Cell[V], m.cols)
		copy(out[i], m.cells[i*m.cols:(i+1)*m.cols])
	}
	return out
}

// Equal reports whether m and o hold the same cells in the same
// positions. Values within a cell are compared in order.
func (m *Matrix[V]) Equal(o *Matrix[V]) bool {
	if m.rows != o.rows || m.cols != o.cols {
		return false
	}
	for k := range m.cells {
		a, b := m.cells[k], o.cells[k]
		if a.Wildcard() != b.Wildcard() || len(a) != len(b) {
			return false
		}
		for x := range a {
			if a[x] != b[x] {
				return false
			}
		}
	}
	return true
}

// Scan returns one itemizer per column, populated with every concrete
// value of that column in row-major first-seen order.
func Scan[V comparable](m *Matrix[V]) []*itemizer.Itemizer[V] {
	vars := make([]*itemizer.Itemizer[V], m.cols)
	for j := range vars {
		vars[j] = itemizer.New[V]()
	}
	for i := 0; i < m.rows; i++ {
		for j, c := range m.Row(i) {
			for _, v := range c {
				vars[j].IDOf(v)
			}
		}
	}
	return vars
}
