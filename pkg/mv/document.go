package mv

import (
	"io"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
)

// Document is the YAML form of a string matrix:
//
//	columns: [shape, colour, size]
//	rows:
//	- [[square], [red, blue], null]
//
// A null cell is a wildcard.
type Document struct {
	Columns []string     `json:"columns,omitempty"`
	Rows    [][][]string `json:"rows"`
}

// ReadDocument decodes a YAML (or JSON) matrix document.
func ReadDocument(r io.Reader) (*Document, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading matrix document")
	}
	var d Document
	if err := yaml.Unmarshal(b, &d); err != nil {
		return nil, errors.Wrap(err, "decoding matrix document")
	}
	if d.Columns != nil {
		for i, r := range d.Rows {
			if len(r) != len(d.Columns) {
				return nil, errors.Errorf("row %d has %d cells for %d columns", i, len(r), len(d.Columns))
			}
		}
	}
	return &d, nil
}

// Matrix converts the document rows into a matrix.
func (d *Document) Matrix() (*Matrix[string], error) {
	rows := make([][]Cell[string], len(d.Rows))
	for i, r := range d.Rows {
		rows[i] = make([]Cell[string], len(r))
		for j, values := range r {
			if values != nil {
				rows[i][j] = Cell[string](values)
			}
		}
	}
	m, err := FromRows(rows)
	if err != nil {
		return nil, errors.Wrap(err, "matrix document")
	}
	if len(d.Rows) == 0 {
		m.cols = len(d.Columns)
	}
	return m, nil
}

// NewDocument returns the document form of m.
func NewDocument(columns []string, m *Matrix[string]) *Document {
	d := &Document{Columns: columns, Rows: make([][][]string, m.rows)}
	for i := range d.Rows {
		d.Rows[i] = make([][]string, m.cols)
		for j, c := range m.Row(i) {
			if c != nil {
				d.Rows[i][j] = []string(c)
			}
		}
	}
	return d
}

// WriteDocument encodes d as YAML.
func WriteDocument(w io.Writer, d *Document) error {
	b, err := yaml.Marshal(d)
	if err != nil {
		return errors.Wrap(err, "encoding matrix document")
	}
	_, err = w.Write(b)
	return errors.Wrap(err, "writing matrix document")
}
