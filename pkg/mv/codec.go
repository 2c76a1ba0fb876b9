// Package mv encodes matrices of categorical value sets as espresso
// multi-valued tables and decodes the minimizer's answer.
//
// Every column is a multi-valued variable whose values are numbered by
// an itemizer. A cell becomes a one-hot field as wide as the itemizer:
// a 1 at the position of each value the cell allows, or all 1s for a
// wildcard. The same itemizers must be used to encode a matrix and to
// decode the corresponding result.
package mv

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/operator-framework/pla/pkg/itemizer"
	"github.com/operator-framework/pla/pkg/pla"
)

var (
	// ErrUnknownValue is returned when a cell holds a value its
	// column's itemizer has never observed.
	ErrUnknownValue = errors.New("value not known to its variable")
	// ErrEmptyCell is returned for a non-nil cell without values.
	ErrEmptyCell = errors.New("cell has no values")
	// ErrEmptyVariable is returned for a variable with no values.
	ErrEmptyVariable = errors.New("variable has no values")
)

// Mode selects the document shape.
type Mode int

const (
	// Compress declares a binary ON/OFF output class and asserts every
	// row ON. Used to pare a matrix down to its essential rows.
	Compress Mode = iota
	// Reduce has no output class. The right-most variable is the
	// target and is always decoded literally.
	Reduce
)

func (m Mode) String() string {
	switch m {
	case Compress:
		return "compress"
	case Reduce:
		return "reduce"
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

const (
	outputClassWidth = 2
	outputClassNames = "ON OFF"
	// outputOn asserts a row in the ON class and leaves OFF free.
	outputOn = "10"
)

// Codec converts between matrices and multi-valued documents for a
// fixed set of variables.
type Codec[V comparable] struct {
	Mode Mode
	Vars []*itemizer.Itemizer[V]
}

// NewCodec returns a codec over vars, one itemizer per column.
func NewCodec[V comparable](mode Mode, vars []*itemizer.Itemizer[V]) *Codec[V] {
	return &Codec[V]{Mode: mode, Vars: vars}
}

// Encode renders m as a multi-valued document.
func (c *Codec[V]) Encode(m *Matrix[V]) ([]byte, error) {
	rows, cols := m.Dims()
	if cols != len(c.Vars) {
		return nil, errors.Errorf("matrix has %d columns but %d variables were given", cols, len(c.Vars))
	}
	if cols == 0 {
		return nil, errors.New("matrix has no columns")
	}
	for j, v := range c.Vars {
		if v.Len() == 0 {
			return nil, errors.Wrapf(ErrEmptyVariable, "column %d", j)
		}
	}

	var buf bytes.Buffer
	c.writeHeader(&buf, rows)

	field := make([]byte, 0, 64)
	for i := 0; i < rows; i++ {
		for j, cell := range m.Row(i) {
			if j > 0 {
				buf.WriteByte('|')
			}
			var err error
			field, err = c.field(field[:0], j, cell)
			if err != nil {
				return nil, errors.Wrapf(err, "row %d column %d", i, j)
			}
			buf.Write(field)
		}
		if c.Mode == Compress {
			buf.WriteString("|" + outputOn)
		}
		buf.WriteByte('\n')
	}
	buf.WriteString(pla.KeywordEnd + "\n")
	return buf.Bytes(), nil
}

func (c *Codec[V]) writeHeader(buf *bytes.Buffer, rows int) {
	vars := len(c.Vars)
	if c.Mode == Compress {
		vars++
	}
	buf.WriteString(pla.KeywordMultiValue + " ")
	buf.WriteString(strconv.Itoa(vars))
	// No binary variables; every column is multi-valued.
	buf.WriteString(" 0")
	for _, v := range c.Vars {
		buf.WriteByte(' ')
		buf.WriteString(strconv.Itoa(v.Len()))
	}
	if c.Mode == Compress {
		buf.WriteString(" " + strconv.Itoa(outputClassWidth) + "\n")
		buf.WriteString(pla.KeywordOutputName + " " + outputClassNames)
	}
	buf.WriteByte('\n')
	buf.WriteString(pla.KeywordProducts + " " + strconv.Itoa(rows) + "\n")
	buf.WriteString(pla.KeywordType + " " + pla.TypeOnSet + "\n")
}

// field appends the one-hot field for cell in column j.
func (c *Codec[V]) field(dst []byte, j int, cell Cell[V]) ([]byte, error) {
	width := c.Vars[j].Len()
	if cell.Wildcard() {
		for k := 0; k < width; k++ {
			dst = append(dst, '1')
		}
		return dst, nil
	}
	if len(cell) == 0 {
		return nil, ErrEmptyCell
	}
	start := len(dst)
	for k := 0; k < width; k++ {
		dst = append(dst, '0')
	}
	for _, v := range cell {
		id, ok := c.Vars[j].Lookup(v)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownValue, "%v", v)
		}
		dst[start+id.Index()] = '1'
	}
	return dst, nil
}

// distinguished reports whether an all-ones token in column j must be
// decoded literally rather than as a wildcard.
func (c *Codec[V]) distinguished(j int) bool {
	return c.Mode == Reduce && j == len(c.Vars)-1
}

// Decode parses a minimizer result produced for a document encoded by
// the same codec.
func (c *Codec[V]) Decode(text []byte) (*Matrix[V], error) {
	return c.Read(bytes.NewReader(text))
}

// Read is Decode over a stream.
func (c *Codec[V]) Read(r io.Reader) (*Matrix[V], error) {
	var (
		g          builder[V]
		scanner    = bufio.NewScanner(r)
		lineNumber int
	)
	g.cols = len(c.Vars)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		lineNumber++
		text := strings.TrimRight(scanner.Text(), "\r")
		if pla.IsEnd(text) {
			break
		}
		if pla.IsDirective(text) {
			keyword, args := pla.Directive(text)
			if keyword != pla.KeywordProducts {
				continue
			}
			n, err := pla.IntArg(keyword, args)
			if err != nil {
				return nil, pla.NewFormatError(lineNumber, text, err)
			}
			g.size(n)
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		if err := c.decodeRow(&g, text); err != nil {
			return nil, pla.NewFormatError(lineNumber, text, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading table")
	}
	if g.m == nil {
		return nil, pla.NewFormatError(lineNumber, "", errors.Errorf("no %s line in result", pla.KeywordProducts))
	}
	return g.m, nil
}

func (c *Codec[V]) decodeRow(g *builder[V], text string) error {
	i, err := g.next()
	if err != nil {
		return err
	}
	// The first token is the binary part of the cube, empty when every
	// variable is multi-valued.
	tokens := strings.Split(text, " ")[1:]
	for j, token := range tokens {
		if j >= len(c.Vars) {
			break
		}
		if width := c.Vars[j].Len(); len(token) != width {
			return errors.Errorf("field %d has width %d, want %d", j, len(token), width)
		}
		if !c.distinguished(j) && allOnes(token) {
			continue
		}
		for p := 0; p < len(token); p++ {
			switch token[p] {
			case '0':
			case '1':
				v, err := c.Vars[j].ValueOf(itemizer.ID(p + 1))
				if err != nil {
					return err
				}
				g.m.add(i, j, v)
			default:
				return errors.Errorf("invalid character %q in field %d", token[p], j)
			}
		}
	}
	return nil
}

func allOnes(token string) bool {
	for k := 0; k < len(token); k++ {
		if token[k] != '1' {
			return false
		}
	}
	return true
}

// builder holds the decoded grid, which does not exist until the
// result declares its row count.
type builder[V comparable] struct {
	cols int
	m    *Matrix[V]
	row  int
}

func (g *builder[V]) size(rows int) {
	g.m = NewMatrix[V](rows, g.cols)
	g.row = 0
}

func (g *builder[V]) next() (int, error) {
	if g.m == nil {
		return 0, errors.Errorf("row before %s line", pla.KeywordProducts)
	}
	if g.row >= g.m.rows {
		return 0, errors.Errorf("more rows than the declared %d", g.m.rows)
	}
	g.row++
	return g.row - 1, nil
}
