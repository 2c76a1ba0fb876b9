package pla

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// MarshalText renders t in espresso's single-valued format:
//
//	.i <inputs>
//	.o <outputs>
//	.type f
//	<inputs> <outputs>
//	...
//	.e
func (t *Table) MarshalText() ([]byte, error) {
	for i, r := range t.Rows {
		if len(r.Inputs) != t.Inputs || len(r.Outputs) != t.Outputs {
			return nil, errors.Wrapf(ErrWidthMismatch, "row %d", i)
		}
	}

	buf := make([]byte, 0, 32+len(t.Rows)*(t.Inputs+t.Outputs+2))
	buf = append(buf, KeywordInputs...)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(t.Inputs), 10)
	buf = append(buf, '\n')
	buf = append(buf, KeywordOutputs...)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(t.Outputs), 10)
	buf = append(buf, '\n')
	buf = append(buf, KeywordType+" "+TypeOnSet+"\n"...)
	for _, r := range t.Rows {
		buf = appendTernaries(buf, r.Inputs)
		buf = append(buf, ' ')
		buf = appendTernaries(buf, r.Outputs)
		buf = append(buf, '\n')
	}
	buf = append(buf, KeywordEnd+"\n"...)
	return buf, nil
}

// WriteTo writes the encoded table to w.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	b, err := t.MarshalText()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)
	return int64(n), err
}

// String returns the encoded table, or a description of why it cannot
// be encoded.
func (t *Table) String() string {
	b, err := t.MarshalText()
	if err != nil {
		return "<invalid table: " + err.Error() + ">"
	}
	return string(b)
}

// UnmarshalText replaces t with the table decoded from text.
func (t *Table) UnmarshalText(text []byte) error {
	decoded, err := Read(bytes.NewReader(text))
	if err != nil {
		return err
	}
	*t = *decoded
	return nil
}

// Parse decodes a single-valued table from its text form.
func Parse(text string) (*Table, error) {
	return Read(strings.NewReader(text))
}

type line struct {
	no   int
	text string
}

// Read decodes a single-valued table. The latest .i and .o before the
// body fix the header. Rows are the lines following .type up to .e;
// when no .type line is present every non-keyword line is a row.
func Read(r io.Reader) (*Table, error) {
	var (
		lines      []line
		inputs     = -1
		outputs    = -1
		typeAt     = -1
		scanner    = bufio.NewScanner(r)
		lineNumber int
	)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		lineNumber++
		text := strings.TrimRight(scanner.Text(), "\r")
		if IsEnd(text) {
			break
		}
		if text == "" {
			continue
		}
		if IsDirective(text) {
			keyword, args := Directive(text)
			if typeAt >= 0 && keyword != KeywordProducts {
				return nil, NewFormatError(lineNumber, text, errors.Errorf("unexpected %s after %s", keyword, KeywordType))
			}
			var err error
			switch keyword {
			case KeywordInputs:
				inputs, err = IntArg(keyword, args)
			case KeywordOutputs:
				outputs, err = IntArg(keyword, args)
			case KeywordType:
				if len(args) != 1 || args[0] != TypeOnSet {
					err = errors.Errorf("unsupported table type %v", args)
				}
				typeAt = len(lines)
			case KeywordMultiValue:
				err = errors.New("multi-valued table given to the single-valued decoder")
			}
			if err != nil {
				return nil, NewFormatError(lineNumber, text, err)
			}
			continue
		}
		lines = append(lines, line{no: lineNumber, text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading table")
	}

	body := lines
	if typeAt >= 0 {
		body = lines[typeAt:]
	}

	t := &Table{Inputs: inputs, Outputs: outputs, Rows: make([]Row, 0, len(body))}
	for _, l := range body {
		// Only a table without inputs or outputs has blank rows.
		if strings.TrimSpace(l.text) == "" && (t.Inputs != 0 || t.Outputs != 0) {
			continue
		}
		row, err := parseRow(l.text, t.Inputs, t.Outputs)
		if err != nil {
			return nil, NewFormatError(l.no, l.text, err)
		}
		if t.Inputs < 0 {
			t.Inputs = len(row.Inputs)
		}
		if t.Outputs < 0 {
			t.Outputs = len(row.Outputs)
		}
		if len(row.Inputs) != t.Inputs || len(row.Outputs) != t.Outputs {
			return nil, NewFormatError(l.no, l.text, errors.Wrapf(ErrWidthMismatch, "header is %d/%d", t.Inputs, t.Outputs))
		}
		t.Rows = append(t.Rows, row)
	}
	if t.Inputs < 0 {
		t.Inputs = 0
	}
	if t.Outputs < 0 {
		t.Outputs = 0
	}
	return t, nil
}

// parseRow splits a row into its input and output fields. A row of a
// table without inputs starts with the separating space, a row of a
// table without outputs ends with it. Widths of -1 are not yet known.
func parseRow(text string, inputs, outputs int) (Row, error) {
	fields := strings.Fields(text)
	var in, out string
	switch {
	case len(fields) == 2:
		in, out = fields[0], fields[1]
	case len(fields) > 2:
		return Row{}, errors.Errorf("row has %d fields", len(fields))
	case len(fields) == 0:
	case inputs == 0 || inputs < 0 && (text[0] == ' ' || text[0] == '\t'):
		out = fields[0]
	case outputs == 0 || outputs < 0 && strings.ContainsAny(text, " \t"):
		in = fields[0]
	default:
		return Row{}, errors.New("row has no output field")
	}
	ins, err := parseTernaries(in)
	if err != nil {
		return Row{}, errors.Wrap(err, "inputs")
	}
	outs, err := parseTernaries(out)
	if err != nil {
		return Row{}, errors.Wrap(err, "outputs")
	}
	return Row{Inputs: ins, Outputs: outs}, nil
}
