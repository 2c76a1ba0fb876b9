package pla

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(in, out string) Row {
	inputs, err := parseTernaries(in)
	if err != nil {
		panic(err)
	}
	outputs, err := parseTernaries(out)
	if err != nil {
		panic(err)
	}
	return Row{Inputs: inputs, Outputs: outputs}
}

func TestMarshalText(t *testing.T) {
	table := NewTable(4, 1)
	for _, in := range []string{"0000", "0001", "0101", "0111"} {
		r := row(in, "1")
		require.NoError(t, table.AddRow(r.Inputs, r.Outputs))
	}

	b, err := table.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, `.i 4
.o 1
.type f
0000 1
0001 1
0101 1
0111 1
.e
`, string(b))
}

func TestMarshalTextEmptyTable(t *testing.T) {
	b, err := NewTable(3, 2).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, ".i 3\n.o 2\n.type f\n.e\n", string(b))
}

func TestMarshalTextRejectsRaggedRows(t *testing.T) {
	table := &Table{Inputs: 2, Outputs: 1, Rows: []Row{row("01", "1"), row("011", "1")}}
	_, err := table.MarshalText()
	assert.True(t, errors.Is(err, ErrWidthMismatch))
}

func TestRoundTrip(t *testing.T) {
	type tc struct {
		Name  string
		Table *Table
	}

	for _, tt := range []tc{
		{
			Name:  "single row",
			Table: &Table{Inputs: 3, Outputs: 1, Rows: []Row{row("1-0", "1")}},
		},
		{
			Name: "several outputs",
			Table: &Table{Inputs: 4, Outputs: 3, Rows: []Row{
				row("----", "101"),
				row("0101", "0-1"),
				row("1111", "000"),
			}},
		},
		{
			Name:  "no rows",
			Table: &Table{Inputs: 5, Outputs: 2, Rows: []Row{}},
		},
		{
			Name:  "no outputs",
			Table: &Table{Inputs: 2, Outputs: 0, Rows: []Row{row("10", ""), row("-1", "")}},
		},
		{
			Name:  "no inputs",
			Table: &Table{Inputs: 0, Outputs: 1, Rows: []Row{row("", "1"), row("", "0")}},
		},
		{
			Name:  "neither inputs nor outputs",
			Table: &Table{Inputs: 0, Outputs: 0, Rows: []Row{row("", "")}},
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			var buf bytes.Buffer
			_, err := tt.Table.WriteTo(&buf)
			require.NoError(t, err)

			decoded, err := Read(&buf)
			require.NoError(t, err)
			assert.True(t, tt.Table.Equal(decoded), cmp.Diff(tt.Table, decoded))
		})
	}
}

func TestParseSolverOutput(t *testing.T) {
	decoded, err := Parse(`.i 4
.o 1
.p 2
.type f
0-01 1
000- 1
.e
ignored after terminator
`)
	require.NoError(t, err)

	want := &Table{Inputs: 4, Outputs: 1, Rows: []Row{row("0-01", "1"), row("000-", "1")}}
	assert.Empty(t, cmp.Diff(want, decoded))
}

func TestParseLatestHeaderWins(t *testing.T) {
	decoded, err := Parse(".i 9\n.o 9\n.ilb a b\n.i 2\n.o 1\n.type f\n01 1\n.e\n")
	require.NoError(t, err)
	assert.Equal(t, 2, decoded.Inputs)
	assert.Equal(t, 1, decoded.Outputs)
	assert.Len(t, decoded.Rows, 1)
}

func TestParseWithoutTypeLine(t *testing.T) {
	decoded, err := Parse(".i 2\n.o 1\n10 1\n\n01 1\n")
	require.NoError(t, err)
	assert.Equal(t, []Row{row("10", "1"), row("01", "1")}, decoded.Rows)
}

func TestParseInfersHeaderFromRows(t *testing.T) {
	decoded, err := Parse(".type f\n1-1 01\n")
	require.NoError(t, err)
	assert.Equal(t, 3, decoded.Inputs)
	assert.Equal(t, 2, decoded.Outputs)
}

func TestParseRowsWithoutHeader(t *testing.T) {
	type tc struct {
		Name    string
		Text    string
		Inputs  int
		Outputs int
	}

	for _, tt := range []tc{
		{Name: "trailing separator", Text: ".type f\n10 \n", Inputs: 2, Outputs: 0},
		{Name: "leading separator", Text: ".type f\n 1\n", Inputs: 0, Outputs: 1},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			decoded, err := Parse(tt.Text)
			require.NoError(t, err)
			assert.Equal(t, tt.Inputs, decoded.Inputs)
			assert.Equal(t, tt.Outputs, decoded.Outputs)
			assert.Len(t, decoded.Rows, 1)
		})
	}
}

func TestParseErrors(t *testing.T) {
	type tc struct {
		Name string
		Text string
		Line int
	}

	for _, tt := range []tc{
		{
			Name: "invalid input character",
			Text: ".i 2\n.o 1\n.type f\n0x 1\n.e\n",
			Line: 4,
		},
		{
			Name: "invalid output character",
			Text: ".i 2\n.o 1\n.type f\n01 ~\n.e\n",
			Line: 4,
		},
		{
			Name: "missing output field",
			Text: ".i 2\n.o 1\n.type f\n01\n",
			Line: 4,
		},
		{
			Name: "too many fields",
			Text: ".i 2\n.o 1\n.type f\n01 1 1\n",
			Line: 4,
		},
		{
			Name: "width disagrees with header",
			Text: ".i 3\n.o 1\n.type f\n01 1\n",
			Line: 4,
		},
		{
			Name: "keyword after type",
			Text: ".i 2\n.o 1\n.type f\n01 1\n.i 3\n",
			Line: 5,
		},
		{
			Name: "unsupported type",
			Text: ".i 2\n.o 1\n.type fr\n",
			Line: 3,
		},
		{
			Name: "bad integer",
			Text: ".i two\n",
			Line: 1,
		},
		{
			Name: "multi-valued document",
			Text: ".mv 3 0 2 2 2\n",
			Line: 1,
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			_, err := Parse(tt.Text)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrFormat))

			var fe *FormatError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.Line, fe.Line)
		})
	}
}

func TestFormatErrorMatchesViolation(t *testing.T) {
	_, err := Parse(".i 2\n.o 1\n.type f\n1 1\n")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFormat))
	assert.True(t, errors.Is(err, ErrWidthMismatch))
	assert.True(t, errors.Is(errors.Wrap(err, "minimizing"), ErrWidthMismatch))
}

func TestUnmarshalText(t *testing.T) {
	var table Table
	require.NoError(t, table.UnmarshalText([]byte(".i 1\n.o 1\n.type f\n- 1\n.e\n")))
	assert.Equal(t, []Row{row("-", "1")}, table.Rows)
}

func TestAddRowFixesHeader(t *testing.T) {
	var table Table
	require.NoError(t, table.AddRow([]Ternary{True, False}, []Ternary{True}))
	assert.Equal(t, 2, table.Inputs)
	assert.Equal(t, 1, table.Outputs)

	err := table.AddRow([]Ternary{True}, []Ternary{True})
	assert.True(t, errors.Is(err, ErrWidthMismatch))
	assert.Equal(t, 1, table.Len())
}

func TestAddRowKeepsDeclaredHeader(t *testing.T) {
	table := NewTable(0, 0)
	err := table.AddRow([]Ternary{True, False}, []Ternary{True})
	assert.True(t, errors.Is(err, ErrWidthMismatch))
	assert.Equal(t, 0, table.Inputs)
	assert.Equal(t, 0, table.Outputs)
	assert.Zero(t, table.Len())

	require.NoError(t, table.AddRow(nil, nil))
	assert.Equal(t, ".i 0\n.o 0\n.type f\n \n.e\n", table.String())
}

func TestTernary(t *testing.T) {
	assert.Equal(t, "1", True.String())
	assert.Equal(t, "0", False.String())
	assert.Equal(t, "-", DontCare.String())
	assert.Equal(t, False, True.Not())
	assert.Equal(t, DontCare, DontCare.Not())
	assert.Equal(t, True, Lift(true))

	_, err := ParseTernary('2')
	assert.Error(t, err)
}
