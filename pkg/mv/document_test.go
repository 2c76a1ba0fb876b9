package mv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shapes = `columns: [shape, colour, size]
rows:
- [[square], [red, blue], null]
- [[circle], null, [large]]
`

func TestReadDocument(t *testing.T) {
	d, err := ReadDocument(strings.NewReader(shapes))
	require.NoError(t, err)
	assert.Equal(t, []string{"shape", "colour", "size"}, d.Columns)

	m, err := d.Matrix()
	require.NoError(t, err)

	want := matrix(t,
		[]Cell[string]{c("square"), c("red", "blue"), nil},
		[]Cell[string]{c("circle"), nil, c("large")},
	)
	assert.True(t, want.Equal(m))
}

func TestDocumentRoundTrip(t *testing.T) {
	d, err := ReadDocument(strings.NewReader(shapes))
	require.NoError(t, err)
	m, err := d.Matrix()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteDocument(&buf, NewDocument(d.Columns, m)))

	again, err := ReadDocument(&buf)
	require.NoError(t, err)
	assert.Equal(t, d, again)
}

func TestReadDocumentRaggedRow(t *testing.T) {
	_, err := ReadDocument(strings.NewReader("columns: [a, b]\nrows:\n- [[x]]\n"))
	assert.Error(t, err)
}

func TestDocumentWithoutRows(t *testing.T) {
	d, err := ReadDocument(strings.NewReader("columns: [a, b]\nrows: []\n"))
	require.NoError(t, err)

	m, err := d.Matrix()
	require.NoError(t, err)
	rows, cols := m.Dims()
	assert.Equal(t, 0, rows)
	assert.Equal(t, 2, cols)
}

func TestScanOrdersRowMajor(t *testing.T) {
	m := matrix(t,
		[]Cell[string]{c("b", "a"), nil},
		[]Cell[string]{c("c"), c("z")},
		[]Cell[string]{c("a"), c("y", "z")},
	)

	vars := Scan(m)
	require.Len(t, vars, 2)
	assert.Equal(t, []string{"b", "a", "c"}, vars[0].Values())
	assert.Equal(t, []string{"z", "y"}, vars[1].Values())
}

func TestFromRowsRagged(t *testing.T) {
	_, err := FromRows([][]Cell[string]{{nil, nil}, {nil}})
	assert.Error(t, err)
}
