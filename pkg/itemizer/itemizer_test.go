package itemizer

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDOfAssignsInFirstSeenOrder(t *testing.T) {
	it := New[string]()

	assert.Equal(t, ID(1), it.IDOf("b"))
	assert.Equal(t, ID(2), it.IDOf("a"))
	assert.Equal(t, ID(1), it.IDOf("b"))
	assert.Equal(t, ID(3), it.IDOf("c"))
	assert.Equal(t, ID(2), it.IDOf("a"))

	assert.Equal(t, 3, it.Len())
	assert.Equal(t, []string{"b", "a", "c"}, it.Values())
}

func TestValueOfInvertsIDOf(t *testing.T) {
	it := New[int]()
	for _, v := range []int{40, 7, 7, 12, 40, -3} {
		id := it.IDOf(v)
		got, err := it.ValueOf(id)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestLookupDoesNotMutate(t *testing.T) {
	it := Of("x", "y")

	id, ok := it.Lookup("y")
	assert.True(t, ok)
	assert.Equal(t, ID(2), id)

	_, ok = it.Lookup("z")
	assert.False(t, ok)
	assert.Equal(t, 2, it.Len())
}

func TestValueOfUnknownID(t *testing.T) {
	type tc struct {
		Name string
		ID   ID
	}

	it := Of("only")
	for _, tt := range []tc{
		{Name: "zero is reserved", ID: 0},
		{Name: "past the end", ID: 2},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			_, err := it.ValueOf(tt.ID)
			assert.True(t, errors.Is(err, ErrUnknownID))
		})
	}
}

func TestZeroValueItemizer(t *testing.T) {
	var it Itemizer[string]
	assert.Equal(t, 0, it.Len())
	assert.Equal(t, ID(1), it.IDOf("v"))
	assert.Equal(t, 1, it.Len())
}

func TestIDIndex(t *testing.T) {
	assert.Equal(t, 0, ID(1).Index())
	assert.Equal(t, 4, ID(5).Index())
	assert.Equal(t, "#5", ID(5).String())
}
