// Package itemizer assigns dense numeric identities to the values of a
// single variable.
package itemizer

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrUnknownID is returned by ValueOf for an identity that was never
// assigned. Seeing it for an identity emitted by the same Itemizer
// indicates a bug.
var ErrUnknownID = errors.New("identity was never assigned")

// ID is the identity of a value within one Itemizer. Identities start
// at 1; the zero ID is never assigned.
type ID uint32

// Index returns the 0-based position of the identity, as used by
// one-hot fields.
func (id ID) Index() int {
	return int(id) - 1
}

func (id ID) String() string {
	return fmt.Sprintf("#%d", uint32(id))
}

// Itemizer is an append-only bijection between values and identities,
// assigned in order of first observation. It is not safe for
// concurrent use.
type Itemizer[V comparable] struct {
	ids    map[V]ID
	values []V
}

// New returns an empty Itemizer.
func New[V comparable]() *Itemizer[V] {
	return &Itemizer[V]{ids: make(map[V]ID)}
}

// Of returns an Itemizer that has observed the given values in order.
func Of[V comparable](values ...V) *Itemizer[V] {
	it := New[V]()
	for _, v := range values {
		it.IDOf(v)
	}
	return it
}

// IDOf returns the identity of v, assigning the next unused one if v
// has not been seen before.
func (it *Itemizer[V]) IDOf(v V) ID {
	if id, ok := it.ids[v]; ok {
		return id
	}
	if it.ids == nil {
		it.ids = make(map[V]ID)
	}
	it.values = append(it.values, v)
	id := ID(len(it.values))
	it.ids[v] = id
	return id
}

// Lookup returns the identity of v without assigning one. The boolean
// is false if v was never observed.
func (it *Itemizer[V]) Lookup(v V) (ID, bool) {
	id, ok := it.ids[v]
	return id, ok
}

// ValueOf returns the value carrying the given identity.
func (it *Itemizer[V]) ValueOf(id ID) (V, error) {
	if id == 0 || int(id) > len(it.values) {
		var zero V
		return zero, errors.Wrapf(ErrUnknownID, "%s (have %d values)", id, len(it.values))
	}
	return it.values[id.Index()], nil
}

// Len returns the number of distinct values observed so far.
func (it *Itemizer[V]) Len() int {
	return len(it.values)
}

// Values returns the observed values in identity order.
func (it *Itemizer[V]) Values() []V {
	out := make([]V, len(it.values))
	copy(out, it.values)
	return out
}
