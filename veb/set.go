// Package veb implements a van Emde Boas tree: an ordered set of integer keys
// over a fixed universe [0, U) answering membership, insertion, deletion,
// minimum, maximum, successor and predecessor queries in O(log log U).
//
// The whole tree is allocated by New and never grows. A Set is not safe for
// concurrent use; guard it with a lock when it is shared.
package veb

import (
	g "github.com/anacrolix/generics"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// Set is an ordered set of keys over a fixed universe. Use New to create one:
// the zero value, like a nil *Set, is an empty set over an empty universe
// that rejects every key with ErrKeyOutOfRange.
type Set[K constraints.Integer] struct {
	root      node
	size      int
	universe  uint64
	requested int
}

// New creates an empty Set able to hold keys in [0, universe). A universe
// that is not a power of two is rounded up to the next one, so New(13) accepts
// the same keys as New(16).
//
// The whole tree is allocated here, roughly 80 bytes per key of the rounded
// universe: about 80 MiB for 2**20 and 1.2 GiB for MaxUniverse.
func New[K constraints.Integer](universe int) (*Set[K], error) {
	if universe < 1 || uint64(universe) > MaxUniverse {
		return nil, errors.Wrapf(ErrInvalidUniverse, "requested %d, must be in [1, %d]", universe, uint64(MaxUniverse))
	}

	size, lg := roundUniverse(uint64(universe))

	t := &Set[K]{
		universe:  size,
		requested: universe,
	}
	t.root.init(lg)

	return t, nil
}

// Universe returns the (rounded) number of keys the set can hold.
func (t *Set[K]) Universe() uint64 {
	if t == nil {
		return 0
	}
	return t.universe
}

// Requested returns the universe size passed to New before rounding.
func (t *Set[K]) Requested() int {
	if t == nil {
		return 0
	}
	return t.requested
}

// Len returns the number of keys in the set.
func (t *Set[K]) Len() int {
	if t == nil {
		return 0
	}
	return t.size
}

func (t *Set[K]) Empty() bool {
	return t == nil || !t.root.full
}

func (t *Set[K]) Min() (ret g.Option[K]) {
	if t == nil {
		return
	}
	if x, ok := t.root.minimum(); ok {
		ret.Set(K(x))
	}
	return
}

func (t *Set[K]) Max() (ret g.Option[K]) {
	if t == nil {
		return
	}
	if x, ok := t.root.maximum(); ok {
		ret.Set(K(x))
	}
	return
}

// Has reports whether key is in the set.
func (t *Set[K]) Has(key K) (bool, error) {
	x, err := t.check(key)
	if err != nil {
		return false, err
	}
	return t.root.has(x), nil
}

// Add inserts key and reports whether it was not present before.
// Adding a key twice leaves the set unchanged.
func (t *Set[K]) Add(key K) (bool, error) {
	x, err := t.check(key)
	if err != nil {
		return false, err
	}
	if t.root.has(x) {
		return false, nil
	}
	t.root.insert(x)
	t.size++
	return true, nil
}

// Del removes key and reports whether it was present. Deleting a missing key
// is a no-op, also when the set holds a single other key.
func (t *Set[K]) Del(key K) (bool, error) {
	x, err := t.check(key)
	if err != nil {
		return false, err
	}
	if !t.root.has(x) {
		return false, nil
	}
	t.root.remove(x)
	t.size--
	return true, nil
}

// Successor returns the smallest key in the set greater than key.
func (t *Set[K]) Successor(key K) (ret g.Option[K], err error) {
	x, err := t.check(key)
	if err != nil {
		return
	}
	if next, ok := t.root.successor(x); ok {
		ret.Set(K(next))
	}
	return
}

// Predecessor returns the largest key in the set less than key.
func (t *Set[K]) Predecessor(key K) (ret g.Option[K], err error) {
	x, err := t.check(key)
	if err != nil {
		return
	}
	if prev, ok := t.root.predecessor(x); ok {
		ret.Set(K(prev))
	}
	return
}

// Clear removes all keys. The tree is kept allocated.
func (t *Set[K]) Clear() {
	if t == nil {
		return
	}
	t.root.clear()
	t.size = 0
}

// Iter calls a handler for all keys in ascending order.
// It returns whether all keys were iterated.
// The handler can continue the process by returning true or abort with false.
func (t *Set[K]) Iter(handler func(K) bool) bool {
	if t == nil {
		return true
	}
	for x, ok := t.root.minimum(); ok; x, ok = t.root.successor(x) {
		if !handler(K(x)) {
			return false
		}
	}
	return true
}

// Keys returns all keys in ascending order.
func (t *Set[K]) Keys() []K {
	keys := make([]K, 0, t.Len())
	t.Iter(func(key K) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

func (t *Set[K]) check(key K) (uint64, error) {
	if u := t.Universe(); key < 0 || uint64(key) >= u {
		return 0, errors.Wrapf(ErrKeyOutOfRange, "key %d, universe %d", key, u)
	}
	return uint64(key), nil
}
