// Package bitset implements a dense ordered set of integers over a fixed
// universe, backed by a flat array of 64-bit words. Membership updates are
// O(1); minimum, maximum and neighbour queries scan words and are O(U/64).
//
// It follows the same contract as veb.Set[uint64] (rounded universe, range
// checked keys, optional results) and additionally answers rank queries.
package bitset

import (
	"math/bits"

	g "github.com/anacrolix/generics"
	"github.com/hideo55/go-popcount"
	"github.com/pkg/errors"
)

const (
	// MaxUniverse is the largest universe size New accepts.
	MaxUniverse = 1 << 32

	wordBits = 64
)

var (
	ErrInvalidUniverse = errors.New("bitset: invalid universe size")
	ErrKeyOutOfRange   = errors.New("bitset: key out of range")
)

type Set struct {
	words     []uint64
	size      int
	universe  uint64
	requested int
}

// New creates an empty Set for keys in [0, universe), the universe rounded up
// to a power of two (at least 2).
func New(universe int) (*Set, error) {
	if universe < 1 || uint64(universe) > MaxUniverse {
		return nil, errors.Wrapf(ErrInvalidUniverse, "requested %d, must be in [1, %d]", universe, uint64(MaxUniverse))
	}

	size := uint64(2)
	if universe > 2 {
		size = 1 << bits.Len64(uint64(universe)-1)
	}

	return &Set{
		words:     make([]uint64, (size+wordBits-1)/wordBits),
		universe:  size,
		requested: universe,
	}, nil
}

func (s *Set) Universe() uint64 {
	return s.universe
}

func (s *Set) Requested() int {
	return s.requested
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return s.size
}

func (s *Set) Empty() bool {
	return s.Len() == 0
}

func (s *Set) Has(key uint64) (bool, error) {
	if err := s.check(key); err != nil {
		return false, err
	}
	return s.words[key/wordBits]&(1<<(key%wordBits)) != 0, nil
}

// Add inserts key and reports whether it was not present before.
func (s *Set) Add(key uint64) (bool, error) {
	if err := s.check(key); err != nil {
		return false, err
	}

	var (
		w    = &s.words[key/wordBits]
		mask = uint64(1) << (key % wordBits)
	)
	if *w&mask != 0 {
		return false, nil
	}
	*w |= mask
	s.size++
	return true, nil
}

// Del removes key and reports whether it was present.
func (s *Set) Del(key uint64) (bool, error) {
	if err := s.check(key); err != nil {
		return false, err
	}

	var (
		w    = &s.words[key/wordBits]
		mask = uint64(1) << (key % wordBits)
	)
	if *w&mask == 0 {
		return false, nil
	}
	*w &^= mask
	s.size--
	return true, nil
}

func (s *Set) Min() (ret g.Option[uint64]) {
	for i, w := range s.words {
		if w != 0 {
			ret.Set(uint64(i*wordBits + bits.TrailingZeros64(w)))
			return
		}
	}
	return
}

func (s *Set) Max() (ret g.Option[uint64]) {
	for i := len(s.words) - 1; i >= 0; i-- {
		if w := s.words[i]; w != 0 {
			ret.Set(uint64(i*wordBits + wordBits - 1 - bits.LeadingZeros64(w)))
			return
		}
	}
	return
}

// Successor returns the smallest member greater than key.
func (s *Set) Successor(key uint64) (ret g.Option[uint64], err error) {
	if err = s.check(key); err != nil {
		return
	}

	x := key + 1
	if x >= s.universe {
		return
	}

	i := int(x / wordBits)
	w := s.words[i] & (^uint64(0) << (x % wordBits))
	for {
		if w != 0 {
			ret.Set(uint64(i*wordBits + bits.TrailingZeros64(w)))
			return
		}
		if i++; i == len(s.words) {
			return
		}
		w = s.words[i]
	}
}

// Predecessor returns the largest member less than key.
func (s *Set) Predecessor(key uint64) (ret g.Option[uint64], err error) {
	if err = s.check(key); err != nil {
		return
	}

	if key == 0 {
		return
	}
	x := key - 1

	i := int(x / wordBits)
	w := s.words[i] & (^uint64(0) >> (wordBits - 1 - x%wordBits))
	for {
		if w != 0 {
			ret.Set(uint64(i*wordBits + wordBits - 1 - bits.LeadingZeros64(w)))
			return
		}
		if i--; i < 0 {
			return
		}
		w = s.words[i]
	}
}

// Rank returns the number of members less than key.
func (s *Set) Rank(key uint64) (int, error) {
	if err := s.check(key); err != nil {
		return 0, err
	}

	i := key / wordBits
	n := popcount.Count(s.words[i] & (1<<(key%wordBits) - 1))
	for _, w := range s.words[:i] {
		n += popcount.Count(w)
	}

	return int(n), nil
}

func (s *Set) Clear() {
	for i := range s.words {
		s.words[i] = 0
	}
	s.size = 0
}

// Keys returns all members in ascending order.
func (s *Set) Keys() []uint64 {
	keys := make([]uint64, 0, s.size)
	for i, w := range s.words {
		for w != 0 {
			keys = append(keys, uint64(i*wordBits+bits.TrailingZeros64(w)))
			w &= w - 1
		}
	}
	return keys
}

func (s *Set) check(key uint64) error {
	if key >= s.universe {
		return errors.Wrapf(ErrKeyOutOfRange, "key %d, universe %d", key, s.universe)
	}
	return nil
}
