package veb

import "math/bits"

// MaxUniverse is the largest universe size New accepts. The tree is allocated
// eagerly, so memory grows linearly with the universe: a tree over 2**24 keys
// takes about 1.2 GiB, one over 2**32 would need hundreds.
const MaxUniverse = 1 << 24

// roundUniverse rounds u up to the next power of two (never below 2) and
// returns it together with its binary logarithm.
func roundUniverse(u uint64) (uint64, uint8) {
	if u < 2 {
		u = 2
	}
	if u&(u-1) != 0 {
		u--
		u |= u >> 1
		u |= u >> 2
		u |= u >> 4
		u |= u >> 8
		u |= u >> 16
		u |= u >> 32
		u++
	}
	return u, uint8(bits.TrailingZeros64(u))
}

// floorRoot is the largest power of two not above sqrt(2**lg): the universe
// of every cluster.
func floorRoot(lg uint8) uint64 {
	return 1 << (lg / 2)
}

// ceilRoot is the smallest power of two not below sqrt(2**lg): the number of
// clusters and the universe of the summary.
func ceilRoot(lg uint8) uint64 {
	return 1 << ((lg + 1) / 2)
}

// high returns the cluster index of x.
func (n *node) high(x uint64) uint64 {
	return x >> (n.lg / 2)
}

// low returns the position of x within its cluster.
func (n *node) low(x uint64) uint64 {
	return x & (floorRoot(n.lg) - 1)
}

// index is the inverse of high/low.
func (n *node) index(c, p uint64) uint64 {
	return c<<(n.lg/2) | p
}
