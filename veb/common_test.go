package veb

import (
	"testing"

	"github.com/RoaringBitmap/roaring"
	g "github.com/anacrolix/generics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkNode walks a node and verifies the structural invariants: min <= max
// inside the universe, the deferred minimum absent from the clusters, the
// maximum present in them, and the summary tracking exactly the occupied
// clusters.
func checkNode(t *testing.T, n *node) {
	t.Helper()

	if !n.full {
		if n.summary != nil {
			require.False(t, n.summary.full, "empty node with a non-empty summary")
		}
		return
	}

	require.LessOrEqual(t, n.min, n.max)
	require.Less(t, n.max, uint64(1)<<n.lg)

	if n.summary == nil {
		return
	}

	require.False(t, n.cluster[n.high(n.min)].has(n.low(n.min)), "min %d stored in a cluster", n.min)

	if n.min == n.max {
		require.False(t, n.summary.full, "singleton node with a non-empty summary")
	} else {
		require.True(t, n.cluster[n.high(n.max)].has(n.low(n.max)), "max %d missing from its cluster", n.max)
	}

	checkNode(t, n.summary)

	for c := range n.cluster {
		require.Equal(t, n.cluster[c].full, n.summary.has(uint64(c)), "summary disagrees on cluster %d", c)
		checkNode(t, &n.cluster[c])
	}
}

func modelMin(rb *roaring.Bitmap) (ret g.Option[uint64]) {
	if !rb.IsEmpty() {
		ret.Set(uint64(rb.Minimum()))
	}
	return
}

func modelMax(rb *roaring.Bitmap) (ret g.Option[uint64]) {
	if !rb.IsEmpty() {
		ret.Set(uint64(rb.Maximum()))
	}
	return
}

// modelSuccessor uses rank/select: Rank(x) counts the members <= x.
func modelSuccessor(t *testing.T, rb *roaring.Bitmap, x uint64) (ret g.Option[uint64]) {
	rank := rb.Rank(uint32(x))
	if rank == rb.GetCardinality() {
		return
	}
	next, err := rb.Select(uint32(rank))
	require.NoError(t, err)
	ret.Set(uint64(next))
	return
}

func modelPredecessor(t *testing.T, rb *roaring.Bitmap, x uint64) (ret g.Option[uint64]) {
	if x == 0 {
		return
	}
	rank := rb.Rank(uint32(x - 1))
	if rank == 0 {
		return
	}
	prev, err := rb.Select(uint32(rank - 1))
	require.NoError(t, err)
	ret.Set(uint64(prev))
	return
}

// assertMatchesModel compares every observable query of s against rb.
// Successor and predecessor are checked at every member and its neighbours.
func assertMatchesModel(t *testing.T, s *Set[uint64], rb *roaring.Bitmap) {
	t.Helper()

	require.Equal(t, int(rb.GetCardinality()), s.Len())
	require.Equal(t, rb.IsEmpty(), s.Empty())
	assert.Equal(t, modelMin(rb), s.Min())
	assert.Equal(t, modelMax(rb), s.Max())

	var keys []uint64
	rb.Iterate(func(x uint32) bool {
		keys = append(keys, uint64(x))
		return true
	})
	if keys == nil {
		keys = []uint64{}
	}
	require.Equal(t, keys, s.Keys())

	for _, k := range keys {
		for _, x := range []uint64{k - 1, k, k + 1} {
			if x >= s.Universe() {
				// past the universe, or k-1 wrapped around
				continue
			}
			succ, err := s.Successor(x)
			require.NoError(t, err)
			assert.Equal(t, modelSuccessor(t, rb, x), succ, "successor(%d)", x)

			pred, err := s.Predecessor(x)
			require.NoError(t, err)
			assert.Equal(t, modelPredecessor(t, rb, x), pred, "predecessor(%d)", x)
		}
	}
}
