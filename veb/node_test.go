package veb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNode(lg uint8) *node {
	n := &node{}
	n.init(lg)
	return n
}

func TestNodeInit(t *testing.T) {
	t.Parallel()

	leaf := newNode(1)

	assert.False(t, leaf.full)
	assert.Nil(t, leaf.summary)
	assert.Nil(t, leaf.cluster)

	n := newNode(5) // 32 keys: 8 clusters of 4
	require.NotNil(t, n.summary)
	assert.Equal(t, uint8(3), n.summary.lg)
	assert.Len(t, n.cluster, 8)
	for c := range n.cluster {
		assert.Equal(t, uint8(2), n.cluster[c].lg)
		assert.Len(t, n.cluster[c].cluster, 2)
		assert.Equal(t, uint8(1), n.cluster[c].cluster[0].lg)
	}
}

func TestNodeDeferredMin(t *testing.T) {
	t.Parallel()

	n := newNode(4)

	n.insert(9)
	assert.Equal(t, uint64(9), n.min)
	assert.Equal(t, uint64(9), n.max)
	assert.False(t, n.summary.full, "a single key must not reach the children")
	for c := range n.cluster {
		assert.False(t, n.cluster[c].full)
	}

	// a smaller key takes the deferred slot and pushes 9 down
	n.insert(2)
	assert.Equal(t, uint64(2), n.min)
	assert.Equal(t, uint64(9), n.max)
	assert.True(t, n.cluster[2].has(1))
	assert.False(t, n.cluster[0].full)
	checkNode(t, n)

	// removing the minimum promotes 9 back into the deferred slot
	n.remove(2)
	assert.Equal(t, uint64(9), n.min)
	assert.Equal(t, uint64(9), n.max)
	assert.False(t, n.summary.full)
	checkNode(t, n)
}

func TestNodeLeaf(t *testing.T) {
	t.Parallel()

	n := newNode(1)

	_, ok := n.successor(0)
	assert.False(t, ok)

	n.insert(1)
	x, ok := n.successor(0)
	assert.True(t, ok)
	assert.Equal(t, uint64(1), x)
	_, ok = n.predecessor(1)
	assert.False(t, ok)

	n.insert(0)
	assert.Equal(t, uint64(0), n.min)
	assert.Equal(t, uint64(1), n.max)
	x, ok = n.predecessor(1)
	assert.True(t, ok)
	assert.Equal(t, uint64(0), x)
	_, ok = n.successor(1)
	assert.False(t, ok)

	n.remove(1)
	assert.True(t, n.full)
	assert.Equal(t, uint64(0), n.min)
	assert.Equal(t, uint64(0), n.max)

	n.remove(0)
	assert.False(t, n.full)
}

func TestNodeExhaustive(t *testing.T) {
	t.Parallel()

	// every subset of a 16-key universe, built in ascending order and
	// then torn down from the top
	for mask := 0; mask < 1<<16; mask += 97 {
		n := newNode(4)
		for x := uint64(0); x < 16; x++ {
			if mask&(1<<x) != 0 {
				n.insert(x)
			}
		}
		checkNode(t, n)

		for x := uint64(0); x < 16; x++ {
			require.Equal(t, mask&(1<<x) != 0, n.has(x), "mask=%016b x=%d", mask, x)
		}

		for x := int64(15); x >= 0; x-- {
			if mask&(1<<x) != 0 {
				n.remove(uint64(x))
				checkNode(t, n)
			}
		}
		require.False(t, n.full, "mask=%016b", mask)
	}
}

func TestNodeClear(t *testing.T) {
	t.Parallel()

	n := newNode(6)
	for _, x := range []uint64{0, 5, 17, 18, 40, 63} {
		n.insert(x)
	}

	n.clear()

	assert.False(t, n.full)
	checkNode(t, n)
	for c := range n.cluster {
		assert.False(t, n.cluster[c].full)
	}

	n.insert(33)
	assert.True(t, n.has(33))
	assert.False(t, n.has(17))
	checkNode(t, n)
}
