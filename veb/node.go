package veb

// node is one level of a van Emde Boas tree over the universe [0, 2**lg).
//
// The minimum of a non-empty node lives only in min: it is never stored in
// any cluster nor accounted for in the summary. A node with a single key
// therefore has min == max and empty children. The maximum, when it differs
// from the minimum, is stored both in max and in its cluster.
type node struct {
	min, max uint64
	lg       uint8
	full     bool   // false for the zero value: no keys
	summary  *node  // which clusters are non-empty; nil for leaves
	cluster  []node // ceilRoot(lg) clusters of floorRoot(lg) keys each
}

func (n *node) init(lg uint8) {
	n.lg = lg

	if lg <= 1 {
		return // a leaf covers {0, 1}
	}

	n.summary = &node{}
	n.summary.init((lg + 1) / 2)

	n.cluster = make([]node, ceilRoot(lg))
	for c := range n.cluster {
		n.cluster[c].init(lg / 2)
	}
}

func (n *node) has(x uint64) bool {
	switch {
	case !n.full:
		return false
	case x == n.min || x == n.max:
		return true
	case n.summary == nil:
		return false
	}
	return n.cluster[n.high(x)].has(n.low(x))
}

func (n *node) minimum() (uint64, bool) {
	return n.min, n.full
}

func (n *node) maximum() (uint64, bool) {
	return n.max, n.full
}

// emptyInsert stores x in an empty node without touching its children.
func (n *node) emptyInsert(x uint64) {
	n.min, n.max = x, x
	n.full = true
}

// insert adds x, which must not be present yet.
func (n *node) insert(x uint64) {
	if !n.full {
		n.emptyInsert(x)
		return
	}

	if x < n.min {
		// x becomes the new deferred minimum, the old one goes down
		x, n.min = n.min, x
	}

	if n.summary != nil {
		c, p := n.high(x), n.low(x)
		if cl := &n.cluster[c]; !cl.full {
			n.summary.insert(c)
			cl.emptyInsert(p)
		} else {
			cl.insert(p)
		}
	}

	if x > n.max {
		n.max = x
	}
}

// remove deletes x, which must be present.
func (n *node) remove(x uint64) {
	if n.min == n.max {
		n.reset()
		return
	}

	if n.summary == nil {
		// a leaf holding both 0 and 1 keeps the other one
		n.min = 1 - x
		n.max = n.min
		return
	}

	if x == n.min {
		// promote the smallest clustered key into the deferred slot
		// and remove it from its cluster instead
		first := n.summary.min
		x = n.index(first, n.cluster[first].min)
		n.min = x
	}

	c := n.high(x)
	cl := &n.cluster[c]
	cl.remove(n.low(x))

	switch {
	case !cl.full:
		n.summary.remove(c)
		if x == n.max {
			if !n.summary.full {
				n.max = n.min
			} else {
				last := n.summary.max
				n.max = n.index(last, n.cluster[last].max)
			}
		}
	case x == n.max:
		n.max = n.index(c, cl.max)
	}
}

func (n *node) successor(x uint64) (uint64, bool) {
	if !n.full {
		return 0, false
	}

	if n.summary == nil {
		if x == 0 && n.max == 1 {
			return 1, true
		}
		return 0, false
	}

	if x < n.min {
		return n.min, true
	}

	c, p := n.high(x), n.low(x)
	if cl := &n.cluster[c]; cl.full && p < cl.max {
		off, _ := cl.successor(p)
		return n.index(c, off), true
	}

	next, ok := n.summary.successor(c)
	if !ok {
		return 0, false
	}
	return n.index(next, n.cluster[next].min), true
}

func (n *node) predecessor(x uint64) (uint64, bool) {
	if !n.full {
		return 0, false
	}

	if n.summary == nil {
		if x == 1 && n.min == 0 {
			return 0, true
		}
		return 0, false
	}

	if x > n.max {
		return n.max, true
	}

	c, p := n.high(x), n.low(x)
	if cl := &n.cluster[c]; cl.full && p > cl.min {
		off, _ := cl.predecessor(p)
		return n.index(c, off), true
	}

	prev, ok := n.summary.predecessor(c)
	if !ok {
		// nothing clustered below x, only the deferred minimum is left
		if x > n.min {
			return n.min, true
		}
		return 0, false
	}
	return n.index(prev, n.cluster[prev].max), true
}

func (n *node) reset() {
	n.min, n.max = 0, 0
	n.full = false
}

// clear empties the node and every non-empty descendant, visiting only
// occupied clusters.
func (n *node) clear() {
	if !n.full {
		return
	}
	if n.summary != nil {
		for c, ok := n.summary.minimum(); ok; c, ok = n.summary.successor(c) {
			n.cluster[c].clear()
		}
		n.summary.clear()
	}
	n.reset()
}
