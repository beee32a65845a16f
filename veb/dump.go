package veb

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented view of the tree to w, one line per non-empty node:
// its universe, min and max, followed by its summary and occupied clusters.
// Intended for debugging only. A set without a universe writes nothing.
func (t *Set[K]) Dump(w io.Writer) error {
	if t.Universe() == 0 {
		return nil
	}
	d := dumper{w: w}
	d.node(&t.root, 0, "root")
	return d.err
}

type dumper struct {
	w   io.Writer
	err error
}

func (d *dumper) node(n *node, depth int, label string) {
	if !n.full {
		d.printf(depth, "%s u=%d empty", label, uint64(1)<<n.lg)
		return
	}

	d.printf(depth, "%s u=%d min=%d max=%d", label, uint64(1)<<n.lg, n.min, n.max)

	if n.summary == nil || !n.summary.full {
		return
	}

	d.node(n.summary, depth+1, "summary")
	for c := range n.cluster {
		if n.cluster[c].full {
			d.node(&n.cluster[c], depth+1, fmt.Sprintf("cluster[%d]", c))
		}
	}
}

func (d *dumper) printf(depth int, format string, args ...interface{}) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, strings.Repeat("  ", depth)+format+"\n", args...)
}
