package stress

import (
	"github.com/RoaringBitmap/roaring"
	g "github.com/anacrolix/generics"
)

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

// modelSuccessor answers with rank/select: Rank(x) counts the members <= x.
func modelSuccessor(rb *roaring.Bitmap, x uint64) (ret g.Option[uint64]) {
	rank := rb.Rank(uint32(x))
	if rank == rb.GetCardinality() {
		return
	}
	if next, err := rb.Select(uint32(rank)); err == nil {
		ret.Set(uint64(next))
	}
	return
}

func modelPredecessor(rb *roaring.Bitmap, x uint64) (ret g.Option[uint64]) {
	if x == 0 {
		return
	}
	rank := rb.Rank(uint32(x - 1))
	if rank == 0 {
		return
	}
	if prev, err := rb.Select(uint32(rank - 1)); err == nil {
		ret.Set(uint64(prev))
	}
	return
}

// modelRank counts the members strictly below x.
func modelRank(rb *roaring.Bitmap, x uint64) int {
	if x == 0 {
		return 0
	}
	return int(rb.Rank(uint32(x - 1)))
}
