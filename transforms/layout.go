package transforms

import (
	"slices"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gomlx/types/xslices"
)

// Layout describes where the batch, channel and spatial dimensions of a rank-N tensor
// live. The batch and channel indices plus the ordered spatial indices span [0, rank)
// exactly once each -- NewLayout enforces it, so downstream indexing never needs bounds
// checks.
//
// Layout is a value type: created fresh per query, never mutated.
type Layout struct {
	batch, channel int
	spatials       []int
}

// NewLayout creates a Layout with the given batch and channel dimension indices and the
// ordered remaining spatial dimension indices. Panics if the indices do not partition
// [0, rank).
func NewLayout(batch, channel int, spatials []int) Layout {
	rank := 2 + len(spatials)
	seen := make([]bool, rank)
	markDim := func(dim int) {
		if dim < 0 || dim >= rank || seen[dim] {
			exceptions.Panicf("NewLayout(batch=%d, channel=%d, spatials=%v): indices must cover [0, %d) exactly once",
				batch, channel, spatials, rank)
		}
		seen[dim] = true
	}
	markDim(batch)
	markDim(channel)
	for _, dim := range spatials {
		markDim(dim)
	}
	return Layout{batch: batch, channel: channel, spatials: slices.Clone(spatials)}
}

// NativePoolingLayout is the canonical channel-last layout for the given rank: batch
// first, channel last, spatial dimensions in between in their natural order. The
// pooling matchers only ever see this layout; RelayoutReduceWindow establishes it.
func NativePoolingLayout(rank int) Layout {
	return NewLayout(0, rank-1, xslices.Iota(1, rank-2))
}

// Rank covered by this layout.
func (l Layout) Rank() int { return 2 + len(l.spatials) }

// Batch returns the batch dimension index.
func (l Layout) Batch() int { return l.batch }

// Channel returns the channel dimension index.
func (l Layout) Channel() int { return l.channel }

// Spatials returns the spatial dimension indices in order. Callers must not mutate it.
func (l Layout) Spatials() []int { return l.spatials }

// Equal reports whether both layouts place batch, channel and every spatial dimension
// identically.
func (l Layout) Equal(other Layout) bool {
	return l.batch == other.batch && l.channel == other.channel &&
		slices.Equal(l.spatials, other.spatials)
}

// GetPermForReLayout computes the dimension permutation that rearranges data laid out
// as l into target's layout: position i of the result names the l-dimension holding the
// role (batch, channel, k-th spatial) that target assigns to dimension i. Apply it with
// Permute: newData[i] = data[perm[i]].
//
// Composing a permutation with the one from the opposite direction
// (target.GetPermForReLayout(l)) yields the identity.
func (l Layout) GetPermForReLayout(target Layout) []int {
	if l.Rank() != target.Rank() {
		exceptions.Panicf("GetPermForReLayout: ranks differ (%d vs %d)", l.Rank(), target.Rank())
	}
	rank := l.Rank()
	perm := make([]int, rank)
	for dim := 0; dim < rank; dim++ {
		switch {
		case dim == target.batch:
			perm[dim] = l.batch
		case dim == target.channel:
			perm[dim] = l.channel
		default:
			spatialIdx := slices.Index(target.spatials, dim)
			perm[dim] = l.spatials[spatialIdx]
		}
	}
	return perm
}

// PermuteShape returns the dimensions permuted from this layout to target's.
func (l Layout) PermuteShape(target Layout, dimensions []int) []int {
	return Permute(dimensions, l.GetPermForReLayout(target))
}

// Permute applies a dimension permutation: result[i] = data[perm[i]].
func Permute(data, perm []int) []int {
	result := make([]int, len(data))
	for idx, axis := range perm {
		result[idx] = data[axis]
	}
	return result
}
