package transforms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLayoutValidation(t *testing.T) {
	require.NotPanics(t, func() { NewLayout(0, 3, []int{1, 2}) })
	require.Panics(t, func() { NewLayout(0, 0, []int{1, 2}) }, "duplicate index")
	require.Panics(t, func() { NewLayout(0, 4, []int{1, 2}) }, "index out of range")
	require.Panics(t, func() { NewLayout(-1, 3, []int{1, 2}) }, "negative index")
	require.Panics(t, func() { NewLayout(0, 3, []int{1, 1}) }, "duplicate spatial")
}

func TestNativePoolingLayout(t *testing.T) {
	l := NativePoolingLayout(4)
	assert.Equal(t, 0, l.Batch())
	assert.Equal(t, 3, l.Channel())
	assert.Equal(t, []int{1, 2}, l.Spatials())
	assert.Equal(t, 4, l.Rank())
	assert.True(t, l.Equal(NewLayout(0, 3, []int{1, 2})))

	l3 := NativePoolingLayout(3)
	assert.Equal(t, 2, l3.Channel())
	assert.Equal(t, []int{1}, l3.Spatials())
}

func TestGetPermForReLayout(t *testing.T) {
	nchw := NewLayout(0, 1, []int{2, 3})
	nhwc := NewLayout(0, 3, []int{1, 2})

	perm := nchw.GetPermForReLayout(nhwc)
	assert.Equal(t, []int{0, 2, 3, 1}, perm)
	assert.Equal(t, []int{0, 3, 1, 2}, nhwc.GetPermForReLayout(nchw))

	// Applying the permutation to NCHW dimensions yields NHWC dimensions.
	assert.Equal(t, []int{2, 16, 16, 8}, Permute([]int{2, 8, 16, 16}, perm))
	assert.Equal(t, []int{2, 16, 16, 8}, nchw.PermuteShape(nhwc, []int{2, 8, 16, 16}))
}

func TestPermRoundTrip(t *testing.T) {
	layouts := []Layout{
		NewLayout(0, 1, []int{2, 3}), // NCHW
		NewLayout(0, 3, []int{1, 2}), // NHWC
		NewLayout(3, 0, []int{2, 1}), // CWHN
		NewLayout(1, 2, []int{3, 0}),
	}
	dims := []int{2, 3, 5, 7}
	for _, from := range layouts {
		for _, to := range layouts {
			forth := from.GetPermForReLayout(to)
			back := to.GetPermForReLayout(from)
			assert.Equal(t, dims, Permute(Permute(dims, forth), back),
				"relayout %v->%v must round-trip", from, to)
		}
	}
}

func TestGetPermForReLayoutRankMismatch(t *testing.T) {
	require.Panics(t, func() {
		NewLayout(0, 1, []int{2, 3}).GetPermForReLayout(NativePoolingLayout(3))
	})
}
