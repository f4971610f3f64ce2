package ir

import (
	"testing"

	"github.com/gomlx/gomlx/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderShapes(t *testing.T) {
	g := New("shapes")
	x := g.Parameter("x", shapes.Make(dtypes.Float32, 2, 3, 4))

	t.Run("Transpose", func(t *testing.T) {
		transposed := g.Transpose(x, []int{2, 0, 1})
		require.Equal(t, OpTypeTranspose, transposed.OpType())
		assert.Equal(t, []int{4, 2, 3}, transposed.Shape().Dimensions)
		assert.Equal(t, []int{2, 0, 1}, transposed.Transpose().Permutation)
		require.Panics(t, func() { g.Transpose(x, []int{0, 1}) })
		require.Panics(t, func() { g.Transpose(x, []int{0, 1, 1}) })
	})

	t.Run("Reshape", func(t *testing.T) {
		reshaped := g.Reshape(x, 6, 4)
		assert.Equal(t, []int{6, 4}, reshaped.Shape().Dimensions)
		require.Panics(t, func() { g.Reshape(x, 5, 5) })
	})

	t.Run("BroadcastInDim", func(t *testing.T) {
		scalarish := g.Parameter("s", shapes.Make(dtypes.Float32, 1))
		broadcast := g.BroadcastInDim(scalarish, shapes.Make(dtypes.Float32, 2, 3), []int{1})
		assert.Equal(t, []int{2, 3}, broadcast.Shape().Dimensions)
		require.Panics(t, func() { g.BroadcastInDim(x, shapes.Make(dtypes.Float32, 2, 3), []int{0}) })
	})

	t.Run("Binary", func(t *testing.T) {
		y := g.Parameter("y", shapes.Make(dtypes.Float32, 2, 3, 4))
		sum := g.Add(x, y)
		assert.Equal(t, x.Shape().Dimensions, sum.Shape().Dimensions)
		mismatched := g.Parameter("z", shapes.Make(dtypes.Float32, 2, 3))
		require.Panics(t, func() { g.Div(x, mismatched) })
	})
}

func TestReduceWindowShapeInference(t *testing.T) {
	tests := []struct {
		name       string
		inputDims  []int
		windowDims []int
		strides    []int
		paddings   [][2]int
		wantDims   []int
	}{
		{
			name:       "valid 3x3 stride 1",
			inputDims:  []int{1, 8, 8, 3},
			windowDims: []int{1, 3, 3, 1},
			strides:    []int{1, 1, 1, 1},
			wantDims:   []int{1, 6, 6, 3},
		},
		{
			name:       "valid 2x2 stride 2",
			inputDims:  []int{2, 8, 8, 4},
			windowDims: []int{1, 2, 2, 1},
			strides:    []int{1, 2, 2, 1},
			wantDims:   []int{2, 4, 4, 4},
		},
		{
			name:       "same 3x3 stride 1",
			inputDims:  []int{1, 8, 8, 3},
			windowDims: []int{1, 3, 3, 1},
			strides:    []int{1, 1, 1, 1},
			paddings:   [][2]int{{0, 0}, {1, 1}, {1, 1}, {0, 0}},
			wantDims:   []int{1, 8, 8, 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(tt.name)
			x := g.Parameter("x", shapes.Make(dtypes.Float32, tt.inputDims...))
			zero := g.Splat(shapes.Make(dtypes.Float32), 0)
			rw := g.ReduceWindow(x, zero, ScalarReduction(OpTypeAdd, dtypes.Float32),
				tt.windowDims, tt.strides, nil, nil, tt.paddings)
			assert.Equal(t, tt.wantDims, rw.Shape().Dimensions)
			attrs := rw.ReduceWindow()
			require.NotNil(t, attrs)
			// Defaults are normalized to the rank.
			assert.Equal(t, []int{1, 1, 1, 1}, attrs.BaseDilations)
			assert.Equal(t, []int{1, 1, 1, 1}, attrs.WindowDilations)
			if tt.paddings == nil {
				assert.Equal(t, [][2]int{{0, 0}, {0, 0}, {0, 0}, {0, 0}}, attrs.Paddings)
			}
		})
	}
}

func TestPool2DShapes(t *testing.T) {
	g := New("pools")
	x := g.Parameter("x", shapes.Make(dtypes.Float32, 1, 9, 9, 3))

	valid := g.MaxPool2D(x, 3, 3, 2, 2, PaddingValid)
	assert.Equal(t, []int{1, 4, 4, 3}, valid.Shape().Dimensions)
	assert.Equal(t, "VALID", valid.Pool().Padding.String())

	same := g.AveragePool2D(x, 3, 3, 2, 2, PaddingSame)
	assert.Equal(t, []int{1, 5, 5, 3}, same.Shape().Dimensions)
	assert.Equal(t, "NONE", same.Pool().Activation)

	rank3 := g.Parameter("bad", shapes.Make(dtypes.Float32, 9, 9, 3))
	require.Panics(t, func() { g.MaxPool2D(rank3, 3, 3, 1, 1, PaddingValid) })
}

func TestReplaceAllUsesWith(t *testing.T) {
	g := New("replace")
	x := g.Parameter("x", shapes.Make(dtypes.Float32, 4))
	y := g.Parameter("y", shapes.Make(dtypes.Float32, 4))
	sum := g.Add(x, y)
	product := g.Mul(sum, y)
	g.SetOutputs(product, sum)

	replacement := g.Div(x, y)
	g.ReplaceAllUsesWith(sum, replacement)

	require.True(t, sum.IsErased())
	assert.Same(t, replacement, product.Input(0))
	assert.Same(t, replacement, g.Outputs()[1])
	assert.Same(t, product, g.Outputs()[0])
}

func TestEliminateDeadNodes(t *testing.T) {
	g := New("dce")
	x := g.Parameter("x", shapes.Make(dtypes.Float32, 4))
	y := g.Parameter("y", shapes.Make(dtypes.Float32, 4))
	kept := g.Add(x, y)
	dead := g.Mul(x, y)
	deadUser := g.Mul(dead, y)
	g.SetOutputs(kept)

	removed := g.EliminateDeadNodes()
	assert.Equal(t, 2, removed)
	assert.True(t, dead.IsErased())
	assert.True(t, deadUser.IsErased())

	// Outputs and their transitive producers always survive.
	for _, n := range []*Node{x, y, kept} {
		assert.False(t, n.IsErased(), "node #%d should be alive", n.ID())
	}
	assert.Equal(t, 0, g.EliminateDeadNodes())
}

func TestGraphString(t *testing.T) {
	g := New("printme")
	x := g.Parameter("x", shapes.Make(dtypes.Float32, 2, 2))
	g.SetOutputs(g.Add(x, x))
	s := g.String()
	assert.Contains(t, s, `Graph "printme"`)
	assert.Contains(t, s, "Add(#0, #0)")
	assert.Contains(t, s, "outputs: #1")
}
