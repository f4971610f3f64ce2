package ir

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarReduction(t *testing.T) {
	for _, opType := range []OpType{OpTypeAdd, OpTypeMul, OpTypeMax} {
		t.Run(opType.String(), func(t *testing.T) {
			f := ScalarReduction(opType, dtypes.Float32)
			require.Equal(t, 2, f.NumParameters())
			result := f.Result()
			require.NotNil(t, result)
			assert.Equal(t, opType, result.OpType())
			assert.Same(t, f.Parameters()[0], result.Input(0))
			assert.Same(t, f.Parameters()[1], result.Input(1))
			assert.Equal(t, 0, result.Rank(), "reduction body must be scalar")
		})
	}
	require.Panics(t, func() { ScalarReduction(OpTypeDiv, dtypes.Float32) })
}

func TestFunctionReturn(t *testing.T) {
	f := NewFunction("f")
	lhs := f.Parameter("lhs", dtypes.Float32)
	rhs := f.Parameter("rhs", dtypes.Float32)
	f.Return(f.Graph().Add(lhs, rhs))
	require.Panics(t, func() { f.Return(lhs) }, "second Return must panic")

	other := NewFunction("other")
	foreign := other.Parameter("p", dtypes.Float32)
	g := NewFunction("g")
	require.Panics(t, func() { g.Return(foreign) }, "foreign node must panic")
}

func TestFunctionClone(t *testing.T) {
	original := ScalarReduction(OpTypeAdd, dtypes.Float32)
	clone := original.Clone()

	require.Equal(t, original.NumParameters(), clone.NumParameters())
	require.NotNil(t, clone.Result())
	assert.Equal(t, OpTypeAdd, clone.Result().OpType())

	// The clone owns a fresh arena: no node is shared with the original.
	assert.NotSame(t, original.Graph(), clone.Graph())
	for i, p := range original.Parameters() {
		assert.NotSame(t, p, clone.Parameters()[i])
	}
	assert.NotSame(t, original.Result(), clone.Result())

	// And clone wiring references clone nodes, not original ones.
	assert.Same(t, clone.Parameters()[0], clone.Result().Input(0))
	assert.Same(t, clone.Parameters()[1], clone.Result().Input(1))
}
