package transforms

import (
	"slices"

	"github.com/gomlx/gomlx/types/shapes"

	"github.com/gomlx/litepool/ir"
	"github.com/gomlx/litepool/rewrite"
)

// derivePoolPadding classifies the spatial padding of a canonical-layout rank-4 window
// as VALID or SAME. Trivially padded dimensions are fine under either mode; a
// non-trivially padded dimension must satisfy the SAME formula exactly and forces the
// SAME mode. Anything else is unsupported (ok=false).
func derivePoolPadding(view WindowView, inputShape, outputShape shapes.Shape) (ir.Padding, bool) {
	padding := ir.PaddingValid
	for dim := 1; dim < view.Rank()-1; dim++ {
		dimPad := view.Paddings()[dim]
		if trivialPadding(dimPad) {
			continue
		}
		if !isSamePaddingOnDim(dimPad, outputShape.Dimensions[dim], inputShape.Dimensions[dim],
			view.WindowStrides()[dim], view.WindowDims()[dim]) {
			return 0, false
		}
		padding = ir.PaddingSame
	}
	return padding, true
}

//
// reduce_window(max) -> max_pool_2d
//

// LegalizeMaxPool converts a canonical channel-last rank-4 reduce-window whose body is
// a scalar max into a MaxPool2D node.
type LegalizeMaxPool struct{}

// Name implements rewrite.Pattern.
func (LegalizeMaxPool) Name() string { return "legalize-max-pool" }

// MatchAndRewrite implements rewrite.Pattern.
func (LegalizeMaxPool) MatchAndRewrite(op *ir.Node, r *rewrite.Rewriter) error {
	view, layout, ok := GetViewIfAttrsSupported(op)
	if !ok {
		return rewrite.MatchFailuref(op, "reduce window attributes not supported")
	}
	if !layout.Equal(NativePoolingLayout(view.Rank())) {
		return rewrite.MatchFailuref(op, "reduce window not in channel-last layout")
	}
	input, _, ok := GetInputAndInitIfValid(op)
	if !ok {
		return rewrite.MatchFailuref(op, "reduce window has wrong number of inputs or init values")
	}
	if !matchBinaryReduceFunction(view.Body(), ir.OpTypeMax) {
		return rewrite.MatchFailuref(op, "reduce window body is not a max")
	}
	padding, ok := derivePoolPadding(view, input.Shape(), op.Shape())
	if !ok {
		return rewrite.MatchFailuref(op, "padding is not same or valid")
	}

	pool := r.Graph().MaxPool2D(input,
		int32(view.WindowDims()[1]), int32(view.WindowDims()[2]),
		int32(view.WindowStrides()[1]), int32(view.WindowStrides()[2]),
		padding)
	r.ReplaceAllUsesWith(op, pool)
	return nil
}

//
// div(reduce_window(add), cst | reduce_window(add)) -> average_pool_2d
//

// LegalizeAvgPool converts a division that encodes an average over sliding windows
// into an AveragePool2D node. Two encodings are recognized, in order:
//
//  1. sum-pool(x) / splat(windowSize) -- only under VALID padding, since with SAME
//     padding the true divisor varies near the borders;
//  2. sum-pool(x) / sum-pool(ones) with an identical window configuration, which is
//     the correct average under any supported padding.
//
// The division's operands may be reached through transpose/broadcast/reshape
// passthroughs; those are walked through, not rewritten. This pattern requires the
// left reduce-window to already be in the channel-last layout, i.e. it depends on
// RelayoutReduceWindow having run in an earlier stage.
type LegalizeAvgPool struct{}

// Name implements rewrite.Pattern.
func (LegalizeAvgPool) Name() string { return "legalize-avg-pool" }

// MatchAndRewrite implements rewrite.Pattern.
func (LegalizeAvgPool) MatchAndRewrite(divOp *ir.Node, r *rewrite.Rewriter) error {
	if divOp.OpType() != ir.OpTypeDiv {
		return rewrite.MatchFailuref(divOp, "not a division")
	}

	// Resolve and validate the reduce-window behind the division's left operand. If the
	// operand is transposed, the transpose is re-chained onto the new pool at the end,
	// since the division's output layout need not match the pool's.
	divLHS := divOp.Input(0)
	var finalTranspose *ir.Node
	if divLHS.OpType() == ir.OpTypeTranspose {
		finalTranspose = divLHS
	}

	lhs := walkUp(divLHS, ir.OpTypeTranspose)
	if lhs.OpType() != ir.OpTypeReduceWindow {
		return rewrite.MatchFailuref(divOp, "could not match lhs of div on a reduce window")
	}

	lhsView, lhsLayout, ok := GetViewIfAttrsSupported(lhs)
	if !ok {
		return rewrite.MatchFailuref(divOp, "lhs reduce window attributes not supported")
	}
	if lhsView.Rank() != 4 {
		return rewrite.MatchFailuref(divOp, "not a 2d pooling")
	}
	if !lhsLayout.Equal(NativePoolingLayout(lhsLayout.Rank())) {
		return rewrite.MatchFailuref(divOp, "lhs reduce window not in channel-last layout")
	}

	lhsInput, lhsInit, ok := GetInputAndInitIfValid(lhs)
	if !ok {
		return rewrite.MatchFailuref(divOp, "lhs reduce window has wrong number of inputs or init values")
	}

	// The left reduce-window must be a floating-point sum starting from zero.
	if !matchBinaryReduceFunction(lhsView.Body(), ir.OpTypeAdd) {
		return rewrite.MatchFailuref(divOp, "lhs reduce window body is not an add")
	}
	if !lhs.DType().IsFloat() {
		return rewrite.MatchFailuref(divOp, "lhs reduce window must be float typed")
	}
	if !isConstFloatZero(lhsInit) {
		return rewrite.MatchFailuref(divOp, "lhs reduce window init value is not zero")
	}

	padding, ok := derivePoolPadding(lhsView, lhsInput.Shape(), lhs.Shape())
	if !ok {
		return rewrite.MatchFailuref(divOp, "padding is not same or valid")
	}

	// Case 1: the divisor is a splat constant equal to the window size.
	divRHS := walkUp(divOp.Input(1), ir.OpTypeBroadcastInDim, ir.OpTypeTranspose)
	if divisor := divRHS.Constant(); divisor != nil {
		if !divisor.IsSplat || !divRHS.DType().IsFloat() {
			return rewrite.MatchFailuref(divOp, "divisor constant is not a float splat")
		}
		if divisor.Splat != float64(lhsView.WindowSize()) {
			return rewrite.MatchFailuref(divOp, "splat divisor is not equal to the window size")
		}
		if padding != ir.PaddingValid {
			// With SAME padding the number of contributing elements shrinks near the
			// borders, so a fixed divisor does not compute an average there.
			return rewrite.MatchFailuref(divOp, "splat divisor with non-trivial padding")
		}
		replaceWithAvgPool(divOp, lhsInput, lhsView, padding, r, finalTranspose)
		return nil
	}

	// Case 2: the divisor is a second reduce-window summing a splat of ones with the
	// same window configuration -- the count of contributing elements per position.
	rhs := walkUp(divOp.Input(1), ir.OpTypeBroadcastInDim, ir.OpTypeReshape, ir.OpTypeTranspose)
	if rhs.OpType() != ir.OpTypeReduceWindow {
		return rewrite.MatchFailuref(divOp, "rhs of div is not a reduce window")
	}
	rhsView, rhsLayout, ok := GetViewIfAttrsSupported(rhs)
	if !ok {
		return rewrite.MatchFailuref(divOp, "rhs reduce window attributes not supported")
	}
	if !rhsLayout.Equal(NativePoolingLayout(rhsLayout.Rank())) {
		return rewrite.MatchFailuref(divOp, "rhs reduce window not in channel-last layout")
	}
	if !matchBinaryReduceFunction(rhsView.Body(), ir.OpTypeAdd) {
		return rewrite.MatchFailuref(divOp, "rhs reduce window body is not an add")
	}
	rhsInput, rhsInit, ok := GetInputAndInitIfValid(rhs)
	if !ok {
		return rewrite.MatchFailuref(divOp, "rhs reduce window has wrong number of inputs or init values")
	}
	if !isConstFloatZero(rhsInit) {
		return rewrite.MatchFailuref(divOp, "rhs reduce window init value is not zero")
	}

	rhsInput = walkUp(rhsInput, ir.OpTypeBroadcastInDim, ir.OpTypeTranspose)
	onesInput := rhsInput.Constant()
	if onesInput == nil || !onesInput.IsSplat || !rhsInput.DType().IsFloat() || onesInput.Splat != 1.0 {
		return rewrite.MatchFailuref(divOp, "rhs reduce window input is not a splat of 1.0")
	}

	// Both reduce-windows must slide the exact same windows.
	if !slices.Equal(lhsView.WindowDims(), rhsView.WindowDims()) ||
		!slices.Equal(lhsView.WindowStrides(), rhsView.WindowStrides()) ||
		!slices.Equal(lhsView.Paddings(), rhsView.Paddings()) {
		return rewrite.MatchFailuref(divOp, "lhs and rhs reduce windows do not have the same window config")
	}

	replaceWithAvgPool(divOp, lhsInput, lhsView, padding, r, finalTranspose)
	return nil
}

// replaceWithAvgPool builds the AveragePool2D over the sum's original input, re-chains
// the recorded transpose (if any) onto the pool output, and replaces the division.
func replaceWithAvgPool(divOp, input *ir.Node, view WindowView, padding ir.Padding,
	r *rewrite.Rewriter, finalTranspose *ir.Node) {
	g := r.Graph()
	pool := g.AveragePool2D(input,
		int32(view.WindowDims()[1]), int32(view.WindowDims()[2]),
		int32(view.WindowStrides()[1]), int32(view.WindowStrides()[2]),
		padding)
	finalNode := pool
	if finalTranspose != nil {
		finalNode = g.Transpose(pool, finalTranspose.Transpose().Permutation)
	}
	r.ReplaceAllUsesWith(divOp, finalNode)
}
