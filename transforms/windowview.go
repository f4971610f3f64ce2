// Package transforms implements the rewrite patterns that turn windowed-reduction
// graphs into pooling primitives: a relayout pattern that canonicalizes reduce-window
// operations to the channel-last layout, and the legalization patterns that recognize
// max-pooling and the two encodings of average-pooling.
//
// All matching is best-effort: unsupported-but-valid graphs are expected input, and
// every check failure surfaces as a soft no-match, never as an error.
package transforms

import (
	"slices"

	"github.com/gomlx/litepool/ir"
)

// WindowView is a read-only analytic view over a ReduceWindow node's attributes.
// It is transient: valid only while the node is live, never retained past a single
// match-and-rewrite attempt.
type WindowView struct {
	op    *ir.Node
	attrs *ir.ReduceWindowAttrs
}

// NewWindowView wraps op, which must be a ReduceWindow node.
func NewWindowView(op *ir.Node) WindowView {
	return WindowView{op: op, attrs: op.ReduceWindow()}
}

// Op returns the viewed node.
func (v WindowView) Op() *ir.Node { return v.op }

// Rank of the windowed reduction.
func (v WindowView) Rank() int { return len(v.attrs.WindowDimensions) }

// WindowDims returns the per-dimension window sizes. Callers must not mutate it.
func (v WindowView) WindowDims() []int { return v.attrs.WindowDimensions }

// WindowStrides returns the per-dimension window strides. Callers must not mutate it.
func (v WindowView) WindowStrides() []int { return v.attrs.WindowStrides }

// BaseDilations returns the per-dimension input dilations. Callers must not mutate it.
func (v WindowView) BaseDilations() []int { return v.attrs.BaseDilations }

// WindowDilations returns the per-dimension window dilations. Callers must not mutate it.
func (v WindowView) WindowDilations() []int { return v.attrs.WindowDilations }

// Paddings returns the per-dimension (low, high) padding pairs. Callers must not mutate it.
func (v WindowView) Paddings() [][2]int { return v.attrs.Paddings }

// Body returns the scalar reduction function.
func (v WindowView) Body() *ir.Function { return v.attrs.Body }

// WindowSize returns the number of elements in one window position.
func (v WindowView) WindowSize() int {
	size := 1
	for _, dim := range v.attrs.WindowDimensions {
		size *= dim
	}
	return size
}

// GuessLayout infers the batch/channel/spatial layout from the window configuration.
//
// A dimension the window does not touch -- window size 1, stride 1, trivial padding,
// no dilation -- is a batch or channel candidate. A single-batch, single-channel
// pooling has exactly two such dimensions; the lower index is taken as batch and the
// higher as channel, which holds for both NHWC and NCHW. Any other candidate count is
// ambiguous and yields no layout: a wrong guess would silently change pooling
// semantics, so ambiguity must propagate as "does not apply".
func (v WindowView) GuessLayout() (Layout, bool) {
	var untouched []int
	for dim := 0; dim < v.Rank(); dim++ {
		if v.attrs.WindowDimensions[dim] == 1 &&
			v.attrs.WindowStrides[dim] == 1 &&
			v.attrs.BaseDilations[dim] == 1 &&
			v.attrs.WindowDilations[dim] == 1 &&
			trivialPadding(v.attrs.Paddings[dim]) {
			untouched = append(untouched, dim)
		}
	}
	if len(untouched) != 2 {
		return Layout{}, false
	}
	batch, channel := untouched[0], untouched[1]
	spatials := make([]int, 0, v.Rank()-2)
	for dim := 0; dim < v.Rank(); dim++ {
		if dim != batch && dim != channel {
			spatials = append(spatials, dim)
		}
	}
	return NewLayout(batch, channel, spatials), true
}

func trivialPadding(pad [2]int) bool { return pad[0] == 0 && pad[1] == 0 }

// AreDilationsSupported requires every base and window dilation to be 1. Dilated
// pooling has no pooling-primitive equivalent, so it fails the match.
func AreDilationsSupported(v WindowView) bool {
	isOne := func(dilation int) bool { return dilation == 1 }
	return allOf(v.BaseDilations(), isOne) && allOf(v.WindowDilations(), isOne)
}

// IsRankSupported requires rank exactly 4 (2D spatial pooling).
func IsRankSupported(v WindowView) bool { return v.Rank() == 4 }

func allOf(values []int, pred func(int) bool) bool {
	for _, value := range values {
		if !pred(value) {
			return false
		}
	}
	return true
}

// GetViewIfAttrsSupported wraps op in a WindowView and checks the attribute
// combination a pooling legalization can handle: rank 4, no dilations, an unambiguous
// layout, and trivial padding on the guessed batch and channel dimensions (padding a
// pooling window across batch or channel makes no semantic sense).
//
// Returns ok=false -- a no-match signal, not an error -- if anything is unsupported,
// including op not being a ReduceWindow at all.
func GetViewIfAttrsSupported(op *ir.Node) (WindowView, Layout, bool) {
	if op.OpType() != ir.OpTypeReduceWindow {
		return WindowView{}, Layout{}, false
	}
	view := NewWindowView(op)
	if !IsRankSupported(view) {
		return WindowView{}, Layout{}, false
	}
	if !AreDilationsSupported(view) {
		return WindowView{}, Layout{}, false
	}
	layout, ok := view.GuessLayout()
	if !ok {
		return WindowView{}, Layout{}, false
	}
	if !trivialPadding(view.Paddings()[layout.Batch()]) {
		return WindowView{}, Layout{}, false
	}
	if !trivialPadding(view.Paddings()[layout.Channel()]) {
		return WindowView{}, Layout{}, false
	}
	return view, layout, true
}

// GetInputAndInitIfValid returns the single data input and the scalar init value of a
// windowed reduction. Variadic reductions (multiple inputs/results, e.g. argmax-style
// paired reductions) and non-scalar init values are unsupported and yield ok=false.
func GetInputAndInitIfValid(op *ir.Node) (input, initValue *ir.Node, ok bool) {
	if op.OpType() != ir.OpTypeReduceWindow || op.NumInputs() != 2 {
		return nil, nil, false
	}
	initValue = op.Input(1)
	if initValue.Shape().Size() != 1 {
		return nil, nil, false
	}
	return op.Input(0), initValue, true
}

// isConstFloatZero reports whether n is a single-element floating-point constant whose
// value is exactly zero -- the only init value a sum encoding an average can have.
func isConstFloatZero(n *ir.Node) bool {
	attrs := n.Constant()
	return attrs != nil && attrs.IsSplat && n.DType().IsFloat() &&
		n.Shape().Size() == 1 && attrs.Splat == 0
}

// isSamePaddingOnDim checks the (low, high) padding of one spatial dimension against
// the standard SAME formula: the output must be ceil(input/stride) positions, the total
// padding (output-1)*stride + window - input, the low half rounded down.
func isSamePaddingOnDim(pad [2]int, outDim, inDim, stride, window int) bool {
	if outDim != ceilDiv(inDim, stride) {
		return false
	}
	total := (outDim-1)*stride + window - inDim
	if total < 0 {
		total = 0
	}
	low := total / 2
	return pad[0] == low && pad[1] == total-low
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }

// walkUp walks up the producer chain of n, skipping any node whose kind is in
// passthrough (following its first operand), and returns the first producer of another
// kind. Total: terminates at the first non-passthrough node, possibly n itself.
func walkUp(n *ir.Node, passthrough ...ir.OpType) *ir.Node {
	for slices.Contains(passthrough, n.OpType()) {
		n = n.Input(0)
	}
	return n
}

// matchBinaryReduceFunction structurally matches a reduction body of the form
// f(lhs, rhs) = op(lhs, rhs): exactly two parameters combined by a single node of the
// given kind, in parameter order, returned as the result.
func matchBinaryReduceFunction(f *ir.Function, opType ir.OpType) bool {
	if f == nil || f.NumParameters() != 2 {
		return false
	}
	result := f.Result()
	if result == nil || result.OpType() != opType || result.NumInputs() != 2 {
		return false
	}
	params := f.Parameters()
	return result.Input(0) == params[0] && result.Input(1) == params[1]
}
