package transforms

import (
	"slices"

	"github.com/gomlx/litepool/ir"
	"github.com/gomlx/litepool/rewrite"
)

// RelayoutReduceWindow rewrites a supported reduce-window whose layout is not
// channel-last into the canonical layout: transpose the input, run an equivalent
// reduce-window with permuted attributes, transpose the result back. Downstream
// matchers then only ever see the canonical layout.
//
// The two transposes are expected to be folded away by a later canonicalization pass;
// this pattern does not attempt to fuse them. Already-canonical reduce-windows are a
// no-match, which keeps the pattern idempotent under the fixpoint driver.
type RelayoutReduceWindow struct{}

// Name implements rewrite.Pattern.
func (RelayoutReduceWindow) Name() string { return "relayout-reduce-window" }

// MatchAndRewrite implements rewrite.Pattern.
func (RelayoutReduceWindow) MatchAndRewrite(op *ir.Node, r *rewrite.Rewriter) error {
	view, layout, ok := GetViewIfAttrsSupported(op)
	if !ok {
		return rewrite.MatchFailuref(op, "reduce window attributes not supported")
	}

	input, initValue, ok := GetInputAndInitIfValid(op)
	if !ok {
		return rewrite.MatchFailuref(op, "reduce window has wrong number of inputs or init values")
	}

	targetLayout := NativePoolingLayout(view.Rank())
	if layout.Equal(targetLayout) {
		return rewrite.MatchFailuref(op, "reduce window does not need layout change")
	}
	permForInputs := layout.GetPermForReLayout(targetLayout)

	// Permute the layout-sensitive attributes: dimension i of the new op takes the
	// descriptor of old dimension permForInputs[i]. Dilations are all ones here
	// (GetViewIfAttrsSupported guarantees it), so permuting them is a no-op.
	paddings := view.Paddings()
	newPaddings := make([][2]int, len(paddings))
	for dim := range newPaddings {
		newPaddings[dim] = paddings[permForInputs[dim]]
	}
	newWindowDims := Permute(view.WindowDims(), permForInputs)
	newWindowStrides := Permute(view.WindowStrides(), permForInputs)

	g := r.Graph()
	newInput := g.Transpose(input, permForInputs)
	newReduceWindow := g.ReduceWindow(newInput, initValue, view.Body().Clone(),
		newWindowDims, newWindowStrides,
		slices.Clone(view.BaseDilations()), slices.Clone(view.WindowDilations()),
		newPaddings)

	// Transpose the result back to the original layout and update the graph.
	permForOutputs := targetLayout.GetPermForReLayout(layout)
	newOutput := g.Transpose(newReduceWindow, permForOutputs)
	r.ReplaceAllUsesWith(op, newOutput)
	return nil
}
