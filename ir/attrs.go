package ir

import (
	"fmt"
	"slices"
)

// ParameterAttrs names a graph input.
type ParameterAttrs struct {
	Name string
}

func (a *ParameterAttrs) String() string { return fmt.Sprintf("name=%q", a.Name) }

// ConstantAttrs describes a constant tensor.
//
// The passes only ever inspect floating-point splat constants (zero init values, the
// average divisor, the all-ones divisor input), so a constant either carries its single
// splat value or is opaque: present in the graph but with unknown contents.
type ConstantAttrs struct {
	IsSplat bool

	// Splat is the value of every element. Only meaningful when IsSplat.
	Splat float64
}

func (a *ConstantAttrs) String() string {
	if a.IsSplat {
		return fmt.Sprintf("splat=%v", a.Splat)
	}
	return "opaque"
}

// TransposeAttrs carries the dimension permutation of a Transpose node:
// output dimension i takes input dimension Permutation[i].
type TransposeAttrs struct {
	Permutation []int
}

func (a *TransposeAttrs) String() string { return fmt.Sprintf("perm=%v", a.Permutation) }

// BroadcastInDimAttrs maps each input dimension to an output dimension.
type BroadcastInDimAttrs struct {
	BroadcastDimensions []int
}

func (a *BroadcastInDimAttrs) String() string {
	return fmt.Sprintf("broadcastDims=%v", a.BroadcastDimensions)
}

// ReduceWindowAttrs is the full window configuration of a ReduceWindow node, one entry
// per input dimension. All slices are stored normalized to the input rank (the builder
// fills defaults for the optional ones), so readers never need to handle nil.
type ReduceWindowAttrs struct {
	WindowDimensions []int
	WindowStrides    []int
	BaseDilations    []int
	WindowDilations  []int

	// Paddings holds a (low, high) pair per dimension.
	Paddings [][2]int

	// Body is the scalar reduction combining window elements, a 2-parameter function.
	Body *Function
}

func (a *ReduceWindowAttrs) String() string {
	return fmt.Sprintf("window=%v strides=%v baseDilations=%v windowDilations=%v paddings=%v",
		a.WindowDimensions, a.WindowStrides, a.BaseDilations, a.WindowDilations, a.Paddings)
}

// Clone returns a deep copy (the body included).
func (a *ReduceWindowAttrs) Clone() *ReduceWindowAttrs {
	return &ReduceWindowAttrs{
		WindowDimensions: slices.Clone(a.WindowDimensions),
		WindowStrides:    slices.Clone(a.WindowStrides),
		BaseDilations:    slices.Clone(a.BaseDilations),
		WindowDilations:  slices.Clone(a.WindowDilations),
		Paddings:         slices.Clone(a.Paddings),
		Body:             a.Body.Clone(),
	}
}

// PoolAttrs configures an AveragePool2D or MaxPool2D node. Inputs are channel-last
// ([batch, height, width, channels]); filter and stride cover the two spatial dimensions.
type PoolAttrs struct {
	FilterHeight, FilterWidth int32
	StrideHeight, StrideWidth int32
	Padding                   Padding

	// Activation is the fused activation function. The legalization patterns never fuse
	// one, so this is always "NONE" for nodes they create.
	Activation string
}

func (a *PoolAttrs) String() string {
	return fmt.Sprintf("filter=%dx%d stride=%dx%d padding=%s activation=%s",
		a.FilterHeight, a.FilterWidth, a.StrideHeight, a.StrideWidth, a.Padding, a.Activation)
}

// Parameter returns the parameter attributes, or nil if the node is not a Parameter.
func (n *Node) Parameter() *ParameterAttrs {
	a, _ := n.attrs.(*ParameterAttrs)
	return a
}

// Constant returns the constant attributes, or nil if the node is not a Constant.
func (n *Node) Constant() *ConstantAttrs {
	a, _ := n.attrs.(*ConstantAttrs)
	return a
}

// Transpose returns the transpose attributes, or nil if the node is not a Transpose.
func (n *Node) Transpose() *TransposeAttrs {
	a, _ := n.attrs.(*TransposeAttrs)
	return a
}

// BroadcastInDim returns the broadcast attributes, or nil if the node is not a BroadcastInDim.
func (n *Node) BroadcastInDim() *BroadcastInDimAttrs {
	a, _ := n.attrs.(*BroadcastInDimAttrs)
	return a
}

// ReduceWindow returns the reduce-window attributes, or nil if the node is not a ReduceWindow.
func (n *Node) ReduceWindow() *ReduceWindowAttrs {
	a, _ := n.attrs.(*ReduceWindowAttrs)
	return a
}

// Pool returns the pooling attributes, or nil if the node is not an AveragePool2D/MaxPool2D.
func (n *Node) Pool() *PoolAttrs {
	a, _ := n.attrs.(*PoolAttrs)
	return a
}
