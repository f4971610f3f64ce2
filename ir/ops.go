package ir

import (
	"slices"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gomlx/types/shapes"
	"github.com/gomlx/gomlx/types/xslices"
)

// This file holds the Graph builder methods for the supported operation vocabulary,
// including their output shape inference. Invalid construction is a caller bug and
// panics, matching the convention for graph building elsewhere in the GoMLX family.

// Parameter creates a named graph input with the given shape.
func (g *Graph) Parameter(name string, shape shapes.Shape) *Node {
	n := g.newNode(OpTypeParameter, shape)
	n.attrs = &ParameterAttrs{Name: name}
	return n
}

// Splat creates a constant where every element holds the same value.
func (g *Graph) Splat(shape shapes.Shape, value float64) *Node {
	n := g.newNode(OpTypeConstant, shape)
	n.attrs = &ConstantAttrs{IsSplat: true, Splat: value}
	return n
}

// Constant creates an opaque constant: its shape is known but its contents are not
// tracked. No splat-matching pattern ever matches it.
func (g *Graph) Constant(shape shapes.Shape) *Node {
	n := g.newNode(OpTypeConstant, shape)
	n.attrs = &ConstantAttrs{}
	return n
}

// Other creates a node of an unrecognized operation kind with the given output shape.
// It exists so frontends (and tests) can represent ops outside the supported vocabulary.
func (g *Graph) Other(shape shapes.Shape, inputs ...*Node) *Node {
	return g.newNode(OpTypeOther, shape, inputs...)
}

func (g *Graph) binaryOp(opType OpType, lhs, rhs *Node) *Node {
	if !lhs.shape.Equal(rhs.shape) {
		exceptions.Panicf("%s: operand shapes must match, got %s and %s", opType, lhs.shape, rhs.shape)
	}
	return g.newNode(opType, lhs.shape, lhs, rhs)
}

// Add creates an elementwise addition.
func (g *Graph) Add(lhs, rhs *Node) *Node { return g.binaryOp(OpTypeAdd, lhs, rhs) }

// Mul creates an elementwise multiplication.
func (g *Graph) Mul(lhs, rhs *Node) *Node { return g.binaryOp(OpTypeMul, lhs, rhs) }

// Max creates an elementwise maximum.
func (g *Graph) Max(lhs, rhs *Node) *Node { return g.binaryOp(OpTypeMax, lhs, rhs) }

// Div creates an elementwise division.
func (g *Graph) Div(lhs, rhs *Node) *Node { return g.binaryOp(OpTypeDiv, lhs, rhs) }

// Transpose permutes the dimensions of x: output dimension i takes input dimension
// permutation[i].
func (g *Graph) Transpose(x *Node, permutation []int) *Node {
	rank := x.Rank()
	if len(permutation) != rank {
		exceptions.Panicf("Transpose: permutation %v must have one entry per dimension of x (rank %d)",
			permutation, rank)
	}
	seen := make([]bool, rank)
	for _, axis := range permutation {
		if axis < 0 || axis >= rank || seen[axis] {
			exceptions.Panicf("Transpose: %v is not a permutation of [0, %d)", permutation, rank)
		}
		seen[axis] = true
	}
	newDims := make([]int, rank)
	for idx, axis := range permutation {
		newDims[idx] = x.shape.Dimensions[axis]
	}
	n := g.newNode(OpTypeTranspose, shapes.Make(x.DType(), newDims...), x)
	n.attrs = &TransposeAttrs{Permutation: slices.Clone(permutation)}
	return n
}

// Reshape reinterprets x with new dimensions of the same total size.
func (g *Graph) Reshape(x *Node, dimensions ...int) *Node {
	newShape := shapes.Make(x.DType(), dimensions...)
	if newShape.Size() != x.shape.Size() {
		exceptions.Panicf("Reshape: cannot reshape %s to %s, sizes differ", x.shape, newShape)
	}
	return g.newNode(OpTypeReshape, newShape, x)
}

// BroadcastInDim broadcasts x into outputShape; broadcastDimensions[i] is the output
// dimension that input dimension i maps to.
func (g *Graph) BroadcastInDim(x *Node, outputShape shapes.Shape, broadcastDimensions []int) *Node {
	if len(broadcastDimensions) != x.Rank() {
		exceptions.Panicf("BroadcastInDim: broadcastDimensions %v must have one entry per dimension of x (rank %d)",
			broadcastDimensions, x.Rank())
	}
	for inputAxis, outputAxis := range broadcastDimensions {
		if outputAxis < 0 || outputAxis >= outputShape.Rank() {
			exceptions.Panicf("BroadcastInDim: broadcast dimension %d out of range for output %s",
				outputAxis, outputShape)
		}
		inDim := x.shape.Dimensions[inputAxis]
		if inDim != 1 && inDim != outputShape.Dimensions[outputAxis] {
			exceptions.Panicf("BroadcastInDim: input dimension %d (size %d) incompatible with output dimension %d of %s",
				inputAxis, inDim, outputAxis, outputShape)
		}
	}
	n := g.newNode(OpTypeBroadcastInDim, outputShape.Clone(), x)
	n.attrs = &BroadcastInDimAttrs{BroadcastDimensions: slices.Clone(broadcastDimensions)}
	return n
}

// ReduceWindow slides a window over x, combining the elements of each window position
// with body, starting from init. One entry per dimension of x is required for
// windowDimensions; windowStrides, baseDilations and windowDilations default to all-ones
// and paddings to all-zeros when nil.
//
// init is the reduction identity. It is normally a single-element tensor; the builder
// does not enforce it, consumers reject anything else as unsupported.
func (g *Graph) ReduceWindow(x, init *Node, body *Function,
	windowDimensions, windowStrides, baseDilations, windowDilations []int, paddings [][2]int) *Node {
	rank := x.Rank()
	if len(windowDimensions) != rank {
		exceptions.Panicf("ReduceWindow: windowDimensions (length %d) must have the same length as the rank of x (rank %d)",
			len(windowDimensions), rank)
	}
	windowStrides = defaultedInts(windowStrides, rank, 1, "windowStrides")
	baseDilations = defaultedInts(baseDilations, rank, 1, "baseDilations")
	windowDilations = defaultedInts(windowDilations, rank, 1, "windowDilations")
	if paddings == nil {
		paddings = make([][2]int, rank)
	} else if len(paddings) != rank {
		exceptions.Panicf("ReduceWindow: paddings (length %d) must have the same length as the rank of x (rank %d)",
			len(paddings), rank)
	}
	if body == nil || body.Result() == nil {
		exceptions.Panicf("ReduceWindow: reduction body is missing or has no result")
	}

	outputShape := reduceWindowOutputShape(x.shape, windowDimensions, windowStrides,
		baseDilations, windowDilations, paddings)
	n := g.newNode(OpTypeReduceWindow, outputShape, x, init)
	n.attrs = &ReduceWindowAttrs{
		WindowDimensions: slices.Clone(windowDimensions),
		WindowStrides:    slices.Clone(windowStrides),
		BaseDilations:    slices.Clone(baseDilations),
		WindowDilations:  slices.Clone(windowDilations),
		Paddings:         slices.Clone(paddings),
		Body:             body,
	}
	return n
}

// AveragePool2D creates an average-pooling over a channel-last rank-4 input.
func (g *Graph) AveragePool2D(x *Node, filterHeight, filterWidth, strideHeight, strideWidth int32, padding Padding) *Node {
	return g.pool2D(OpTypeAveragePool2D, x, filterHeight, filterWidth, strideHeight, strideWidth, padding)
}

// MaxPool2D creates a max-pooling over a channel-last rank-4 input.
func (g *Graph) MaxPool2D(x *Node, filterHeight, filterWidth, strideHeight, strideWidth int32, padding Padding) *Node {
	return g.pool2D(OpTypeMaxPool2D, x, filterHeight, filterWidth, strideHeight, strideWidth, padding)
}

func (g *Graph) pool2D(opType OpType, x *Node, filterHeight, filterWidth, strideHeight, strideWidth int32, padding Padding) *Node {
	if x.Rank() != 4 {
		exceptions.Panicf("%s: input must be rank-4 [batch, height, width, channels], got %s", opType, x.shape)
	}
	if filterHeight < 1 || filterWidth < 1 || strideHeight < 1 || strideWidth < 1 {
		exceptions.Panicf("%s: filter (%dx%d) and stride (%dx%d) must be positive",
			opType, filterHeight, filterWidth, strideHeight, strideWidth)
	}
	dims := x.shape.Dimensions
	outHeight := pool2DOutputDim(dims[1], int(filterHeight), int(strideHeight), padding)
	outWidth := pool2DOutputDim(dims[2], int(filterWidth), int(strideWidth), padding)
	outputShape := shapes.Make(x.DType(), dims[0], outHeight, outWidth, dims[3])
	n := g.newNode(opType, outputShape, x)
	n.attrs = &PoolAttrs{
		FilterHeight: filterHeight,
		FilterWidth:  filterWidth,
		StrideHeight: strideHeight,
		StrideWidth:  strideWidth,
		Padding:      padding,
		Activation:   "NONE",
	}
	return n
}

func defaultedInts(values []int, rank, defaultValue int, name string) []int {
	if values == nil {
		return xslices.SliceWithValue(rank, defaultValue)
	}
	if len(values) != rank {
		exceptions.Panicf("ReduceWindow: %s (length %d) if given must have the same length as the rank of x (rank %d)",
			name, len(values), rank)
	}
	return values
}

// reduceWindowOutputShape computes the output shape of a windowed reduction: per
// dimension, the padded and base-dilated extent is scanned by the window-dilated window
// at the given stride.
func reduceWindowOutputShape(input shapes.Shape, windowDimensions, windowStrides,
	baseDilations, windowDilations []int, paddings [][2]int) shapes.Shape {
	rank := input.Rank()
	outDims := make([]int, rank)
	for dim := 0; dim < rank; dim++ {
		base := input.Dimensions[dim]
		if baseDilations[dim] > 1 {
			base = (base-1)*baseDilations[dim] + 1
		}
		padded := base + paddings[dim][0] + paddings[dim][1]
		window := (windowDimensions[dim]-1)*windowDilations[dim] + 1
		if padded < window {
			exceptions.Panicf("ReduceWindow: dimension %d too small (%d after padding) for window of extent %d",
				dim, padded, window)
		}
		outDims[dim] = (padded-window)/windowStrides[dim] + 1
	}
	return shapes.Make(input.DType, outDims...)
}

func pool2DOutputDim(inputDim, filter, stride int, padding Padding) int {
	if padding == PaddingSame {
		return ceilDiv(inputDim, stride)
	}
	if inputDim < filter {
		exceptions.Panicf("pool: input spatial dimension %d smaller than filter %d with VALID padding",
			inputDim, filter)
	}
	return (inputDim-filter)/stride + 1
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }
