package ir

import (
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gomlx/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
)

// Function is a small self-contained scalar computation, used as the reduction body of
// a ReduceWindow node: it combines two scalar operands into one scalar result.
//
// The body owns its own node arena, so cloning a reduce-window clones its body without
// touching the enclosing graph.
type Function struct {
	graph  *Graph
	params []*Node
	result *Node
}

// NewFunction creates an empty function with the given name.
func NewFunction(name string) *Function {
	return &Function{graph: New(name)}
}

// Parameter appends a scalar parameter of the given dtype and returns its node.
func (f *Function) Parameter(name string, dtype dtypes.DType) *Node {
	p := f.graph.Parameter(name, shapes.Make(dtype))
	f.params = append(f.params, p)
	return p
}

// Return sets the function result. Must be called exactly once, with a node from the
// function's own arena.
func (f *Function) Return(n *Node) {
	if f.result != nil {
		exceptions.Panicf("function %q already has a result", f.graph.name)
	}
	if n.graph != f.graph {
		exceptions.Panicf("function %q result must be built inside the function", f.graph.name)
	}
	f.result = n
	f.graph.SetOutputs(n)
}

// Graph gives access to the function's node arena, for building the body.
func (f *Function) Graph() *Graph { return f.graph }

// NumParameters returns the number of parameters.
func (f *Function) NumParameters() int { return len(f.params) }

// Parameters returns the parameter nodes in declaration order.
func (f *Function) Parameters() []*Node { return f.params }

// Result returns the function result node, or nil if Return was not called yet.
func (f *Function) Result() *Node { return f.result }

// Clone returns a deep copy of the function.
func (f *Function) Clone() *Function {
	clone := NewFunction(f.graph.name)
	oldToNew := make(map[*Node]*Node, len(f.graph.nodes))
	for _, n := range f.graph.nodes {
		if n.erased {
			continue
		}
		newInputs := make([]*Node, len(n.inputs))
		for idx, input := range n.inputs {
			newInputs[idx] = oldToNew[input]
		}
		newNode := clone.graph.newNode(n.opType, n.shape, newInputs...)
		newNode.attrs = cloneAttrs(n.attrs)
		oldToNew[n] = newNode
	}
	for _, p := range f.params {
		clone.params = append(clone.params, oldToNew[p])
	}
	if f.result != nil {
		clone.result = oldToNew[f.result]
		clone.graph.SetOutputs(clone.result)
	}
	return clone
}

func cloneAttrs(attrs any) any {
	switch a := attrs.(type) {
	case nil:
		return nil
	case *ParameterAttrs:
		clone := *a
		return &clone
	case *ConstantAttrs:
		clone := *a
		return &clone
	case *TransposeAttrs:
		return &TransposeAttrs{Permutation: append([]int(nil), a.Permutation...)}
	case *BroadcastInDimAttrs:
		return &BroadcastInDimAttrs{BroadcastDimensions: append([]int(nil), a.BroadcastDimensions...)}
	case *ReduceWindowAttrs:
		return a.Clone()
	case *PoolAttrs:
		clone := *a
		return &clone
	default:
		exceptions.Panicf("cloneAttrs: unknown attributes type %T", attrs)
		panic(nil) // Disable lint warning.
	}
}

// ScalarReduction builds the canonical 2-parameter reduction body for the given
// combining op: f(lhs, rhs) = op(lhs, rhs). Typical op types are OpTypeAdd for
// sum-pooling and OpTypeMax for max-pooling.
func ScalarReduction(opType OpType, dtype dtypes.DType) *Function {
	f := NewFunction("reduction_" + opType.String())
	lhs := f.Parameter("lhs", dtype)
	rhs := f.Parameter("rhs", dtype)
	var combined *Node
	switch opType {
	case OpTypeAdd:
		combined = f.graph.Add(lhs, rhs)
	case OpTypeMul:
		combined = f.graph.Mul(lhs, rhs)
	case OpTypeMax:
		combined = f.graph.Max(lhs, rhs)
	default:
		exceptions.Panicf("ScalarReduction: unsupported combining op %s", opType)
	}
	f.Return(combined)
	return f
}
