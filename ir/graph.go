// Package ir holds the small tensor-program representation the legalization passes
// rewrite.
//
// A Graph owns its nodes in creation order: nodes are only created after their inputs,
// so the slice is a natural DAG ordering. Nodes carry a closed OpType tag plus a per-kind
// attributes struct; matching code switches on the tag instead of down-casting, and
// anything a frontend produces outside the supported vocabulary is tagged OpTypeOther.
//
// Rewrites never mutate a node in place: they create replacement nodes and redirect
// uses with Graph.ReplaceAllUsesWith, which erases the old node. Unreachable nodes are
// swept by EliminateDeadNodes.
package ir

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gomlx/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
)

// Graph is an arena of nodes plus the designated outputs of the program.
type Graph struct {
	name string

	// nodes in creation (DAG) order. Erased nodes stay in place so node ids remain
	// stable, they are just skipped during traversal.
	nodes []*Node

	outputs []*Node
}

// New creates an empty Graph with the given name.
func New(name string) *Graph {
	return &Graph{name: name}
}

// Name of the graph.
func (g *Graph) Name() string { return g.name }

// Node is one operation in a Graph.
//
// Nodes are created through the Graph builder methods and are immutable from the
// perspective of the passes: a rewrite builds new nodes and redirects uses.
type Node struct {
	graph *Graph

	// id is the index in Graph.nodes. Stable for the lifetime of the graph.
	id int

	opType OpType
	shape  shapes.Shape
	inputs []*Node

	// attrs holds the per-OpType attributes struct (nil for plain elementwise ops).
	attrs any

	erased bool
}

// newNode appends a node of the given opType and shape to the graph.
func (g *Graph) newNode(opType OpType, shape shapes.Shape, inputs ...*Node) *Node {
	for idx, input := range inputs {
		if input == nil {
			exceptions.Panicf("%s: input #%d is nil", opType, idx)
		}
		if input.graph != g {
			exceptions.Panicf("%s: input #%d belongs to graph %q, not %q", opType, idx, input.graph.name, g.name)
		}
		if input.erased {
			exceptions.Panicf("%s: input #%d was already erased from graph %q", opType, idx, g.name)
		}
	}
	n := &Node{
		graph:  g,
		id:     len(g.nodes),
		opType: opType,
		shape:  shape,
		inputs: slices.Clone(inputs),
	}
	g.nodes = append(g.nodes, n)
	return n
}

// OpType returns the operation kind tag.
func (n *Node) OpType() OpType { return n.opType }

// Shape of the node's output.
func (n *Node) Shape() shapes.Shape { return n.shape }

// DType of the node's output elements.
func (n *Node) DType() dtypes.DType { return n.shape.DType }

// Rank of the node's output.
func (n *Node) Rank() int { return n.shape.Rank() }

// Graph the node belongs to.
func (n *Node) Graph() *Graph { return n.graph }

// ID is the node's stable index within its graph.
func (n *Node) ID() int { return n.id }

// NumInputs returns the number of operands.
func (n *Node) NumInputs() int { return len(n.inputs) }

// Input returns the idx-th operand.
func (n *Node) Input(idx int) *Node { return n.inputs[idx] }

// Inputs returns a copy of the operand list.
func (n *Node) Inputs() []*Node { return slices.Clone(n.inputs) }

// IsErased reports whether the node was removed by a rewrite or by dead-node elimination.
func (n *Node) IsErased() bool { return n.erased }

// SetOutputs designates the graph outputs. Outputs are the DCE roots.
func (g *Graph) SetOutputs(outputs ...*Node) {
	for idx, out := range outputs {
		if out == nil || out.graph != g {
			exceptions.Panicf("SetOutputs: output #%d is nil or from another graph", idx)
		}
	}
	g.outputs = slices.Clone(outputs)
}

// Outputs returns a copy of the graph's designated outputs.
func (g *Graph) Outputs() []*Node { return slices.Clone(g.outputs) }

// Nodes returns the live (non-erased) nodes in DAG order.
func (g *Graph) Nodes() []*Node {
	live := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		if !n.erased {
			live = append(live, n)
		}
	}
	return live
}

// NumLiveNodes returns the number of non-erased nodes.
func (g *Graph) NumLiveNodes() int {
	count := 0
	for _, n := range g.nodes {
		if !n.erased {
			count++
		}
	}
	return count
}

// ReplaceAllUsesWith redirects every use of old -- operand lists and graph outputs --
// to newNode, and erases old from the graph.
func (g *Graph) ReplaceAllUsesWith(old, newNode *Node) {
	if old.graph != g || newNode.graph != g {
		exceptions.Panicf("ReplaceAllUsesWith: nodes must belong to graph %q", g.name)
	}
	if old == newNode {
		exceptions.Panicf("ReplaceAllUsesWith: cannot replace node #%d with itself", old.id)
	}
	for _, n := range g.nodes {
		if n.erased {
			continue
		}
		for idx, input := range n.inputs {
			if input == old {
				n.inputs[idx] = newNode
			}
		}
	}
	for idx, out := range g.outputs {
		if out == old {
			g.outputs[idx] = newNode
		}
	}
	old.erased = true
}

// EliminateDeadNodes erases every node not reachable from the graph outputs.
// Returns the number of nodes erased.
func (g *Graph) EliminateDeadNodes() int {
	if len(g.outputs) == 0 {
		return 0
	}
	alive := make([]bool, len(g.nodes))
	var mark func(n *Node)
	mark = func(n *Node) {
		if alive[n.id] {
			return
		}
		alive[n.id] = true
		for _, input := range n.inputs {
			mark(input)
		}
		// The reduction body of a reduce-window is part of the op, not of this arena,
		// so it needs no marking here.
	}
	for _, out := range g.outputs {
		mark(out)
	}
	erasedCount := 0
	for _, n := range g.nodes {
		if n.erased || alive[n.id] {
			continue
		}
		n.erased = true
		erasedCount++
	}
	return erasedCount
}

// String pretty-prints the live nodes, one per line. Debug aid only, there is no parser.
func (g *Graph) String() string {
	var sb strings.Builder
	_, _ = fmt.Fprintf(&sb, "Graph %q:\n", g.name)
	for _, n := range g.nodes {
		if n.erased {
			continue
		}
		_, _ = fmt.Fprintf(&sb, "  %s\n", n)
	}
	outputIDs := make([]string, len(g.outputs))
	for idx, out := range g.outputs {
		outputIDs[idx] = fmt.Sprintf("#%d", out.id)
	}
	_, _ = fmt.Fprintf(&sb, "  outputs: %s\n", strings.Join(outputIDs, ", "))
	return sb.String()
}

// String implements fmt.Stringer with a one-line description of the node.
func (n *Node) String() string {
	var sb strings.Builder
	_, _ = fmt.Fprintf(&sb, "#%d = %s(", n.id, n.opType)
	for idx, input := range n.inputs {
		if idx > 0 {
			sb.WriteString(", ")
		}
		_, _ = fmt.Fprintf(&sb, "#%d", input.id)
	}
	_, _ = fmt.Fprintf(&sb, ") -> %s", n.shape)
	if attrs, ok := n.attrs.(fmt.Stringer); ok && attrs != nil {
		_, _ = fmt.Fprintf(&sb, " {%s}", attrs)
	}
	return sb.String()
}
