package rewrite

import (
	"github.com/gomlx/litepool/ir"
)

// Rewriter is the capability object handed to each rewrite attempt. It scopes what a
// pattern may do to the graph: create nodes (through Graph's builder methods) and
// replace-and-erase. It is only valid for the duration of a single MatchAndRewrite
// call and must not be retained.
type Rewriter struct {
	graph    *ir.Graph
	rewrites int
}

// NewRewriter creates a Rewriter over g. The driver creates one per Run; tests of
// individual patterns may create their own to invoke MatchAndRewrite directly.
func NewRewriter(g *ir.Graph) *Rewriter {
	return &Rewriter{graph: g}
}

// Graph being rewritten. New nodes are created through its builder methods.
func (r *Rewriter) Graph() *ir.Graph { return r.graph }

// ReplaceAllUsesWith redirects every use of old to newNode and erases old. Nodes left
// dangling by the replacement are swept by the driver's dead-node elimination, not here.
func (r *Rewriter) ReplaceAllUsesWith(old, newNode *ir.Node) {
	r.graph.ReplaceAllUsesWith(old, newNode)
	r.rewrites++
}
