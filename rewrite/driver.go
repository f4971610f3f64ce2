package rewrite

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/gomlx/litepool/ir"
)

// maxSweeps caps the number of full passes over the graph. Each productive sweep erases
// or replaces at least one node, so a well-formed pattern set converges long before
// this; hitting the cap means a pattern keeps rewriting its own output.
const maxSweeps = 1000

// Run applies the pattern set to the graph until a fixpoint: every live node is offered
// to every pattern, in order, and the sweep restarts after any successful rewrite.
// Dead nodes left behind by replacements are eliminated before returning.
//
// It returns the number of rewrites applied. The only error condition is
// non-convergence within the sweep cap.
func Run(g *ir.Graph, ps *PatternSet) (int, error) {
	r := NewRewriter(g)
	for sweep := 0; sweep < maxSweeps; sweep++ {
		changed := false
		for _, n := range g.Nodes() {
			if n.IsErased() {
				// Erased by a rewrite earlier in this sweep.
				continue
			}
			if applyPatternsToNode(n, ps, r) {
				changed = true
			}
		}
		if !changed {
			if removed := g.EliminateDeadNodes(); removed > 0 {
				klog.V(1).Infof("rewrite.Run(%q): eliminated %d dead nodes", g.Name(), removed)
			}
			return r.rewrites, nil
		}
	}
	return r.rewrites, errors.Errorf("rewrite.Run(%q): patterns did not converge after %d sweeps", g.Name(), maxSweeps)
}

// applyPatternsToNode offers n to the patterns in order and reports whether one applied.
func applyPatternsToNode(n *ir.Node, ps *PatternSet, r *Rewriter) bool {
	for _, pattern := range ps.Patterns() {
		err := pattern.MatchAndRewrite(n, r)
		if err == nil {
			klog.V(1).Infof("pattern %s rewrote %s node #%d", pattern.Name(), n.OpType(), n.ID())
			return true
		}
		if IsMatchFailure(err) {
			klog.V(2).Infof("pattern %s: %v", pattern.Name(), err)
			continue
		}
		// Patterns in this module never return hard errors; treat one as a bug.
		panic(errors.WithMessagef(err, "pattern %s failed on %s node #%d", pattern.Name(), n.OpType(), n.ID()))
	}
	return false
}

// VerifyLegal checks every live node of the graph against the target. It returns the
// nodes whose legality predicate answers LegalityIllegal.
func VerifyLegal(g *ir.Graph, target *ConversionTarget) []*ir.Node {
	var illegal []*ir.Node
	for _, n := range g.Nodes() {
		if target.Legality(n) == LegalityIllegal {
			illegal = append(illegal, n)
		}
	}
	return illegal
}
