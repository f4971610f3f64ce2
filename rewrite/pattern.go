// Package rewrite drives pattern-based graph rewriting: patterns are offered every node
// of a graph until none of them applies anymore.
//
// Outcomes follow a two-tier model. A pattern that does not apply to a node returns a
// *MatchFailure with a short diagnostic reason -- this is the routine path, and the
// driver just moves on. A nil return means the pattern rewrote the graph. Any other
// error is fatal and aborts the run; no pattern in this module produces one in normal
// operation.
package rewrite

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/gomlx/litepool/ir"
)

// Pattern is one match-and-rewrite rule.
//
// MatchAndRewrite is invoked once per candidate node. It must either rewrite the graph
// through the given Rewriter and return nil, or leave the graph untouched and return a
// *MatchFailure. Implementations must not retain the node or the Rewriter past the call.
type Pattern interface {
	Name() string
	MatchAndRewrite(n *ir.Node, r *Rewriter) error
}

// MatchFailure is the soft "this pattern does not apply here" outcome. The op is left
// unchanged and the driver tries other patterns or leaves it as-is.
type MatchFailure struct {
	Op     *ir.Node
	Reason string
}

func (f *MatchFailure) Error() string {
	return fmt.Sprintf("no match on %s: %s", f.Op.OpType(), f.Reason)
}

// MatchFailuref builds a MatchFailure with a formatted reason.
func MatchFailuref(op *ir.Node, format string, args ...any) error {
	return &MatchFailure{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// IsMatchFailure reports whether err is a soft no-match outcome.
func IsMatchFailure(err error) bool {
	var failure *MatchFailure
	return errors.As(err, &failure)
}

// PatternSet is an ordered collection of patterns. Order matters: the driver offers a
// node to the patterns in insertion order and stops at the first that applies.
type PatternSet struct {
	patterns []Pattern
}

// Add appends patterns to the set.
func (ps *PatternSet) Add(patterns ...Pattern) *PatternSet {
	ps.patterns = append(ps.patterns, patterns...)
	return ps
}

// Patterns returns the patterns in application order.
func (ps *PatternSet) Patterns() []Pattern { return ps.patterns }
