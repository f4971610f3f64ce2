package rewrite

import (
	"github.com/gomlx/litepool/ir"
)

// Legality is the outcome of a dynamic legality predicate.
type Legality int

const (
	// LegalityUnknown defers the decision to pattern application: the op is treated as
	// legal if no pattern rewrites it.
	LegalityUnknown Legality = iota
	LegalityLegal
	LegalityIllegal
)

func (l Legality) String() string {
	switch l {
	case LegalityUnknown:
		return "unknown"
	case LegalityLegal:
		return "legal"
	case LegalityIllegal:
		return "illegal"
	}
	return "invalid"
}

// LegalityPredicate decides per node whether it is legal for the target.
type LegalityPredicate func(n *ir.Node) Legality

// ConversionTarget records which operation kinds a legalization aims to eliminate and
// how to decide, per node, whether an instance is acceptable as-is.
type ConversionTarget struct {
	dynamicallyLegal map[ir.OpType]LegalityPredicate
}

// NewConversionTarget creates an empty target: every op kind defaults to legal.
func NewConversionTarget() *ConversionTarget {
	return &ConversionTarget{dynamicallyLegal: make(map[ir.OpType]LegalityPredicate)}
}

// AddDynamicallyLegalOp registers a per-node legality predicate for the op kind.
func (t *ConversionTarget) AddDynamicallyLegalOp(opType ir.OpType, pred LegalityPredicate) {
	t.dynamicallyLegal[opType] = pred
}

// Legality evaluates the node against the registered predicates. Op kinds without a
// predicate are legal.
func (t *ConversionTarget) Legality(n *ir.Node) Legality {
	pred, found := t.dynamicallyLegal[n.OpType()]
	if !found {
		return LegalityLegal
	}
	return pred(n)
}
