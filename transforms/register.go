package transforms

import (
	"github.com/gomlx/litepool/ir"
	"github.com/gomlx/litepool/rewrite"
)

// PopulatePrepareReduceWindowPatterns registers the layout-normalization pattern. It
// runs in the prepare stage, before legalization, so the pooling matchers only ever see
// channel-last reduce-windows.
func PopulatePrepareReduceWindowPatterns(patterns *rewrite.PatternSet) {
	patterns.Add(RelayoutReduceWindow{})
}

// PopulateLegalizeReduceWindowPatterns registers the pooling legalization patterns and
// declares the operations they consume as dynamically legal on the target.
func PopulateLegalizeReduceWindowPatterns(patterns *rewrite.PatternSet, target *rewrite.ConversionTarget) {
	patterns.Add(LegalizeAvgPool{}, LegalizeMaxPool{})
	target.AddDynamicallyLegalOp(ir.OpTypeReduceWindow, IsReduceWindowLegal)
	target.AddDynamicallyLegalOp(ir.OpTypeDiv, IsDivideLegal)
}

// IsReduceWindowLegal decides whether a reduce-window may stay in the graph.
// Deliberately undecided for now: the answer depends on profitability analysis that
// does not exist yet, so legality defers to pattern application.
func IsReduceWindowLegal(*ir.Node) rewrite.Legality { return rewrite.LegalityUnknown }

// IsDivideLegal decides whether a division may stay in the graph. Deliberately
// undecided, like IsReduceWindowLegal.
func IsDivideLegal(*ir.Node) rewrite.Legality { return rewrite.LegalityUnknown }
