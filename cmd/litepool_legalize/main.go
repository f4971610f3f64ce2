// litepool_legalize builds a demonstration graph -- an NCHW average-pooling written as
// reduce-windows and a division, the way ML frontends lower it -- and runs the prepare
// (layout normalization) and legalize (pooling recognition) pipelines over it, printing
// the graph at each stage.
//
// Use -v=1 (or -v=2) to see the rewrite driver's decisions.
package main

import (
	"flag"
	"fmt"

	"github.com/gomlx/gomlx/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"

	"github.com/gomlx/litepool/ir"
	"github.com/gomlx/litepool/rewrite"
	"github.com/gomlx/litepool/transforms"
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	g := buildSampleGraph()
	fmt.Println("Before:")
	fmt.Print(g)

	var preparePatterns rewrite.PatternSet
	transforms.PopulatePrepareReduceWindowPatterns(&preparePatterns)
	rewrites := must.M1(rewrite.Run(g, &preparePatterns))
	fmt.Printf("\nAfter prepare (%d rewrites):\n", rewrites)
	fmt.Print(g)

	var legalizePatterns rewrite.PatternSet
	target := rewrite.NewConversionTarget()
	transforms.PopulateLegalizeReduceWindowPatterns(&legalizePatterns, target)
	rewrites = must.M1(rewrite.Run(g, &legalizePatterns))
	fmt.Printf("\nAfter legalize (%d rewrites):\n", rewrites)
	fmt.Print(g)

	if illegal := rewrite.VerifyLegal(g, target); len(illegal) > 0 {
		fmt.Printf("\n%d nodes remain illegal for the target\n", len(illegal))
	}
}

// buildSampleGraph lowers a 3x3 stride-1 SAME average-pooling over an NCHW float32
// image the way a frontend does: a sum reduce-window divided by a reduce-window
// counting the contributing ones.
func buildSampleGraph() *ir.Graph {
	g := ir.New("avg_pool_nchw")
	image := g.Parameter("image", shapes.Make(dtypes.Float32, 1, 8, 16, 16)) // NCHW
	zero := g.Splat(shapes.Make(dtypes.Float32), 0)

	windowDims := []int{1, 1, 3, 3}
	strides := []int{1, 1, 1, 1}
	paddings := [][2]int{{0, 0}, {0, 0}, {1, 1}, {1, 1}}

	sum := g.ReduceWindow(image, zero, ir.ScalarReduction(ir.OpTypeAdd, dtypes.Float32),
		windowDims, strides, nil, nil, paddings)

	ones := g.Splat(shapes.Make(dtypes.Float32, 1, 8, 16, 16), 1)
	count := g.ReduceWindow(ones, zero, ir.ScalarReduction(ir.OpTypeAdd, dtypes.Float32),
		windowDims, strides, nil, nil, paddings)

	g.SetOutputs(g.Div(sum, count))
	return g
}
