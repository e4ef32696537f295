package main

import (
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/arx-os/zlayout/internal/analysis"
	"github.com/arx-os/zlayout/internal/geometry"
	"github.com/arx-os/zlayout/internal/hierarchical"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the sharp-angle, narrow-region, and edge-intersection scans over synthetic polygons",
	Run:   runAnalyze,
}

func init() {
	analyzeCmd.Flags().Int("count", 200, "number of synthetic polygons to generate")
	analyzeCmd.Flags().Int64("seed", 42, "RNG seed")
	analyzeCmd.Flags().Float64("world-width", 1000, "world rectangle width")
	analyzeCmd.Flags().Float64("world-height", 1000, "world rectangle height")
	analyzeCmd.Flags().Float64("sharp-angle-threshold", analysis.DefaultSharpAngleThreshold, "sharp-angle threshold in degrees")
	analyzeCmd.Flags().Float64("narrow-region-threshold", 2.0, "narrow-region clearance threshold")
}

// syntheticArrowhead builds a 5-vertex polygon with a single guaranteed
// sharp interior vertex (the tip, vertex 3, about 24.8°), anchored at
// (x, y) and size tall.
func syntheticArrowhead(x, y, size float64) (*geometry.Polygon, error) {
	u := size / 60
	return geometry.NewPolygon([]geometry.Point{
		geometry.NewPoint(x+6*u, y),
		geometry.NewPoint(x+16*u, y),
		geometry.NewPoint(x+22*u, y+10*u),
		geometry.NewPoint(x+11*u, y+60*u),
		geometry.NewPoint(x, y+10*u),
	})
}

func syntheticRectanglePolygon(x, y, w, h float64) (*geometry.Polygon, error) {
	return geometry.NewPolygon([]geometry.Point{
		geometry.NewPoint(x, y),
		geometry.NewPoint(x+w, y),
		geometry.NewPoint(x+w, y+h),
		geometry.NewPoint(x, y+h),
	})
}

func runAnalyze(cmd *cobra.Command, args []string) {
	count, _ := cmd.Flags().GetInt("count")
	seed, _ := cmd.Flags().GetInt64("seed")
	worldWidth, _ := cmd.Flags().GetFloat64("world-width")
	worldHeight, _ := cmd.Flags().GetFloat64("world-height")
	sharpThreshold, _ := cmd.Flags().GetFloat64("sharp-angle-threshold")
	narrowThreshold, _ := cmd.Flags().GetFloat64("narrow-region-threshold")

	world, err := geometry.NewRectangle(0, 0, worldWidth, worldHeight)
	if err != nil {
		cmd.PrintErrln(red("invalid world bounds:"), err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(seed))
	polygons := make([]*geometry.Polygon, 0, count)
	for i := 0; i < count; i++ {
		x := rng.Float64() * (worldWidth - 20)
		y := rng.Float64() * (worldHeight - 20)
		size := 2 + rng.Float64()*8

		var poly *geometry.Polygon
		var err error
		if i%5 == 0 {
			poly, err = syntheticArrowhead(x, y, size)
		} else {
			poly, err = syntheticRectanglePolygon(x, y, size, size)
		}
		if err != nil {
			cmd.PrintErrln(red("generating polygon:"), err)
			os.Exit(1)
		}
		polygons = append(polygons, poly)
	}

	var sharpViolations []analysis.Violation
	for _, poly := range polygons {
		sharpViolations = append(sharpViolations, analysis.ScanSharpAngles(poly, sharpThreshold)...)
	}

	bboxOf := func(p *geometry.Polygon) geometry.Rectangle { return p.BoundingBox() }
	idx := hierarchical.New[*geometry.Polygon](world, 1000, 8, bboxOf)
	defer idx.Shutdown()
	idx.BulkInsert(polygons)

	narrowViolations := analysis.ScanNarrowRegionsIndexed(idx, polygons, narrowThreshold)
	edgeViolations := analysis.ScanEdgeIntersections(idx)

	cmd.Println(green("analyzed"), len(polygons), "polygons")
	cmd.Printf("  %s sharp-angle violations:       %d\n", yellow("-"), len(sharpViolations))
	cmd.Printf("  %s narrow-region violations:     %d\n", yellow("-"), len(narrowViolations))
	cmd.Printf("  %s edge-intersection violations: %d\n", yellow("-"), len(edgeViolations))
}
