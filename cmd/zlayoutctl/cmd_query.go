package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/arx-os/zlayout/internal/factory"
	"github.com/arx-os/zlayout/internal/geometry"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run a range query against a previously built object set",
	Run:   runQuery,
}

func init() {
	queryCmd.Flags().String("in", "zlayout.objects.json", "input file written by build")
	queryCmd.Flags().Float64("world-width", 1000, "world rectangle width")
	queryCmd.Flags().Float64("world-height", 1000, "world rectangle height")
	queryCmd.Flags().Float64("x", 0, "query rectangle x")
	queryCmd.Flags().Float64("y", 0, "query rectangle y")
	queryCmd.Flags().Float64("width", 100, "query rectangle width")
	queryCmd.Flags().Float64("height", 100, "query rectangle height")
}

func runQuery(cmd *cobra.Command, args []string) {
	inPath, _ := cmd.Flags().GetString("in")
	worldWidth, _ := cmd.Flags().GetFloat64("world-width")
	worldHeight, _ := cmd.Flags().GetFloat64("world-height")
	qx, _ := cmd.Flags().GetFloat64("x")
	qy, _ := cmd.Flags().GetFloat64("y")
	qw, _ := cmd.Flags().GetFloat64("width")
	qh, _ := cmd.Flags().GetFloat64("height")

	objects, err := loadStoredRectangles(inPath)
	if err != nil {
		cmd.PrintErrln(red("loading objects (run `zlayoutctl build` first):"), err)
		os.Exit(1)
	}

	world, err := geometry.NewRectangle(0, 0, worldWidth, worldHeight)
	if err != nil {
		cmd.PrintErrln(red("invalid world bounds:"), err)
		os.Exit(1)
	}
	queryRange, err := geometry.NewRectangle(qx, qy, qw, qh)
	if err != nil {
		cmd.PrintErrln(red("invalid query rectangle:"), err)
		os.Exit(1)
	}

	bboxOf := func(r geometry.Rectangle) geometry.Rectangle { return r }
	idx := factory.CreateOptimizedIndex[geometry.Rectangle](world, int64(len(objects)), bboxOf)
	defer idx.Shutdown()
	if err := idx.ParallelBulkInsert(objects); err != nil {
		cmd.PrintErrln(red("parallel bulk insert failed:"), err)
		os.Exit(1)
	}

	results := idx.ParallelQueryRange(queryRange)
	cmd.Println(green("query"), queryRange, cyan("matched"), len(results), "of", len(objects))
}
