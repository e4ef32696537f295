package main

import (
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/arx-os/zlayout/internal/geometry"
	"github.com/arx-os/zlayout/internal/quadtree"
	"github.com/arx-os/zlayout/internal/rtree"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Report quadtree and R-tree statistics for a generated or loaded object set",
	Run:   runBench,
}

func init() {
	benchCmd.Flags().String("in", "", "input file written by build (generates fresh data if empty)")
	benchCmd.Flags().Int("count", 10_000, "number of synthetic rectangles when --in is empty")
	benchCmd.Flags().Int64("seed", 42, "RNG seed when --in is empty")
	benchCmd.Flags().Float64("world-width", 1000, "world rectangle width")
	benchCmd.Flags().Float64("world-height", 1000, "world rectangle height")
	benchCmd.Flags().Int("quadtree-capacity", 10, "quadtree node capacity")
	benchCmd.Flags().Int("quadtree-max-depth", 8, "quadtree max depth")
}

func runBench(cmd *cobra.Command, args []string) {
	inPath, _ := cmd.Flags().GetString("in")
	count, _ := cmd.Flags().GetInt("count")
	seed, _ := cmd.Flags().GetInt64("seed")
	worldWidth, _ := cmd.Flags().GetFloat64("world-width")
	worldHeight, _ := cmd.Flags().GetFloat64("world-height")
	capacity, _ := cmd.Flags().GetInt("quadtree-capacity")
	maxDepth, _ := cmd.Flags().GetInt("quadtree-max-depth")

	world, err := geometry.NewRectangle(0, 0, worldWidth, worldHeight)
	if err != nil {
		cmd.PrintErrln(red("invalid world bounds:"), err)
		os.Exit(1)
	}

	var objects []geometry.Rectangle
	if inPath != "" {
		objects, err = loadStoredRectangles(inPath)
		if err != nil {
			cmd.PrintErrln(red("loading objects:"), err)
			os.Exit(1)
		}
	} else {
		rng := rand.New(rand.NewSource(seed))
		objects = make([]geometry.Rectangle, count)
		for i := range objects {
			x := rng.Float64() * (worldWidth - 1)
			y := rng.Float64() * (worldHeight - 1)
			r, err := geometry.NewRectangle(x, y, 1, 1)
			if err != nil {
				cmd.PrintErrln(red("generating rectangle:"), err)
				os.Exit(1)
			}
			objects[i] = r
		}
	}

	bboxOf := func(r geometry.Rectangle) geometry.Rectangle { return r }

	quad := quadtree.New[geometry.Rectangle](world, bboxOf, capacity, maxDepth)
	for _, obj := range objects {
		quad.Insert(obj)
	}
	qStats := quad.Statistics()

	rt := rtree.New[geometry.Rectangle](bboxOf)
	for _, obj := range objects {
		rt.Insert(obj)
	}
	rStats := rt.Statistics()

	cmd.Println(green("quadtree:"))
	cmd.Printf("  nodes:     %d (leaves: %d)\n", qStats.TotalNodes, qStats.LeafCount)
	cmd.Printf("  max depth: %d\n", qStats.MaxDepth)
	cmd.Printf("  objects:   %d (avg/leaf %.2f, efficiency %.2f)\n", qStats.TotalObjects, qStats.AvgPerLeaf, qStats.Efficiency)

	cmd.Println(cyan("rtree:"))
	cmd.Printf("  nodes:   %d (leaves: %d, height %d)\n", rStats.TotalNodes, rStats.LeafCount, rStats.Height)
	cmd.Printf("  objects: %d\n", rStats.TotalObjects)
}
