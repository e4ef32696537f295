package main

import (
	"encoding/json"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/arx-os/zlayout/internal/factory"
	"github.com/arx-os/zlayout/internal/geometry"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build an index from synthetic seeded rectangle data",
	Long: `build generates a deterministic set of unit rectangles scattered over a
world rectangle, loads them into a hierarchical index via parallel_bulk_insert,
prints the resulting Statistics, and writes the raw objects to a JSON file so
query and bench can reload them without regenerating.`,
	Run: runBuild,
}

func init() {
	buildCmd.Flags().Int("count", 10_000, "number of synthetic rectangles to generate")
	buildCmd.Flags().Int64("seed", 42, "RNG seed")
	buildCmd.Flags().Float64("world-width", 1000, "world rectangle width")
	buildCmd.Flags().Float64("world-height", 1000, "world rectangle height")
	buildCmd.Flags().String("out", "zlayout.objects.json", "output file for the generated objects")
}

type storedRectangle struct {
	X, Y, Width, Height float64
}

func runBuild(cmd *cobra.Command, args []string) {
	count, _ := cmd.Flags().GetInt("count")
	seed, _ := cmd.Flags().GetInt64("seed")
	worldWidth, _ := cmd.Flags().GetFloat64("world-width")
	worldHeight, _ := cmd.Flags().GetFloat64("world-height")
	outPath, _ := cmd.Flags().GetString("out")

	world, err := geometry.NewRectangle(0, 0, worldWidth, worldHeight)
	if err != nil {
		cmd.PrintErrln(red("invalid world bounds:"), err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(seed))
	objects := make([]geometry.Rectangle, count)
	stored := make([]storedRectangle, count)
	for i := 0; i < count; i++ {
		x := rng.Float64() * (worldWidth - 1)
		y := rng.Float64() * (worldHeight - 1)
		r, err := geometry.NewRectangle(x, y, 1, 1)
		if err != nil {
			cmd.PrintErrln(red("generating rectangle:"), err)
			os.Exit(1)
		}
		objects[i] = r
		stored[i] = storedRectangle{X: x, Y: y, Width: 1, Height: 1}
	}

	bboxOf := func(r geometry.Rectangle) geometry.Rectangle { return r }
	idx := factory.CreateOptimizedIndex[geometry.Rectangle](world, int64(count), bboxOf)
	defer idx.Shutdown()

	if err := idx.ParallelBulkInsert(objects); err != nil {
		cmd.PrintErrln(red("parallel bulk insert failed:"), err)
		os.Exit(1)
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		cmd.PrintErrln(red("encoding objects:"), err)
		os.Exit(1)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		cmd.PrintErrln(red("writing output file:"), err)
		os.Exit(1)
	}

	stats := idx.Statistics()
	cmd.Println(green("built index:"))
	cmd.Printf("  objects:        %d\n", stats.TotalObjects)
	cmd.Printf("  blocks:         %d\n", stats.TotalBlocks)
	cmd.Printf("  max depth:      %d\n", stats.MaxDepth)
	cmd.Printf("  avg per block:  %.2f\n", stats.AvgObjectsPerBlock)
	cmd.Println(cyan("wrote"), outPath)
}

func loadStoredRectangles(path string) ([]geometry.Rectangle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var stored []storedRectangle
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, err
	}
	rects := make([]geometry.Rectangle, len(stored))
	for i, s := range stored {
		r, err := geometry.NewRectangle(s.X, s.Y, s.Width, s.Height)
		if err != nil {
			return nil, err
		}
		rects[i] = r
	}
	return rects, nil
}
