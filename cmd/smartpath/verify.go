package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/smartmario/game/pathfinding"
	"github.com/wricardo/mcp-training/smartmario/game/placement"
)

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "compare the solver against exhaustive search on random grids",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "size",
				Value: 8,
				Usage: fmt.Sprintf("grid size, 1 to %d", pathfinding.MaxBruteForceSize),
			},
			&cli.IntFlag{
				Name:  "trials",
				Value: 200,
				Usage: "number of random grids",
			},
			&cli.IntFlag{
				Name:  "seed",
				Value: 1,
				Usage: "seed of the first grid; grid i uses seed+i",
			},
			&cli.IntFlag{
				Name:  "density",
				Usage: "mushroom draws as a percentage of the cells (0 uses the game default)",
			},
		},
		Action: runVerify,
	}
}

func runVerify(ctx context.Context, cmd *cli.Command) error {
	size := cmd.Int("size")
	trials := cmd.Int("trials")
	density := cmd.Int("density")

	if size < 1 || size > pathfinding.MaxBruteForceSize {
		return fmt.Errorf("--size must be between 1 and %d, got %d", pathfinding.MaxBruteForceSize, size)
	}
	if trials < 1 {
		return fmt.Errorf("--trials must be positive, got %d", trials)
	}
	if density < 0 || density > 100 {
		return fmt.Errorf("--density must be between 0 and 100, got %d", density)
	}

	draws := 0
	if density > 0 {
		draws = max(1, size*size*density/100)
	}

	w := output(cmd)
	seed := int64(cmd.Int("seed"))
	failures := 0
	for i := 0; i < trials; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		grid, err := placement.Populate(size, placement.NewRandom(seed+int64(i), draws))
		if err != nil {
			return err
		}
		if err := verifyGrid(grid); err != nil {
			failures++
			reportFailure(w, seed+int64(i), grid, err)
		}
	}

	fmt.Fprintf(w, "verified %d grids of %dx%d: %d failures\n", trials, size, size, failures)
	if failures > 0 {
		return fmt.Errorf("%d of %d grids disagree with exhaustive search", failures, trials)
	}
	return nil
}

// verifyGrid checks one grid: the maximum matches exhaustive search, the
// route is a valid staircase and collects exactly the maximum.
func verifyGrid(grid *pathfinding.Grid) error {
	want, err := pathfinding.BruteForceMax(grid)
	if err != nil {
		return err
	}
	result, err := pathfinding.ComputeMaxCollectiblePath(grid)
	if err != nil {
		return err
	}
	if result.MaxWorthiness != want {
		return fmt.Errorf("solver reports %d, exhaustive search %d", result.MaxWorthiness, want)
	}
	if err := pathfinding.ValidatePath(grid, result.Positions()); err != nil {
		return err
	}
	if got := len(result.Collected(grid)); got != want {
		return fmt.Errorf("route collects %d, want %d", got, want)
	}
	return nil
}

func reportFailure(w io.Writer, seed int64, grid *pathfinding.Grid, err error) {
	fmt.Fprintf(w, "FAIL seed=%d: %v\n", seed, err)
	fmt.Fprintf(w, "  %s\n", strings.Join(placement.Render(grid), "\n  "))
}
