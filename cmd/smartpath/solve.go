package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/smartmario/game/engine"
	"github.com/wricardo/mcp-training/smartmario/game/pathfinding"
	"github.com/wricardo/mcp-training/smartmario/game/placement"
)

var errNoFiles = errors.New("no level files given")

func solveCommand() *cli.Command {
	return &cli.Command{
		Name:      "solve",
		Usage:     "print the maximum mushroom count and a best route of each level",
		ArgsUsage: "FILE...",
		Description: "FILE is a level (.json, .yaml, .yml) or a plain layout (.txt) of '.' and 'M' rows.\n" +
			"Levels with random placement are populated with --seed.",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "seed",
				Value: 1,
				Usage: "seed for levels with random placement",
			},
		},
		Action: runSolve,
	}
}

func runSolve(ctx context.Context, cmd *cli.Command) error {
	files := cmd.Args().Slice()
	if len(files) == 0 {
		return errNoFiles
	}

	w := output(cmd)
	for _, file := range files {
		name, grid, err := loadGrid(file, int64(cmd.Int("seed")))
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}

		result, err := pathfinding.ComputeMaxCollectiblePath(grid)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}

		fmt.Fprintf(w, "== %s (%s, %dx%d) ==\n", filepath.Base(file), name, grid.Size(), grid.Size())
		fmt.Fprintf(w, "mushrooms on grid: %d\n", grid.CollectibleCount())
		fmt.Fprintf(w, "max mushrooms: %d\n", result.MaxWorthiness)
		fmt.Fprintf(w, "route: %s\n", strings.Join(result.Moves(), " "))
		fmt.Fprint(w, renderRoute(grid, result.Positions()))
		fmt.Fprintln(w)
	}
	return nil
}

// loadGrid builds the grid of a level file or a plain layout file.
func loadGrid(path string, seed int64) (string, *pathfinding.Grid, error) {
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		rows, err := readLayout(path)
		if err != nil {
			return "", nil, err
		}
		layout, err := placement.ParseLayout(rows)
		if err != nil {
			return "", nil, err
		}
		grid, err := placement.Populate(layout.Size(), layout)
		return "layout", grid, err
	}

	config, err := engine.LoadGameConfig(path)
	if err != nil {
		return "", nil, err
	}
	policy, err := engine.PolicyFor(config, placement.NewRandom(seed, config.MushroomCount))
	if err != nil {
		return "", nil, err
	}
	grid, err := placement.Populate(config.GridSize, policy)
	return config.Name, grid, err
}

// readLayout returns the non-blank lines of path, trimmed.
func readLayout(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			rows = append(rows, line)
		}
	}
	return rows, scanner.Err()
}
