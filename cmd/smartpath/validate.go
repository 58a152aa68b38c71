package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/smartmario/game/config"
	"github.com/wricardo/mcp-training/smartmario/game/engine"
	"github.com/wricardo/mcp-training/smartmario/game/pathfinding"
	"github.com/wricardo/mcp-training/smartmario/game/placement"
)

// ValidationResult captures the outcome of validating a single level file.
// Notes carry informational findings; Errors the problems that make the
// level unusable.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
	Notes  []string
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "check level files and report every problem",
		ArgsUsage: "[FILE...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Value: "configs",
				Usage: "directory scanned when no FILE is given",
			},
		},
		Action: runValidate,
	}
}

func runValidate(ctx context.Context, cmd *cli.Command) error {
	files := cmd.Args().Slice()
	if len(files) == 0 {
		var err error
		if files, err = levelFiles(cmd.String("dir")); err != nil {
			return err
		}
	}
	if len(files) == 0 {
		return errNoFiles
	}

	w := output(cmd)
	invalid := 0
	for _, file := range files {
		result := validateLevel(file)
		printResult(w, result)
		if !result.Valid {
			invalid++
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if invalid > 0 {
		fmt.Fprintf(w, "%d of %d levels have errors\n", invalid, len(files))
		return fmt.Errorf("%d of %d level files are invalid", invalid, len(files))
	}
	fmt.Fprintf(w, "All %d levels are valid\n", len(files))
	return nil
}

// levelFiles lists the level files of dir in name order.
func levelFiles(dir string) ([]string, error) {
	var files []string
	for _, ext := range config.Extensions {
		matches, err := filepath.Glob(filepath.Join(dir, "*"+ext))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

func printResult(w io.Writer, result ValidationResult) {
	fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)
	if result.Valid {
		fmt.Fprintln(w, "VALID")
	} else {
		fmt.Fprintln(w, "INVALID")
	}
	for _, err := range result.Errors {
		fmt.Fprintf(w, "  error: %s\n", err)
	}
	for _, note := range result.Notes {
		fmt.Fprintf(w, "  %s\n", note)
	}
}

// validateLevel loads a level file, runs the engine's checks and, for
// fixed layouts, solves the level to describe it.
func validateLevel(path string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(path),
		Valid: true,
	}

	if !slices.Contains(config.Extensions, strings.ToLower(filepath.Ext(path))) {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("unsupported extension %q (want one of %s)",
			filepath.Ext(path), strings.Join(config.Extensions, ", ")))
		return result
	}

	level, err := engine.LoadGameConfig(path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	result.Notes = append(result.Notes, fmt.Sprintf("%s: %dx%d grid", level.Name, level.GridSize, level.GridSize))
	if level.MoveTimeoutSeconds > 0 {
		result.Notes = append(result.Notes, fmt.Sprintf("move timer: %ds", level.MoveTimeoutSeconds))
	} else {
		result.Notes = append(result.Notes, "move timer: off")
	}

	if level.IsRandom() {
		draws := level.MushroomCount
		if draws == 0 {
			draws = placement.DefaultCount(level.GridSize)
		}
		result.Notes = append(result.Notes, fmt.Sprintf("random placement: up to %d mushrooms per round", draws))
		return result
	}

	layout, err := placement.ParseLayout(level.Layout)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	grid, err := placement.Populate(layout.Size(), layout)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	solution, err := pathfinding.ComputeMaxCollectiblePath(grid)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("solver failed: %v", err))
		return result
	}

	total := grid.CollectibleCount()
	result.Notes = append(result.Notes, fmt.Sprintf("fixed layout: %d mushrooms, best route collects %d", total, solution.MaxWorthiness))
	if total == 0 {
		result.Notes = append(result.Notes, "layout has no mushrooms")
	}
	if greedy := greedyScore(grid); greedy < solution.MaxWorthiness {
		result.Notes = append(result.Notes, fmt.Sprintf("greedy route collects only %d", greedy))
	}
	return result
}

// greedyScore follows the nearest mushroom one step at a time, preferring
// right, and returns what that route collects.
func greedyScore(g *pathfinding.Grid) int {
	n := g.Size()
	row, col := 0, 0
	score := 0
	if g.Scores(&g.Cells[row][col]) {
		score++
	}
	for row != n-1 || col != n-1 {
		right := col+1 < n && g.Cells[row][col+1].HasCollectible
		down := row+1 < n && g.Cells[row+1][col].HasCollectible
		if right || (!down && col+1 < n) {
			col++
		} else {
			row++
		}
		if g.Scores(&g.Cells[row][col]) {
			score++
		}
	}
	return score
}
