package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/mcp-training/smartmario/game/placement"
)

const fixedLevel = `{
	"name": "Fixed",
	"description": "Fixed 3x3 level",
	"grid_size": 3,
	"layout": [".M.", "..M", "..."],
	"move_timeout_seconds": 0,
	"messages": {"welcome": "Welcome!", "victory": "Done: %d of %d"}
}`

const randomLevel = `name: Random
description: Random 6x6 level
grid_size: 6
move_timeout_seconds: 3
messages:
  welcome: Go!
  victory: "Done: %d of %d"
`

const badLevel = `{
	"name": "Bad",
	"description": "Victory text without placeholders",
	"grid_size": 3,
	"layout": [".M.", "..M", "..."],
	"messages": {"welcome": "Welcome!", "victory": "Done"}
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	err := app.Run(context.Background(), append([]string{"smartpath"}, args...))
	return out.String(), err
}

func TestSolve_FixedLevel(t *testing.T) {
	path := writeFile(t, t.TempDir(), "fixed.json", fixedLevel)

	out, err := run(t, "solve", path)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	for _, want := range []string{"fixed.json (Fixed, 3x3)", "max mushrooms: 2", "route: right right down down", "*#*\n..#\n..*\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}

func TestSolve_LayoutFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "grid.txt", "\n.M.\n...\nMM.\n\n")

	out, err := run(t, "solve", path)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	for _, want := range []string{"max mushrooms: 2", "route: right down down right", "*#.\n.*.\nM#*\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}

func TestSolve_RandomLevelIsSeeded(t *testing.T) {
	path := writeFile(t, t.TempDir(), "random.yaml", randomLevel)

	first, err := run(t, "solve", "--seed", "7", path)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	second, err := run(t, "solve", "--seed", "7", path)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if first != second {
		t.Errorf("Expected identical output for the same seed:\n%s\n%s", first, second)
	}
	if !strings.Contains(first, "(Random, 6x6)") {
		t.Errorf("Unexpected output:\n%s", first)
	}
}

func TestSolve_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := run(t, "solve"); err == nil || !strings.Contains(err.Error(), "no level files") {
		t.Errorf("Expected no-files error, got %v", err)
	}
	if _, err := run(t, "solve", filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
	bad := writeFile(t, dir, "bad.txt", ".MX\n...\n...\n")
	if _, err := run(t, "solve", bad); err == nil || !strings.Contains(err.Error(), "invalid character") {
		t.Errorf("Expected layout error, got %v", err)
	}
}

func TestVerify(t *testing.T) {
	out, err := run(t, "verify", "--size", "6", "--trials", "40", "--seed", "3")
	if err != nil {
		t.Fatalf("verify failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "verified 40 grids of 6x6: 0 failures") {
		t.Errorf("Unexpected output:\n%s", out)
	}
}

func TestVerify_Density(t *testing.T) {
	for _, density := range []string{"10", "50", "100"} {
		out, err := run(t, "verify", "--size", "5", "--trials", "20", "--density", density)
		if err != nil {
			t.Errorf("verify --density %s failed: %v\n%s", density, err, out)
		}
	}
}

func TestVerify_FlagErrors(t *testing.T) {
	cases := [][]string{
		{"verify", "--size", "0"},
		{"verify", "--size", "11"},
		{"verify", "--trials", "0"},
		{"verify", "--density", "101"},
	}
	for _, args := range cases {
		if _, err := run(t, args...); err == nil {
			t.Errorf("Expected error for %v", args)
		}
	}
}

func TestVerifyGrid(t *testing.T) {
	grid, err := placement.Populate(4, placement.NewRandom(42, 0))
	if err != nil {
		t.Fatalf("Populate failed: %v", err)
	}
	if err := verifyGrid(grid); err != nil {
		t.Errorf("verifyGrid failed: %v", err)
	}
}

func TestValidate_Files(t *testing.T) {
	dir := t.TempDir()
	fixed := writeFile(t, dir, "fixed.json", fixedLevel)
	random := writeFile(t, dir, "random.yaml", randomLevel)

	out, err := run(t, "validate", fixed, random)
	if err != nil {
		t.Fatalf("validate failed: %v\n%s", err, out)
	}
	for _, want := range []string{
		"fixed layout: 2 mushrooms, best route collects 2",
		"move timer: off",
		"move timer: 3s",
		"random placement: up to 14 mushrooms per round",
		"All 2 levels are valid",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}

func TestValidate_ReportsErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "fixed.json", fixedLevel)
	writeFile(t, dir, "bad.json", badLevel)
	writeFile(t, dir, "notes.md", "not a level")

	out, err := run(t, "validate", "--dir", dir)
	if err == nil {
		t.Fatalf("Expected validation error, output:\n%s", out)
	}
	if !strings.Contains(err.Error(), "1 of 2 level files are invalid") {
		t.Errorf("Unexpected error %v", err)
	}
	if !strings.Contains(out, "INVALID") || !strings.Contains(out, "messages.victory") {
		t.Errorf("Expected victory message error in output:\n%s", out)
	}
}

func TestValidate_ShippedLevels(t *testing.T) {
	out, err := run(t, "validate", "--dir", filepath.Join("..", "..", "configs"))
	if err != nil {
		t.Fatalf("Shipped levels failed validation: %v\n%s", err, out)
	}
}

func TestValidateLevel_UnsupportedExtension(t *testing.T) {
	path := writeFile(t, t.TempDir(), "level.toml", "name = 'x'")

	result := validateLevel(path)
	if result.Valid {
		t.Fatal("Expected invalid result")
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "unsupported extension") {
		t.Errorf("Unexpected errors %v", result.Errors)
	}
}

func TestGreedyScore(t *testing.T) {
	layout, err := placement.ParseLayout([]string{".M.", "...", "MM."})
	if err != nil {
		t.Fatalf("ParseLayout failed: %v", err)
	}
	grid, err := placement.Populate(layout.Size(), layout)
	if err != nil {
		t.Fatalf("Populate failed: %v", err)
	}

	if got := greedyScore(grid); got != 1 {
		t.Errorf("Expected greedy route to collect 1, got %d", got)
	}

	path := writeFile(t, t.TempDir(), "trap.json", `{
		"name": "Trap", "description": "Greedy trap", "grid_size": 3,
		"layout": [".M.", "...", "MM."],
		"messages": {"welcome": "Hi", "victory": "%d/%d"}
	}`)
	result := validateLevel(path)
	if !result.Valid {
		t.Fatalf("Expected valid level, got %v", result.Errors)
	}
	found := false
	for _, note := range result.Notes {
		if note == "greedy route collects only 1" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected greedy note, got %v", result.Notes)
	}
}
