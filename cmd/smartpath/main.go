// Command smartpath works on Smart Mario levels without a server.
//
//	smartpath solve configs/staircase.json     # best route of a level
//	smartpath verify --size 8 --trials 500     # cross-check the solver
//	smartpath validate                         # check every level in ./configs
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/smartmario/game/pathfinding"
)

const version = "1.0.0"

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "smartpath",
		Usage:   "solve, verify and validate Smart Mario levels offline",
		Version: version,
		Commands: []*cli.Command{
			solveCommand(),
			verifyCommand(),
			validateCommand(),
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "smartpath: %v\n", err)
		os.Exit(1)
	}
}

// output returns the writer configured on the root command.
func output(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// Route rendering characters
const (
	routeEmpty    = '*'
	routeMushroom = '#'
)

// renderRoute draws the grid with the route overlaid: '#' marks mushrooms
// the route collects, '*' the other route cells.
func renderRoute(g *pathfinding.Grid, path []pathfinding.Position) string {
	onRoute := make(map[pathfinding.Position]bool, len(path))
	for _, p := range path {
		onRoute[p] = true
	}

	var b strings.Builder
	for i := range g.Cells {
		for j := range g.Cells[i] {
			cell := &g.Cells[i][j]
			switch {
			case onRoute[cell.Position()] && cell.HasCollectible:
				b.WriteByte(routeMushroom)
			case onRoute[cell.Position()]:
				b.WriteByte(routeEmpty)
			case cell.HasCollectible:
				b.WriteByte('M')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
