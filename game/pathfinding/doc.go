// Package pathfinding computes the best mushroom-collecting route through a
// square level grid.
//
// Movement is restricted to single steps right or down, so every route from
// the start cell (0,0) to the goal cell (N-1,N-1) is monotonic. The package
// answers two questions about a populated grid:
//
//   - how many collectibles the best monotonic route can pick up, and
//   - one concrete route that achieves it.
//
// The computation has two phases sharing only the Grid:
//
//  1. LabelWorthiness sweeps the anti-diagonals from the goal back to the
//     start and gives every collectible a worthiness: the length of the
//     longest chain of collectibles reachable from it (itself included).
//  2. ReconstructPath walks from the start, repeatedly jumping to the first
//     cell (row-major from the current position) labelled with the next
//     wanted worthiness, and emits right-then-down elbow segments between
//     waypoints until the goal is reached.
//
// ComputeMaxCollectiblePath runs both phases. The start and goal cells never
// count as collectibles, even when flagged.
//
// The package holds no global state. A Grid is not safe for concurrent use;
// build a fresh one per round.
//
// Usage:
//
//	g, err := pathfinding.NewGridFromFlags(flags)
//	if err != nil {
//		return err
//	}
//	res, err := pathfinding.ComputeMaxCollectiblePath(g)
//	if err != nil {
//		return err
//	}
//	fmt.Println(res.MaxWorthiness, res.Positions())
package pathfinding
