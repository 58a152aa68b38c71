package pathfinding

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedGrid is the parent of every input-validation failure.
	ErrMalformedGrid = errors.New("pathfinding: malformed grid")
	// ErrEmptyGrid indicates a grid with no rows.
	ErrEmptyGrid = fmt.Errorf("%w: grid must have at least one row", ErrMalformedGrid)
	// ErrNonSquare indicates a row whose length differs from the row count.
	ErrNonSquare = fmt.Errorf("%w: grid must be square", ErrMalformedGrid)
	// ErrCellCoordinates indicates a cell whose Row/Col disagree with its index.
	ErrCellCoordinates = fmt.Errorf("%w: cell coordinates do not match their position", ErrMalformedGrid)
	// ErrOutOfBounds indicates a position outside the grid.
	ErrOutOfBounds = errors.New("pathfinding: position out of bounds")
	// ErrInconsistentLabels indicates that reconstruction could not find the
	// next waypoint. It means the labels and the requested maximum disagree.
	ErrInconsistentLabels = errors.New("pathfinding: worthiness labels are inconsistent")
)
