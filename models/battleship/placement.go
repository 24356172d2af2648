package battleship

// PlacementValidator checks candidate ship placements against
// the board bounds and the current grid content. A placement is
// legal iff ValidatePlacement is true and CheckOverlap is false.
type PlacementValidator struct {
	size int
}

func NewPlacementValidator(gridSize int) PlacementValidator {
	return PlacementValidator{size: gridSize}
}

// Reports whether the run of `length` cells starting at origin
// stays within the grid. Horizontal runs grow by column, vertical
// runs by row.
func (v PlacementValidator) ValidatePlacement(length int, origin Coordinates, orientation Orientation) bool {
	if origin.Row < 0 || origin.Col < 0 {
		return false
	}

	if orientation == OrientationHorizontal {
		return origin.Row < v.size && origin.Col+length <= v.size
	}
	return origin.Col < v.size && origin.Row+length <= v.size
}

// Reports whether any cell of the run is already occupied or attacked.
// A run extending off the grid counts as overlapping, so an invalid
// placement can never slip through this check alone.
func (v PlacementValidator) CheckOverlap(grid Grid, origin Coordinates, orientation Orientation, length int) bool {
	for _, c := range PlacementRun(origin, orientation, length) {
		if !grid.Contains(c) {
			return true
		}
		if grid[c.Row][c.Col] != CellEmpty {
			return true
		}
	}
	return false
}

// PlacementRun expands a placement into the ordered coordinates it occupies.
func PlacementRun(origin Coordinates, orientation Orientation, length int) []Coordinates {
	run := make([]Coordinates, 0, length)

	for i := 0; i < length; i++ {
		if orientation == OrientationHorizontal {
			run = append(run, NewCoordinates(origin.Row, origin.Col+i))
		} else {
			run = append(run, NewCoordinates(origin.Row+i, origin.Col))
		}
	}
	return run
}
