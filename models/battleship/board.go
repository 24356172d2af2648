package battleship

type CellState uint8

const (
	CellEmpty CellState = iota
	CellShip
	CellHit
	CellMiss
)

type Orientation uint8

const (
	OrientationHorizontal Orientation = iota
	OrientationVertical
)

type Coordinates struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewCoordinates(row, col int) Coordinates {
	return Coordinates{Row: row, Col: col}
}

type Grid [][]CellState

// Creates a new default grid.
// All cells start as CellEmpty.
func NewGrid(gridSize int) Grid {
	grid := make(Grid, gridSize)

	for i := 0; i < gridSize; i++ {
		grid[i] = make([]CellState, gridSize)
	}
	return grid
}

func (g Grid) Size() int {
	return len(g)
}

func (g Grid) Contains(c Coordinates) bool {
	return c.Row >= 0 && c.Row < len(g) && c.Col >= 0 && c.Col < len(g)
}

// Reports whether this cell was already attacked.
// Hit and Miss are terminal states for a cell.
func (g Grid) IsAttacked(c Coordinates) bool {
	state := g[c.Row][c.Col]
	return state == CellHit || state == CellMiss
}
