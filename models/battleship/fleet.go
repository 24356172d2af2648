package battleship

import "sort"

// Fleet maps ship name to the ship still afloat. Ships are added
// once during deployment and removed the moment they sink, so an
// empty fleet means every ship is sunk.
type Fleet struct {
	ships map[string]*Ship
}

func NewFleet() *Fleet {
	return &Fleet{
		ships: make(map[string]*Ship, len(DefaultShipClasses())),
	}
}

// Deploy marks the placement run as ship cells on the grid and
// records the coordinates under the ship name. The placement must
// already be validated; this operation performs no checks.
func (f *Fleet) Deploy(grid Grid, name string, length int, origin Coordinates, orientation Orientation) {
	ship, prs := f.ships[name]
	if !prs {
		ship = NewShip(name, length)
		f.ships[name] = ship
	}

	for _, c := range PlacementRun(origin, orientation, length) {
		grid[c.Row][c.Col] = CellShip
		ship.occupy(c)
	}
}

// RegisterHit removes the coordinate from whichever ship occupies it.
// Placement rules forbid overlap, so at most one ship matches. If the
// hit empties the ship it is removed from the fleet and its name is
// returned; otherwise the returned name is empty.
func (f *Fleet) RegisterHit(c Coordinates) string {
	for name, ship := range f.ships {
		if !ship.registerHit(c) {
			continue
		}
		if ship.isSunk() {
			delete(f.ships, name)
			return name
		}
		break
	}
	return ""
}

func (f *Fleet) AllSunk() bool {
	return len(f.ships) == 0
}

func (f *Fleet) ShipCount() int {
	return len(f.ships)
}

func (f *Fleet) FetchShip(name string) (*Ship, bool) {
	ship, prs := f.ships[name]
	return ship, prs
}

// RemainingLengths returns the full lengths of the unsunk ships,
// sorted ascending. The targeting engine derives its probability
// map from these.
func (f *Fleet) RemainingLengths() []int {
	lengths := make([]int, 0, len(f.ships))
	for _, ship := range f.ships {
		lengths = append(lengths, ship.length)
	}

	sort.Ints(lengths)
	return lengths
}
