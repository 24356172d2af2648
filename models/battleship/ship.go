package battleship

const (
	ShipNameDestroyer  = "Destroyer"
	ShipNameCruiser    = "Cruiser"
	ShipNameBattleship = "Battleship"
)

type ShipClass struct {
	Name   string
	Length int
}

// The standard fleet every player deploys at setup.
func DefaultShipClasses() []ShipClass {
	return []ShipClass{
		{Name: ShipNameDestroyer, Length: 2},
		{Name: ShipNameCruiser, Length: 3},
		{Name: ShipNameBattleship, Length: 4},
	}
}

type Ship struct {
	name   string
	length int

	// remaining unhit coordinates, in deployment order.
	// The ship is sunk once this is empty.
	coords []Coordinates
}

func NewShip(name string, length int) *Ship {
	return &Ship{
		name:   name,
		length: length,
		coords: make([]Coordinates, 0, length),
	}
}

func (sh *Ship) Name() string {
	return sh.name
}

func (sh *Ship) Length() int {
	return sh.length
}

func (sh *Ship) Coordinates() []Coordinates {
	return sh.coords
}

func (sh *Ship) occupy(c Coordinates) {
	sh.coords = append(sh.coords, c)
}

// Removes the coordinate from the ship if it occupies it.
// Reports whether the coordinate belonged to this ship.
func (sh *Ship) registerHit(c Coordinates) bool {
	for i, sc := range sh.coords {
		if sc == c {
			sh.coords = append(sh.coords[:i], sh.coords[i+1:]...)
			return true
		}
	}
	return false
}

func (sh *Ship) isSunk() bool {
	return len(sh.coords) == 0
}
