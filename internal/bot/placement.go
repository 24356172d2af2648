package bot

import (
	cerr "github.com/gridshot/battleship-ai/internal/error"
	mb "github.com/gridshot/battleship-ai/models/battleship"
)

// placement attempts per ship; generous for the smallest grid with
// the largest ship
const maxPlacementAttempts = 500

// DeployFleet places the default fleet on the player's defence grid
// at random legal positions, retrying rejected placements the same
// way a human retries illegal input at the prompt.
func DeployFleet(p *mb.BattleshipPlayer, gridSize int) error {
	for _, class := range mb.DefaultShipClasses() {
		if err := placeShipRandomly(p, class, gridSize); err != nil {
			return err
		}
	}
	return p.SetReady()
}

func placeShipRandomly(p *mb.BattleshipPlayer, class mb.ShipClass, gridSize int) error {
	for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
		orientation := mb.OrientationHorizontal
		if botIntn(2) == 1 {
			orientation = mb.OrientationVertical
		}
		origin := mb.NewCoordinates(botIntn(gridSize), botIntn(gridSize))

		if err := p.PlaceShip(class.Name, class.Length, origin, orientation); err == nil {
			return nil
		}
	}
	return cerr.ErrFleetDeploymentFailed(class.Name)
}
