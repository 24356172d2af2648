package error

import "fmt"

const (
	ConstErrAttackFailed    = "attack operation failed"
	ConstErrPlacementFailed = "ship placement failed"
)

func ErrGameNotExists(gameUuid string) error {
	return fmt.Errorf("game with this uuid does not exist, uuid: %s", gameUuid)
}

func ErrPlayerNotExist(playerUuid string) error {
	return fmt.Errorf("player with this uuid does not exist, uuid: %s", playerUuid)
}

func ErrSessionNotFound(sessionId string) error {
	return fmt.Errorf("session with this id does not exist, id: %s", sessionId)
}

func ErrSessionIsNil(sessionId string) error {
	return fmt.Errorf("session exists but is nil, id: %s", sessionId)
}

func ErrInvalidGameDifficulty() error {
	return fmt.Errorf("game difficulty must be easy, normal or hard")
}

func ErrInvalidGameMode() error {
	return fmt.Errorf("game mode must be duel or solo")
}

func ErrCoordinateOutOfBound(row, col int) error {
	return fmt.Errorf("incoming coordinate is out of game grid bound\trow: %d\tcol: %d", row, col)
}

func ErrPositionAlreadyAttacked(row, col int) error {
	return fmt.Errorf("this position was attacked in previous rounds\trow: %d\tcol: %d", row, col)
}

func ErrIllegalPlacement(ship string, row, col int) error {
	return fmt.Errorf("ship placement out of bound or overlapping an existing ship\tship: %s\trow: %d\tcol: %d", ship, row, col)
}

func ErrShipNotInFleet(ship string) error {
	return fmt.Errorf("ship with this name does not exist in the fleet: %s", ship)
}

func ErrFleetIncomplete(placed, wanted int) error {
	return fmt.Errorf("all ships must be placed before ready\tplaced: %d\twanted: %d", placed, wanted)
}

func ErrNotPlayerTurn(playerUuid string) error {
	return fmt.Errorf("it is not the turn of this player, uuid: %s", playerUuid)
}

func ErrFleetDeploymentFailed(ship string) error {
	return fmt.Errorf("could not find a legal random position for ship: %s", ship)
}
