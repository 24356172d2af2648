package battleship

import (
	cerr "github.com/gridshot/battleship-ai/internal/error"

	"github.com/google/uuid"
)

const (
	PlayerMatchStatusLost      = -1
	PlayerMatchStatusUndefined = 0
	PlayerMatchStatusWon       = 1
)

// BattleshipPlayer owns one side of a game: the defence grid with
// its fleet, and the attack grid recording the results of its own
// shots against the opponent. Nothing here is shared between sides.
type BattleshipPlayer struct {
	uuid        string
	sessionId   string
	isBot       bool
	isHost      bool
	isReady     bool
	isTurn      bool
	matchStatus int
	attackGrid  Grid
	defenceGrid Grid
	fleet       *Fleet
	validator   PlacementValidator
}

func NewPlayer(isHost, isTurn bool, sessionId string, gridSize int) *BattleshipPlayer {
	return &BattleshipPlayer{
		uuid:        uuid.NewString()[:10],
		sessionId:   sessionId,
		isHost:      isHost,
		isTurn:      isTurn,
		matchStatus: PlayerMatchStatusUndefined,
		attackGrid:  NewGrid(gridSize),
		defenceGrid: NewGrid(gridSize),
		fleet:       NewFleet(),
		validator:   NewPlacementValidator(gridSize),
	}
}

// NewBotPlayer creates the computer-owned side of a solo game.
// Bot players have no session attached to them.
func NewBotPlayer(gridSize int) *BattleshipPlayer {
	p := NewPlayer(false, false, "", gridSize)
	p.isBot = true
	return p
}

func (p *BattleshipPlayer) Uuid() string {
	return p.uuid
}

func (p *BattleshipPlayer) SessionId() string {
	return p.sessionId
}

func (p *BattleshipPlayer) IsBot() bool {
	return p.isBot
}

func (p *BattleshipPlayer) IsHost() bool {
	return p.isHost
}

func (p *BattleshipPlayer) IsReady() bool {
	return p.isReady
}

func (p *BattleshipPlayer) IsTurn() bool {
	return p.isTurn
}

func (p *BattleshipPlayer) SetTurn(isTurn bool) {
	p.isTurn = isTurn
}

func (p *BattleshipPlayer) MatchStatus() int {
	return p.matchStatus
}

func (p *BattleshipPlayer) IsMatchOver() bool {
	return p.matchStatus != PlayerMatchStatusUndefined
}

func (p *BattleshipPlayer) Fleet() *Fleet {
	return p.fleet
}

func (p *BattleshipPlayer) AttackGrid() Grid {
	return p.attackGrid
}

func (p *BattleshipPlayer) DefenceGrid() Grid {
	return p.defenceGrid
}

// PlaceShip validates the placement against the defence grid and
// deploys the ship if it is legal. Both a run leaving the grid and
// a run crossing an existing ship are rejected before any mutation.
func (p *BattleshipPlayer) PlaceShip(name string, length int, origin Coordinates, orientation Orientation) error {
	if !p.validator.ValidatePlacement(length, origin, orientation) {
		return cerr.ErrIllegalPlacement(name, origin.Row, origin.Col)
	}
	if p.validator.CheckOverlap(p.defenceGrid, origin, orientation, length) {
		return cerr.ErrIllegalPlacement(name, origin.Row, origin.Col)
	}

	p.fleet.Deploy(p.defenceGrid, name, length, origin, orientation)
	return nil
}

// SetReady marks the player ready once the whole default fleet is placed.
func (p *BattleshipPlayer) SetReady() error {
	if p.fleet.ShipCount() != len(DefaultShipClasses()) {
		return cerr.ErrFleetIncomplete(p.fleet.ShipCount(), len(DefaultShipClasses()))
	}
	p.isReady = true
	return nil
}

// ResetFleet drops every placed ship and clears the defence grid so
// the whole placement request can be resubmitted after a rejection.
func (p *BattleshipPlayer) ResetFleet() {
	p.defenceGrid = NewGrid(p.defenceGrid.Size())
	p.fleet = NewFleet()
	p.isReady = false
}

// sufferAttack resolves an incoming shot on the defence grid. A ship
// cell turns into a hit and the fleet registers it; anything else is
// a miss and the defence grid stays untouched.
func (p *BattleshipPlayer) sufferAttack(c Coordinates) (CellState, string) {
	if p.defenceGrid[c.Row][c.Col] != CellShip {
		return CellMiss, ""
	}

	p.defenceGrid[c.Row][c.Col] = CellHit
	return CellHit, p.fleet.RegisterHit(c)
}

// recordShot writes the outcome of this player's own shot to its
// attack grid. The position must have passed the repeat-attack
// boundary check already.
func (p *BattleshipPlayer) recordShot(c Coordinates, state CellState) {
	p.attackGrid[c.Row][c.Col] = state
}

func (p *BattleshipPlayer) setMatchStatus(status int) {
	p.matchStatus = status
}

// resetForRematch gives the player fresh grids and an empty fleet.
// Ready status drops so ships must be placed again.
func (p *BattleshipPlayer) resetForRematch(gridSize int, isTurn bool) {
	p.attackGrid = NewGrid(gridSize)
	p.defenceGrid = NewGrid(gridSize)
	p.fleet = NewFleet()
	p.isReady = false
	p.isTurn = isTurn
	p.matchStatus = PlayerMatchStatusUndefined
}
