package battleship

import (
	cerr "github.com/gridshot/battleship-ai/internal/error"
)

const (
	GameDifficultyEasy uint8 = iota
	GameDifficultyNormal
	GameDifficultyHard
)

const (
	// two human players over two sessions
	GameModeDuel uint8 = iota
	// one human against the computer opponent
	GameModeSolo
)

const (
	GridSizeEasy   int = 8
	GridSizeNormal int = 7
	GridSizeHard   int = 6
)

type Game struct {
	uuid          string
	mode          uint8
	difficulty    uint8
	gridSize      int
	isFinished    bool
	rematchCalled bool
	hostPlayer    *BattleshipPlayer
	joinPlayer    *BattleshipPlayer
}

func newGame(difficulty, mode uint8, gameUuid string) *Game {
	game := &Game{
		uuid:       gameUuid,
		mode:       mode,
		difficulty: difficulty,
	}

	switch difficulty {
	case GameDifficultyNormal:
		game.gridSize = GridSizeNormal
	case GameDifficultyHard:
		game.gridSize = GridSizeHard
	default:
		game.gridSize = GridSizeEasy
	}

	return game
}

func (g *Game) Uuid() string {
	return g.uuid
}

func (g *Game) Mode() uint8 {
	return g.mode
}

func (g *Game) GridSize() int {
	return g.gridSize
}

func (g *Game) IsFinished() bool {
	return g.isFinished
}

func (g *Game) CreateHostPlayer(sessionId string) *BattleshipPlayer {
	g.hostPlayer = NewPlayer(true, true, sessionId, g.gridSize)
	return g.hostPlayer
}

func (g *Game) CreateJoinPlayer(sessionId string) *BattleshipPlayer {
	g.joinPlayer = NewPlayer(false, false, sessionId, g.gridSize)
	return g.joinPlayer
}

// CreateBotPlayer attaches the computer-owned side of a solo game.
func (g *Game) CreateBotPlayer() *BattleshipPlayer {
	g.joinPlayer = NewBotPlayer(g.gridSize)
	return g.joinPlayer
}

func (g *Game) FetchPlayer(isHost bool) *BattleshipPlayer {
	if isHost {
		return g.hostPlayer
	}
	return g.joinPlayer
}

func (g *Game) GetOtherPlayer(p *BattleshipPlayer) *BattleshipPlayer {
	if p == g.hostPlayer {
		return g.joinPlayer
	}
	if p == g.joinPlayer {
		return g.hostPlayer
	}
	return nil
}

func (g *Game) FindPlayer(playerUuid string) (*BattleshipPlayer, error) {
	for _, p := range []*BattleshipPlayer{g.hostPlayer, g.joinPlayer} {
		if p != nil && p.uuid == playerUuid {
			return p, nil
		}
	}
	return nil, cerr.ErrPlayerNotExist(playerUuid)
}

func (g *Game) IsReadyToStart() bool {
	return g.hostPlayer != nil && g.hostPlayer.isReady &&
		g.joinPlayer != nil && g.joinPlayer.isReady
}

// AttackOutcome is what the display and session layers need to
// render a resolved shot.
type AttackOutcome struct {
	Target         Coordinates
	State          CellState
	SunkShipName   string
	FleetExhausted bool
}

// Attack resolves one shot by the attacker against the other side.
// Invalid coordinates and repeated attacks are rejected here, before
// any grid or fleet mutation, so the game state stays consistent no
// matter what the boundary feeds in. A fleet-exhausting hit finishes
// the game and settles both match statuses.
func (g *Game) Attack(attacker *BattleshipPlayer, c Coordinates) (AttackOutcome, error) {
	if !attacker.isTurn {
		return AttackOutcome{}, cerr.ErrNotPlayerTurn(attacker.uuid)
	}
	if !attacker.attackGrid.Contains(c) {
		return AttackOutcome{}, cerr.ErrCoordinateOutOfBound(c.Row, c.Col)
	}
	if attacker.attackGrid.IsAttacked(c) {
		return AttackOutcome{}, cerr.ErrPositionAlreadyAttacked(c.Row, c.Col)
	}

	defender := g.GetOtherPlayer(attacker)
	state, sunkName := defender.sufferAttack(c)
	attacker.recordShot(c, state)

	attacker.isTurn = false
	defender.isTurn = true

	outcome := AttackOutcome{
		Target:       c,
		State:        state,
		SunkShipName: sunkName,
	}

	if defender.fleet.AllSunk() {
		outcome.FleetExhausted = true
		attacker.setMatchStatus(PlayerMatchStatusWon)
		defender.setMatchStatus(PlayerMatchStatusLost)
		g.isFinished = true
	}

	return outcome, nil
}

func (g *Game) IsRematchAlreadyCalled() bool {
	return g.rematchCalled
}

func (g *Game) CallRematch() {
	g.rematchCalled = true
}

// Reset prepares both sides for a rematch. The previous join side
// starts the new match to alternate the first move.
func (g *Game) Reset() error {
	if g.hostPlayer == nil || g.joinPlayer == nil {
		return cerr.ErrPlayerNotExist("")
	}

	g.hostPlayer.resetForRematch(g.gridSize, false)
	g.joinPlayer.resetForRematch(g.gridSize, true)
	g.isFinished = false
	g.rematchCalled = false
	return nil
}
