package battleship

import (
	"sync"

	cerr "github.com/gridshot/battleship-ai/internal/error"

	"github.com/google/uuid"
)

type GameManager interface {
	CreateGame(difficulty, mode uint8) (*Game, error)
	FetchGame(gameUuid string) (*Game, error)
	TerminateGame(gameUuid string)
}

type BattleshipGameManager struct {
	games map[string]*Game
	mu    sync.RWMutex
}

var _ GameManager = (*BattleshipGameManager)(nil)

func NewBattleshipGameManager() *BattleshipGameManager {
	return &BattleshipGameManager{
		games: make(map[string]*Game, 10),
	}
}

func (bgm *BattleshipGameManager) CreateGame(difficulty, mode uint8) (*Game, error) {
	if !isDifficultyValid(difficulty) {
		return nil, cerr.ErrInvalidGameDifficulty()
	}
	if mode != GameModeDuel && mode != GameModeSolo {
		return nil, cerr.ErrInvalidGameMode()
	}

	gameUuid := uuid.NewString()[:6]
	game := newGame(difficulty, mode, gameUuid)

	bgm.mu.Lock()
	bgm.games[gameUuid] = game
	bgm.mu.Unlock()

	return game, nil
}

func (bgm *BattleshipGameManager) FetchGame(gameUuid string) (*Game, error) {
	bgm.mu.RLock()
	game, prs := bgm.games[gameUuid]
	bgm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrGameNotExists(gameUuid)
	}

	return game, nil
}

func (bgm *BattleshipGameManager) TerminateGame(gameUuid string) {
	bgm.mu.Lock()
	delete(bgm.games, gameUuid)
	bgm.mu.Unlock()
}

func isDifficultyValid(difficulty uint8) bool {
	return difficulty == GameDifficultyEasy || difficulty == GameDifficultyNormal || difficulty == GameDifficultyHard
}
