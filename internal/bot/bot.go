// Package bot implements the computer opponent: random fleet
// deployment and a probability-map targeting engine with a
// hunt-then-target state machine.
package bot

import (
	mb "github.com/gridshot/battleship-ai/models/battleship"
)

// Bot drives one side of a game as a battleship.Opponent. It owns
// its player's hunt state exclusively; nothing is shared with the
// opposing side.
type Bot struct {
	name   string
	player *mb.BattleshipPlayer
	engine *TargetingEngine
}

var _ mb.Opponent = (*Bot)(nil)

// NewBot wires a targeting engine to the bot-owned player of a game.
// The player's fleet must be deployed separately with DeployFleet.
func NewBot(name string, player *mb.BattleshipPlayer) *Bot {
	return &Bot{
		name:   name,
		player: player,
		engine: NewTargetingEngine(),
	}
}

func (b *Bot) Name() string {
	return b.name
}

func (b *Bot) Player() *mb.BattleshipPlayer {
	return b.player
}

func (b *Bot) ChooseMove(view mb.MoveView) mb.Coordinates {
	return b.engine.ChooseTarget(view.AttackGrid, view.RemainingEnemyLengths)
}

func (b *Bot) NotifyResult(outcome mb.AttackOutcome) {
	b.engine.ObserveResult(b.player.AttackGrid(), outcome)
}
