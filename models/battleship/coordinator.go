package battleship

import "fmt"

// TurnCoordinator alternates moves between the two opponents of a
// game until one fleet is exhausted. Index 0 drives the host side.
// Everything runs on the caller's goroutine; a turn only suspends
// inside ChooseMove, which for a human side blocks on input.
type TurnCoordinator struct {
	game      *Game
	opponents [2]Opponent
	active    int
}

func NewTurnCoordinator(game *Game, host, join Opponent) *TurnCoordinator {
	tc := &TurnCoordinator{
		game:      game,
		opponents: [2]Opponent{host, join},
	}
	if !game.FetchPlayer(true).IsTurn() {
		tc.active = 1
	}
	return tc
}

// PlayTurn runs one attack by the active opponent and hands the turn
// over unless the shot ended the game.
func (tc *TurnCoordinator) PlayTurn() (AttackOutcome, error) {
	attacker := tc.game.FetchPlayer(tc.active == 0)
	defender := tc.game.GetOtherPlayer(attacker)

	view := MoveView{
		AttackGrid:            attacker.AttackGrid(),
		RemainingEnemyLengths: defender.Fleet().RemainingLengths(),
	}

	move := tc.opponents[tc.active].ChooseMove(view)
	outcome, err := tc.game.Attack(attacker, move)
	if err != nil {
		return AttackOutcome{}, err
	}

	tc.opponents[tc.active].NotifyResult(outcome)

	if !outcome.FleetExhausted {
		tc.active = 1 - tc.active
	}
	return outcome, nil
}

// Run plays turns until a winner emerges. maxTurns caps the loop so a
// misbehaving opponent cannot spin it forever.
func (tc *TurnCoordinator) Run(maxTurns int) (Opponent, error) {
	for i := 0; i < maxTurns; i++ {
		outcome, err := tc.PlayTurn()
		if err != nil {
			return nil, err
		}
		if outcome.FleetExhausted {
			return tc.opponents[tc.active], nil
		}
	}
	return nil, fmt.Errorf("no winner after %d turns", maxTurns)
}
