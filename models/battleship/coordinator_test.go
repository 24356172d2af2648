package battleship

import "testing"

// scriptedOpponent plays a fixed list of moves and records what it
// hears back.
type scriptedOpponent struct {
	name     string
	moves    []Coordinates
	next     int
	outcomes []AttackOutcome
}

var _ Opponent = (*scriptedOpponent)(nil)

func (so *scriptedOpponent) Name() string {
	return so.name
}

func (so *scriptedOpponent) ChooseMove(view MoveView) Coordinates {
	move := so.moves[so.next]
	so.next++
	return move
}

func (so *scriptedOpponent) NotifyResult(outcome AttackOutcome) {
	so.outcomes = append(so.outcomes, outcome)
}

func TestTurnCoordinatorRunsToAWinner(t *testing.T) {
	game, _, _ := newTestGame(t)

	// the host script walks every join fleet cell; the join script
	// shoots open water and can never win
	hostMoves := make([]Coordinates, 0, 9)
	for i, class := range DefaultShipClasses() {
		for col := 0; col < class.Length; col++ {
			hostMoves = append(hostMoves, NewCoordinates(i*2, col))
		}
	}
	joinMoves := make([]Coordinates, 0, 8)
	for col := 0; col < 8; col++ {
		joinMoves = append(joinMoves, NewCoordinates(7, col))
	}

	hostOpp := &scriptedOpponent{name: "host", moves: hostMoves}
	joinOpp := &scriptedOpponent{name: "join", moves: joinMoves}

	winner, err := NewTurnCoordinator(game, hostOpp, joinOpp).Run(100)
	if err != nil {
		t.Fatalf("failed coordinator run: %v", err)
	}
	if winner != hostOpp {
		t.Fatalf("expected host to win\tgot: %s", winner.Name())
	}
	if !game.IsFinished() {
		t.Fatal("expected finished game")
	}

	if len(hostOpp.outcomes) != 9 {
		t.Fatalf("expected 9 host outcomes\tgot: %d", len(hostOpp.outcomes))
	}
	final := hostOpp.outcomes[len(hostOpp.outcomes)-1]
	if !final.FleetExhausted || final.SunkShipName != ShipNameBattleship {
		t.Fatalf("unexpected final outcome: %+v", final)
	}
	for _, outcome := range joinOpp.outcomes {
		if outcome.State != CellMiss {
			t.Fatalf("expected join to hit only water\tgot: %+v", outcome)
		}
	}
}

func TestTurnCoordinatorStartsWithTurnHolder(t *testing.T) {
	game, host, join := newTestGame(t)
	host.SetTurn(false)
	join.SetTurn(true)

	hostOpp := &scriptedOpponent{name: "host", moves: []Coordinates{NewCoordinates(7, 7)}}
	joinOpp := &scriptedOpponent{name: "join", moves: []Coordinates{NewCoordinates(7, 0)}}

	tc := NewTurnCoordinator(game, hostOpp, joinOpp)
	if _, err := tc.PlayTurn(); err != nil {
		t.Fatalf("failed turn: %v", err)
	}
	if len(joinOpp.outcomes) != 1 || len(hostOpp.outcomes) != 0 {
		t.Fatal("expected the join side to move first")
	}

	if _, err := tc.PlayTurn(); err != nil {
		t.Fatalf("failed turn: %v", err)
	}
	if len(hostOpp.outcomes) != 1 {
		t.Fatal("expected the host side to move second")
	}
}

func TestTurnCoordinatorMaxTurns(t *testing.T) {
	game, _, _ := newTestGame(t)

	hostOpp := &scriptedOpponent{name: "host", moves: []Coordinates{NewCoordinates(7, 0)}}
	joinOpp := &scriptedOpponent{name: "join", moves: []Coordinates{NewCoordinates(7, 7)}}

	if _, err := NewTurnCoordinator(game, hostOpp, joinOpp).Run(2); err == nil {
		t.Fatal("expected error when the turn cap is reached")
	}
}
