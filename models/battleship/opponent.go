package battleship

// MoveView is everything an opponent is allowed to observe when
// choosing its next shot: its own attack grid and the full lengths
// of the enemy ships still afloat. Enemy positions never leak
// through here.
type MoveView struct {
	AttackGrid            Grid
	RemainingEnemyLengths []int
}

// Opponent supplies moves for one side of a game and hears back the
// outcome of each of its shots. The turn coordinator does not care
// whether a human input layer or the computer sits behind it.
type Opponent interface {
	Name() string
	ChooseMove(view MoveView) Coordinates
	NotifyResult(outcome AttackOutcome)
}
