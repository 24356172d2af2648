package bot

import (
	mb "github.com/gridshot/battleship-ai/models/battleship"
)

type huntPhase uint8

const (
	// no live hit to work from; shots come from the probability map
	phaseIdle huntPhase = iota
	// one or more hits on a ship whose axis is still unknown
	phaseUndirected
	// the ship's axis is known; shots walk the line
	phaseDirected
)

type huntState struct {
	phase     huntPhase
	lastHit   mb.Coordinates
	direction mb.Orientation
	queue     []mb.Coordinates
}

// reset is the single place hunt state is cleared. It runs at exactly
// two points: a ship sank, or a hunt line ran out of candidates.
func (hs *huntState) reset() {
	*hs = huntState{}
}

// push appends in-bounds, not-yet-attacked candidates in discovery order.
func (hs *huntState) push(attackGrid mb.Grid, candidates ...mb.Coordinates) {
	for _, c := range candidates {
		if attackGrid.Contains(c) && !attackGrid.IsAttacked(c) {
			hs.queue = append(hs.queue, c)
		}
	}
}

// pop removes the oldest queued candidate that is still un-attacked.
func (hs *huntState) pop(attackGrid mb.Grid) (mb.Coordinates, bool) {
	for len(hs.queue) > 0 {
		c := hs.queue[0]
		hs.queue = hs.queue[1:]
		if !attackGrid.IsAttacked(c) {
			return c, true
		}
	}
	return mb.Coordinates{}, false
}

// TargetingEngine picks the computer's shots. With no live hit it
// fires at the highest-weight cell of a probability map over the
// remaining ship placements; after a hit it switches to a directional
// hunt that walks the suspected ship's line until the ship sinks or
// the line is exhausted.
type TargetingEngine struct {
	state huntState
}

func NewTargetingEngine() *TargetingEngine {
	return &TargetingEngine{}
}

// ChooseTarget returns the next cell to attack. It never proposes an
// already-attacked cell. Selection priority: queued candidates first,
// then neighbors of the last hit, then the probability map.
func (te *TargetingEngine) ChooseTarget(attackGrid mb.Grid, remainingLengths []int) mb.Coordinates {
	if c, ok := te.state.pop(attackGrid); ok {
		return c
	}

	if te.state.phase != phaseIdle {
		if c, ok := te.chooseAlongHunt(attackGrid); ok {
			return c
		}
		// hunt line exhausted without sinking anything
		te.state.reset()
	}

	return argmaxCell(ProbabilityMap(attackGrid, remainingLengths))
}

// chooseAlongHunt picks among the cells adjacent to the last hit:
// two along the known axis, or all four when the axis is unknown.
func (te *TargetingEngine) chooseAlongHunt(attackGrid mb.Grid) (mb.Coordinates, bool) {
	last := te.state.lastHit

	var moves []mb.Coordinates
	if te.state.phase == phaseDirected {
		if te.state.direction == mb.OrientationHorizontal {
			moves = []mb.Coordinates{
				mb.NewCoordinates(last.Row, last.Col-1),
				mb.NewCoordinates(last.Row, last.Col+1),
			}
		} else {
			moves = []mb.Coordinates{
				mb.NewCoordinates(last.Row-1, last.Col),
				mb.NewCoordinates(last.Row+1, last.Col),
			}
		}
	} else {
		moves = []mb.Coordinates{
			mb.NewCoordinates(last.Row-1, last.Col),
			mb.NewCoordinates(last.Row+1, last.Col),
			mb.NewCoordinates(last.Row, last.Col-1),
			mb.NewCoordinates(last.Row, last.Col+1),
		}
	}

	valid := moves[:0]
	for _, c := range moves {
		if attackGrid.Contains(c) && !attackGrid.IsAttacked(c) {
			valid = append(valid, c)
		}
	}

	if len(valid) == 0 {
		return mb.Coordinates{}, false
	}
	// which neighbor gets tried first does not matter for correctness
	return valid[botIntn(len(valid))], true
}

// ObserveResult folds the outcome of the engine's own shot back into
// the hunt state. The attack grid passed in must already reflect the
// shot.
func (te *TargetingEngine) ObserveResult(attackGrid mb.Grid, outcome mb.AttackOutcome) {
	if outcome.State != mb.CellHit {
		// a miss only removed one candidate; the hunt carries on
		return
	}

	if outcome.SunkShipName != "" {
		// nothing left to chase on a dead ship
		te.state.reset()
		return
	}

	hit := outcome.Target

	if te.state.phase == phaseIdle {
		te.state.phase = phaseUndirected
		te.state.lastHit = hit
		return
	}

	prev := te.state.lastHit
	if hit.Row == prev.Row {
		te.state.direction = mb.OrientationHorizontal
		te.state.phase = phaseDirected
	} else if hit.Col == prev.Col {
		te.state.direction = mb.OrientationVertical
		te.state.phase = phaseDirected
	}

	// extend the line one step past both extremities of the two
	// most recent hits
	if te.state.phase == phaseDirected {
		if te.state.direction == mb.OrientationHorizontal {
			te.state.push(attackGrid,
				mb.NewCoordinates(hit.Row, min(hit.Col, prev.Col)-1),
				mb.NewCoordinates(hit.Row, max(hit.Col, prev.Col)+1),
			)
		} else {
			te.state.push(attackGrid,
				mb.NewCoordinates(min(hit.Row, prev.Row)-1, hit.Col),
				mb.NewCoordinates(max(hit.Row, prev.Row)+1, hit.Col),
			)
		}
	}

	te.state.lastHit = hit
}

// ProbabilityMap weighs every un-attacked cell by the number of
// remaining-ship placements that could still run through it, plus a
// baseline of 1. Attacked cells weigh 0. The weights are unnormalized
// counts, recomputed from scratch on every call.
func ProbabilityMap(attackGrid mb.Grid, remainingLengths []int) [][]int {
	size := attackGrid.Size()

	weights := make([][]int, size)
	for row := range weights {
		weights[row] = make([]int, size)
		for col := range weights[row] {
			if !attackGrid.IsAttacked(mb.NewCoordinates(row, col)) {
				weights[row][col] = 1
			}
		}
	}

	validator := mb.NewPlacementValidator(size)

	for _, length := range remainingLengths {
		for row := 0; row < size; row++ {
			for col := 0; col < size; col++ {
				origin := mb.NewCoordinates(row, col)
				for _, orientation := range []mb.Orientation{mb.OrientationHorizontal, mb.OrientationVertical} {
					if !validator.ValidatePlacement(length, origin, orientation) {
						continue
					}
					run := mb.PlacementRun(origin, orientation, length)
					if anyAttacked(attackGrid, run) {
						continue
					}
					for _, c := range run {
						weights[c.Row][c.Col]++
					}
				}
			}
		}
	}

	return weights
}

func anyAttacked(attackGrid mb.Grid, run []mb.Coordinates) bool {
	for _, c := range run {
		if attackGrid.IsAttacked(c) {
			return true
		}
	}
	return false
}

// argmaxCell returns the first maximum-weight cell in row-major order.
func argmaxCell(weights [][]int) mb.Coordinates {
	best := mb.NewCoordinates(0, 0)
	bestWeight := -1

	for row := range weights {
		for col, w := range weights[row] {
			if w > bestWeight {
				bestWeight = w
				best = mb.NewCoordinates(row, col)
			}
		}
	}
	return best
}
