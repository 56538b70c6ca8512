package agent

import (
	"onitama/game"
)

// OnePly scores every legal move by the evaluation of the resulting state from
// the mover's perspective. Greedy keeps the highest score, Worst the lowest;
// the first move in generation order wins ties.
type OnePly struct {
	name     string
	evaluate game.Evaluate
	better   func(candidate, best int) bool
}

// NewGreedy returns the one-ply maximiser.
func NewGreedy() *OnePly {
	return &OnePly{
		name:     "greedy",
		evaluate: game.EvaluatePosition,
		better:   func(candidate, best int) bool { return candidate > best },
	}
}

// NewWorst returns the one-ply minimiser, a deliberately weak opponent.
func NewWorst() *OnePly {
	return &OnePly{
		name:     "worst",
		evaluate: game.EvaluatePosition,
		better:   func(candidate, best int) bool { return candidate < best },
	}
}

func (a *OnePly) Name() string { return a.name }

func (a *OnePly) Choose(state game.GameState) (game.Move, error) {
	moves, err := legalMoves(state)
	if err != nil {
		return game.Move{}, err
	}

	mover := state.Current
	var best game.Move
	var bestScore int
	for i, m := range moves {
		next, err := state.Apply(m)
		if err != nil {
			return game.Move{}, err
		}
		score := a.evaluate(next, mover)
		if i == 0 || a.better(score, bestScore) {
			best, bestScore = m, score
		}
	}
	return best, nil
}
