package agent

import (
	"time"

	"onitama/game"
	"onitama/searcher"
	"onitama/searcher/mcts"
)

// MonteCarlo runs tree-parallel MCTS for a fixed wall-clock budget and keeps
// the tree between its moves.
type MonteCarlo struct {
	mcts *mcts.MCTS
	last searcher.SearchMetrics
}

func NewMonteCarlo(budget time.Duration, goroutines int, options ...mcts.Option) *MonteCarlo {
	options = append([]mcts.Option{mcts.WithDuration(budget)}, options...)
	return &MonteCarlo{mcts: mcts.NewMCTS(goroutines, options...)}
}

func (a *MonteCarlo) Name() string { return "mcts" }

func (a *MonteCarlo) Choose(state game.GameState) (game.Move, error) {
	move, metrics, err := a.mcts.Search(state)
	if err != nil {
		return game.Move{}, err
	}
	a.last = metrics
	return move, nil
}

func (a *MonteCarlo) LastMetrics() searcher.SearchMetrics {
	return a.last
}
