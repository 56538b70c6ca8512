package agent

import (
	"time"

	"onitama/game"
	"onitama/searcher"
)

// Minimax searches each position for a fixed wall-clock budget.
type Minimax struct {
	searcher *searcher.Searcher
	last     searcher.SearchMetrics
}

// NewMinimax builds a time-bounded search agent; extra options are passed to
// the searcher after the budget.
func NewMinimax(budget time.Duration, options ...searcher.Option) *Minimax {
	options = append([]searcher.Option{searcher.WithDuration(budget)}, options...)
	return &Minimax{searcher: searcher.NewSearcher(options...)}
}

func (a *Minimax) Name() string { return "minimax" }

func (a *Minimax) Choose(state game.GameState) (game.Move, error) {
	move, metrics, err := a.searcher.Search(state)
	if err != nil {
		return game.Move{}, err
	}
	a.last = metrics
	return move, nil
}

// LastMetrics reports the statistics of the most recent successful search.
func (a *Minimax) LastMetrics() searcher.SearchMetrics {
	return a.last
}
