package agent

import (
	"onitama/game"
	"onitama/searcher"
)

// Agent picks a move for the player to move. Given a non-terminal state with
// at least one legal move it returns exactly one legal move; otherwise it
// returns game.ErrGameOver or game.ErrNoLegalMoves.
type Agent interface {
	Name() string
	Choose(state game.GameState) (game.Move, error)
}

// MetricsReporter is implemented by agents that search. Not all agents do;
// use a type assertion to check.
type MetricsReporter interface {
	LastMetrics() searcher.SearchMetrics
}

// legalMoves applies the shared precondition of Choose.
func legalMoves(state game.GameState) ([]game.Move, error) {
	if state.IsTerminal() {
		return nil, game.ErrGameOver
	}
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return nil, game.ErrNoLegalMoves
	}
	return moves, nil
}
