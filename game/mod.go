package game

import "errors"

const (
	Size     = 5 // Board is Size x Size
	HandSize = 2
	NumCards = 2*HandSize + 1 // Cards in play: two hands and the side card
)

var (
	// ErrIllegalMove is wrapped by every rejection from Apply and Pass.
	ErrIllegalMove = errors.New("illegal move")
	// ErrNoLegalMoves reports that the active player cannot move. What happens
	// next (pass, rotate, forfeit) is decided by the game loop.
	ErrNoLegalMoves = errors.New("no legal moves")
	// ErrGameOver reports a request for a move on a terminal state.
	ErrGameOver = errors.New("game is over")
)

// Player identifies a side. Blue starts on row 4 and advances towards row 0.
type Player int8

const (
	Blue Player = iota
	Red
)

func (p Player) Opponent() Player {
	return 1 - p
}

func (p Player) String() string {
	switch p {
	case Blue:
		return "blue"
	case Red:
		return "red"
	}
	return "unknown"
}

// Temple returns the player's home cell. The opposing master wins by reaching it.
func (p Player) Temple() Cell {
	if p == Red {
		return Cell{Row: 0, Col: Size / 2}
	}
	return Cell{Row: Size - 1, Col: Size / 2}
}

// Evaluates the state to a score from the perspective player's point of view;
// higher is better for perspective.
type Evaluate func(state GameState, perspective Player) int
