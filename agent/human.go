package agent

import (
	"fmt"

	"onitama/game"
	"onitama/utils"
)

// Prompter asks a person for a move. bySlot holds the legal moves grouped by
// the hand slot of the card they use. Implementations live outside the core.
type Prompter interface {
	Select(state game.GameState, bySlot [game.HandSize][]game.Move) (game.Move, error)
}

// Human delegates the choice to a Prompter and checks the answer. A move the
// prompter was not offered comes back as game.ErrIllegalMove, and the engine
// aborts the match on it rather than substituting a move. Prompters that want
// to re-ask do so before returning.
type Human struct {
	prompter Prompter
}

func NewHuman(prompter Prompter) *Human {
	return &Human{prompter: prompter}
}

func (h *Human) Name() string { return "human" }

func (h *Human) Choose(state game.GameState) (game.Move, error) {
	moves, err := legalMoves(state)
	if err != nil {
		return game.Move{}, err
	}

	var bySlot [game.HandSize][]game.Move
	for slot, group := range utils.GroupBy(moves, func(m game.Move) int { return m.Slot }) {
		bySlot[slot] = group
	}

	move, err := h.prompter.Select(state, bySlot)
	if err != nil {
		return game.Move{}, fmt.Errorf("prompting for a move: %w", err)
	}
	if utils.FindIndex(moves, move) < 0 {
		return game.Move{}, fmt.Errorf("%w: %s was not offered", game.ErrIllegalMove, move)
	}
	return move, nil
}
