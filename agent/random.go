package agent

import (
	"onitama/game"

	"golang.org/x/exp/rand"
)

// Random picks uniformly among the legal moves using its own seeded source.
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Name() string { return "random" }

func (r *Random) Choose(state game.GameState) (game.Move, error) {
	moves, err := legalMoves(state)
	if err != nil {
		return game.Move{}, err
	}
	return moves[r.rng.Intn(len(moves))], nil
}
