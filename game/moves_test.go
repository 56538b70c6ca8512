package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLegalMoves(t *testing.T) {
	t.Run("opening moves in generation order", func(t *testing.T) {
		gs := classicDeal(t)

		moves := gs.LegalMoves()

		expected := []Move{}
		for col := 0; col < Size; col++ { // Tiger: two rows forward
			expected = append(expected, Move{From: Cell{4, col}, To: Cell{2, col}, Slot: 0})
		}
		for col := 0; col < Size; col++ { // Crane: one row forward
			expected = append(expected, Move{From: Cell{4, col}, To: Cell{3, col}, Slot: 1})
		}
		require.Equal(t, expected, moves)
		require.Equal(t, len(expected), gs.Mobility(Blue))
	})

	t.Run("repeated calls return the same sequence", func(t *testing.T) {
		gs := NewGameState(99)
		first := gs.LegalMoves()
		for i := 0; i < 5; i++ {
			require.Equal(t, first, gs.LegalMoves())
		}
	})

	t.Run("red enumerates with mirrored offsets", func(t *testing.T) {
		gs := classicDeal(t)
		next, err := gs.Apply(Move{From: Cell{4, 2}, To: Cell{2, 2}, Slot: 0})
		require.NoError(t, err)

		moves := next.LegalMoves()

		// Frog for red: (1,-1) from the four pawns/master with a free diagonal.
		// Rabbit for red: (1,1) likewise.
		require.Equal(t, []Move{
			{From: Cell{0, 1}, To: Cell{1, 0}, Slot: 0},
			{From: Cell{0, 2}, To: Cell{1, 1}, Slot: 0},
			{From: Cell{0, 3}, To: Cell{1, 2}, Slot: 0},
			{From: Cell{0, 4}, To: Cell{1, 3}, Slot: 0},
			{From: Cell{0, 0}, To: Cell{1, 1}, Slot: 1},
			{From: Cell{0, 1}, To: Cell{1, 2}, Slot: 1},
			{From: Cell{0, 2}, To: Cell{1, 3}, Slot: 1},
			{From: Cell{0, 3}, To: Cell{1, 4}, Slot: 1},
		}, moves)
		require.Equal(t, 8, next.Mobility(Red))
	})

	t.Run("tiger mirrored for red from (1,2)", func(t *testing.T) {
		tiger := mustCard(t, "Tiger")
		gs := GameState{
			Board: parseBoard(t,
				"R....",
				"..r..",
				".....",
				".....",
				"....B",
			),
			Hands:   [2][HandSize]CardID{Blue: {mustCard(t, "Ox"), mustCard(t, "Eel")}, Red: {tiger, mustCard(t, "Crab")}},
			Side:    mustCard(t, "Cobra"),
			Current: Red,
		}

		var fromPawn []Cell
		for _, m := range gs.LegalMoves() {
			if m.Slot == 0 && m.From == (Cell{1, 2}) {
				fromPawn = append(fromPawn, m.To)
			}
		}
		require.Equal(t, []Cell{{3, 2}, {0, 2}}, fromPawn)
	})

	t.Run("never lands on own pieces or off the board", func(t *testing.T) {
		for seed := uint64(0); seed < 20; seed++ {
			gs := NewGameState(seed)
			for _, m := range gs.LegalMoves() {
				require.True(t, m.To.OnBoard())
				require.False(t, gs.Board.At(m.To).OwnedBy(gs.Current))
				_, err := gs.Apply(m)
				require.NoError(t, err, "Generated move %s should be accepted by Apply", m)
			}
		}
	})

	t.Run("player with every piece on the far row has no moves", func(t *testing.T) {
		// Crab and Elephant never move backwards; sideways targets are all occupied.
		gs := GameState{
			Board: parseBoard(t,
				"Bbbbb",
				".....",
				".....",
				".....",
				"R....",
			),
			Hands:   [2][HandSize]CardID{Blue: {mustCard(t, "Crab"), mustCard(t, "Elephant")}, Red: {mustCard(t, "Ox"), mustCard(t, "Eel")}},
			Side:    mustCard(t, "Cobra"),
			Current: Blue,
		}
		require.False(t, gs.IsTerminal())
		require.Empty(t, gs.LegalMoves())
		require.Zero(t, gs.Mobility(Blue))
		require.NotZero(t, gs.Mobility(Red))
	})
}
