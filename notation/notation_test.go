package notation

import (
	"testing"

	"onitama/game"

	"github.com/stretchr/testify/require"
)

func openingState(t *testing.T) game.GameState {
	t.Helper()
	id := func(name string) game.CardID {
		c, ok := game.CardByName(name)
		require.True(t, ok)
		return c
	}
	gs, err := game.NewGameStateWithCards(
		[game.HandSize]game.CardID{id("Tiger"), id("Crane")},
		[game.HandSize]game.CardID{id("Frog"), id("Rabbit")},
		id("Mantis"),
		game.Blue,
	)
	require.NoError(t, err)
	return gs
}

func TestCell(t *testing.T) {
	cases := map[string]game.Cell{
		"a1": {Row: 4, Col: 0},
		"c1": {Row: 4, Col: 2},
		"c5": {Row: 0, Col: 2},
		"e5": {Row: 0, Col: 4},
		"b3": {Row: 2, Col: 1},
	}
	for s, c := range cases {
		require.Equal(t, s, FormatCell(c))
		got, err := ParseCell(s)
		require.NoError(t, err)
		require.Equal(t, c, got)
	}

	got, err := ParseCell(" C3 ")
	require.NoError(t, err)
	require.Equal(t, game.Cell{Row: 2, Col: 2}, got)

	for _, bad := range []string{"", "c", "f1", "a0", "a6", "c33", "1c", "--"} {
		_, err := ParseCell(bad)
		require.ErrorIs(t, err, ErrBadNotation, bad)
	}
}

func TestMove(t *testing.T) {
	gs := openingState(t)

	t.Run("format", func(t *testing.T) {
		m := game.Move{From: game.Cell{Row: 4, Col: 2}, To: game.Cell{Row: 2, Col: 2}, Slot: 0}
		require.Equal(t, "Tiger c1-c3", FormatMove(gs, m))
	})

	t.Run("round trip over legal moves", func(t *testing.T) {
		for _, m := range gs.LegalMoves() {
			got, err := ParseMove(gs, FormatMove(gs, m))
			require.NoError(t, err)
			require.Equal(t, m, got)
		}
	})

	t.Run("case insensitive card", func(t *testing.T) {
		got, err := ParseMove(gs, "crane b1-b2")
		require.NoError(t, err)
		require.Equal(t, game.Move{From: game.Cell{Row: 4, Col: 1}, To: game.Cell{Row: 3, Col: 1}, Slot: 1}, got)
	})

	t.Run("rejects", func(t *testing.T) {
		for _, bad := range []string{
			"",
			"Tiger",
			"Tiger c1c3",
			"Tigre c1-c3",
			"Frog c1-b2", // red's card
			"Tiger c1-z9",
			"Tiger c1-c3 extra",
		} {
			_, err := ParseMove(gs, bad)
			require.ErrorIs(t, err, ErrBadNotation, bad)
		}
	})
}

func TestFormatBoard(t *testing.T) {
	expected := `5 r r R r r
4 . . . . .
3 . . . . .
2 . . . . .
1 b b B b b
  a b c d e
red: Frog, Rabbit
blue: Tiger, Crane
side: Mantis
to move: blue
`
	require.Equal(t, expected, FormatBoard(openingState(t)))
}
