package searcher

import (
	"testing"
	"time"

	"onitama/game"

	"github.com/stretchr/testify/require"
)

// tickClock advances by tick on every reading, making deadlines deterministic.
type tickClock struct {
	t    time.Time
	tick time.Duration
}

func (c *tickClock) now() time.Time {
	t := c.t
	c.t = c.t.Add(c.tick)
	return t
}

func card(t *testing.T, name string) game.CardID {
	t.Helper()
	id, ok := game.CardByName(name)
	require.True(t, ok)
	return id
}

func openingState(t *testing.T) game.GameState {
	t.Helper()
	gs, err := game.NewGameStateWithCards(
		[game.HandSize]game.CardID{card(t, "Tiger"), card(t, "Crane")},
		[game.HandSize]game.CardID{card(t, "Frog"), card(t, "Rabbit")},
		card(t, "Mantis"),
		game.Blue,
	)
	require.NoError(t, err)
	return gs
}

// smallState has few pieces so that exhaustive search stays cheap.
func smallState(t *testing.T) game.GameState {
	t.Helper()
	var b game.Board
	b[0][1] = game.RedMaster
	b[1][3] = game.RedPawn
	b[3][1] = game.BluePawn
	b[4][3] = game.BlueMaster
	return game.GameState{
		Board: b,
		Hands: [2][game.HandSize]game.CardID{
			game.Blue: {card(t, "Dragon"), card(t, "Ox")},
			game.Red:  {card(t, "Crab"), card(t, "Eel")},
		},
		Side:    card(t, "Monkey"),
		Current: game.Blue,
	}
}

// minimax is the plain exhaustive reference for alpha-beta.
func minimax(state game.GameState, depth int, player game.Player) int {
	if winner, over := state.Winner(); over {
		if winner == player {
			return game.WinScore
		}
		return -game.WinScore
	}
	moves := state.LegalMoves()
	if depth == 0 || len(moves) == 0 {
		return game.EvaluatePosition(state, player)
	}
	best := negInf
	if state.Current != player {
		best = posInf
	}
	for _, m := range moves {
		next, _ := state.Apply(m)
		score := minimax(next, depth-1, player)
		if state.Current == player {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}
	return best
}

func TestNewSearcher(t *testing.T) {
	t.Run("panics without a budget", func(t *testing.T) {
		require.Panics(t, func() { NewSearcher() }, "Should panic without duration or depth")
	})

	t.Run("ignores non-positive options", func(t *testing.T) {
		require.Panics(t, func() { NewSearcher(WithDuration(0), WithMaxDepth(-1)) })
	})
}

func TestSearch(t *testing.T) {
	t.Run("pruning does not change the root score", func(t *testing.T) {
		state := smallState(t)
		for depth := 1; depth <= 4; depth++ {
			_, pruned, err := NewSearcher(WithMaxDepth(depth)).Search(state)
			require.NoError(t, err)
			_, full, err := NewSearcher(WithMaxDepth(depth), WithoutPruning()).Search(state)
			require.NoError(t, err)

			require.Equal(t, full.Score, pruned.Score, "Depth %d scores should match", depth)
			require.Equal(t, minimax(state, depth, state.Current), pruned.Score,
				"Depth %d should match exhaustive minimax", depth)
			require.LessOrEqual(t, pruned.Nodes, full.Nodes, "Pruning should not visit more nodes")
		}
	})

	t.Run("returned move achieves the reported score", func(t *testing.T) {
		state := smallState(t)
		move, metrics, err := NewSearcher(WithMaxDepth(3)).Search(state)
		require.NoError(t, err)

		next, err := state.Apply(move)
		require.NoError(t, err)
		require.Equal(t, metrics.Score, minimax(next, 2, state.Current))
		require.Equal(t, 3, metrics.Depth)
	})

	t.Run("finds an immediate temple win", func(t *testing.T) {
		var b game.Board
		b[0][0] = game.RedMaster
		b[2][2] = game.BlueMaster
		state := game.GameState{
			Board: b,
			Hands: [2][game.HandSize]game.CardID{
				game.Blue: {card(t, "Ox"), card(t, "Tiger")},
				game.Red:  {card(t, "Crab"), card(t, "Eel")},
			},
			Side:    card(t, "Monkey"),
			Current: game.Blue,
		}

		move, metrics, err := NewSearcher(WithMaxDepth(2)).Search(state)

		require.NoError(t, err)
		require.Equal(t, game.Move{From: game.Cell{Row: 2, Col: 2}, To: game.Cell{Row: 0, Col: 2}, Slot: 1}, move)
		require.Equal(t, game.WinScore, metrics.Score)
	})

	t.Run("red searches from its own perspective", func(t *testing.T) {
		state := openingState(t)
		state, err := state.Apply(game.Move{From: game.Cell{Row: 4, Col: 2}, To: game.Cell{Row: 2, Col: 2}, Slot: 0})
		require.NoError(t, err)

		move, metrics, err := NewSearcher(WithMaxDepth(2)).Search(state)

		require.NoError(t, err)
		require.Equal(t, minimax(state, 2, game.Red), metrics.Score)
		_, err = state.Apply(move)
		require.NoError(t, err)
	})

	t.Run("rejects terminal states", func(t *testing.T) {
		state := openingState(t)
		state.Board[0][2] = game.Empty
		_, _, err := NewSearcher(WithMaxDepth(1)).Search(state)
		require.ErrorIs(t, err, game.ErrGameOver)
	})

	t.Run("rejects states without moves", func(t *testing.T) {
		var b game.Board
		for col := 0; col < game.Size; col++ {
			b[0][col] = game.BluePawn
		}
		b[0][0] = game.BlueMaster
		b[4][0] = game.RedMaster
		state := game.GameState{
			Board: b,
			Hands: [2][game.HandSize]game.CardID{
				game.Blue: {card(t, "Crab"), card(t, "Elephant")},
				game.Red:  {card(t, "Ox"), card(t, "Eel")},
			},
			Side:    card(t, "Cobra"),
			Current: game.Blue,
		}
		_, _, err := NewSearcher(WithMaxDepth(1)).Search(state)
		require.ErrorIs(t, err, game.ErrNoLegalMoves)
	})

	t.Run("custom evaluation function", func(t *testing.T) {
		calls := 0
		flat := func(game.GameState, game.Player) int {
			calls++
			return 0
		}
		state := openingState(t)
		move, metrics, err := NewSearcher(WithMaxDepth(1), WithEvaluationFn(flat)).Search(state)

		require.NoError(t, err)
		require.Equal(t, state.LegalMoves()[0], move, "Equal scores should keep generation order")
		require.Zero(t, metrics.Score)
		require.Positive(t, calls)
	})
}

func TestSearchDeadline(t *testing.T) {
	t.Run("discards the depth cut short", func(t *testing.T) {
		state := openingState(t)
		clock := &tickClock{t: time.Unix(0, 0), tick: time.Millisecond}
		s := NewSearcher(WithDuration(15 * time.Millisecond))
		s.now = clock.now

		move, metrics, err := s.Search(state)

		require.NoError(t, err)
		require.Equal(t, 1, metrics.Depth, "Only depth 1 fits in the budget")
		expected, _, err := NewSearcher(WithMaxDepth(1)).Search(state)
		require.NoError(t, err)
		require.Equal(t, expected, move, "Should keep the depth 1 answer")
		require.Greater(t, metrics.Nodes, int64(len(state.LegalMoves())+1), "Aborted nodes are still counted")
	})

	t.Run("falls back to the first legal move", func(t *testing.T) {
		state := openingState(t)
		clock := &tickClock{t: time.Unix(0, 0), tick: time.Hour}
		s := NewSearcher(WithDuration(time.Millisecond))
		s.now = clock.now

		move, metrics, err := s.Search(state)

		require.NoError(t, err)
		require.Equal(t, state.LegalMoves()[0], move)
		require.Zero(t, metrics.Depth)
	})

	t.Run("real clock with a 10ms budget", func(t *testing.T) {
		state := game.NewGameState(42)
		start := time.Now()

		move, metrics, err := NewSearcher(WithDuration(10 * time.Millisecond)).Search(state)

		require.NoError(t, err)
		require.Contains(t, state.LegalMoves(), move)
		require.Less(t, time.Since(start), time.Second)
		require.Positive(t, metrics.Nodes)
	})

	t.Run("depth and duration together stop at the depth", func(t *testing.T) {
		state := openingState(t)
		_, metrics, err := NewSearcher(WithDuration(time.Minute), WithMaxDepth(2)).Search(state)
		require.NoError(t, err)
		require.Equal(t, 2, metrics.Depth)
	})
}
