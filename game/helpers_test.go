package game

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// parseBoard reads rows top (row 0) to bottom: '.' empty, b/B blue pawn/master,
// r/R red pawn/master.
func parseBoard(t *testing.T, rows ...string) Board {
	t.Helper()
	require.Len(t, rows, Size)
	var b Board
	for r, line := range rows {
		require.Len(t, line, Size)
		for c, ch := range line {
			switch ch {
			case '.':
				b[r][c] = Empty
			case 'b':
				b[r][c] = BluePawn
			case 'B':
				b[r][c] = BlueMaster
			case 'r':
				b[r][c] = RedPawn
			case 'R':
				b[r][c] = RedMaster
			default:
				t.Fatalf("unexpected board character %q", ch)
			}
		}
	}
	return b
}

func mustCard(t *testing.T, name string) CardID {
	t.Helper()
	id, ok := CardByName(name)
	require.True(t, ok, "card %s should exist", name)
	return id
}

// classicDeal is the fixed opening deal: blue Tiger/Crane, red Frog/Rabbit, Mantis aside.
func classicDeal(t *testing.T) GameState {
	t.Helper()
	gs, err := NewGameStateWithCards(
		[HandSize]CardID{mustCard(t, "Tiger"), mustCard(t, "Crane")},
		[HandSize]CardID{mustCard(t, "Frog"), mustCard(t, "Rabbit")},
		mustCard(t, "Mantis"),
		Blue,
	)
	require.NoError(t, err)
	return gs
}

func sortedCards(gs GameState) []int {
	cards := gs.ActiveCards()
	ids := make([]int, len(cards))
	for i, id := range cards {
		ids[i] = int(id)
	}
	sort.Ints(ids)
	return ids
}

func countPieces(b Board) (pawns [2]int, masters [2]int) {
	for _, row := range b {
		for _, p := range row {
			owner, ok := p.Owner()
			if !ok {
				continue
			}
			if p.IsMaster() {
				masters[owner]++
			} else {
				pawns[owner]++
			}
		}
	}
	return pawns, masters
}
