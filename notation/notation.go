// Package notation converts cells and moves to and from the short algebraic
// form shown to people: files a..e from left to right, ranks 1..5 from the
// bottom (blue's home row) to the top.
package notation

import (
	"errors"
	"fmt"
	"strings"

	"onitama/game"
)

var ErrBadNotation = errors.New("bad notation")

func FormatCell(c game.Cell) string {
	return fmt.Sprintf("%c%d", 'a'+c.Col, game.Size-c.Row)
}

func ParseCell(s string) (game.Cell, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return game.Cell{}, fmt.Errorf("%w: cell %q", ErrBadNotation, s)
	}
	c := game.Cell{Row: game.Size - int(s[1]-'0'), Col: int(s[0] - 'a')}
	if s[0] < 'a' || s[1] < '0' || !c.OnBoard() {
		return game.Cell{}, fmt.Errorf("%w: cell %q", ErrBadNotation, s)
	}
	return c, nil
}

// FormatMove renders m as "<card> <from>-<to>", e.g. "Tiger c1-c3".
func FormatMove(state game.GameState, m game.Move) string {
	return fmt.Sprintf("%s %s-%s", state.CardFor(m).Name, FormatCell(m.From), FormatCell(m.To))
}

// ParseMove reads the FormatMove form against state. The card must be in the
// hand of the player to move; legality is left to the caller.
func ParseMove(state game.GameState, s string) (game.Move, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return game.Move{}, fmt.Errorf("%w: want \"<card> <from>-<to>\", got %q", ErrBadNotation, s)
	}
	id, ok := game.CardByName(fields[0])
	if !ok {
		return game.Move{}, fmt.Errorf("%w: unknown card %q", ErrBadNotation, fields[0])
	}
	slot := -1
	for i, held := range state.Hands[state.Current] {
		if held == id {
			slot = i
		}
	}
	if slot < 0 {
		return game.Move{}, fmt.Errorf("%w: %s does not hold %s", ErrBadNotation, state.Current, fields[0])
	}

	from, to, found := strings.Cut(fields[1], "-")
	if !found {
		return game.Move{}, fmt.Errorf("%w: missing '-' in %q", ErrBadNotation, fields[1])
	}
	fromCell, err := ParseCell(from)
	if err != nil {
		return game.Move{}, err
	}
	toCell, err := ParseCell(to)
	if err != nil {
		return game.Move{}, err
	}
	return game.Move{From: fromCell, To: toCell, Slot: slot}, nil
}

// FormatBoard draws the board with rank and file labels, rank 5 on top,
// followed by both hands and the side card.
func FormatBoard(state game.GameState) string {
	var sb strings.Builder
	for row := 0; row < game.Size; row++ {
		fmt.Fprintf(&sb, "%d ", game.Size-row)
		for col := 0; col < game.Size; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(state.Board[row][col].String())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e\n")
	for _, p := range []game.Player{game.Red, game.Blue} {
		hand := state.Hand(p)
		fmt.Fprintf(&sb, "%s: %s, %s\n", p, hand[0].Name, hand[1].Name)
	}
	fmt.Fprintf(&sb, "side: %s\n", state.SideCard().Name)
	fmt.Fprintf(&sb, "to move: %s\n", state.Current)
	return sb.String()
}
