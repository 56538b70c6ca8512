package game

import (
	"fmt"
	"strings"

	"golang.org/x/exp/rand"
)

// Piece is the content of a board cell.
type Piece int8

const (
	Empty Piece = iota
	BluePawn
	BlueMaster
	RedPawn
	RedMaster
)

// Owner returns the side a piece belongs to; ok is false for Empty.
func (p Piece) Owner() (owner Player, ok bool) {
	switch p {
	case BluePawn, BlueMaster:
		return Blue, true
	case RedPawn, RedMaster:
		return Red, true
	}
	return 0, false
}

func (p Piece) IsMaster() bool {
	return p == BlueMaster || p == RedMaster
}

func (p Piece) OwnedBy(player Player) bool {
	owner, ok := p.Owner()
	return ok && owner == player
}

func (p Piece) String() string {
	return [...]string{".", "b", "B", "r", "R"}[p]
}

// MasterOf returns the master piece of player p.
func MasterOf(p Player) Piece {
	if p == Red {
		return RedMaster
	}
	return BlueMaster
}

// PawnOf returns the pawn piece of player p.
func PawnOf(p Player) Piece {
	if p == Red {
		return RedPawn
	}
	return BluePawn
}

// Board is indexed [row][col].
type Board [Size][Size]Piece

func (b Board) At(c Cell) Piece {
	return b[c.Row][c.Col]
}

// StartingBoard puts red on row 0 and blue on row 4, masters in the middle column.
func StartingBoard() Board {
	var b Board
	for col := 0; col < Size; col++ {
		b[0][col] = RedPawn
		b[Size-1][col] = BluePawn
	}
	b[0][Size/2] = RedMaster
	b[Size-1][Size/2] = BlueMaster
	return b
}

// GameState represents the full position. It contains arrays only, so plain
// assignment yields an independent copy; every transition returns a new value
// and never touches its receiver.
type GameState struct {
	Board   Board
	Hands   [2][HandSize]CardID // Indexed by Player, then hand slot
	Side    CardID              // The card held by neither player
	Current Player              // The player to move
}

// NewGameState deals 5 distinct cards from the catalogue and picks the
// starting player. The whole deal is a function of seed.
func NewGameState(seed uint64) GameState {
	rng := rand.New(rand.NewSource(seed))
	deck := rng.Perm(len(Catalogue))
	return GameState{
		Board: StartingBoard(),
		Hands: [2][HandSize]CardID{
			Blue: {CardID(deck[0]), CardID(deck[1])},
			Red:  {CardID(deck[2]), CardID(deck[3])},
		},
		Side:    CardID(deck[4]),
		Current: Player(rng.Intn(2)),
	}
}

// NewGameStateWithCards builds a starting position from a fixed deal.
func NewGameStateWithCards(blue, red [HandSize]CardID, side CardID, first Player) (GameState, error) {
	gs := GameState{
		Board:   StartingBoard(),
		Hands:   [2][HandSize]CardID{Blue: blue, Red: red},
		Side:    side,
		Current: first,
	}
	if first != Blue && first != Red {
		return GameState{}, fmt.Errorf("invalid starting player %d", first)
	}
	seen := make(map[CardID]bool, NumCards)
	for _, id := range gs.ActiveCards() {
		if !id.Valid() {
			return GameState{}, fmt.Errorf("card %d is not in the catalogue", id)
		}
		if seen[id] {
			return GameState{}, fmt.Errorf("card %s dealt twice", id)
		}
		seen[id] = true
	}
	return gs, nil
}

// ActiveCards lists the five cards in play: blue's hand, red's hand, side.
func (gs GameState) ActiveCards() [NumCards]CardID {
	return [NumCards]CardID{
		gs.Hands[Blue][0], gs.Hands[Blue][1],
		gs.Hands[Red][0], gs.Hands[Red][1],
		gs.Side,
	}
}

func (gs GameState) Hand(p Player) [HandSize]Card {
	return [HandSize]Card{gs.Hands[p][0].Card(), gs.Hands[p][1].Card()}
}

func (gs GameState) SideCard() Card {
	return gs.Side.Card()
}

// CardFor returns the card a move of the active player would use.
func (gs GameState) CardFor(m Move) Card {
	return gs.Hands[gs.Current][m.Slot].Card()
}

// Apply plays move m for the active player: the piece moves (capturing
// whatever stands on the destination), the used card becomes the side card,
// the old side card fills the emptied slot, and the turn passes.
func (gs GameState) Apply(m Move) (GameState, error) {
	if m.Slot < 0 || m.Slot >= HandSize {
		return gs, fmt.Errorf("%w: hand slot %d out of range", ErrIllegalMove, m.Slot)
	}
	if !m.From.OnBoard() || !m.To.OnBoard() {
		return gs, fmt.Errorf("%w: %s leaves the board", ErrIllegalMove, m)
	}
	mover := gs.Board.At(m.From)
	if mover == Empty {
		return gs, fmt.Errorf("%w: no piece on %s", ErrIllegalMove, m.From)
	}
	if !mover.OwnedBy(gs.Current) {
		return gs, fmt.Errorf("%w: piece on %s does not belong to %s", ErrIllegalMove, m.From, gs.Current)
	}
	card := gs.CardFor(m)
	if !card.allows(gs.Current, m.To.Sub(m.From)) {
		return gs, fmt.Errorf("%w: %s does not allow %s for %s", ErrIllegalMove, card.Name, m, gs.Current)
	}
	if gs.Board.At(m.To).OwnedBy(gs.Current) {
		return gs, fmt.Errorf("%w: %s is occupied by %s's own piece", ErrIllegalMove, m.To, gs.Current)
	}

	next := gs
	next.Board[m.To.Row][m.To.Col] = mover
	next.Board[m.From.Row][m.From.Col] = Empty
	next = next.rotate(m.Slot)
	next.Current = gs.Current.Opponent()
	return next, nil
}

// Pass hands the turn to the opponent without moving a piece. With rotate set,
// the card in slot is exchanged with the side card as if it had been played.
func (gs GameState) Pass(rotate bool, slot int) (GameState, error) {
	next := gs
	if rotate {
		if slot < 0 || slot >= HandSize {
			return gs, fmt.Errorf("%w: hand slot %d out of range", ErrIllegalMove, slot)
		}
		next = next.rotate(slot)
	}
	next.Current = gs.Current.Opponent()
	return next, nil
}

func (gs GameState) rotate(slot int) GameState {
	used := gs.Hands[gs.Current][slot]
	gs.Hands[gs.Current][slot] = gs.Side
	gs.Side = used
	return gs
}

func (gs GameState) String() string {
	var sb strings.Builder
	for _, row := range gs.Board {
		for _, p := range row {
			sb.WriteString(p.String())
		}
		sb.WriteByte('/')
	}
	fmt.Fprintf(&sb, " blue=%s,%s red=%s,%s side=%s to-move=%s",
		gs.Hands[Blue][0], gs.Hands[Blue][1], gs.Hands[Red][0], gs.Hands[Red][1], gs.Side, gs.Current)
	return sb.String()
}
