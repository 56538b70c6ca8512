package game

import "fmt"

// Cell is a board coordinate; row 0 is red's home row.
type Cell struct {
	Row int
	Col int
}

func (c Cell) OnBoard() bool {
	return c.Row >= 0 && c.Row < Size && c.Col >= 0 && c.Col < Size
}

func (c Cell) Add(o Offset) Cell {
	return Cell{Row: c.Row + o.DRow, Col: c.Col + o.DCol}
}

func (c Cell) Sub(other Cell) Offset {
	return Offset{DRow: c.Row - other.Row, DCol: c.Col - other.Col}
}

// Distance is the Manhattan distance between two cells.
func (c Cell) Distance(other Cell) int {
	return abs(c.Row-other.Row) + abs(c.Col-other.Col)
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Move references the card by hand slot rather than by identity: the slot is
// stable for as long as the state it was generated from.
type Move struct {
	From Cell
	To   Cell
	Slot int
}

func (m Move) String() string {
	return fmt.Sprintf("%s->%s#%d", m.From, m.To, m.Slot)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
