package game

import (
	"fmt"
	"strings"
)

// Offset is a relative displacement (rows, columns). Card offsets are authored
// from blue's side of the table, so a negative DRow moves towards red.
type Offset struct {
	DRow int
	DCol int
}

// Card is a movement card from the fixed catalogue.
type Card struct {
	Name    string
	Offsets []Offset
}

// CardID indexes Catalogue.
type CardID int8

// Catalogue holds the 16 movement cards. Goose and Rooster carry their four
// offset definitions.
var Catalogue = [16]Card{
	{Name: "Tiger", Offsets: []Offset{{-2, 0}, {1, 0}}},
	{Name: "Dragon", Offsets: []Offset{{-1, -2}, {-1, 2}, {1, -1}, {1, 1}}},
	{Name: "Frog", Offsets: []Offset{{0, -2}, {-1, -1}, {1, 1}}},
	{Name: "Rabbit", Offsets: []Offset{{-1, 1}, {1, -1}, {0, 2}}},
	{Name: "Crab", Offsets: []Offset{{-1, 0}, {0, -2}, {0, 2}}},
	{Name: "Elephant", Offsets: []Offset{{-1, -1}, {-1, 1}, {0, -1}, {0, 1}}},
	{Name: "Goose", Offsets: []Offset{{-1, -1}, {0, -1}, {0, 1}, {1, 1}}},
	{Name: "Rooster", Offsets: []Offset{{-1, 1}, {0, -1}, {0, 1}, {1, -1}}},
	{Name: "Monkey", Offsets: []Offset{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}},
	{Name: "Mantis", Offsets: []Offset{{-1, -1}, {-1, 1}, {1, 0}}},
	{Name: "Horse", Offsets: []Offset{{-1, 0}, {0, -1}, {1, 0}}},
	{Name: "Ox", Offsets: []Offset{{-1, 0}, {0, 1}, {1, 0}}},
	{Name: "Crane", Offsets: []Offset{{-1, 0}, {1, -1}, {1, 1}}},
	{Name: "Boar", Offsets: []Offset{{-1, 0}, {0, -1}, {0, 1}}},
	{Name: "Eel", Offsets: []Offset{{-1, -1}, {1, -1}, {0, 1}}},
	{Name: "Cobra", Offsets: []Offset{{0, -1}, {-1, 1}, {1, 1}}},
}

func (id CardID) Valid() bool {
	return id >= 0 && int(id) < len(Catalogue)
}

func (id CardID) Card() Card {
	return Catalogue[id]
}

func (id CardID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("card(%d)", int(id))
	}
	return Catalogue[id].Name
}

// CardByName looks up a catalogue entry by name, ignoring case.
func CardByName(name string) (CardID, bool) {
	for i, c := range Catalogue {
		if strings.EqualFold(c.Name, name) {
			return CardID(i), true
		}
	}
	return -1, false
}

// OffsetsFor returns the card's offsets as seen by player p: unchanged for
// blue, vertically negated for red. Order is preserved.
func (c Card) OffsetsFor(p Player) []Offset {
	if p == Blue {
		return c.Offsets
	}
	mirrored := make([]Offset, len(c.Offsets))
	for i, o := range c.Offsets {
		mirrored[i] = o.mirror()
	}
	return mirrored
}

// allows reports whether the card lets player p move by offset o.
func (c Card) allows(p Player, o Offset) bool {
	for _, candidate := range c.Offsets {
		if p == Red {
			candidate = candidate.mirror()
		}
		if candidate == o {
			return true
		}
	}
	return false
}

func (o Offset) mirror() Offset {
	return Offset{DRow: -o.DRow, DCol: o.DCol}
}
