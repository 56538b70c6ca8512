package game

// LegalMoves returns all legal moves for the active player.
func (gs GameState) LegalMoves() []Move {
	return gs.MovesFor(gs.Current)
}

// MovesFor enumerates the moves of player p with p's current hand, whether or
// not it is p's turn. Order: hand slot 0 then 1, source cells row-major, then
// the card's offsets in catalogue order. Callers rely on this order.
func (gs GameState) MovesFor(p Player) []Move {
	moves := make([]Move, 0, 16)
	gs.eachMove(p, func(m Move) {
		moves = append(moves, m)
	})
	return moves
}

// Mobility counts the moves MovesFor would return without allocating them.
func (gs GameState) Mobility(p Player) int {
	n := 0
	gs.eachMove(p, func(Move) { n++ })
	return n
}

func (gs GameState) eachMove(p Player, yield func(Move)) {
	for slot, id := range gs.Hands[p] {
		offsets := id.Card().OffsetsFor(p)
		for row := 0; row < Size; row++ {
			for col := 0; col < Size; col++ {
				if !gs.Board[row][col].OwnedBy(p) {
					continue
				}
				from := Cell{Row: row, Col: col}
				for _, o := range offsets {
					to := from.Add(o)
					if !to.OnBoard() || gs.Board.At(to).OwnedBy(p) {
						continue
					}
					yield(Move{From: from, To: to, Slot: slot})
				}
			}
		}
	}
}
