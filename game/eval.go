package game

// WinScore is the magnitude of a decided position. Heuristic scores of
// undecided positions stay well below it.
const WinScore = 10000

const (
	pawnWeight      = 120
	masterWeight    = 5000
	templeWeight    = 90
	mobilityWeight  = 10
	centerWeight    = 25
	proximityWeight = 20

	maxDistance = 2 * (Size - 1)
)

// centerCross marks the middle cell and its four orthogonal neighbours.
var centerCross = func() (mask [Size][Size]bool) {
	mid := Size / 2
	for _, c := range []Cell{{mid, mid}, {mid - 1, mid}, {mid + 1, mid}, {mid, mid - 1}, {mid, mid + 1}} {
		mask[c.Row][c.Col] = true
	}
	return mask
}()

// EvaluatePosition scores state from perspective's point of view. Decided
// positions score ±WinScore; otherwise the score is a fixed linear mix of
// material, master placement, mobility and centre control.
func EvaluatePosition(state GameState, perspective Player) int {
	if winner, over := state.Winner(); over {
		if winner == perspective {
			return WinScore
		}
		return -WinScore
	}

	s := summarize(state.Board)
	me, opp := perspective, perspective.Opponent()

	score := pawnWeight * (s.pawns[me] - s.pawns[opp])
	score += s.masterScore(me, opp)
	score += s.templeScore(me, opp)
	score += mobilityWeight * (state.Mobility(me) - state.Mobility(opp))
	score += centerWeight * (s.center[me] - s.center[opp])
	score += s.proximityScore()
	return score
}

// boardSummary is everything the evaluator needs from one pass over the board.
type boardSummary struct {
	pawns     [2]int
	center    [2]int
	master    [2]Cell
	hasMaster [2]bool
}

func summarize(b Board) boardSummary {
	var s boardSummary
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			piece := b[row][col]
			owner, ok := piece.Owner()
			if !ok {
				continue
			}
			if piece.IsMaster() {
				s.master[owner] = Cell{Row: row, Col: col}
				s.hasMaster[owner] = true
			} else {
				s.pawns[owner]++
			}
			if centerCross[row][col] {
				s.center[owner]++
			}
		}
	}
	return s
}

// masterScore is a fallback for a missing master. EvaluatePosition settles
// those boards through Winner first, so there it always contributes 0.
func (s boardSummary) masterScore(me, opp Player) int {
	score := 0
	if !s.hasMaster[me] {
		score -= masterWeight
	}
	if !s.hasMaster[opp] {
		score += masterWeight
	}
	return score
}

// templeScore rewards a master for closing in on the temple it attacks,
// and penalises the opposing master for doing the same.
func (s boardSummary) templeScore(me, opp Player) int {
	score := 0
	if s.hasMaster[me] {
		score -= templeWeight * s.master[me].Distance(opp.Temple())
	}
	if s.hasMaster[opp] {
		score += templeWeight * s.master[opp].Distance(me.Temple())
	}
	return score
}

func (s boardSummary) proximityScore() int {
	if !s.hasMaster[Blue] || !s.hasMaster[Red] {
		return 0
	}
	return proximityWeight * (maxDistance - s.master[Blue].Distance(s.master[Red]))
}
