package mcts

import (
	"fmt"
	"sync"

	"onitama/game"
)

// decision is a tree node for one position. Rewards are kept from the
// perspective of the player whose move led to the node.
type decision struct {
	sync.Mutex
	parent     *decision
	state      game.GameState
	player     game.Player
	unexplored []game.Move
	explored   []game.Move
	children   []*decision
	rewards    float64
	visits     float64
}

func newDecision(parent *decision, state game.GameState) *decision {
	var moves []game.Move
	if !state.IsTerminal() {
		moves = state.LegalMoves()
	}
	return &decision{
		parent:     parent,
		state:      state,
		player:     state.Current.Opponent(),
		unexplored: moves,
		explored:   make([]game.Move, 0, len(moves)),
		children:   make([]*decision, 0, len(moves)),
	}
}

// SelectOrExpand returns the next node on the path and whether it was selected
// among existing children. A new child or a leaf ends the descent.
func (d *decision) SelectOrExpand() (*decision, bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.unexplored) == 0 && len(d.children) == 0 { // Terminal or stuck node
		return d, false
	}

	if len(d.unexplored) > 0 { // Expandable node
		child := d.expand()
		child.applyLoss()
		return child, false
	}

	// Fully expanded node
	child := d.children[d.pickChild()]
	child.applyLoss()
	return child, true
}

func (d *decision) expand() *decision {
	move := d.unexplored[0]
	d.unexplored = d.unexplored[1:]
	next, err := d.state.Apply(move)
	if err != nil {
		panic(fmt.Sprintf("generated move %s rejected: %v", move, err))
	}
	child := newDecision(d, next)
	d.explored = append(d.explored, move)
	d.children = append(d.children, child)
	return child
}

func (d *decision) pickChild() int {
	// Children under virtual loss may outnumber completed visits
	u := newUCT(CSquared, max(d.visits, 1))

	maxIndex := 0
	maxScore := u.evaluate(d.children[0].stats())
	for i, child := range d.children[1:] {
		if score := u.evaluate(child.stats()); score > maxScore {
			maxScore = score
			maxIndex = i + 1
		}
	}
	return maxIndex
}

func (d *decision) stats() (rewards, visits float64) {
	d.Lock()
	defer d.Unlock()

	return d.rewards, d.visits
}

// applyLoss counts an in-flight simulation as a loss so that concurrent
// workers spread over the tree.
func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

func (d *decision) reverseLoss() {
	d.rewards -= Loss
	d.visits--
}

// Backup records a playout in which player won with probability score and
// returns the parent.
func (d *decision) Backup(player game.Player, score float64) *decision {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root node
		d.reverseLoss()
	}

	d.rewards += computeReward(player, score, d.player)
	d.visits++

	return d.parent
}

func computeReward(player game.Player, score float64, perspective game.Player) float64 {
	if player == perspective {
		return score
	}
	return Win - score
}

// bestChild is the most visited child; ties keep generation order.
func (d *decision) bestChild() (int, *decision) {
	d.Lock()
	defer d.Unlock()

	if len(d.children) == 0 {
		panic("node has no children")
	}

	bestIndex := 0
	maxVisits := d.children[0].visits
	for i, child := range d.children[1:] {
		if child.visits > maxVisits {
			maxVisits = child.visits
			bestIndex = i + 1
		}
	}
	return bestIndex, d.children[bestIndex]
}

// find looks for state among the node and its descendants up to depth plies.
func (d *decision) find(state game.GameState, depth int) *decision {
	if d.state == state {
		return d
	}
	if depth == 0 {
		return nil
	}
	for _, child := range d.children {
		if found := child.find(state, depth-1); found != nil {
			return found
		}
	}
	return nil
}
