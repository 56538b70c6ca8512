// Package mcts implements tree-parallel Monte Carlo tree search with virtual
// loss and random playouts.
package mcts

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"onitama/game"
	"onitama/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

type MCTS struct {
	goroutines int
	duration   time.Duration
	episodes   int
	cutoff     int
	evaluate   game.Evaluate
	seed       uint64
	reuse      bool
	logger     zerolog.Logger
	root       *decision
	searches   uint64
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

// WithSeed seeds the playout policy. With one goroutine and a fixed number
// of episodes the search is then reproducible.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

// WithoutTreeReuse starts every search from a fresh tree.
func WithoutTreeReuse() Option {
	return func(m *MCTS) {
		m.reuse = false
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(m *MCTS) {
		m.logger = logger
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines: goroutines,
		cutoff:     MaxCutoff,
		evaluate:   game.EvaluatePosition,
		reuse:      true,
		logger:     log.Logger,
	}
	for _, option := range options {
		option(m)
	}
	if m.goroutines < 1 {
		panic("Must use at least one goroutine")
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// Search returns the most visited root move. In the returned metrics Nodes
// counts episodes, Depth is the deepest selection path and Score is the
// estimated win probability of the move in permille.
func (m *MCTS) Search(state game.GameState) (game.Move, searcher.SearchMetrics, error) {
	if state.IsTerminal() {
		return game.Move{}, searcher.SearchMetrics{}, game.ErrGameOver
	}
	if len(state.LegalMoves()) == 0 {
		return game.Move{}, searcher.SearchMetrics{}, game.ErrNoLegalMoves
	}

	start := time.Now()
	m.findRoot(state)
	c := &collector{}
	m.searches++

	if m.episodes > 0 {
		m.iterate(c)
	} else {
		m.countdown(c)
	}

	i, best := m.root.bestChild()
	move := m.root.explored[i]
	rewards, visits := best.stats()
	metrics := searcher.SearchMetrics{
		Duration: time.Since(start),
		Nodes:    c.episodes.Load(),
		Depth:    int(c.depth.Load()),
		Score:    int(math.Round(1000 * rewards / visits)),
	}
	m.logger.Debug().
		Int64("episodes", metrics.Nodes).
		Int64("full_playouts", c.fullPlayouts.Load()).
		Int("depth", metrics.Depth).
		Float64("root_visits", m.root.visits).
		Stringer("move", move).
		Msg("mcts search complete")
	return move, metrics, nil
}

// findRoot keeps the subtree of the previous search that matches state: the
// same position, or one reached through our move and the opponent's reply.
func (m *MCTS) findRoot(state game.GameState) {
	if m.reuse && m.root != nil {
		if root := m.root.find(state, 2); root != nil {
			root.parent = nil
			m.root = root
			m.logger.Debug().Float64("visits", root.visits).Msg("reusing search tree")
			return
		}
	}
	m.root = newDecision(nil, state)
}

func (m *MCTS) iterate(c *collector) {
	task := make(chan any, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- nil
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func(rng *rand.Rand) {
			defer wg.Done()

			for range task {
				m.simulate(rng, c)
			}
		}(m.rng(i))
	}

	wg.Wait()
}

func (m *MCTS) countdown(c *collector) {
	done := make(chan any)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func(rng *rand.Rand) {
			defer wg.Done()

			// At least one episode per worker, so the root always has a child
			// to pick however short the budget.
			for {
				m.simulate(rng, c)
				select {
				case <-done:
					return
				default:
				}
			}
		}(m.rng(i))
	}

	<-time.After(m.duration)
	close(done)
	wg.Wait()
}

// rng gives each worker of each search its own stream.
func (m *MCTS) rng(worker int) *rand.Rand {
	return rand.New(rand.NewSource(m.seed + m.searches*uint64(m.goroutines) + uint64(worker)))
}

func (m *MCTS) simulate(rng *rand.Rand, c *collector) {
	leaf, depth := selectThenExpand(m.root)
	player, score := rollout(leaf.state, m.cutoff, m.evaluate, rng, c)
	backup(leaf, player, score)
	c.addEpisode(depth)
}

func selectThenExpand(root *decision) (*decision, int) {
	parent := root
	depth := 1
	child, selected := parent.SelectOrExpand()
	for selected && (child != parent) {
		parent = child
		depth++
		child, selected = parent.SelectOrExpand()
	}
	return child, depth
}

// rollout plays random moves until the game ends or cutoff plies have been
// played, and reports the probability that player wins.
func rollout(state game.GameState, cutoff int, evaluate game.Evaluate, rng *rand.Rand, c *collector) (game.Player, float64) {
	for depth := 0; depth < cutoff; depth++ {
		if state.IsTerminal() {
			break
		}
		moves := state.LegalMoves()
		if len(moves) == 0 {
			break
		}
		next, err := state.Apply(moves[rng.Intn(len(moves))]) // Random rollout policy
		if err != nil {
			panic(fmt.Sprintf("generated move rejected: %v", err))
		}
		state = next
	}

	if winner, over := state.Winner(); over {
		c.fullPlayouts.Add(1)
		return winner, Win
	}
	return state.Current, winProbability(evaluate(state, state.Current))
}

func winProbability(score int) float64 {
	return 1 / (1 + math.Exp(-float64(score)/evalScale))
}

func backup(leaf *decision, player game.Player, score float64) {
	node := leaf
	for node != nil {
		node = node.Backup(player, score)
	}
}

// collector is shared by the workers of one search.
type collector struct {
	episodes     atomic.Int64
	fullPlayouts atomic.Int64
	depth        atomic.Int64
}

func (c *collector) addEpisode(depth int) {
	c.episodes.Add(1)
	for {
		current := c.depth.Load()
		if int64(depth) <= current || c.depth.CompareAndSwap(current, int64(depth)) {
			return
		}
	}
}
