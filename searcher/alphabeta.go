package searcher

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"onitama/game"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Option func(s *Searcher)

// Searcher runs an iterative-deepening alpha-beta search bounded by wall-clock
// time, by depth, or both.
type Searcher struct {
	duration time.Duration
	maxDepth int
	pruning  bool
	evaluate game.Evaluate
	logger   zerolog.Logger
	now      func() time.Time
}

// WithDuration bounds every search by a wall-clock budget.
func WithDuration(duration time.Duration) Option {
	return func(s *Searcher) {
		if duration > 0 {
			s.duration = duration
		}
	}
}

// WithMaxDepth stops deepening after depth plies.
func WithMaxDepth(depth int) Option {
	return func(s *Searcher) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

// WithoutPruning visits every node; used to check that pruning never changes the result.
func WithoutPruning() Option {
	return func(s *Searcher) {
		s.pruning = false
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(s *Searcher) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Searcher) {
		s.logger = logger
	}
}

func NewSearcher(options ...Option) *Searcher {
	s := &Searcher{ // Default values
		pruning:  true,
		evaluate: game.EvaluatePosition,
		logger:   log.Logger,
		now:      time.Now,
	}
	for _, option := range options {
		option(s)
	}
	if s.duration <= 0 && s.maxDepth <= 0 {
		panic("Must specify search duration or max depth")
	}
	return s
}

// Search returns the best move found for the player to move. The first legal
// move is held as a fallback, so a move is returned however short the budget.
// Only fully searched depths update the answer: a depth cut short by the
// deadline is thrown away.
func (s *Searcher) Search(state game.GameState) (game.Move, SearchMetrics, error) {
	if state.IsTerminal() {
		return game.Move{}, SearchMetrics{}, game.ErrGameOver
	}
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, SearchMetrics{}, game.ErrNoLegalMoves
	}

	metrics := newMetricsCollector(s.now)
	r := &run{
		player:   state.Current,
		evaluate: s.evaluate,
		pruning:  s.pruning,
		now:      s.now,
		metrics:  metrics,
	}
	start := metrics.Start()
	if s.duration > 0 {
		r.deadline = start.Add(s.duration)
	}

	best := moves[0]
	for depth := 1; s.maxDepth == 0 || depth <= s.maxDepth; depth++ {
		move, score, err := r.searchRoot(state, depth)
		if errors.Is(err, errSearchTimeout) {
			s.logger.Debug().Int("depth", depth).Msg("search deadline reached, discarding depth")
			break
		}
		if err != nil {
			return game.Move{}, SearchMetrics{}, err
		}
		best = move
		metrics.CompleteDepth(depth, score)
		s.logger.Debug().Int("depth", depth).Int("score", score).Stringer("move", move).Msg("depth completed")
	}

	return best, metrics.Complete(), nil
}

// run holds the state of one Search call.
type run struct {
	player   game.Player // Scores are always from this player's perspective
	evaluate game.Evaluate
	pruning  bool
	deadline time.Time // Zero means no deadline
	now      func() time.Time
	metrics  MetricsCollector
}

type child struct {
	move  game.Move
	state game.GameState
	score int
}

func (r *run) expired() bool {
	return !r.deadline.IsZero() && r.now().After(r.deadline)
}

func (r *run) searchRoot(state game.GameState, depth int) (game.Move, int, error) {
	if r.expired() {
		return game.Move{}, 0, errSearchTimeout
	}
	r.metrics.AddNode()

	children := r.expand(state)
	best, bestScore := children[0].move, negInf
	alpha := negInf
	for _, c := range children {
		score, err := r.alphaBeta(c.state, depth-1, alpha, posInf)
		if err != nil {
			return game.Move{}, 0, err
		}
		if score > bestScore {
			best, bestScore = c.move, score
		}
		alpha = max(alpha, bestScore)
	}
	return best, bestScore, nil
}

func (r *run) alphaBeta(state game.GameState, depth, alpha, beta int) (int, error) {
	if r.expired() {
		return 0, errSearchTimeout
	}
	r.metrics.AddNode()

	if winner, over := state.Winner(); over {
		if winner == r.player {
			return game.WinScore, nil
		}
		return -game.WinScore, nil
	}
	if depth == 0 {
		return r.evaluate(state, r.player), nil
	}
	children := r.expand(state)
	if len(children) == 0 {
		return r.evaluate(state, r.player), nil
	}

	if state.Current == r.player {
		value := negInf
		for _, c := range children {
			score, err := r.alphaBeta(c.state, depth-1, alpha, beta)
			if err != nil {
				return 0, err
			}
			value = max(value, score)
			alpha = max(alpha, value)
			if r.pruning && alpha >= beta {
				break
			}
		}
		return value, nil
	}

	value := posInf
	for _, c := range children {
		score, err := r.alphaBeta(c.state, depth-1, alpha, beta)
		if err != nil {
			return 0, err
		}
		value = min(value, score)
		beta = min(beta, value)
		if r.pruning && alpha >= beta {
			break
		}
	}
	return value, nil
}

// expand plays every legal move and orders the children by their static
// score: best first for the searching player, worst first for the opponent.
// Ties keep generation order.
func (r *run) expand(state game.GameState) []child {
	moves := state.LegalMoves()
	children := make([]child, len(moves))
	for i, m := range moves {
		next, err := state.Apply(m)
		if err != nil {
			panic(fmt.Sprintf("generated move %s rejected: %v", m, err))
		}
		children[i] = child{move: m, state: next, score: r.evaluate(next, r.player)}
	}

	if state.Current == r.player {
		sort.SliceStable(children, func(i, j int) bool { return children[i].score > children[j].score })
	} else {
		sort.SliceStable(children, func(i, j int) bool { return children[i].score < children[j].score })
	}
	return children
}
