package engine

import (
	"fmt"

	"onitama/config"
	"onitama/experiments/metrics"
	"onitama/game"

	"github.com/rs/zerolog"
)

// NoMovesPolicy decides what happens when the player to move has no legal move.
type NoMovesPolicy int

const (
	// PassRotate passes the turn and exchanges the card in hand slot 0 with the
	// side card, as if that card had been played.
	PassRotate NoMovesPolicy = iota
	// Pass hands the turn over with the cards untouched.
	Pass
	// Forfeit ends the match; the opponent wins.
	Forfeit
)

func (p NoMovesPolicy) String() string {
	switch p {
	case PassRotate:
		return config.NoMovesPassRotate
	case Pass:
		return config.NoMovesPass
	case Forfeit:
		return config.NoMovesForfeit
	}
	return "unknown"
}

func ParseNoMovesPolicy(s string) (NoMovesPolicy, error) {
	switch s {
	case config.NoMovesPassRotate, "":
		return PassRotate, nil
	case config.NoMovesPass:
		return Pass, nil
	case config.NoMovesForfeit:
		return Forfeit, nil
	}
	return 0, fmt.Errorf("unknown no-moves policy %q", s)
}

// Reason explains how a match ended.
type Reason string

const (
	ReasonCapture  Reason = "master_captured"
	ReasonTemple   Reason = "temple_reached"
	ReasonForfeit  Reason = "forfeit"
	ReasonMaxTurns Reason = "max_turns"
)

// Result of a finished match.
type Result struct {
	ID        string
	Winner    game.Player
	HasWinner bool
	Reason    Reason
	Turns     int // Plies taken, passes included
	Final     game.GameState
	Game      metrics.GameMetric
	Moves     []metrics.MoveMetric
}

type Option func(*Engine)

func WithMaxTurns(n int) Option {
	return func(e *Engine) {
		e.maxTurns = n
	}
}

func WithNoMovesPolicy(p NoMovesPolicy) Option {
	return func(e *Engine) {
		e.noMoves = p
	}
}

func WithCollector(c metrics.Collector) Option {
	return func(e *Engine) {
		e.collector = c
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithSeed records the seed the initial state was dealt from.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}
