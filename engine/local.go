package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"onitama/agent"
	"onitama/experiments/metrics"
	"onitama/game"
	"onitama/meta"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Engine plays one match between two agents on a single goroutine.
type Engine struct {
	ID     string
	State  game.GameState
	Agents [2]agent.Agent // Indexed by game.Player

	seed      uint64
	maxTurns  int
	noMoves   NoMovesPolicy
	collector metrics.Collector
	logger    zerolog.Logger
	now       func() time.Time
}

func New(state game.GameState, blue, red agent.Agent, options ...Option) *Engine {
	if blue == nil || red == nil {
		panic("need an agent for each player")
	}
	e := &Engine{
		ID:        uuid.NewString(),
		State:     state,
		Agents:    [2]agent.Agent{game.Blue: blue, game.Red: red},
		maxTurns:  meta.MaxTurns,
		noMoves:   PassRotate,
		collector: metrics.NewDummyCollector(),
		logger:    log.Logger,
		now:       time.Now,
	}
	for _, option := range options {
		option(e)
	}
	if e.maxTurns <= 0 {
		panic("max turns must be positive")
	}
	e.logger = e.logger.With().Str("match", e.ID).Logger()
	return e
}

// Run executes the game loop until there's a winner or the turn limit is hit.
// The returned Result is filled in as far as the match got, even on error.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	start := e.now()
	res := Result{ID: e.ID}
	starting := e.State.Current

	e.logger.Info().
		Str("blue", e.Agents[game.Blue].Name()).
		Str("red", e.Agents[game.Red].Name()).
		Stringer("starting", starting).
		Str("state", e.State.String()).
		Msg("match started")

	var err error
	for res.Turns < e.maxTurns {
		if winner, ok := e.State.Winner(); ok {
			res.Winner, res.HasWinner = winner, true
			res.Reason = winReason(e.State, winner)
			break
		}
		if err = ctx.Err(); err != nil {
			break
		}
		var done bool
		done, err = e.step(&res)
		if err != nil || done {
			break
		}
	}
	if err == nil && !res.HasWinner && res.Reason == "" {
		if winner, ok := e.State.Winner(); ok {
			res.Winner, res.HasWinner = winner, true
			res.Reason = winReason(e.State, winner)
		} else {
			res.Reason = ReasonMaxTurns
		}
	}

	end := e.now()
	res.Final = e.State
	res.Game = metrics.GameMetric{
		ID:             e.ID,
		Seed:           e.seed,
		Blue:           e.Agents[game.Blue].Name(),
		Red:            e.Agents[game.Red].Name(),
		StartingPlayer: starting,
		Reason:         string(res.Reason),
		TotalMoves:     res.Turns,
		StartTime:      start,
		EndTime:        end,
		Duration:       end.Sub(start),
	}
	if res.HasWinner {
		res.Game.Winner = res.Winner.String()
	}

	if err != nil {
		e.logger.Error().Err(err).Int("turns", res.Turns).Msg("match aborted")
		return res, fmt.Errorf("match %s: %w", e.ID, err)
	}
	e.collector.ObserveGame(res.Game)
	e.logger.Info().
		Str("winner", res.Game.Winner).
		Str("reason", res.Game.Reason).
		Int("turns", res.Turns).
		Dur("duration", res.Game.Duration).
		Msg("match finished")
	return res, nil
}

// step plays a single ply. done reports that the match ended without a
// board win.
func (e *Engine) step(res *Result) (done bool, err error) {
	player := e.State.Current
	legal := e.State.LegalMoves()
	if len(legal) == 0 {
		return e.noMove(res, player)
	}

	a := e.Agents[player]
	thinkStart := e.now()
	move, err := a.Choose(e.State)
	think := e.now().Sub(thinkStart)
	_, human := a.(*agent.Human)
	switch {
	case human && errors.Is(err, game.ErrIllegalMove):
		// Never move on a person's behalf.
		return false, fmt.Errorf("%s agent %s: %w", player, a.Name(), err)
	case errors.Is(err, game.ErrIllegalMove):
		e.logger.Warn().Err(err).Str("agent", a.Name()).Msg("agent failed to pick a legal move, playing the first one")
		move = legal[0]
	case err != nil:
		return false, fmt.Errorf("%s agent %s: %w", player, a.Name(), err)
	case !slices.Contains(legal, move):
		e.logger.Warn().Str("agent", a.Name()).Stringer("move", move).Msg("agent returned an illegal move, playing the first legal one")
		move = legal[0]
	}

	next, err := e.State.Apply(move)
	if err != nil {
		return false, fmt.Errorf("applying %s: %w", move, err)
	}

	res.Turns++
	m := metrics.MoveMetric{
		Step:   res.Turns,
		Player: player,
		Agent:  a.Name(),
		Move:   move,
		Card:   e.State.CardFor(move).Name,
		Think:  think,
	}
	if r, ok := a.(agent.MetricsReporter); ok {
		m.Searched = true
		m.Search = r.LastMetrics()
	}
	e.record(res, m)

	e.logger.Debug().
		Int("step", m.Step).
		Stringer("player", player).
		Str("card", m.Card).
		Stringer("move", move).
		Dur("think", think).
		Msg("move played")

	e.State = next
	return false, nil
}

func (e *Engine) noMove(res *Result, player game.Player) (bool, error) {
	e.logger.Info().Stringer("player", player).Stringer("policy", e.noMoves).Msg("no legal moves")
	if e.noMoves == Forfeit {
		res.Winner, res.HasWinner = player.Opponent(), true
		res.Reason = ReasonForfeit
		return true, nil
	}

	next, err := e.State.Pass(e.noMoves == PassRotate, 0)
	if err != nil {
		return false, fmt.Errorf("passing: %w", err)
	}
	res.Turns++
	m := metrics.MoveMetric{
		Step:   res.Turns,
		Player: player,
		Agent:  e.Agents[player].Name(),
		Passed: true,
	}
	if e.noMoves == PassRotate {
		m.Card = e.State.Hand(player)[0].Name
	}
	e.record(res, m)
	e.State = next
	return false, nil
}

func (e *Engine) record(res *Result, m metrics.MoveMetric) {
	res.Moves = append(res.Moves, m)
	e.collector.ObserveMove(m)
}

// winReason tells a capture from a temple win by looking for the loser's master.
func winReason(state game.GameState, winner game.Player) Reason {
	loser := game.MasterOf(winner.Opponent())
	for _, row := range state.Board {
		if slices.Contains(row[:], loser) {
			return ReasonTemple
		}
	}
	return ReasonCapture
}
