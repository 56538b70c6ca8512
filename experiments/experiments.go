// Package experiments plays series of matches between two agent
// configurations and stores the results.
package experiments

import (
	"context"
	"fmt"
	"sync"

	"onitama/agent"
	"onitama/config"
	"onitama/engine"
	"onitama/experiments/metrics"
	"onitama/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Matchup pits agent A against agent B. Seats alternate: A plays blue in
// even-numbered games and red in odd-numbered ones.
type Matchup struct {
	A, B     config.AgentConfig
	Games    int
	Seed     uint64 // Game i is dealt from Seed+i
	MaxTurns int
	NoMoves  engine.NoMovesPolicy
	Parallel int // Games played at once; 0 means 1
}

type Summary struct {
	Games int
	WinsA int
	WinsB int
	Draws int // Matches stopped by the turn limit
	Turns int // Over all games
}

// Run plays the matchup. Collector and writer may be nil. The first failing
// game cancels the rest.
func Run(ctx context.Context, m Matchup, collector metrics.Collector, writer *metrics.Writer) (Summary, error) {
	if m.Games <= 0 {
		return Summary{}, fmt.Errorf("matchup needs at least one game, got %d", m.Games)
	}
	if collector == nil {
		collector = metrics.NewDummyCollector()
	}

	log.Info().Msgf("starting matchup %s vs %s over %d games...", m.A.Kind, m.B.Kind, m.Games)

	var mu sync.Mutex
	summary := Summary{}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(m.Parallel, 1))
	for i := 0; i < m.Games; i++ {
		i := i // per-iteration copy (go.mod targets go 1.21, pre-loopvar semantics)
		g.Go(func() error {
			aSeat, res, err := m.play(gCtx, i, collector)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}

			if writer != nil {
				if err := writer.WriteGame(res.Game); err != nil {
					return err
				}
				if err := writer.WriteMoves(res.ID, res.Moves); err != nil {
					return err
				}
			}

			mu.Lock()
			defer mu.Unlock()
			summary.Games++
			summary.Turns += res.Turns
			switch {
			case !res.HasWinner:
				summary.Draws++
			case res.Winner == aSeat:
				summary.WinsA++
			default:
				summary.WinsB++
			}
			log.Info().Msgf("completed game %d of %d with winner: %q (%s)", i+1, m.Games, res.Game.Winner, res.Reason)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary, err
	}

	log.Info().Msgf("completed matchup: A won %d, B won %d, %d unfinished", summary.WinsA, summary.WinsB, summary.Draws)
	return summary, nil
}

// play runs game i and reports which seat agent A had.
func (m Matchup) play(ctx context.Context, i int, collector metrics.Collector) (game.Player, engine.Result, error) {
	seed := m.Seed + uint64(i)
	a, err := agent.New(m.A, nil)
	if err != nil {
		return 0, engine.Result{}, fmt.Errorf("agent A: %w", err)
	}
	b, err := agent.New(m.B, nil)
	if err != nil {
		return 0, engine.Result{}, fmt.Errorf("agent B: %w", err)
	}
	aSeat := game.Blue
	blue, red := a, b
	if i%2 == 1 {
		aSeat = game.Red
		blue, red = b, a
	}

	options := []engine.Option{
		engine.WithSeed(seed),
		engine.WithNoMovesPolicy(m.NoMoves),
		engine.WithCollector(collector),
	}
	if m.MaxTurns > 0 {
		options = append(options, engine.WithMaxTurns(m.MaxTurns))
	}
	e := engine.New(game.NewGameState(seed), blue, red, options...)

	res, err := e.Run(ctx)
	return aSeat, res, err
}
