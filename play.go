package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"

	"onitama/agent"
	"onitama/engine"
	"onitama/experiments"
	"onitama/experiments/metrics"
	"onitama/game"
	"onitama/notation"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	games    int
	parallel int

	playCmd = &cobra.Command{
		Use:   "play",
		Short: "Play a single match; human agents read moves such as \"Tiger c1-c3\" from stdin",
		Args:  cobra.NoArgs,
		RunE:  runPlay,
	}

	benchCmd = &cobra.Command{
		Use:   "bench",
		Short: "Play a series of matches between the blue and red agents, alternating seats",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
)

func init() {
	benchCmd.Flags().IntVar(&games, "games", 10, "number of matches")
	benchCmd.Flags().IntVar(&parallel, "parallel", 1, "matches played at once")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	policy, err := engine.ParseNoMovesPolicy(cfg.NoMoves)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	prompter := newLinePrompter(cmd.InOrStdin(), out)
	blue, err := agent.New(cfg.Blue, prompter)
	if err != nil {
		return fmt.Errorf("blue: %w", err)
	}
	red, err := agent.New(cfg.Red, prompter)
	if err != nil {
		return fmt.Errorf("red: %w", err)
	}

	reg := prometheus.NewRegistry()
	stop := serveMetrics(reg)
	defer stop()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	e := engine.New(game.NewGameState(cfg.Seed), blue, red,
		engine.WithSeed(cfg.Seed),
		engine.WithMaxTurns(cfg.MaxTurns),
		engine.WithNoMovesPolicy(policy),
		engine.WithCollector(metrics.NewPrometheusCollector(reg)),
	)
	res, err := e.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprint(out, notation.FormatBoard(res.Final))
	if res.HasWinner {
		fmt.Fprintf(out, "%s wins (%s) after %d plies\n", res.Winner, res.Reason, res.Turns)
	} else {
		fmt.Fprintf(out, "no winner after %d plies\n", res.Turns)
	}

	if outDir == "" {
		return nil
	}
	w, err := metrics.NewWriter(outDir)
	if err != nil {
		return err
	}
	if err := w.WriteGame(res.Game); err != nil {
		return err
	}
	return w.WriteMoves(res.ID, res.Moves)
}

func runBench(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	policy, err := engine.ParseNoMovesPolicy(cfg.NoMoves)
	if err != nil {
		return err
	}

	var w *metrics.Writer
	if outDir != "" {
		w, err = metrics.NewWriter(outDir)
		if err != nil {
			return err
		}
	}
	reg := prometheus.NewRegistry()
	stop := serveMetrics(reg)
	defer stop()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	summary, err := experiments.Run(ctx, experiments.Matchup{
		A:        cfg.Blue,
		B:        cfg.Red,
		Games:    games,
		Seed:     cfg.Seed,
		MaxTurns: cfg.MaxTurns,
		NoMoves:  policy,
		Parallel: parallel,
	}, metrics.NewPrometheusCollector(reg), w)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d  %s: %d  unfinished: %d  (%d games, %.1f plies/game)\n",
		cfg.Blue.Kind, summary.WinsA, cfg.Red.Kind, summary.WinsB, summary.Draws,
		summary.Games, float64(summary.Turns)/float64(summary.Games))
	return nil
}

// linePrompter asks for human moves on a terminal, one per line.
type linePrompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	return &linePrompter{in: bufio.NewScanner(in), out: out}
}

func (p *linePrompter) Select(state game.GameState, bySlot [game.HandSize][]game.Move) (game.Move, error) {
	fmt.Fprint(p.out, notation.FormatBoard(state))
	hand := state.Hand(state.Current)
	for slot, moves := range bySlot {
		options := make([]string, len(moves))
		for i, m := range moves {
			options[i] = notation.FormatCell(m.From) + "-" + notation.FormatCell(m.To)
		}
		fmt.Fprintf(p.out, "  %s: %s\n", hand[slot].Name, strings.Join(options, " "))
	}

	for {
		fmt.Fprint(p.out, "move> ")
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return game.Move{}, fmt.Errorf("reading move: %w", err)
			}
			return game.Move{}, io.ErrUnexpectedEOF
		}
		line := strings.TrimSpace(p.in.Text())
		if line == "" {
			continue
		}
		m, err := notation.ParseMove(state, line)
		if err != nil {
			fmt.Fprintln(p.out, err)
			continue
		}
		if !slices.Contains(bySlot[m.Slot], m) {
			fmt.Fprintf(p.out, "%s is not a legal move\n", line)
			continue
		}
		return m, nil
	}
}
