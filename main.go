package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"onitama/config"
	"onitama/logger"
	"onitama/meta"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	seed        uint64
	blueKind    string
	redKind     string
	budget      time.Duration
	maxTurns    int
	logLevel    string
	outDir      string
	metricsAddr string

	rootCmd = &cobra.Command{
		Use:          "onitama",
		Short:        "Play Onitama between people and search agents",
		SilenceUsage: true,
	}
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "YAML match configuration")
	flags.Uint64Var(&seed, "seed", meta.DefaultSeed, "seed for the deal and the starting player")
	flags.StringVar(&blueKind, "blue", "", "agent playing blue: human, random, greedy, worst, minimax or mcts")
	flags.StringVar(&redKind, "red", "", "agent playing red")
	flags.DurationVar(&budget, "budget", meta.DefaultBudget, "per-move search time of minimax and mcts agents")
	flags.IntVar(&maxTurns, "max-turns", meta.MaxTurns, "stop a match without a winner after this many plies")
	flags.StringVar(&logLevel, "log-level", "", "trace, debug, info, warn or error")
	flags.StringVar(&outDir, "out", "", "directory for the match logs")
	flags.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")

	rootCmd.AddCommand(playCmd, benchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("onitama failed")
	}
}

// loadConfig reads --config, if given, and applies the flags that were set
// explicitly on top of it.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("blue") {
		cfg.Blue.Kind = blueKind
	}
	if flags.Changed("red") {
		cfg.Red.Kind = redKind
	}
	if flags.Changed("budget") || cfg.Blue.Budget == 0 {
		cfg.Blue.Budget = budget
	}
	if flags.Changed("budget") || cfg.Red.Budget == 0 {
		cfg.Red.Budget = budget
	}
	if flags.Changed("max-turns") {
		cfg.MaxTurns = maxTurns
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	logger.Init(cfg.LogLevel, os.Stderr)
	return cfg, cfg.Validate()
}

// serveMetrics exposes reg on --metrics-addr until the returned func is called.
func serveMetrics(reg *prometheus.Registry) func() {
	if metricsAddr == "" {
		return func() {}
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: metricsAddr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("addr", metricsAddr).Msg("metrics server failed")
		}
	}()
	log.Info().Str("addr", metricsAddr).Msg("serving metrics")
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
