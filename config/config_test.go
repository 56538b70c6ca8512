package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"onitama/meta"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, KindMinimax, cfg.Blue.Kind)
	require.Equal(t, meta.DefaultBudget, cfg.Blue.Budget)
}

func TestParse(t *testing.T) {
	t.Run("overrides defaults", func(t *testing.T) {
		cfg, err := Parse([]byte(`
seed: 7
max_turns: 50
no_moves: pass
blue:
  kind: random
  seed: 3
red:
  kind: minimax
  budget: 250ms
`))
		require.NoError(t, err)
		require.Equal(t, uint64(7), cfg.Seed)
		require.Equal(t, 50, cfg.MaxTurns)
		require.Equal(t, NoMovesPass, cfg.NoMoves)
		require.Equal(t, AgentConfig{Kind: KindRandom, Seed: 3}, cfg.Blue)
		require.Equal(t, AgentConfig{Kind: KindMinimax, Budget: 250 * time.Millisecond}, cfg.Red)
		require.Equal(t, "info", cfg.LogLevel, "Unset fields should keep defaults")
	})

	t.Run("rejects unknown agent kinds", func(t *testing.T) {
		_, err := Parse([]byte("red:\n  kind: oracle\n"))
		require.ErrorContains(t, err, "oracle")
		require.ErrorContains(t, err, "red.kind")
	})

	t.Run("rejects minimax without budget", func(t *testing.T) {
		_, err := Parse([]byte("blue:\n  kind: minimax\n  budget: 0s\n"))
		require.Error(t, err)
	})

	t.Run("mcts agent", func(t *testing.T) {
		cfg, err := Parse([]byte("red:\n  kind: mcts\n  budget: 100ms\n  goroutines: 4\n  seed: 2\n"))
		require.NoError(t, err)
		require.Equal(t, AgentConfig{Kind: KindMCTS, Budget: 100 * time.Millisecond, Seed: 2, Goroutines: 4}, cfg.Red)

		_, err = Parse([]byte("red:\n  kind: mcts\n  budget: 100ms\n  goroutines: -1\n"))
		require.Error(t, err)
		_, err = Parse([]byte("red:\n  kind: mcts\n"))
		require.Error(t, err)
	})

	t.Run("rejects unknown no-moves policy", func(t *testing.T) {
		_, err := Parse([]byte("no_moves: resign\n"))
		require.Error(t, err)
	})

	t.Run("rejects bad limits", func(t *testing.T) {
		_, err := Parse([]byte("max_turns: 0\n"))
		require.ErrorContains(t, err, "max_turns")
		_, err = Parse([]byte("log_level: loud\n"))
		require.ErrorContains(t, err, "log_level")
		_, err = Parse([]byte("blue:\n  kind: greedy\n  budget: -1s\n"))
		require.ErrorContains(t, err, "blue.budget")
	})

	t.Run("reports every problem", func(t *testing.T) {
		_, err := Parse([]byte("max_turns: -1\nblue:\n  kind: minimax\n  budget: 0s\n"))
		require.ErrorContains(t, err, "max_turns")
		require.ErrorContains(t, err, "a minimax agent needs a positive budget")
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		_, err := Parse([]byte("seed: [1, 2"))
		require.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_turns: 10\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 10, cfg.MaxTurns)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
