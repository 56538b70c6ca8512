// Package config loads match settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"onitama/meta"
)

// Agent kinds understood by agent.New.
const (
	KindHuman   = "human"
	KindRandom  = "random"
	KindGreedy  = "greedy"
	KindWorst   = "worst"
	KindMinimax = "minimax"
	KindMCTS    = "mcts"
)

// What the game loop does when the player to move has no legal move.
const (
	NoMovesForfeit    = "forfeit"
	NoMovesPass       = "pass"
	NoMovesPassRotate = "pass_rotate"
)

// Config describes one match.
type Config struct {
	// Seed drives the deal and the starting player.
	Seed uint64 `yaml:"seed"`

	// MaxTurns ends the match without a winner once reached.
	MaxTurns int `yaml:"max_turns" validate:"gt=0"`

	// NoMoves selects the policy for a player without legal moves.
	NoMoves string `yaml:"no_moves" validate:"oneof=forfeit pass pass_rotate"`

	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`

	Blue AgentConfig `yaml:"blue"`
	Red  AgentConfig `yaml:"red"`
}

// AgentConfig selects and parameterises the agent playing one side.
type AgentConfig struct {
	Kind string `yaml:"kind" validate:"oneof=human random greedy worst minimax mcts"`

	// Budget is the per-move search time of minimax and mcts agents.
	Budget time.Duration `yaml:"budget" validate:"gte=0"`

	// Seed drives a random agent and the playouts of an mcts agent.
	Seed uint64 `yaml:"seed"`

	// Goroutines searching the shared mcts tree; 0 means 1.
	Goroutines int `yaml:"goroutines" validate:"gte=0"`
}

// Default returns a minimax-versus-greedy match with sensible limits.
func Default() Config {
	return Config{
		Seed:     meta.DefaultSeed,
		MaxTurns: meta.MaxTurns,
		NoMoves:  NoMovesPassRotate,
		LogLevel: "info",
		Blue:     AgentConfig{Kind: KindMinimax, Budget: meta.DefaultBudget},
		Red:      AgentConfig{Kind: KindGreedy},
	}
}

// Load reads a YAML file on top of Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the field constraints and that searching agents have a budget.
func (c Config) Validate() error {
	return check(validate.Struct(c))
}

func (a AgentConfig) Validate() error {
	return check(validate.Struct(a))
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their yaml names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(validateAgent, AgentConfig{})
	return v
}

func validateAgent(sl validator.StructLevel) {
	a := sl.Current().Interface().(AgentConfig)
	if (a.Kind == KindMinimax || a.Kind == KindMCTS) && a.Budget <= 0 {
		sl.ReportError(a.Budget, "budget", "Budget", "budget", a.Kind)
	}
}

// check flattens validation errors into a single readable error.
func check(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	msgs := make([]string, len(errs))
	for i, fe := range errs {
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		switch fe.Tag() {
		case "budget":
			msgs[i] = fmt.Sprintf("%s: a %s agent needs a positive budget, got %v", field, fe.Param(), fe.Value())
		case "oneof":
			msgs[i] = fmt.Sprintf("%s: %q is not one of %s", field, fe.Value(), fe.Param())
		default:
			msgs[i] = fmt.Sprintf("%s: %v fails %s=%s", field, fe.Value(), fe.Tag(), fe.Param())
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
