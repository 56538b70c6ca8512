package agent

import (
	"errors"
	"fmt"

	"onitama/config"
	"onitama/searcher/mcts"
)

// New builds the agent described by cfg. prompter is only used by human
// agents and may be nil otherwise.
func New(cfg config.AgentConfig, prompter Prompter) (Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Kind {
	case config.KindHuman:
		if prompter == nil {
			return nil, errors.New("human agent needs a prompter")
		}
		return NewHuman(prompter), nil
	case config.KindRandom:
		return NewRandom(cfg.Seed), nil
	case config.KindGreedy:
		return NewGreedy(), nil
	case config.KindWorst:
		return NewWorst(), nil
	case config.KindMinimax:
		return NewMinimax(cfg.Budget), nil
	case config.KindMCTS:
		return NewMonteCarlo(cfg.Budget, max(cfg.Goroutines, 1), mcts.WithSeed(cfg.Seed)), nil
	}
	return nil, fmt.Errorf("unknown agent kind %q", cfg.Kind)
}
