package agent

import (
	"fmt"
	"time"

	"fourinarow/experiments/metrics"
	"fourinarow/game"
	"fourinarow/searcher"
	"fourinarow/strategy"
)

const ErrUnknownStrategy = game.Error("unknown strategy")

// Names lists the strategies NewStrategy can build.
var Names = []string{"random", "balanced", "aggressive", "defensive", "disruptor", "mcts"}

// NewStrategy builds the strategy named by config.Strategy. A zero seed draws
// a fresh one. Search counts and exploration left at zero keep their
// defaults, while confidence and time limit are always taken as given.
func NewStrategy(config metrics.AgentConfig) (strategy.Strategy, error) {
	rng := strategy.NewRand(config.Seed)
	switch config.Strategy {
	case "random":
		return strategy.NewRandom(rng), nil
	case "balanced":
		return strategy.NewBalanced(rng), nil
	case "aggressive":
		return strategy.NewAggressive(rng), nil
	case "defensive":
		return strategy.NewDefensive(rng), nil
	case "disruptor":
		return strategy.NewPatternDisruption(rng), nil
	case "mcts":
		return createMCTS(config), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, config.Strategy)
	}
}

func createMCTS(config metrics.AgentConfig) *searcher.MCTS {
	options := []searcher.Option{
		searcher.WithConfidence(config.Confidence),
		searcher.WithDuration(timeLimit(config.Duration)),
	}

	if config.Simulations > 0 {
		options = append(options, searcher.WithSimulations(config.Simulations))
	}
	if config.MinSimulations > 0 {
		options = append(options, searcher.WithMinSimulations(config.MinSimulations))
	}
	if config.Exploration > 0 {
		options = append(options, searcher.WithExploration(config.Exploration))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}
	if config.Seed != 0 {
		options = append(options, searcher.WithSeed(config.Seed))
	}

	options = append(options, searcher.WithMetrics())
	return searcher.NewMCTS(config.Goroutines, options...)
}

// timeLimit maps a zero duration to a disabled limit.
func timeLimit(d time.Duration) time.Duration {
	if d <= 0 {
		return -1
	}
	return d
}
