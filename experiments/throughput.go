package experiments

import (
	"context"
	"time"

	"fourinarow/experiments/metrics"

	"github.com/rs/zerolog/log"
)

// DefaultGoroutines are the worker counts compared by the throughput
// experiment.
var DefaultGoroutines = []int{1, 2, 4, 8, 16}

type Throughput struct {
	Config    metrics.AgentConfig
	Searches  int
	Rollouts  int
	Duration  time.Duration
	PerSecond float64
}

// ThroughputExperiment pairs every goroutine count with itself, so both sides search
// with the same strength and games have a similar length.
func ThroughputExperiment(base metrics.AgentConfig, goroutines []int, games, workers int) Experiment {
	base.Strategy = "mcts"
	e := Experiment{
		Name:    "throughput",
		Games:   games,
		Workers: workers,
	}
	for i, n := range goroutines {
		config := base
		config.ID = i + 1
		config.Goroutines = n
		e.Configs = append(e.Configs, config)
		e.MatchUps = append(e.MatchUps, [2]metrics.AgentConfig{config, config})
	}
	return e
}

// RunThroughput runs an experiment built by ThroughputExperiment and measures
// rollouts per second of search for each goroutine count.
func RunThroughput(ctx context.Context, e Experiment) ([]Throughput, Results, error) {
	results, err := e.Run(ctx)
	if err != nil {
		return nil, Results{}, err
	}

	byConfig := map[int]*Throughput{}
	throughputs := make([]Throughput, len(e.Configs))
	for i, config := range e.Configs {
		throughputs[i].Config = config
		byConfig[config.ID] = &throughputs[i]
	}
	agentOf := map[int]int{}
	for _, record := range results.Games {
		agentOf[record.ID] = record.Agent1
	}
	for _, record := range results.Moves {
		if record.Rollouts == 0 {
			continue
		}
		t := byConfig[agentOf[record.Game]]
		t.Searches++
		t.Rollouts += record.Rollouts
		t.Duration += record.Duration
	}
	for i := range throughputs {
		t := &throughputs[i]
		if t.Duration > 0 {
			t.PerSecond = float64(t.Rollouts) / t.Duration.Seconds()
		}
		log.Info().Msgf("goroutines=%d searches=%d rollouts=%d rollouts/s=%.0f",
			t.Config.Goroutines, t.Searches, t.Rollouts, t.PerSecond)
	}
	return throughputs, results, nil
}
