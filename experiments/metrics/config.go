package metrics

import "time"

// AgentConfig describes one side of a match up. Search fields only apply to
// the mcts strategy. A zero Duration searches without a time limit and a zero
// Confidence picks by average reward alone.
type AgentConfig struct {
	ID             int
	Strategy       string
	Goroutines     int
	Duration       time.Duration
	Simulations    int
	MinSimulations int
	Exploration    float64
	Confidence     float64
	Cutoff         int
	Seed           uint64
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID, moves first
	Agent2 int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}
