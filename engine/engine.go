package engine

import (
	"fourinarow/agent"
	"fourinarow/experiments/metrics"
	"fourinarow/game"
)

// MaxMoves is the longest possible game.
const MaxMoves = game.Rows * game.Columns

type Engine interface {
	// Run plays a game till there's a winner, a draw or the turn limit
	Run() (winner string, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}

// Decider chooses moves for one side of a game. *agent.Agent is the usual
// implementation.
type Decider interface {
	Name() string
	Decide(pos game.Position) (agent.Decision, error)
}
