package strategy

import (
	"fourinarow/game"

	"golang.org/x/exp/rand"
)

// Named weight vectors.
var (
	BalancedWeights = Weights{
		Threats: 100, Threes: 10, Twos: 2,
		Blocks: 100, Disruption: 5,
		Center: 4, KeyPosition: 3,
		Restriction: 20, LookAhead: 1000, Jitter: 0.5,
	}

	// Offense counts twice as much as defense
	AggressiveWeights = Weights{
		Threats: 200, Threes: 20, Twos: 4,
		Blocks: 100, Disruption: 5,
		Center: 4, KeyPosition: 3,
		Restriction: 20, LookAhead: 1000, Jitter: 0.5,
	}

	// Defense counts twice as much as offense
	DefensiveWeights = Weights{
		Threats: 100, Threes: 10, Twos: 2,
		Blocks: 200, Disruption: 10,
		Center: 4, KeyPosition: 6,
		Restriction: 20, LookAhead: 1000, Jitter: 0.5,
	}

	// Defense only, dominated by breaking up the opponent's formations
	PatternDisruptionWeights = Weights{
		Blocks: 200, Disruption: 25,
		Center: 4, KeyPosition: 8,
		Restriction: 20, LookAhead: 1000, Jitter: 0.5,
	}
)

// Heuristic scores every candidate with Evaluate and plays the best one.
type Heuristic struct {
	name    string
	weights Weights
	rng     *rand.Rand
}

func NewHeuristic(name string, weights Weights, rng *rand.Rand) *Heuristic {
	if rng == nil {
		rng = NewRand(0)
	}
	return &Heuristic{name: name, weights: weights, rng: rng}
}

func NewBalanced(rng *rand.Rand) *Heuristic {
	return NewHeuristic("balanced", BalancedWeights, rng)
}

func NewAggressive(rng *rand.Rand) *Heuristic {
	return NewHeuristic("aggressive", AggressiveWeights, rng)
}

func NewDefensive(rng *rand.Rand) *Heuristic {
	return NewHeuristic("defensive", DefensiveWeights, rng)
}

func NewPatternDisruption(rng *rand.Rand) *Heuristic {
	return NewHeuristic("disruptor", PatternDisruptionWeights, rng)
}

func (h *Heuristic) Name() string {
	return h.name
}

func (h *Heuristic) Weights() Weights {
	return h.weights
}

func (h *Heuristic) SelectFromSafeColumns(pos game.Position, candidates []int) int {
	candidates = Candidates(pos, candidates)
	switch len(candidates) {
	case 0:
		return -1
	case 1:
		return candidates[0]
	}
	return best(h.Scores(pos, candidates), h.draws(candidates), candidates)
}

// BreakTie chooses among wins or blocks with the same scoring.
func (h *Heuristic) BreakTie(pos game.Position, columns []int) int {
	return h.SelectFromSafeColumns(pos, columns)
}

// Scores returns the weighted score of every playable candidate.
func (h *Heuristic) Scores(pos game.Position, candidates []int) map[int]float64 {
	scores := make(map[int]float64, len(candidates))
	for _, col := range candidates {
		bd, err := Evaluate(pos, col)
		if err != nil {
			continue
		}
		scores[col] = bd.Total(h.weights)
	}
	return scores
}

// draws returns one jitter draw per column, all zero without jitter.
func (h *Heuristic) draws(columns []int) map[int]float64 {
	draws := make(map[int]float64, len(columns))
	if h.weights.Jitter <= 0 {
		return draws
	}
	for _, col := range columns {
		draws[col] = h.weights.Jitter * h.rng.Float64()
	}
	return draws
}
