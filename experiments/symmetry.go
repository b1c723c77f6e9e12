package experiments

import (
	"context"
	"math"

	"fourinarow/experiments/metrics"

	"github.com/rs/zerolog/log"
)

// SkewTolerance is the largest acceptable skew, in percentage points.
const SkewTolerance = 10.0

// Tally counts game outcomes from the first mover's point of view.
type Tally struct {
	Games      int
	FirstWins  int
	SecondWins int
	Draws      int
}

func (t *Tally) add(record metrics.GameRecord) {
	t.Games++
	switch record.WinningPlayer {
	case 1:
		t.FirstWins++
	case 2:
		t.SecondWins++
	default:
		t.Draws++
	}
}

func rate(n, games int) float64 {
	if games == 0 {
		return 0
	}
	return 100 * float64(n) / float64(games)
}

// SymmetryResult holds both halves of a symmetry match.
type SymmetryResult struct {
	AFirst  Tally // A moves first
	BFirst  Tally // B moves first
	Results Results
}

// Skew compares A's win rate when moving first with A's loss rate when
// moving second, in percentage points. A large skew points at a first-mover
// or engine bias.
func (r SymmetryResult) Skew() float64 {
	winsAsMover := rate(r.AFirst.FirstWins, r.AFirst.Games)
	lossesAsResponder := rate(r.BFirst.FirstWins, r.BFirst.Games)
	return math.Abs(winsAsMover - lossesAsResponder)
}

// Symmetry plays a games times against b with a moving first, then games
// times with b moving first.
func Symmetry(a, b metrics.AgentConfig, games, workers int) Experiment {
	if a.ID == 0 {
		a.ID = 1
	}
	if b.ID == 0 || b.ID == a.ID {
		b.ID = a.ID + 1
	}
	return Experiment{
		Name:     "symmetry",
		Configs:  []metrics.AgentConfig{a, b},
		MatchUps: [][2]metrics.AgentConfig{{a, b}, {b, a}},
		Games:    games,
		Workers:  workers,
	}
}

// RunSymmetry runs an experiment built by Symmetry and tallies both halves.
func RunSymmetry(ctx context.Context, e Experiment) (SymmetryResult, error) {
	results, err := e.Run(ctx)
	if err != nil {
		return SymmetryResult{}, err
	}

	r := SymmetryResult{Results: results}
	aID := e.Configs[0].ID
	for _, record := range results.Games {
		if record.Agent1 == aID {
			r.AFirst.add(record)
		} else {
			r.BFirst.add(record)
		}
	}

	log.Info().Msgf("%s first: %+v", playerName(e.Configs[0]), r.AFirst)
	log.Info().Msgf("%s first: %+v", playerName(e.Configs[1]), r.BFirst)
	log.Info().Msgf("skew: %.1f percentage points", r.Skew())
	return r, nil
}
