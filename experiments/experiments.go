package experiments

import (
	"context"
	"fmt"

	"fourinarow/agent"
	"fourinarow/engine"
	"fourinarow/experiments/metrics"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Experiment plays every match up a number of times. The first config of a
// match up moves first.
type Experiment struct {
	Name     string
	Configs  []metrics.AgentConfig
	MatchUps [][2]metrics.AgentConfig
	Games    int // Per match up
	Workers  int // Games played concurrently
	MaxTurns int
}

type Results struct {
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
}

type scheduled struct {
	matchUp int
	round   int
	metric  metrics.GameMetric
	moves   []metrics.MoveMetric
}

// Run plays all games, each with its own state and freshly built agents.
// Records come back in match up order regardless of which games finished
// first.
func (e Experiment) Run(ctx context.Context) (Results, error) {
	games := make([]scheduled, 0, len(e.MatchUps)*e.Games)
	for mi := range e.MatchUps {
		for i := 0; i < e.Games; i++ {
			games = append(games, scheduled{matchUp: mi, round: i})
		}
	}

	log.Info().Msgf("starting %s experiment with %d games...", e.Name, len(games))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(e.Workers, 1))
	for i := range games {
		gm := &games[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			first, second := e.MatchUps[gm.matchUp][0], e.MatchUps[gm.matchUp][1]
			winner, metric, moves, err := runGame(first, second, gm.round, e.MaxTurns)
			if err != nil {
				return fmt.Errorf("match up %d game %d: %w", gm.matchUp+1, gm.round+1, err)
			}
			gm.metric, gm.moves = metric, moves

			log.Debug().Msgf("completed match up %d of %d game %d of %d with winner: %q",
				gm.matchUp+1, len(e.MatchUps), gm.round+1, e.Games, winner)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Results{}, err
	}

	var results Results
	for i, gm := range games {
		matchUp := e.MatchUps[gm.matchUp]
		results.Games = append(results.Games, metrics.GameRecord{
			ID:         i + 1,
			Agent1:     matchUp[0].ID,
			Agent2:     matchUp[1].ID,
			GameMetric: gm.metric,
		})
		for _, mm := range gm.moves {
			results.Moves = append(results.Moves, metrics.MoveRecord{
				Game:       i + 1,
				MoveMetric: mm,
			})
		}
	}

	log.Info().Msgf("completed %s experiment", e.Name)
	return results, nil
}

// Write stores the experiment's configs and records under outDir.
func (e Experiment) Write(outDir string, results Results) (string, error) {
	writer, err := metrics.NewWriter(outDir, e.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteAgentConfigs(e.Configs)
	if err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	err = writer.WriteGameRecords(results.Games)
	if err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(results.Moves)
	if err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}

// runGame plays one game between fresh agents built from the two configs.
// Seeded configs get a distinct, reproducible seed per round.
func runGame(config1, config2 metrics.AgentConfig, round, maxTurns int) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	players := []string{playerName(config1), playerName(config2)}
	agents := make([]engine.Decider, 0, 2)
	for _, config := range []metrics.AgentConfig{config1, config2} {
		if config.Seed != 0 {
			config.Seed += uint64(round) * 7919
		}
		s, err := agent.NewStrategy(config)
		if err != nil {
			return "", metrics.GameMetric{}, nil, err
		}
		agents = append(agents, agent.New(s))
	}

	options := []engine.Option{}
	if maxTurns > 0 {
		options = append(options, engine.WithMaxTurns(maxTurns))
	}
	e := engine.NewLocalEngine(players, agents, options...)

	winner, gameMetric, moveMetrics := e.Run()
	return winner, gameMetric, moveMetrics, nil
}

func playerName(config metrics.AgentConfig) string {
	return fmt.Sprintf("%s#%d", config.Strategy, config.ID)
}
