package engine

import (
	"time"

	"fourinarow/experiments/metrics"
	"fourinarow/game"
	"fourinarow/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Option func(e *LocalEngine)

// WithMaxTurns stops the game after turns moves.
func WithMaxTurns(turns int) Option {
	return func(e *LocalEngine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

// WithListener subscribes l to the game's events.
func WithListener(l game.Listener) Option {
	return func(e *LocalEngine) {
		e.State.Subscribe(l)
	}
}

// LocalEngine plays two deciders against each other in process. The first
// player moves first.
type LocalEngine struct {
	State    *game.GameState
	Players  []string
	Agents   []Decider
	maxTurns int
}

func NewLocalEngine(players []string, agents []Decider, options ...Option) *LocalEngine {
	if len(players) != len(agents) {
		panic("number of players does not match number of agents")
	}
	if len(players) != 2 {
		panic("need exactly two players")
	}

	e := &LocalEngine{
		State:    game.NewGameState(),
		Players:  players,
		Agents:   agents,
		maxTurns: MaxMoves,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the game loop until the game ends or the turn limit is hit.
// Illegal answers never abort a game: the first legal column is played
// instead and the move is flagged.
func (e *LocalEngine) Run() (string, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		UUID:           uuid.NewString(),
		StartingPlayer: 1,
		StartTime:      time.Now(),
	}
	moveMetrics := []metrics.MoveMetric{}

	log.Debug().Msgf("game %s: %s starts against %s", gameMetric.UUID, e.Players[0], e.Players[1])

	for turn := 1; !e.State.GameOver() && turn <= e.maxTurns; turn++ {
		player := e.State.CurrentPlayer()
		index := int(player) - 1
		moveMetric := e.move(index)
		moveMetric.Step = turn
		moveMetric.Player = index + 1
		moveMetrics = append(moveMetrics, moveMetric)
	}

	winner := ""
	if w := e.State.Winner(); w != game.Empty {
		winner = e.Players[int(w)-1]
		gameMetric.WinningPlayer = int(w)
	}

	gameMetric.Winner = winner
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = e.State.MoveCount()

	switch {
	case winner != "":
		log.Debug().Msgf("game %s: %s won after %d moves", gameMetric.UUID, winner, gameMetric.TotalMoves)
	case e.State.GameOver():
		log.Debug().Msgf("game %s: draw", gameMetric.UUID)
	default:
		log.Debug().Msgf("game %s: stopped after %d turns without a result", gameMetric.UUID, e.maxTurns)
	}
	return winner, gameMetric, moveMetrics
}

func (e *LocalEngine) move(index int) metrics.MoveMetric {
	name := e.Players[index]
	legal := e.State.ValidMoves()

	d, err := e.Agents[index].Decide(e.State.Position())
	m := metrics.MoveMetric{
		Column:       d.Column,
		Stage:        d.Stage.String(),
		Trapped:      d.Trapped,
		SearchMetric: d.Search,
	}
	if err != nil || !utils.Contains(legal, d.Column) {
		log.Warn().Err(err).Msgf("%s returned invalid column %d, playing %d instead", name, d.Column, legal[0])
		m.Column = legal[0]
		m.Invalid = true
	}

	_, err = e.State.MakeMove(m.Column)
	if err != nil {
		// The column was checked against the legal moves above
		panic(err)
	}
	return m
}
