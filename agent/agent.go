package agent

import (
	"fmt"

	"fourinarow/analyzer"
	"fourinarow/experiments/metrics"
	"fourinarow/game"
	"fourinarow/strategy"
	"fourinarow/utils"

	"github.com/rs/zerolog/log"
)

// Stage is the pipeline stage that decided a move.
type Stage int

const (
	StageWin Stage = iota + 1
	StageBlock
	StageStrategy
)

func (s Stage) String() string {
	switch s {
	case StageWin:
		return "win"
	case StageBlock:
		return "block"
	case StageStrategy:
		return "strategy"
	default:
		return "none"
	}
}

// Decision records how a move was chosen.
type Decision struct {
	Column     int
	Stage      Stage
	Trapped    bool
	Candidates []int
	Analysis   analyzer.Result
	Search     metrics.SearchMetric
}

// Searcher is implemented by strategies that can report search metrics.
type Searcher interface {
	Search(pos game.Position, candidates []int) (int, metrics.SearchMetric)
}

type Option func(a *Agent)

// WithCapabilities limits the analysis stages the agent may use.
func WithCapabilities(caps analyzer.Capabilities) Option {
	return func(a *Agent) {
		a.capabilities = caps
	}
}

// Agent runs the move-selection pipeline: take an immediate win, else block
// the opponent's immediate win, else let the strategy pick among the columns
// that do not hand the opponent a win.
type Agent struct {
	strategy     strategy.Strategy
	capabilities analyzer.Capabilities
}

func New(s strategy.Strategy, options ...Option) *Agent {
	a := &Agent{
		strategy:     s,
		capabilities: analyzer.AllCapabilities,
	}
	for _, option := range options {
		option(a)
	}
	return a
}

func (a *Agent) Name() string {
	return a.strategy.Name()
}

func (a *Agent) Strategy() strategy.Strategy {
	return a.strategy
}

// Decide picks the column to play on pos. Finished positions fail with
// game.ErrGameAlreadyOver.
func (a *Agent) Decide(pos game.Position) (Decision, error) {
	if pos.Over {
		return Decision{Column: -1}, fmt.Errorf("deciding a move: %w", game.ErrGameAlreadyOver)
	}

	an := analyzer.New(pos)
	result := an.Analyze(a.capabilities)
	d := Decision{Analysis: result}

	switch {
	case len(result.WinningMoves) > 0:
		d.Stage = StageWin
		d.Candidates = result.WinningMoves
		d.Column = a.breakTie(pos, d.Candidates)
	case len(result.BlockingMoves) > 0:
		d.Stage = StageBlock
		d.Candidates = result.BlockingMoves
		d.Column = a.breakTie(pos, d.Candidates)
	default:
		d.Stage = StageStrategy
		d.Candidates = result.SafeColumns
		if result.Trapped {
			d.Trapped = true
			d.Candidates = an.LeastBad()
		}
		if len(d.Candidates) == 0 {
			d.Candidates = pos.LegalMoves()
		}
		d.Column, d.Search = a.selects(pos, d.Candidates)
	}

	if !utils.Contains(d.Candidates, d.Column) {
		log.Warn().Msgf("%s answered column %d outside %v at stage %s, playing %d",
			a.Name(), d.Column, d.Candidates, d.Stage, d.Candidates[0])
		d.Column = d.Candidates[0]
	}
	return d, nil
}

func (a *Agent) selects(pos game.Position, candidates []int) (int, metrics.SearchMetric) {
	if s, ok := a.strategy.(Searcher); ok {
		return s.Search(pos, candidates)
	}
	return a.strategy.SelectFromSafeColumns(pos, candidates), metrics.SearchMetric{}
}

func (a *Agent) breakTie(pos game.Position, columns []int) int {
	if len(columns) == 1 {
		return columns[0]
	}
	if tb, ok := a.strategy.(strategy.TieBreaker); ok {
		return tb.BreakTie(pos, columns)
	}
	return strategy.MostThreats(pos, columns)
}
