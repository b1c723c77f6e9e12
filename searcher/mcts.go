package searcher

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"fourinarow/experiments/metrics"
	"fourinarow/game"
	"fourinarow/meta"
	"fourinarow/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

type Option func(mcts *MCTS)

// MCTS is a Monte Carlo strategy: a UCB1 bandit over the candidate columns,
// each arm scored by uniformly random playouts. Statistics live only for the
// duration of one decision.
type MCTS struct {
	goroutines     int
	simulations    int
	minSimulations int
	duration       time.Duration
	exploration    float64
	confidence     float64
	cutoff         int
	seed           uint64
	rng            *rand.Rand
	withMetrics    bool
}

func WithSimulations(simulations int) Option {
	return func(m *MCTS) {
		if simulations > 0 {
			m.simulations = simulations
		}
	}
}

func WithMinSimulations(simulations int) Option {
	return func(m *MCTS) {
		if simulations > 0 {
			m.minSimulations = simulations
		}
	}
}

// WithDuration sets the time limit of one decision. A negative duration
// disables the limit.
func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration != 0 {
			m.duration = duration
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c > 0 {
			m.exploration = c
		}
	}
}

func WithConfidence(k float64) Option {
	return func(m *MCTS) {
		if k >= 0 {
			m.confidence = k
		}
	}
}

func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithGoroutines(goroutines int) Option {
	return func(m *MCTS) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

// WithSeed makes the search reproducible when run on a single goroutine.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.withMetrics = true
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines:     goroutines,
		simulations:    meta.SIMULATIONS,
		minSimulations: meta.MIN_SIMULATIONS,
		duration:       meta.TIME_LIMIT,
		exploration:    meta.EXPLORATION,
		confidence:     meta.CONFIDENCE,
		cutoff:         meta.WITH_CUTOFF,
	}
	for _, option := range options {
		option(m)
	}
	if m.goroutines <= 0 {
		m.goroutines = 1
	}
	if m.minSimulations > m.simulations {
		m.minSimulations = m.simulations
	}
	seed := m.seed
	if seed == 0 {
		seed = frand.Uint64n(math.MaxUint64) + 1
	}
	m.rng = rand.New(rand.NewSource(seed))
	return m
}

func (m *MCTS) Name() string {
	return "mcts"
}

// Confidence is the weight of the visit share in the final choice.
func (m *MCTS) Confidence() float64 {
	return m.confidence
}

// TimeLimit is the time limit of one decision, disabled when not positive.
func (m *MCTS) TimeLimit() time.Duration {
	return m.duration
}

func (m *MCTS) SelectFromSafeColumns(pos game.Position, candidates []int) int {
	column, _ := m.Search(pos, candidates)
	return column
}

// Budget is the number of rollouts for a decision on pos: the base budget
// scaled by game phase and by the share of open columns, clamped to
// [minSimulations, 2*simulations].
func (m *MCTS) Budget(pos game.Position) int {
	complexity := float64(len(pos.LegalMoves())) / float64(game.Columns)
	budget := int(math.Round(float64(m.simulations) * phase(pos.Board.MoveCount()) * complexity))
	return min(max(budget, m.minSimulations), 2*m.simulations)
}

// Search picks a column out of candidates and reports how the search went.
// Candidates that are not legal are ignored; with none left it answers a
// uniformly random legal move, and a single candidate is answered without
// any rollout.
func (m *MCTS) Search(pos game.Position, candidates []int) (int, metrics.SearchMetric) {
	collector := m.collector()
	legal := pos.LegalMoves()
	candidates = utils.Intersect(candidates, legal)

	switch {
	case len(legal) == 0:
		collector.Start(m.goroutines, 0, m.cutoff)
		return -1, collector.Complete()
	case len(candidates) == 0:
		collector.Start(m.goroutines, 0, m.cutoff)
		return legal[m.rng.Intn(len(legal))], collector.Complete()
	case len(candidates) == 1:
		collector.Start(m.goroutines, 0, m.cutoff)
		return candidates[0], collector.Complete()
	}

	budget := m.Budget(pos)
	collector.Start(m.goroutines, budget, m.cutoff)
	s := newScratch(candidates)
	m.run(pos, s, budget, collector)
	column := s.best(m.confidence)
	metric := collector.Complete()

	visits, score := s.stats(column)
	log.Trace().Msgf("mcts picked column %d of %v after %d rollouts (visits=%d score=%.1f)",
		column, candidates, s.visits, visits, score)
	return column, metric
}

func (m *MCTS) collector() metrics.Collector {
	if m.withMetrics {
		return metrics.NewCollector()
	}
	return metrics.NewDummyCollector()
}

// run spends the budget on rollouts. The time limit is checked between
// rollouts and only once minSimulations have started.
func (m *MCTS) run(pos game.Position, s *scratch, budget int, collector metrics.Collector) {
	var deadline time.Time
	if m.duration > 0 {
		deadline = time.Now().Add(m.duration)
	}

	var started atomic.Int64
	next := func() bool {
		n := started.Add(1)
		if n > int64(budget) {
			return false
		}
		if n > int64(m.minSimulations) && !deadline.IsZero() && time.Now().After(deadline) {
			collector.SetTimedOut()
			return false
		}
		return true
	}

	work := func(rng *rand.Rand) {
		for next() {
			column := s.selects(m.exploration)
			r, full := rollout(pos, column, rng, m.cutoff)
			s.backup(column, r)
			collector.AddRollout()
			if full {
				collector.AddFullPlayout()
			}
		}
	}

	if m.goroutines == 1 {
		work(m.rng)
		return
	}

	// Each worker owns its random source, seeded from the searcher's
	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		rng := rand.New(rand.NewSource(m.rng.Uint64()))
		wg.Add(1)
		go func() {
			defer wg.Done()
			work(rng)
		}()
	}
	wg.Wait()
}

// rollout plays column for the mover, then uniformly random legal moves until
// the game ends or cutoff moves were played. It returns the reward for the
// mover and whether the game reached a terminal state.
func rollout(pos game.Position, column int, rng *rand.Rand, cutoff int) (float64, bool) {
	mover := pos.ToMove
	state, err := pos.Play(column)
	if err != nil {
		log.Warn().Err(err).Msgf("rollout could not play column %d", column)
		return LOSS, false
	}

	// Rollout till game over or for cutoff number of moves
	for depth := 0; !state.Over && depth < cutoff; depth++ {
		moves := state.LegalMoves()
		state, err = state.Play(moves[rng.Intn(len(moves))])
		if err != nil {
			log.Warn().Err(err).Msg("rollout played an illegal move")
			return DRAW, false
		}
	}

	if !state.Over { // Cut off before a result
		return DRAW, false
	}
	return reward(mover, state.Winner), true
}
