package agent

import (
	"testing"
	"time"

	"fourinarow/analyzer"
	"fourinarow/experiments/metrics"
	"fourinarow/game"
	"fourinarow/searcher"
	"fourinarow/strategy"

	"github.com/stretchr/testify/require"
)

func position(toMove game.Player, rows ...string) game.Position {
	return game.NewPosition(game.MustParseBoard(rows...), toMove)
}

// stubborn always answers the same column, legal or not
type stubborn struct {
	column int
	seen   [][]int
}

func (s *stubborn) Name() string { return "stubborn" }

func (s *stubborn) SelectFromSafeColumns(_ game.Position, candidates []int) int {
	s.seen = append(s.seen, candidates)
	return s.column
}

func agents() []*Agent {
	return []*Agent{
		New(strategy.NewRandom(strategy.NewRand(1))),
		New(strategy.NewBalanced(strategy.NewRand(2))),
		New(strategy.NewDefensive(strategy.NewRand(3))),
		New(searcher.NewMCTS(1, searcher.WithSeed(4), searcher.WithSimulations(100), searcher.WithMinSimulations(10))),
	}
}

func TestDecide(t *testing.T) {
	t.Run("immediate win pre-empts the block", func(t *testing.T) {
		// Both players threaten a vertical four
		pos := position(game.PlayerB,
			"R.....Y",
			"R.....Y",
			"R.....Y",
		)
		for _, a := range agents() {
			d, err := a.Decide(pos)

			require.NoError(t, err)
			require.Equal(t, 6, d.Column, a.Name())
			require.Equal(t, StageWin, d.Stage)
			require.Equal(t, []int{0}, d.Analysis.BlockingMoves)
		}
	})

	t.Run("forced block", func(t *testing.T) {
		pos := position(game.PlayerB,
			"YY.....",
			"RRR....",
		)
		for _, a := range agents() {
			d, err := a.Decide(pos)

			require.NoError(t, err)
			require.Equal(t, 3, d.Column, a.Name())
			require.Equal(t, StageBlock, d.Stage)
			require.False(t, d.Trapped)
		}
	})

	t.Run("strategy picks among safe columns", func(t *testing.T) {
		pos := position(game.PlayerB,
			".RRR...",
			".YRY.Y.",
		)
		s := &stubborn{column: 5}

		d, err := New(s).Decide(pos)

		require.NoError(t, err)
		require.Equal(t, 5, d.Column)
		require.Equal(t, StageStrategy, d.Stage)
		require.Equal(t, [][]int{{1, 2, 3, 5, 6}}, s.seen, "Columns under R's open three are never offered")
	})

	t.Run("trapped position falls back to the least bad columns", func(t *testing.T) {
		// Column 6 is the only move left and Y wins on top of it
		pos := position(game.PlayerA,
			"RRYRYY.",
			"YRYRRR.",
			"YRRRYY.",
			"RYRYRR.",
			"YYRYYY.",
			"RYYRRY.",
		)
		for _, a := range agents() {
			d, err := a.Decide(pos)

			require.NoError(t, err)
			require.True(t, d.Trapped, a.Name())
			require.Equal(t, StageStrategy, d.Stage)
			require.Equal(t, []int{6}, d.Candidates)
			require.Equal(t, 6, d.Column)
		}
	})

	t.Run("answers outside the candidates are replaced", func(t *testing.T) {
		pos := game.NewPosition(game.Board{}, game.PlayerA)

		d, err := New(&stubborn{column: 42}).Decide(pos)

		require.NoError(t, err)
		require.Equal(t, 0, d.Column, "The first candidate replaces an invalid answer")
	})

	t.Run("finished game", func(t *testing.T) {
		pos := position(game.PlayerB, "RRRRYYY")

		_, err := New(&stubborn{}).Decide(pos)

		require.ErrorIs(t, err, game.ErrGameAlreadyOver)
	})

	t.Run("disabled capabilities skip the stages", func(t *testing.T) {
		pos := position(game.PlayerB,
			"YY.....",
			"RRR....",
		)
		s := &stubborn{column: 6}

		d, err := New(s, WithCapabilities(analyzer.Capabilities{})).Decide(pos)

		require.NoError(t, err)
		require.Equal(t, 6, d.Column, "Without block detection the strategy decides")
		require.Equal(t, StageStrategy, d.Stage)
	})

	t.Run("search metrics are reported", func(t *testing.T) {
		a := New(searcher.NewMCTS(1, searcher.WithSeed(5), searcher.WithSimulations(100),
			searcher.WithMinSimulations(10), searcher.WithMetrics()))

		d, err := a.Decide(game.NewPosition(game.Board{}, game.PlayerA))

		require.NoError(t, err)
		require.Equal(t, 50, d.Search.Rollouts)
	})
}

func TestSelfPlayIsLegal(t *testing.T) {
	for _, a := range agents()[:3] {
		t.Run(a.Name(), func(t *testing.T) {
			for i := 0; i < 10; i++ {
				gs := game.NewGameState()
				for !gs.GameOver() {
					d, err := a.Decide(gs.Position())
					require.NoError(t, err)
					require.Contains(t, gs.ValidMoves(), d.Column)

					_, err = gs.MakeMove(d.Column)
					require.NoError(t, err)
				}
			}
		})
	}
}

func TestNewStrategy(t *testing.T) {
	t.Run("every name builds", func(t *testing.T) {
		for _, name := range Names {
			s, err := NewStrategy(metrics.AgentConfig{Strategy: name, Seed: 1})

			require.NoError(t, err)
			require.Equal(t, name, s.Name())
		}
	})

	t.Run("search settings reach the searcher", func(t *testing.T) {
		s, err := NewStrategy(metrics.AgentConfig{Strategy: "mcts", Simulations: 40, MinSimulations: 5, Duration: time.Second})
		require.NoError(t, err)

		m, ok := s.(*searcher.MCTS)
		require.True(t, ok)
		require.Equal(t, 20, m.Budget(game.NewPosition(game.Board{}, game.PlayerA)))
	})

	t.Run("zero confidence and time limit are kept", func(t *testing.T) {
		s, err := NewStrategy(metrics.AgentConfig{Strategy: "mcts", Simulations: 40, MinSimulations: 5})
		require.NoError(t, err)

		m := s.(*searcher.MCTS)
		require.Zero(t, m.Confidence(), "Zero confidence picks by average reward")
		require.LessOrEqual(t, m.TimeLimit(), time.Duration(0), "Zero time limit disables it")
	})

	t.Run("configured confidence and time limit reach the searcher", func(t *testing.T) {
		s, err := NewStrategy(metrics.AgentConfig{Strategy: "mcts", Confidence: 0.3, Duration: 50 * time.Millisecond})
		require.NoError(t, err)

		m := s.(*searcher.MCTS)
		require.Equal(t, 0.3, m.Confidence())
		require.Equal(t, 50*time.Millisecond, m.TimeLimit())
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := NewStrategy(metrics.AgentConfig{Strategy: "minimax"})

		require.ErrorIs(t, err, ErrUnknownStrategy)
	})
}
