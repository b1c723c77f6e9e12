package strategy

import (
	mathrand "math/rand"
	"testing"

	"fourinarow/game"

	"github.com/stretchr/testify/require"
)

func position(toMove game.Player, rows ...string) game.Position {
	return game.NewPosition(game.MustParseBoard(rows...), toMove)
}

func allStrategies() []Strategy {
	return []Strategy{
		NewRandom(NewRand(1)),
		NewBalanced(NewRand(2)),
		NewAggressive(NewRand(3)),
		NewDefensive(NewRand(4)),
		NewPatternDisruption(NewRand(5)),
	}
}

func TestSelectReturnsACandidate(t *testing.T) {
	rng := mathrand.New(mathrand.NewSource(3))
	for _, s := range allStrategies() {
		t.Run(s.Name(), func(t *testing.T) {
			for i := 0; i < 30; i++ {
				gs := game.NewGameState()
				for !gs.GameOver() {
					pos := gs.Position()
					legal := pos.LegalMoves()
					subset := []int{}
					for _, col := range legal {
						if rng.Intn(2) == 0 {
							subset = append(subset, col)
						}
					}

					got := s.SelectFromSafeColumns(pos, subset)

					if len(subset) == 0 {
						require.Contains(t, legal, got, "Empty input should fall back to legal moves")
					} else {
						require.Contains(t, subset, got, "Strategy must answer from the candidate set")
					}
					_, err := gs.MakeMove(got)
					require.NoError(t, err)
				}
			}
		})
	}
}

func TestSelectOnFinishedGame(t *testing.T) {
	pos := position(game.PlayerB, "RRRRYYY")
	for _, s := range allStrategies() {
		require.Equal(t, -1, s.SelectFromSafeColumns(pos, nil), s.Name())
	}
}

func TestSelectIgnoresUnplayableCandidates(t *testing.T) {
	pos := position(game.PlayerA, "Y......", "R......", "Y......", "R......", "Y......", "R......")
	legal := pos.LegalMoves()

	require.Equal(t, []int{5}, Candidates(pos, []int{0, 5, 7}))
	require.Equal(t, legal, Candidates(pos, []int{0, -1}))
	for _, s := range allStrategies() {
		t.Run(s.Name(), func(t *testing.T) {
			require.Equal(t, 5, s.SelectFromSafeColumns(pos, []int{0, 5}))
			for i := 0; i < 20; i++ {
				require.Contains(t, legal, s.SelectFromSafeColumns(pos, []int{0, -1}))
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	t.Run("winning column", func(t *testing.T) {
		pos := position(game.PlayerA, "YYY....", "RRR....")

		bd, err := Evaluate(pos, 3)

		require.NoError(t, err)
		require.True(t, bd.Wins)
		require.Equal(t, WinScore, bd.Total(BalancedWeights))
	})

	t.Run("blocking column removes a threat", func(t *testing.T) {
		pos := position(game.PlayerB, "YY.....", "RRR....")

		bd, err := Evaluate(pos, 3)

		require.NoError(t, err)
		require.Equal(t, 1, bd.Blocks)
		require.Positive(t, bd.Disruption, "Blocking breaks R's three")
	})

	t.Run("creating a threat", func(t *testing.T) {
		pos := position(game.PlayerA, "..YY...", "..RR...")

		bd, err := Evaluate(pos, 1)

		require.NoError(t, err)
		require.Equal(t, 2, bd.Threats, "RRR in the middle of the bottom row is open at both ends")
		require.Positive(t, bd.Threes)
	})

	t.Run("detecting an opponent fork", func(t *testing.T) {
		pos := position(game.PlayerB, "..YY...", "..RR...")

		far, err := Evaluate(pos, 6)
		require.NoError(t, err)
		near, err := Evaluate(pos, 1)
		require.NoError(t, err)

		require.True(t, far.Danger, "Leaving ..RR.. lets R open a double threat")
		require.False(t, near.Danger)
	})

	t.Run("full column", func(t *testing.T) {
		pos := position(game.PlayerA, "Y......", "R......", "Y......", "R......", "Y......", "R......")

		_, err := Evaluate(pos, 0)

		require.ErrorIs(t, err, game.ErrColumnFull)
	})
}

func TestHeuristicAvoidsForks(t *testing.T) {
	pos := position(game.PlayerB, "..YY...", "..RR...")
	for _, s := range allStrategies()[1:] {
		t.Run(s.Name(), func(t *testing.T) {
			got := s.SelectFromSafeColumns(pos, pos.LegalMoves())

			require.Contains(t, []int{1, 4}, got)
		})
	}
}

func TestHeuristicTakesTheWin(t *testing.T) {
	pos := position(game.PlayerA, "YYY....", "RRR....")
	for _, s := range allStrategies()[1:] {
		got := s.SelectFromSafeColumns(pos, []int{0, 3, 6})

		require.Equal(t, 3, got, s.Name())
	}
}

func TestHeuristicTieBreak(t *testing.T) {
	pos := game.NewPosition(game.Board{}, game.PlayerA)

	t.Run("jitter only splits equal scores", func(t *testing.T) {
		counts := map[int]int{}
		for seed := uint64(1); seed <= 200; seed++ {
			counts[NewBalanced(NewRand(seed)).SelectFromSafeColumns(pos, []int{0, 2, 4})]++
		}

		require.Zero(t, counts[0], "Column 0 scores below the mirrored 2 and 4")
		require.Positive(t, counts[2])
		require.Positive(t, counts[4])
	})

	t.Run("without jitter equal scores go to the center, then the lowest column", func(t *testing.T) {
		weights := BalancedWeights
		weights.Jitter = 0
		h := NewHeuristic("steady", weights, NewRand(1))

		require.Equal(t, 2, h.SelectFromSafeColumns(pos, []int{4, 2}))
		require.Equal(t, 3, h.SelectFromSafeColumns(pos, []int{6, 0, 3}))
	})
}

func TestWeightVectors(t *testing.T) {
	require.Equal(t, 2*AggressiveWeights.Blocks, AggressiveWeights.Threats, "Aggressive doubles offense")
	require.Equal(t, 2*DefensiveWeights.Threats, DefensiveWeights.Blocks, "Defensive doubles defense")
	require.Zero(t, PatternDisruptionWeights.Threats, "Pattern disruption ignores offense")
	require.Greater(t, PatternDisruptionWeights.Disruption, DefensiveWeights.Disruption)
}

func TestMostThreats(t *testing.T) {
	t.Run("preferring the column with more follow-up threats", func(t *testing.T) {
		pos := position(game.PlayerA, "..YY...", "..RR...")

		got := MostThreats(pos, []int{1, 6})

		require.Equal(t, 1, got)
	})

	t.Run("equal columns go to the center", func(t *testing.T) {
		pos := game.NewPosition(game.Board{}, game.PlayerA)

		got := MostThreats(pos, []int{0, 2, 5})

		require.Equal(t, 2, got)
	})
}

func TestRandomIsUniformEnough(t *testing.T) {
	s := NewRandom(NewRand(9))
	pos := game.NewPosition(game.Board{}, game.PlayerA)
	counts := map[int]int{}

	for i := 0; i < 7000; i++ {
		counts[s.SelectFromSafeColumns(pos, nil)]++
	}

	require.Len(t, counts, game.Columns)
	for col, n := range counts {
		require.InDelta(t, 1000, n, 200, "column %d", col)
	}
}
