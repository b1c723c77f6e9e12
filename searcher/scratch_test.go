package searcher

import (
	"testing"

	"fourinarow/game"

	"github.com/stretchr/testify/require"
)

func TestScratch(t *testing.T) {
	t.Run("unvisited candidates go first in order", func(t *testing.T) {
		s := newScratch([]int{4, 1, 6})

		got := []int{s.selects(1), s.selects(1), s.selects(1)}

		require.Equal(t, []int{4, 1, 6}, got)
	})

	t.Run("duplicate candidates share one arm", func(t *testing.T) {
		s := newScratch([]int{2, 2, 5})

		require.Len(t, s.arms, 2)
	})

	t.Run("virtual loss until backup", func(t *testing.T) {
		s := newScratch([]int{0, 1})

		col := s.selects(1)
		visits, score := s.stats(col)
		require.Equal(t, 1, visits)
		require.Equal(t, LOSS, score, "In-flight rollouts count as losses")

		s.backup(col, WIN)
		visits, score = s.stats(col)
		require.Equal(t, 1, visits)
		require.Equal(t, WIN, score)
		require.Equal(t, 1, s.visits)
	})

	t.Run("UCB1 prefers the better arm once all are visited", func(t *testing.T) {
		s := newScratch([]int{0, 1})
		for i := 0; i < 2; i++ {
			col := s.selects(0.1)
			if col == 0 {
				s.backup(col, WIN)
			} else {
				s.backup(col, LOSS)
			}
		}

		require.Equal(t, 0, s.selects(0.1))
	})

	t.Run("best weighs average and visit share", func(t *testing.T) {
		s := newScratch([]int{0, 1, 2})
		s.byCol[0].visits, s.byCol[0].score = 10, 5
		s.byCol[1].visits, s.byCol[1].score = 30, 15
		s.byCol[2].visits, s.byCol[2].score = 0, 0
		s.visits = 40

		require.Equal(t, 1, s.best(0.1), "Equal averages go to the more visited arm")
		require.Equal(t, 0, newScratch([]int{0, 1}).best(0.1), "Without visits the first candidate wins")
	})
}

func TestReward(t *testing.T) {
	require.Equal(t, WIN, reward(game.PlayerA, game.PlayerA))
	require.Equal(t, LOSS, reward(game.PlayerA, game.PlayerB))
	require.Equal(t, DRAW, reward(game.PlayerB, game.Empty))
}
