package strategy

import (
	"fourinarow/game"

	"golang.org/x/exp/rand"
)

// Random plays a uniformly random candidate. It is the baseline opponent.
type Random struct {
	rng *rand.Rand
}

func NewRandom(rng *rand.Rand) *Random {
	if rng == nil {
		rng = NewRand(0)
	}
	return &Random{rng: rng}
}

func (r *Random) Name() string {
	return "random"
}

func (r *Random) SelectFromSafeColumns(pos game.Position, candidates []int) int {
	candidates = Candidates(pos, candidates)
	if len(candidates) == 0 {
		return -1
	}
	return candidates[r.rng.Intn(len(candidates))]
}
