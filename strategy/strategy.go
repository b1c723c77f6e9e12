package strategy

import (
	"math"

	"fourinarow/analyzer"
	"fourinarow/game"
	"fourinarow/utils"

	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

// Strategy picks one column out of a candidate set. Implementations must
// return a member of the set, and fall back to the legal moves when no
// member is playable. Strategies keep their own random source, so one instance must
// not be shared between concurrently running games.
type Strategy interface {
	Name() string
	SelectFromSafeColumns(pos game.Position, candidates []int) int
}

// TieBreaker is implemented by strategies that want to choose among several
// immediate wins or forced blocks themselves.
type TieBreaker interface {
	BreakTie(pos game.Position, columns []int) int
}

// NewRand returns a random source. A zero seed draws one from the system's
// entropy.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = frand.Uint64n(math.MaxUint64) + 1
	}
	return rand.New(rand.NewSource(seed))
}

// Candidates returns the playable part of the candidate set, or the legal
// moves when none of it is playable.
func Candidates(pos game.Position, candidates []int) []int {
	legal := pos.LegalMoves()
	if playable := utils.Intersect(candidates, legal); len(playable) > 0 {
		return playable
	}
	return legal
}

// MostThreats is the default tie-break: the column that leaves the mover the
// most immediate winning moves, then the most central one.
func MostThreats(pos game.Position, columns []int) int {
	columns = Candidates(pos, columns)
	if len(columns) == 0 {
		return -1
	}
	best, bestThreats := columns[0], -1
	for _, col := range columns {
		sim, err := pos.Simulate(col, pos.ToMove)
		if err != nil {
			continue
		}
		threats := analyzer.CountThreats(sim.Board, pos.ToMove)
		if threats > bestThreats || (threats == bestThreats && preferCenter(col, best)) {
			best, bestThreats = col, threats
		}
	}
	return best
}

// preferCenter reports whether a is the better of two equally scored
// columns: closer to the center, then lower.
func preferCenter(a, b int) bool {
	pa, pb := game.CenterProximity(a), game.CenterProximity(b)
	if pa != pb {
		return pa > pb
	}
	return a < b
}
