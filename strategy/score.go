package strategy

import (
	"fourinarow/analyzer"
	"fourinarow/game"
)

// WinScore ranks an immediately winning column above anything a weighted sum
// can reach.
const WinScore = 1e9

// Weights scale the sub-scores of a candidate column. Named strategies only
// differ in their weights.
type Weights struct {
	Threats     float64 // new immediate threats for the mover
	Threes      float64 // new 3-in-a-window formations
	Twos        float64 // new 2-in-a-window formations
	Blocks      float64 // opponent immediate threats removed
	Disruption  float64 // opponent formations removed, threes count double
	Center      float64
	KeyPosition float64 // bottom row and opponent key cells taken
	Restriction float64 // opponent replies that hand the mover a win
	LookAhead   float64 // penalty when a reply forks or forces a win
	Jitter      float64 // scale of the random draw that breaks equal scores
}

// Breakdown holds the unweighted sub-scores of one candidate.
type Breakdown struct {
	Column      int
	Wins        bool
	Threats     int
	Threes      int
	Twos        int
	Blocks      int
	Disruption  int
	Center      int
	KeyPosition int
	Restriction int
	Danger      bool
}

// Total applies the weights, without jitter.
func (b Breakdown) Total(w Weights) float64 {
	if b.Wins {
		return WinScore
	}
	s := w.Threats*float64(b.Threats) +
		w.Threes*float64(b.Threes) +
		w.Twos*float64(b.Twos) +
		w.Blocks*float64(b.Blocks) +
		w.Disruption*float64(b.Disruption) +
		w.Center*float64(b.Center) +
		w.KeyPosition*float64(b.KeyPosition) +
		w.Restriction*float64(b.Restriction)
	if b.Danger {
		s -= w.LookAhead
	}
	return s
}

// Evaluate simulates the mover playing col and measures what changed. It is
// the single evaluation every heuristic strategy shares.
func Evaluate(pos game.Position, col int) (Breakdown, error) {
	mover, opponent := pos.ToMove, pos.ToMove.Opponent()
	sim, err := pos.Simulate(col, mover)
	if err != nil {
		return Breakdown{Column: col}, err
	}
	if sim.WouldWin {
		return Breakdown{Column: col, Wins: true}, nil
	}
	before, after := pos.Board, sim.Board

	bd := Breakdown{Column: col}

	// Offense
	bd.Threats = analyzer.CountThreats(after, mover) - analyzer.CountThreats(before, mover)
	own, ownAfter := game.CountFormations(before, mover), game.CountFormations(after, mover)
	bd.Threes = ownAfter.Threes - own.Threes
	bd.Twos = ownAfter.Twos - own.Twos

	// Defense
	bd.Blocks = analyzer.CountThreats(before, opponent) - analyzer.CountThreats(after, opponent)
	their, theirAfter := game.CountFormations(before, opponent), game.CountFormations(after, opponent)
	bd.Disruption = 2*(their.Threes-theirAfter.Threes) + (their.Twos - theirAfter.Twos)

	// Position
	bd.Center = game.CenterProximity(col)
	bd.KeyPosition = game.KeyWindows(before, game.Coord{Row: sim.Row, Column: col}, opponent, 2)
	if sim.Row == game.Rows-1 {
		bd.KeyPosition++
	}

	bd.Restriction, bd.Danger = replies(after, mover)
	return bd, nil
}

// replies walks the opponent's answers on b. It counts the answers that give
// the mover an immediate win and reports whether any answer wins outright,
// creates a fork, or sets up a threat that stays live after being blocked.
func replies(b game.Board, mover game.Player) (unsafe int, danger bool) {
	opponent := mover.Opponent()
	for _, r := range b.ValidMoves() {
		sim, err := b.Simulate(r, opponent)
		if err != nil {
			continue
		}
		if sim.WouldWin {
			danger = true
			continue
		}
		if analyzer.CountThreats(sim.Board, mover) > 0 {
			// The mover wins first, whatever the reply threatens
			unsafe++
			continue
		}
		threats := analyzer.WinningOn(sim.Board, opponent)
		switch {
		case len(threats) >= 2:
			danger = true
		case len(threats) == 1:
			block, err := sim.Board.Simulate(threats[0], mover)
			if err == nil && block.Board.WinsAt(threats[0], opponent) {
				danger = true
			}
		}
	}
	return unsafe, danger
}

// best returns the highest scored column. Equal scores go to the higher jitter
// draw, then to the most central, then lowest, column.
func best(scores, draws map[int]float64, columns []int) int {
	bestCol := -1
	for _, col := range columns {
		s, ok := scores[col]
		if !ok {
			continue
		}
		if bestCol < 0 || s > scores[bestCol] || (s == scores[bestCol] && tieBreak(col, bestCol, draws)) {
			bestCol = col
		}
	}
	return bestCol
}

func tieBreak(a, b int, draws map[int]float64) bool {
	if draws[a] != draws[b] {
		return draws[a] > draws[b]
	}
	return preferCenter(a, b)
}
