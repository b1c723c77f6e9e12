package analyzer

import "fourinarow/game"

// Capabilities switches analysis stages on or off for one player. They are
// passed per call, so the analyzer never needs to know who is asking.
type Capabilities struct {
	Wins   bool
	Blocks bool
	Traps  bool
}

// AllCapabilities enables every stage, which is what bots use.
var AllCapabilities = Capabilities{Wins: true, Blocks: true, Traps: true}

// Result is the per-turn threat analysis. It is recomputed every turn.
type Result struct {
	WinningMoves  []int
	BlockingMoves []int
	SafeColumns   []int
	Trapped       bool
}

// Analyzer answers threat queries about a single position. It only ever
// simulates on copies of the position's board.
type Analyzer struct {
	pos game.Position
}

func New(pos game.Position) *Analyzer {
	return &Analyzer{pos: pos}
}

// Position returns the analyzed position.
func (a *Analyzer) Position() game.Position {
	return a.pos
}

// WinningMoves lists the legal columns where player would win immediately.
func (a *Analyzer) WinningMoves(player game.Player) []int {
	return WinningMoves(a.pos, player)
}

// BlockingMoves lists the columns player must occupy to stop the opponent's
// immediate win.
func (a *Analyzer) BlockingMoves(player game.Player) []int {
	return WinningMoves(a.pos, player.Opponent())
}

// SafeColumns lists the mover's legal columns that do not hand the opponent
// an immediate winning reply. A winning column is always safe.
func (a *Analyzer) SafeColumns() []int {
	return SafeColumns(a.pos)
}

// Analyze runs the enabled stages. Disabled stages report no columns; with
// traps disabled every legal column counts as safe.
func (a *Analyzer) Analyze(caps Capabilities) Result {
	var r Result
	if a.pos.Over {
		return r
	}
	mover := a.pos.ToMove
	if caps.Wins {
		r.WinningMoves = a.WinningMoves(mover)
	}
	if caps.Blocks {
		r.BlockingMoves = a.BlockingMoves(mover)
	}
	if caps.Traps {
		r.SafeColumns = a.SafeColumns()
		r.Trapped = len(r.SafeColumns) == 0
	} else {
		r.SafeColumns = a.pos.LegalMoves()
	}
	return r
}

// LeastBad narrows the legal columns of a trapped position to those that
// leave the opponent the fewest immediate winning replies.
func (a *Analyzer) LeastBad() []int {
	return LeastBad(a.pos)
}

// Formations counts player's open formations on the analyzed board.
func (a *Analyzer) Formations(player game.Player) game.Formations {
	return game.CountFormations(a.pos.Board, player)
}

// WinningMoves lists the legal columns where player would win immediately.
// Finished games have none.
func WinningMoves(pos game.Position, player game.Player) []int {
	if pos.Over {
		return []int{}
	}
	return WinningOn(pos.Board, player)
}

// WinningOn lists the columns where player would win on b, ignoring whose
// turn it is.
func WinningOn(b game.Board, player game.Player) []int {
	wins := []int{}
	for _, col := range b.ValidMoves() {
		if b.WinsAt(col, player) {
			wins = append(wins, col)
		}
	}
	return wins
}

// SafeColumns lists the mover's legal columns that leave no immediate winning
// reply for the opponent.
func SafeColumns(pos game.Position) []int {
	safe := []int{}
	if pos.Over {
		return safe
	}
	mover := pos.ToMove
	for _, col := range pos.Board.ValidMoves() {
		sim, err := pos.Board.Simulate(col, mover)
		if err != nil {
			continue
		}
		if sim.WouldWin || CountThreats(sim.Board, mover.Opponent()) == 0 {
			safe = append(safe, col)
		}
	}
	return safe
}

// LosingReplies returns the opponent's immediate winning replies after the
// mover plays col. A winning col has none.
func LosingReplies(pos game.Position, col int) []int {
	sim, err := pos.Simulate(col, pos.ToMove)
	if err != nil || sim.WouldWin {
		return []int{}
	}
	return WinningOn(sim.Board, pos.ToMove.Opponent())
}

// LeastBad keeps the legal columns whose resulting position gives the
// opponent the minimum number of immediate winning replies.
func LeastBad(pos game.Position) []int {
	best := []int{}
	fewest := -1
	for _, col := range pos.LegalMoves() {
		n := len(LosingReplies(pos, col))
		switch {
		case fewest < 0 || n < fewest:
			fewest = n
			best = []int{col}
		case n == fewest:
			best = append(best, col)
		}
	}
	return best
}

// CountThreats is the number of columns where player could win on b next.
func CountThreats(b game.Board, player game.Player) int {
	n := 0
	for _, col := range b.ValidMoves() {
		if b.WinsAt(col, player) {
			n++
		}
	}
	return n
}
