package game

import "hash/fnv"

// Position is an immutable snapshot of a game: the board, the side to move and
// whether the game has ended. Analysis and search only ever work on
// positions, never on the authoritative GameState.
type Position struct {
	Board  Board
	ToMove Player
	Over   bool
	Winner Player
}

// NewPosition derives game-over information from a board. The board is
// assumed to be reachable, so at most one player can have a winning run.
func NewPosition(b Board, toMove Player) Position {
	pos := Position{Board: b, ToMove: toMove}
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			if b.WinningLine(row, col) != nil {
				pos.Over = true
				pos.Winner = b.Cell(row, col)
				return pos
			}
		}
	}
	pos.Over = b.IsFull()
	return pos
}

// LegalMoves lists playable columns, none once the game is over.
func (p Position) LegalMoves() []int {
	if p.Over {
		return []int{}
	}
	return p.Board.ValidMoves()
}

// Play returns the position after the side to move drops a piece in col.
func (p Position) Play(col int) (Position, error) {
	if p.Over {
		return p, ErrGameAlreadyOver
	}
	sim, err := p.Board.Simulate(col, p.ToMove)
	if err != nil {
		return p, err
	}
	return p.after(sim), nil
}

func (p Position) after(sim Simulation) Position {
	next := Position{Board: sim.Board, ToMove: p.ToMove.Opponent()}
	if sim.WouldWin {
		next.Over = true
		next.Winner = p.ToMove
	} else if next.Board.IsFull() {
		next.Over = true
	}
	return next
}

// Simulate drops a piece for player in col, regardless of whose turn it is.
func (p Position) Simulate(col int, player Player) (Simulation, error) {
	if p.Over {
		return Simulation{}, ErrGameAlreadyOver
	}
	return p.Board.Simulate(col, player)
}

// Hash identifies the position by its cells and side to move.
func (p Position) Hash() StateHash {
	hasher := fnv.New64a()
	buf := make([]byte, 0, Rows*Columns+1)
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			buf = append(buf, byte(p.Board.cells[row][col]))
		}
	}
	buf = append(buf, byte(p.ToMove))
	hasher.Write(buf)
	return StateHash(hasher.Sum64())
}
