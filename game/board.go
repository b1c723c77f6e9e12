package game

import (
	"fmt"
	"strings"
)

// Board is a fixed grid with per-column heights. It is a value type: assigning
// a Board copies every cell, which is what simulations rely on.
type Board struct {
	cells   [Rows][Columns]Player
	heights [Columns]int
}

// Simulation is a hypothetical board produced without touching the live state.
type Simulation struct {
	Board    Board
	Row      int
	Column   int
	WouldWin bool
	Cells    []Coord // Winning run when WouldWin
}

// ParseBoard builds a board from rows listed top to bottom. Each row holds
// Columns symbols: '.' for empty, 'R' for PlayerA and 'Y' for PlayerB.
// Missing leading rows are treated as empty.
func ParseBoard(lines ...string) (Board, error) {
	var b Board
	if len(lines) > Rows {
		return b, fmt.Errorf("board has %d rows, want at most %d", len(lines), Rows)
	}
	offset := Rows - len(lines)
	for i, line := range lines {
		line = strings.ReplaceAll(line, " ", "")
		if len(line) != Columns {
			return b, fmt.Errorf("row %d has %d cells, want %d", i, len(line), Columns)
		}
		for col := 0; col < Columns; col++ {
			var p Player
			switch line[col] {
			case '.':
				p = Empty
			case 'R':
				p = PlayerA
			case 'Y':
				p = PlayerB
			default:
				return b, fmt.Errorf("row %d column %d %q: %w", i, col, line[col], ErrBadSymbol)
			}
			b.cells[offset+i][col] = p
		}
	}

	// Recompute heights and check gravity
	for col := 0; col < Columns; col++ {
		height := 0
		for row := Rows - 1; row >= 0; row-- {
			if b.cells[row][col] == Empty {
				break
			}
			height++
		}
		for row := Rows - 1 - height; row >= 0; row-- {
			if b.cells[row][col] != Empty {
				return b, fmt.Errorf("column %d row %d: %w", col, row, ErrFloatingPiece)
			}
		}
		b.heights[col] = height
	}
	return b, nil
}

// MustParseBoard is ParseBoard for fixed positions known to be valid.
func MustParseBoard(lines ...string) Board {
	b, err := ParseBoard(lines...)
	if err != nil {
		panic(err)
	}
	return b
}

func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			sb.WriteByte(b.cells[row][col].Symbol())
		}
		if row < Rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Cell returns the owner of a cell, Empty when out of bounds.
func (b *Board) Cell(row, col int) Player {
	if !InBounds(row, col) {
		return Empty
	}
	return b.cells[row][col]
}

// Height is the number of pieces in a column.
func (b *Board) Height(col int) int {
	return b.heights[col]
}

// MoveCount is the number of pieces on the board.
func (b *Board) MoveCount() int {
	total := 0
	for _, h := range b.heights {
		total += h
	}
	return total
}

// IsFull reports whether no column accepts another piece.
func (b *Board) IsFull() bool {
	return b.MoveCount() == Rows*Columns
}

// CanPlay reports whether a piece may be dropped in col.
func (b *Board) CanPlay(col int) bool {
	return col >= 0 && col < Columns && b.heights[col] < Rows
}

// LandingRow is the row a piece dropped in col would occupy, -1 if full.
func (b *Board) LandingRow(col int) int {
	if !b.CanPlay(col) {
		return -1
	}
	return Rows - 1 - b.heights[col]
}

// ValidMoves lists playable columns in ascending order.
func (b *Board) ValidMoves() []int {
	moves := make([]int, 0, Columns)
	for col := 0; col < Columns; col++ {
		if b.heights[col] < Rows {
			moves = append(moves, col)
		}
	}
	return moves
}

func (b *Board) checkColumn(col int) error {
	if col < 0 || col >= Columns {
		return fmt.Errorf("column %d: %w", col, ErrInvalidColumn)
	}
	if b.heights[col] >= Rows {
		return fmt.Errorf("column %d: %w", col, ErrColumnFull)
	}
	return nil
}

// drop places a piece in place and returns its row. The column must be valid.
func (b *Board) drop(col int, p Player) int {
	row := Rows - 1 - b.heights[col]
	b.cells[row][col] = p
	b.heights[col]++
	return row
}

// lift removes the top piece of a column. Only undo uses it.
func (b *Board) lift(col int) {
	b.heights[col]--
	b.cells[Rows-1-b.heights[col]][col] = Empty
}

// Simulate drops a piece for p on a copy of the board.
func (b Board) Simulate(col int, p Player) (Simulation, error) {
	if err := b.checkColumn(col); err != nil {
		return Simulation{}, err
	}
	next := b
	row := next.drop(col, p)
	cells := next.WinningLine(row, col)
	return Simulation{
		Board:    next,
		Row:      row,
		Column:   col,
		WouldWin: cells != nil,
		Cells:    cells,
	}, nil
}

// WinsAt reports whether dropping a piece for p in col would win, without
// allocating the winning run.
func (b Board) WinsAt(col int, p Player) bool {
	if !b.CanPlay(col) {
		return false
	}
	row := b.drop(col, p)
	for _, d := range directions {
		if 1+b.runLength(row, col, d[0], d[1], p)+b.runLength(row, col, -d[0], -d[1], p) >= WinLength {
			return true
		}
	}
	return false
}

// directions holds one sign of each axis: horizontal, vertical and the two
// diagonals.
var directions = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// WinningLine returns the connected run of at least WinLength cells through
// (row, col) that belongs to the cell's owner, or nil if there is none.
func (b *Board) WinningLine(row, col int) []Coord {
	p := b.Cell(row, col)
	if p == Empty {
		return nil
	}
	for _, d := range directions {
		back := b.runLength(row, col, -d[0], -d[1], p)
		forward := b.runLength(row, col, d[0], d[1], p)
		if 1+back+forward < WinLength {
			continue
		}
		cells := make([]Coord, 0, 1+back+forward)
		for i := back; i > 0; i-- {
			cells = append(cells, Coord{Row: row - d[0]*i, Column: col - d[1]*i})
		}
		cells = append(cells, Coord{Row: row, Column: col})
		for i := 1; i <= forward; i++ {
			cells = append(cells, Coord{Row: row + d[0]*i, Column: col + d[1]*i})
		}
		return cells
	}
	return nil
}

// runLength counts contiguous cells owned by p walking from (row, col) in
// direction (dr, dc), excluding the starting cell.
func (b *Board) runLength(row, col, dr, dc int, p Player) int {
	count := 0
	for r, c := row+dr, col+dc; InBounds(r, c) && b.cells[r][c] == p; r, c = r+dr, c+dc {
		count++
	}
	return count
}

// InBounds reports whether (row, col) lies on the board.
func InBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Columns
}
