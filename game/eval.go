package game

// Window is a line of WinLength cells starting at Start in direction (DR, DC).
type Window struct {
	Start  Coord
	DR, DC int
}

// Cells returns the coordinates the window covers.
func (w Window) Cells() [WinLength]Coord {
	var cells [WinLength]Coord
	for i := 0; i < WinLength; i++ {
		cells[i] = Coord{Row: w.Start.Row + w.DR*i, Column: w.Start.Column + w.DC*i}
	}
	return cells
}

// windows enumerates every window on the board once.
var windows = func() []Window {
	var all []Window
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			for _, d := range directions {
				endRow := row + d[0]*(WinLength-1)
				endCol := col + d[1]*(WinLength-1)
				if InBounds(endRow, endCol) {
					all = append(all, Window{Start: Coord{Row: row, Column: col}, DR: d[0], DC: d[1]})
				}
			}
		}
	}
	return all
}()

// Windows returns every window on the board.
func Windows() []Window {
	out := make([]Window, len(windows))
	copy(out, windows)
	return out
}

// tally counts p's pieces, the opponent's pieces and empty cells in w.
func (b *Board) tally(w Window, p Player) (own, other, empty int) {
	r, c := w.Start.Row, w.Start.Column
	for i := 0; i < WinLength; i++ {
		switch b.cells[r][c] {
		case p:
			own++
		case Empty:
			empty++
		default:
			other++
		}
		r += w.DR
		c += w.DC
	}
	return own, other, empty
}

// Formations counts windows that p can still complete, by how many of p's
// pieces they already hold.
type Formations struct {
	Twos   int
	Threes int
	Fours  int
}

// Score collapses formations into a single weighted number.
func (f Formations) Score(two, three float64) float64 {
	return two*float64(f.Twos) + three*float64(f.Threes)
}

// CountFormations scans every window for p. A window counts only when it
// holds no opposing piece.
func CountFormations(b Board, p Player) Formations {
	var f Formations
	for _, w := range windows {
		own, other, _ := b.tally(w, p)
		if other > 0 {
			continue
		}
		switch own {
		case 2:
			f.Twos++
		case 3:
			f.Threes++
		case WinLength:
			f.Fours++
		}
	}
	return f
}

// KeyWindows counts p's windows through cell that hold at least minPieces of
// p's pieces and no opposing piece. Occupying such a cell denies p the window.
func KeyWindows(b Board, cell Coord, p Player, minPieces int) int {
	count := 0
	for _, w := range windows {
		if !w.covers(cell) {
			continue
		}
		own, other, _ := b.tally(w, p)
		if other == 0 && own >= minPieces {
			count++
		}
	}
	return count
}

func (w Window) covers(cell Coord) bool {
	for _, c := range w.Cells() {
		if c == cell {
			return true
		}
	}
	return false
}

// CenterProximity is Columns/2 for the center column down to 0 at the edges.
func CenterProximity(col int) int {
	center := Columns / 2
	d := col - center
	if d < 0 {
		d = -d
	}
	return center - d
}
