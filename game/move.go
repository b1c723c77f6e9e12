package game

// Move is a single placed piece.
type Move struct {
	Row    int
	Column int
	Player Player
}

// MoveHistory is an append-only record of moves that supports exact undo.
type MoveHistory struct {
	moves []Move
}

func (h *MoveHistory) Push(m Move) {
	h.moves = append(h.moves, m)
}

// Pop removes and returns the last move.
func (h *MoveHistory) Pop() (Move, bool) {
	if len(h.moves) == 0 {
		return Move{}, false
	}
	last := h.moves[len(h.moves)-1]
	h.moves = h.moves[:len(h.moves)-1]
	return last, true
}

func (h *MoveHistory) Last() (Move, bool) {
	if len(h.moves) == 0 {
		return Move{}, false
	}
	return h.moves[len(h.moves)-1], true
}

func (h *MoveHistory) Len() int {
	return len(h.moves)
}

// Moves returns a copy of the recorded moves in play order.
func (h *MoveHistory) Moves() []Move {
	moves := make([]Move, len(h.moves))
	copy(moves, h.moves)
	return moves
}
