package game

// Board dimensions and the run length that wins the game.
const (
	Rows      = 6
	Columns   = 7
	WinLength = 4
)

// Player identifies the owner of a cell. Empty doubles as "no player".
type Player int8

const (
	Empty Player = iota
	PlayerA
	PlayerB
)

// Opponent returns the other player. Empty has no opponent.
func (p Player) Opponent() Player {
	switch p {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	default:
		return Empty
	}
}

// Symbol is the single character used by ParseBoard and Board.String.
func (p Player) Symbol() byte {
	switch p {
	case PlayerA:
		return 'R'
	case PlayerB:
		return 'Y'
	default:
		return '.'
	}
}

func (p Player) String() string {
	switch p {
	case PlayerA:
		return "PlayerA"
	case PlayerB:
		return "PlayerB"
	default:
		return "Empty"
	}
}

type StateHash uint64

// Coord addresses a single cell, row 0 being the top row.
type Coord struct {
	Row    int
	Column int
}

// Outcome of a move from the mover's point of view.
type Outcome int

const (
	Continue Outcome = iota
	Win
	Draw
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Draw:
		return "draw"
	default:
		return "continue"
	}
}
