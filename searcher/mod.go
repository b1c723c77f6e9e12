package searcher

import "fourinarow/game"

// Rewards from the perspective of the player deciding the move
const (
	WIN  = 1.0
	LOSS = -WIN
	DRAW = 0.0
)

// Budget multipliers by game phase, measured in pieces on the board
const (
	OpeningPhase = 0.5
	MidgamePhase = 1.5
	EndgamePhase = 1.0

	openingMoves = 10 // Fewer pieces than this is the opening
	endgameMoves = 30 // At least this many pieces is the endgame
)

func reward(mover, winner game.Player) float64 {
	switch winner {
	case mover:
		return WIN
	case game.Empty:
		return DRAW
	default:
		return LOSS
	}
}

// phase returns the budget multiplier for a board with filled pieces.
func phase(filled int) float64 {
	switch {
	case filled < openingMoves:
		return OpeningPhase
	case filled < endgameMoves:
		return MidgamePhase
	default:
		return EndgamePhase
	}
}
