package game

// Error is a sentinel failure returned by the mutating operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidColumn   Error = "invalid column"
	ErrColumnFull      Error = "column is full"
	ErrGameAlreadyOver Error = "game is already over"
	ErrNoMoveToUndo    Error = "no move to undo"
	ErrFloatingPiece   Error = "piece is not supported by gravity"
	ErrBadSymbol       Error = "unknown board symbol"
)
