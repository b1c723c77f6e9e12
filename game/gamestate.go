package game

import "fmt"

// MoveResult describes an applied move.
type MoveResult struct {
	Row     int
	Column  int
	Player  Player
	Outcome Outcome
}

// UndoResult describes a reverted move.
type UndoResult struct {
	Move Move
}

// GameState is the authoritative game. MakeMove and UndoMove are the only
// operations that mutate it; everything else reads copies.
type GameState struct {
	board        Board
	current      Player
	gameOver     bool
	winner       Player
	winningCells []Coord
	history      MoveHistory
	events       *EventBus
}

// NewGameState returns an empty board with PlayerA to move.
func NewGameState() *GameState {
	return &GameState{
		current: PlayerA,
		events:  NewEventBus(),
	}
}

// NewGameStateFrom starts a game from an arbitrary reachable board. The
// history is empty, so pieces already on the board cannot be undone.
func NewGameStateFrom(b Board, toMove Player) *GameState {
	gs := NewGameState()
	gs.board = b
	gs.current = toMove
	pos := NewPosition(b, toMove)
	if pos.Over {
		gs.gameOver = true
		gs.winner = pos.Winner
		gs.winningCells = findWinningLine(&b, pos.Winner)
	}
	return gs
}

func findWinningLine(b *Board, p Player) []Coord {
	if p == Empty {
		return nil
	}
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			if b.cells[row][col] == p {
				if cells := b.WinningLine(row, col); cells != nil {
					return cells
				}
			}
		}
	}
	return nil
}

// Subscribe registers a listener for this game's events.
func (gs *GameState) Subscribe(l Listener) (unsubscribe func()) {
	return gs.events.Subscribe(l)
}

// MakeMove drops the current player's piece into column.
func (gs *GameState) MakeMove(column int) (MoveResult, error) {
	if gs.gameOver {
		return MoveResult{}, fmt.Errorf("move in column %d: %w", column, ErrGameAlreadyOver)
	}
	if err := gs.board.checkColumn(column); err != nil {
		return MoveResult{}, err
	}

	mover := gs.current
	row := gs.board.drop(column, mover)
	move := Move{Row: row, Column: column, Player: mover}
	gs.history.Push(move)

	result := MoveResult{Row: row, Column: column, Player: mover, Outcome: Continue}
	if cells := gs.board.WinningLine(row, column); cells != nil {
		gs.gameOver = true
		gs.winner = mover
		gs.winningCells = cells
		result.Outcome = Win
	} else if gs.board.IsFull() {
		gs.gameOver = true
		result.Outcome = Draw
	} else {
		gs.current = mover.Opponent()
	}

	// Listeners observe the state after the move is fully applied
	gs.events.Publish(Event{Type: MoveMade, Move: move, Player: mover})
	switch result.Outcome {
	case Win:
		gs.events.Publish(Event{Type: GameWon, Move: move, Player: mover, Winner: mover, WinningCells: gs.WinningCells()})
	case Draw:
		gs.events.Publish(Event{Type: GameDraw, Move: move, Player: mover})
	default:
		gs.events.Publish(Event{Type: PlayerChanged, Move: move, Player: gs.current})
	}
	return result, nil
}

// UndoMove reverts the last move. Moves are only accepted while the game is
// running, so the restored state is never over.
func (gs *GameState) UndoMove() (UndoResult, error) {
	move, ok := gs.history.Pop()
	if !ok {
		return UndoResult{}, ErrNoMoveToUndo
	}

	gs.board.lift(move.Column)
	gs.gameOver = false
	gs.winner = Empty
	gs.winningCells = nil
	changed := gs.current != move.Player
	gs.current = move.Player

	gs.events.Publish(Event{Type: MoveUndone, Move: move, Player: move.Player})
	if changed {
		gs.events.Publish(Event{Type: PlayerChanged, Move: move, Player: gs.current})
	}
	return UndoResult{Move: move}, nil
}

// SimulateMove plays column for the current player on a copy of the board.
func (gs *GameState) SimulateMove(column int) (Simulation, error) {
	return gs.SimulateMoveFor(column, gs.current)
}

// SimulateMoveFor plays column for player on a copy of the board.
func (gs *GameState) SimulateMoveFor(column int, player Player) (Simulation, error) {
	if gs.gameOver {
		return Simulation{}, ErrGameAlreadyOver
	}
	return gs.board.Simulate(column, player)
}

// ValidMoves lists playable columns, none once the game is over.
func (gs *GameState) ValidMoves() []int {
	if gs.gameOver {
		return []int{}
	}
	return gs.board.ValidMoves()
}

// Reset replaces the game with a fresh one. Subscribers are kept.
func (gs *GameState) Reset() {
	events := gs.events
	*gs = GameState{current: PlayerA, events: events}
	gs.events.Publish(Event{Type: GameReset, Player: PlayerA})
}

// Clone returns an independent copy without subscribers.
func (gs *GameState) Clone() *GameState {
	clone := &GameState{
		board:        gs.board,
		current:      gs.current,
		gameOver:     gs.gameOver,
		winner:       gs.winner,
		winningCells: gs.WinningCells(),
		events:       NewEventBus(),
	}
	clone.history.moves = gs.history.Moves()
	return clone
}

// Position snapshots the game for analysis.
func (gs *GameState) Position() Position {
	return Position{Board: gs.board, ToMove: gs.current, Over: gs.gameOver, Winner: gs.winner}
}

func (gs *GameState) Board() Board {
	return gs.board
}

func (gs *GameState) CurrentPlayer() Player {
	return gs.current
}

func (gs *GameState) GameOver() bool {
	return gs.gameOver
}

// Winner is Empty while the game runs and after a draw.
func (gs *GameState) Winner() Player {
	return gs.winner
}

// WinningCells returns a copy of the winning run, nil unless someone won.
func (gs *GameState) WinningCells() []Coord {
	if gs.winningCells == nil {
		return nil
	}
	cells := make([]Coord, len(gs.winningCells))
	copy(cells, gs.winningCells)
	return cells
}

func (gs *GameState) History() []Move {
	return gs.history.Moves()
}

func (gs *GameState) MoveCount() int {
	return gs.history.Len()
}
