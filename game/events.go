package game

import "sync"

// EventType names a notification published by a GameState.
type EventType int

const (
	MoveMade EventType = iota
	GameWon
	GameDraw
	PlayerChanged
	MoveUndone
	GameReset
)

func (t EventType) String() string {
	switch t {
	case MoveMade:
		return "move-made"
	case GameWon:
		return "game-won"
	case GameDraw:
		return "game-draw"
	case PlayerChanged:
		return "player-changed"
	case MoveUndone:
		return "move-undone"
	case GameReset:
		return "game-reset"
	default:
		return "unknown"
	}
}

// Event carries what a collaborator needs to react to a state change.
// Player is the mover for move events and the new current player for
// PlayerChanged.
type Event struct {
	Type         EventType
	Move         Move
	Player       Player
	Winner       Player
	WinningCells []Coord
}

type Listener func(Event)

// EventBus delivers events synchronously, in subscription order.
type EventBus struct {
	mu        sync.RWMutex
	nextID    int
	listeners map[int]Listener
	order     []int
}

func NewEventBus() *EventBus {
	return &EventBus{listeners: make(map[int]Listener)}
}

// Subscribe registers a listener and returns a function that removes it.
func (b *EventBus) Subscribe(l Listener) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.listeners[id] = l
	b.order = append(b.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.listeners, id)
			for i, v := range b.order {
				if v == id {
					b.order = append(b.order[:i], b.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Publish calls every listener with the event. Listeners may subscribe or
// unsubscribe from within a callback.
func (b *EventBus) Publish(e Event) {
	b.mu.RLock()
	listeners := make([]Listener, 0, len(b.order))
	for _, id := range b.order {
		listeners = append(listeners, b.listeners[id])
	}
	b.mu.RUnlock()

	for _, l := range listeners {
		l(e)
	}
}
