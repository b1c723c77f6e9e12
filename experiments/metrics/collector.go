package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines   int
	Duration     time.Duration
	Budget       int
	Rollouts     int
	FullPlayouts int
	Cutoff       int
	TimedOut     bool
}

type MoveMetric struct {
	Step    int
	Player  int // 1 moves first
	Column  int
	Stage   string
	Trapped bool
	Invalid bool // agent answered an illegal column
	SearchMetric
}

type GameMetric struct {
	UUID           string
	StartingPlayer int    // Agent slot, 1 or 2
	Winner         string // Player name, empty for a draw
	WinningPlayer  int    // 1 or 2, 0 without a winner
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(goroutines, budget, cutoff int)
	AddRollout()
	AddFullPlayout()
	SetTimedOut()
	Complete() SearchMetric
}

type collector struct {
	goroutines   int
	budget       int
	cutoff       int
	startTime    time.Time
	rollouts     atomic.Int32
	fullPlayouts atomic.Int32
	timedOut     atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, budget, cutoff int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.budget = budget
	m.cutoff = cutoff
	m.rollouts.Store(0)
	m.fullPlayouts.Store(0)
	m.timedOut.Store(false)
}

func (m *collector) AddRollout() {
	m.rollouts.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) SetTimedOut() {
	m.timedOut.Store(true)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:   m.goroutines,
		Duration:     time.Since(m.startTime),
		Budget:       m.budget,
		Rollouts:     int(m.rollouts.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		Cutoff:       m.cutoff,
		TimedOut:     m.timedOut.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, budget, cutoff int) {}
func (m *dummyCollector) AddRollout()                          {}
func (m *dummyCollector) AddFullPlayout()                      {}
func (m *dummyCollector) SetTimedOut()                         {}
func (m *dummyCollector) Complete() SearchMetric               { return SearchMetric{} }
