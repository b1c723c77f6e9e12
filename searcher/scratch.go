package searcher

import "sync"

type arm struct {
	column int
	visits int
	score  float64
}

func (a *arm) applyLoss() {
	a.score += LOSS
	a.visits++
}

func (a *arm) reverseLoss() {
	a.score -= LOSS
	a.visits--
}

// scratch holds the statistics of one decision. Workers share it under the
// lock; an arm being rolled out carries a virtual loss so concurrent workers
// spread over the other candidates.
type scratch struct {
	sync.Mutex
	arms   []*arm
	byCol  map[int]*arm
	visits int
}

func newScratch(candidates []int) *scratch {
	s := &scratch{
		arms:  make([]*arm, 0, len(candidates)),
		byCol: make(map[int]*arm, len(candidates)),
	}
	for _, col := range candidates {
		if _, ok := s.byCol[col]; ok {
			continue
		}
		a := &arm{column: col}
		s.arms = append(s.arms, a)
		s.byCol[col] = a
	}
	return s
}

// selects picks the next column to roll out: the first unvisited arm, else
// the arm with the highest UCB1 score.
func (s *scratch) selects(exploration float64) int {
	s.Lock()
	defer s.Unlock()

	picked := s.pick(exploration)
	picked.applyLoss()
	s.visits++
	return picked.column
}

func (s *scratch) pick(exploration float64) *arm {
	for _, a := range s.arms {
		if a.visits == 0 {
			return a
		}
	}

	policy := newUCT(exploration, float64(s.visits))
	best, bestScore := s.arms[0], policy.evaluate(s.arms[0].score, float64(s.arms[0].visits))
	for _, a := range s.arms[1:] {
		score := policy.evaluate(a.score, float64(a.visits))
		if score > bestScore {
			best, bestScore = a, score
		}
	}
	return best
}

// backup replaces the virtual loss on column with the rollout's reward.
func (s *scratch) backup(column int, reward float64) {
	s.Lock()
	defer s.Unlock()

	a := s.byCol[column]
	a.reverseLoss()
	a.score += reward
	a.visits++
}

// best returns the column with the highest confidence score; ties keep the
// earlier candidate. Without any visits it returns the first candidate.
func (s *scratch) best(k float64) int {
	s.Lock()
	defer s.Unlock()

	best := s.arms[0]
	bestScore := confidence(best.score, float64(best.visits), float64(s.visits), k)
	for _, a := range s.arms[1:] {
		score := confidence(a.score, float64(a.visits), float64(s.visits), k)
		if score > bestScore {
			best, bestScore = a, score
		}
	}
	return best.column
}

// stats returns the visit count and score sum of column.
func (s *scratch) stats(column int) (int, float64) {
	s.Lock()
	defer s.Unlock()

	a, ok := s.byCol[column]
	if !ok {
		return 0, 0
	}
	return a.visits, a.score
}
