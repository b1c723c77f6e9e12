package searcher

import "math"

// uct scores arms with UCB1. The exploration numerator c^2*ln(N) only depends
// on the total visit count, so it is computed once per selection.
type uct struct {
	numerator float64
}

func newUCT(exploration float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{numerator: exploration * exploration * math.Log(N)}
}

func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCB1 = q/n + c*sqrt(ln(N)/n)
	return q/n + math.Sqrt(u.numerator/n)
}

// confidence scores an arm for the final choice: its average reward plus a
// bonus for the share of visits it received.
func confidence(q, n, total, k float64) float64 {
	if n == 0 || total == 0 {
		return math.Inf(-1)
	}
	return q/n + k*n/total
}
