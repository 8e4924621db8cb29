package trivia

import "math/rand/v2"

// RandomSource picks an index in [0, n). Tests substitute a deterministic one.
type RandomSource interface {
	IntN(n int) int
}

// globalRand uses the math/rand/v2 top-level generator, which is safe for
// concurrent use.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Selector picks quiz questions uniformly at random from the unseen pool.
type Selector struct {
	rand RandomSource
}

// NewSelector returns a Selector drawing from src, or from the global
// generator when src is nil.
func NewSelector(src RandomSource) *Selector {
	if src == nil {
		src = globalRand{}
	}
	return &Selector{rand: src}
}

// Next returns one question from scope that is not in excluded, or nil when the
// pool is exhausted. Unknown category ids simply produce an empty pool.
func (s *Selector) Next(all []Question, scope int64, excluded map[int64]struct{}) *Question {
	available := Available(Candidates(all, scope), excluded)
	if len(available) == 0 {
		return nil
	}
	picked := available[s.rand.IntN(len(available))]
	return &picked
}

// Candidates returns every question in scope before exclusions.
func Candidates(all []Question, scope int64) []Question {
	if scope == AllCategories {
		return all
	}
	return FilterByCategory(all, scope)
}

// Available drops questions whose id is in excluded.
func Available(candidates []Question, excluded map[int64]struct{}) []Question {
	out := make([]Question, 0, len(candidates))
	for _, q := range candidates {
		if _, seen := excluded[q.ID]; seen {
			continue
		}
		out = append(out, q)
	}
	return out
}
