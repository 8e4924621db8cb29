package trivia

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorDrawsFromAvailableOnly(t *testing.T) {
	src := &fixedRand{index: 1}
	s := NewSelector(src)
	all := numbered(9) // categories cycle 1,2,3

	got := s.Next(all, 2, map[int64]struct{}{2: {}})
	require.NotNil(t, got)
	// category 2 holds ids 2,5,8; excluding 2 leaves 5,8.
	assert.Equal(t, int64(8), got.ID)
	assert.Equal(t, []int{2}, src.seen)
}

func TestSelectorAllScope(t *testing.T) {
	src := &fixedRand{index: 0}
	got := NewSelector(src).Next(numbered(4), AllCategories, map[int64]struct{}{1: {}})
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.ID)
	assert.Equal(t, []int{3}, src.seen)
}

func TestSelectorExhaustedReturnsNil(t *testing.T) {
	all := numbered(3)
	excluded := map[int64]struct{}{1: {}, 2: {}, 3: {}}
	assert.Nil(t, NewSelector(nil).Next(all, AllCategories, excluded))
}

func TestSelectorUnknownCategoryIsEmpty(t *testing.T) {
	assert.Nil(t, NewSelector(nil).Next(numbered(6), 42, nil))
}

func TestSelectorDoesNotMutateInputs(t *testing.T) {
	all := numbered(6)
	snapshot := append([]Question(nil), all...)
	excluded := map[int64]struct{}{3: {}}

	NewSelector(nil).Next(all, AllCategories, excluded)

	assert.Equal(t, snapshot, all)
	assert.Equal(t, map[int64]struct{}{3: {}}, excluded)
}

func TestSelectorIsUniform(t *testing.T) {
	s := NewSelector(rand.New(rand.NewPCG(7, 11)))
	all := numbered(4)
	excluded := map[int64]struct{}{4: {}}

	const draws = 30000
	counts := map[int64]int{}
	for range draws {
		counts[s.Next(all, AllCategories, excluded).ID]++
	}

	require.Len(t, counts, 3)
	expected := float64(draws) / 3
	for id, n := range counts {
		assert.InDelta(t, expected, float64(n), expected*0.05, "question %d drawn %d times", id, n)
	}
}

func TestSelectorWalksWholePoolWithoutRepeats(t *testing.T) {
	s := NewSelector(nil)
	all := numbered(25)
	seen := map[int64]struct{}{}
	for range all {
		q := s.Next(all, AllCategories, seen)
		require.NotNil(t, q)
		_, dup := seen[q.ID]
		require.False(t, dup, "question %d served twice", q.ID)
		seen[q.ID] = struct{}{}
	}
	assert.Nil(t, s.Next(all, AllCategories, seen))
}
