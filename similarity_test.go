package casebot_test

import (
	"testing"

	"github.com/fwojciec/casebot"
	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	t.Parallel()

	t.Run("identical vectors score one", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 1.0, casebot.CosineSimilarity([]float32{1, 2, 3}, []float32{1, 2, 3}), 1e-6)
	})

	t.Run("orthogonal vectors score zero", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 0.0, casebot.CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-6)
	})

	t.Run("opposite vectors score minus one", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, -1.0, casebot.CosineSimilarity([]float32{1, 1}, []float32{-1, -1}), 1e-6)
	})

	t.Run("ignores magnitude", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 1.0, casebot.CosineSimilarity([]float32{1, 2}, []float32{10, 20}), 1e-6)
	})

	t.Run("length mismatch scores zero", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, casebot.CosineSimilarity([]float32{1, 2}, []float32{1}))
	})

	t.Run("zero vector scores zero", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, casebot.CosineSimilarity([]float32{0, 0}, []float32{1, 1}))
	})
}

func TestSortResults(t *testing.T) {
	t.Parallel()

	entry := func(pos int) *casebot.IndexEntry { return &casebot.IndexEntry{Position: pos} }
	results := []casebot.SearchResult{
		{Entry: entry(2), Score: 0.5},
		{Entry: entry(0), Score: 0.1},
		{Entry: entry(1), Score: 0.5},
		{Entry: entry(3), Score: 0.9},
	}

	casebot.SortResults(results)

	var got []int
	for _, r := range results {
		got = append(got, r.Entry.Position)
	}
	assert.Equal(t, []int{3, 1, 2, 0}, got)
}
