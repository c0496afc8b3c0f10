// Package memory provides an in-process casebot.VectorStore.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/fwojciec/casebot"
	"github.com/google/uuid"
)

var _ casebot.VectorStore = (*VectorStore)(nil)

// VectorStore keeps entries in memory and searches them exhaustively.
// It is safe for concurrent use.
type VectorStore struct {
	mu      sync.RWMutex
	entries []*casebot.IndexEntry
	info    *casebot.IndexInfo
}

// NewVectorStore returns an empty store.
func NewVectorStore() *VectorStore {
	return &VectorStore{}
}

// Replace stores copies of entries after validating them. IDs are generated
// for entries that have none.
func (s *VectorStore) Replace(ctx context.Context, entries []*casebot.IndexEntry, info casebot.IndexInfo) error {
	if err := casebot.ValidateEntries(entries, info); err != nil {
		return err
	}

	copies := make([]*casebot.IndexEntry, len(entries))
	for i, e := range entries {
		c := *e
		c.Vector = slices.Clone(e.Vector)
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		c.Position = i
		copies[i] = &c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = copies
	s.info = &info
	return nil
}

// Search ranks every entry by cosine similarity to vector.
func (s *VectorStore) Search(ctx context.Context, vector []float32, k int) ([]casebot.SearchResult, error) {
	if k <= 0 {
		return nil, casebot.Errorf(casebot.EINVALID, "k must be positive, got %d", k)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.entries) == 0 {
		return nil, nil
	}
	if err := casebot.CheckDimensions(vector, *s.info); err != nil {
		return nil, err
	}

	results := make([]casebot.SearchResult, len(s.entries))
	for i, e := range s.entries {
		c := *e
		results[i] = casebot.SearchResult{Entry: &c, Score: casebot.CosineSimilarity(vector, e.Vector)}
	}

	casebot.SortResults(results)
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Count returns the number of stored entries.
func (s *VectorStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}

// Info returns the description passed to the last Replace.
func (s *VectorStore) Info(ctx context.Context) (casebot.IndexInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.info == nil {
		return casebot.IndexInfo{}, casebot.Errorf(casebot.ENOTFOUND, "index has never been built")
	}
	return *s.info, nil
}
