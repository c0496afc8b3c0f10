package mock

import (
	"context"

	"github.com/fwojciec/casebot"
)

var (
	_ casebot.VectorStore = (*VectorStore)(nil)
	_ casebot.Retriever   = (*Retriever)(nil)
)

// VectorStore is a mock implementation of casebot.VectorStore.
type VectorStore struct {
	ReplaceFn func(ctx context.Context, entries []*casebot.IndexEntry, info casebot.IndexInfo) error
	SearchFn  func(ctx context.Context, vector []float32, k int) ([]casebot.SearchResult, error)
	CountFn   func(ctx context.Context) (int, error)
	InfoFn    func(ctx context.Context) (casebot.IndexInfo, error)
}

func (s *VectorStore) Replace(ctx context.Context, entries []*casebot.IndexEntry, info casebot.IndexInfo) error {
	return s.ReplaceFn(ctx, entries, info)
}

func (s *VectorStore) Search(ctx context.Context, vector []float32, k int) ([]casebot.SearchResult, error) {
	return s.SearchFn(ctx, vector, k)
}

func (s *VectorStore) Count(ctx context.Context) (int, error) {
	return s.CountFn(ctx)
}

func (s *VectorStore) Info(ctx context.Context) (casebot.IndexInfo, error) {
	return s.InfoFn(ctx)
}

// Retriever is a mock implementation of casebot.Retriever.
type Retriever struct {
	RetrieveFn func(ctx context.Context, query string, k int) ([]casebot.RetrievedDoc, error)
}

func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]casebot.RetrievedDoc, error) {
	return r.RetrieveFn(ctx, query, k)
}
