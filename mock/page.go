package mock

import (
	"context"

	"github.com/fwojciec/casebot"
)

var _ casebot.CorpusStore = (*CorpusStore)(nil)

// CorpusStore is a mock implementation of casebot.CorpusStore.
type CorpusStore struct {
	LoadFn func(ctx context.Context) ([]*casebot.Page, error)
	SaveFn func(ctx context.Context, pages []*casebot.Page) error
}

func (s *CorpusStore) Load(ctx context.Context) ([]*casebot.Page, error) {
	return s.LoadFn(ctx)
}

func (s *CorpusStore) Save(ctx context.Context, pages []*casebot.Page) error {
	return s.SaveFn(ctx, pages)
}
