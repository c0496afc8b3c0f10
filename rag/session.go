package rag

import (
	"context"
	"strings"

	"github.com/fwojciec/casebot"
)

// Session answers questions over one index. A Session with a nil Index
// is valid and answers every question with casebot.NotConfiguredMessage.
type Session struct {
	Index    *Index
	Answerer casebot.Answerer

	// K is the number of documents retrieved per question.
	// Defaults to casebot.DefaultTopK.
	K int

	// Budget, when set, drops the lowest ranked documents until the answer
	// prompt fits.
	Budget *PromptBudget
}

// Ensure Session implements casebot.Asker at compile time.
var _ casebot.Asker = (*Session)(nil)

// Ask answers question. It returns NotConfiguredMessage without calling
// the model when nothing is indexed, EINVALID for an empty question and
// EQUERY when retrieval or generation fails.
func (s *Session) Ask(ctx context.Context, question string) (string, error) {
	answer, _, err := s.AskWithSources(ctx, question)
	return answer, err
}

// AskWithSources is like Ask but also returns the documents the answer was
// composed from.
func (s *Session) AskWithSources(ctx context.Context, question string) (string, []casebot.RetrievedDoc, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", nil, casebot.Errorf(casebot.EINVALID, "question required")
	}

	if s.Index == nil {
		return casebot.NotConfiguredMessage, nil, nil
	}
	n, err := s.Index.Count(ctx)
	if err != nil {
		return "", nil, casebot.Errorf(casebot.EQUERY, "reading index: %v", err)
	}
	if n == 0 {
		return casebot.NotConfiguredMessage, nil, nil
	}

	k := s.K
	if k <= 0 {
		k = casebot.DefaultTopK
	}

	docs, err := s.Index.Retrieve(ctx, question, k)
	if err != nil {
		return "", nil, casebot.Errorf(casebot.EQUERY, "retrieval failed: %v", errorText(err))
	}

	if s.Budget != nil {
		if docs, err = s.Budget.Fit(ctx, question, docs); err != nil {
			return "", nil, casebot.Errorf(casebot.EQUERY, "counting prompt tokens: %v", errorText(err))
		}
	}

	answer, err := s.Answerer.Answer(ctx, question, docs)
	if err != nil {
		return "", docs, casebot.Errorf(casebot.EQUERY, "answer failed: %v", errorText(err))
	}
	return answer, docs, nil
}

// SetupConfig describes how to prepare a Session.
type SetupConfig struct {
	// Corpus holds the enriched pages. Required when the index is built.
	Corpus casebot.CorpusStore

	Embedder casebot.Embedder
	Store    casebot.VectorStore
	Answerer casebot.Answerer
	K        int
	Budget   *PromptBudget

	// Model names the embedding model, see Index.Model.
	Model string

	// Rebuild forces the index to be rebuilt from Corpus even if Store
	// already holds documents.
	Rebuild bool
}

// Setup returns a Session over cfg.Store, building the index from the
// corpus when the store is empty, was built with another embedding model,
// or Rebuild is set. Returns ENOTFOUND if the corpus is missing and EINDEX
// if the build fails.
func Setup(ctx context.Context, cfg SetupConfig) (*Session, error) {
	idx := &Index{Embedder: cfg.Embedder, Store: cfg.Store, Model: cfg.Model}

	n, err := idx.Count(ctx)
	if err != nil {
		return nil, casebot.Errorf(casebot.EINDEX, "reading index: %v", err)
	}

	stale := idx.Check(ctx) != nil
	if n == 0 || stale || cfg.Rebuild {
		if cfg.Corpus == nil {
			return nil, casebot.Errorf(casebot.ECONFIG, "corpus required to build the index")
		}
		pages, err := cfg.Corpus.Load(ctx)
		if err != nil {
			return nil, err
		}
		if _, err := idx.Build(ctx, pages); err != nil {
			return nil, err
		}
	}

	return &Session{Index: idx, Answerer: cfg.Answerer, K: cfg.K, Budget: cfg.Budget}, nil
}
