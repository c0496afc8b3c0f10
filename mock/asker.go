package mock

import (
	"context"

	"github.com/fwojciec/casebot"
)

var (
	_ casebot.Asker    = (*Asker)(nil)
	_ casebot.Answerer = (*Answerer)(nil)
)

// Asker is a mock implementation of casebot.Asker.
type Asker struct {
	AskFn func(ctx context.Context, question string) (string, error)
}

func (a *Asker) Ask(ctx context.Context, question string) (string, error) {
	return a.AskFn(ctx, question)
}

// Answerer is a mock implementation of casebot.Answerer.
type Answerer struct {
	AnswerFn func(ctx context.Context, question string, docs []casebot.RetrievedDoc) (string, error)
}

func (a *Answerer) Answer(ctx context.Context, question string, docs []casebot.RetrievedDoc) (string, error) {
	return a.AnswerFn(ctx, question, docs)
}
