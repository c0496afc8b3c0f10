package mock

import (
	"context"

	"github.com/fwojciec/casebot"
)

var _ casebot.Completer = (*Completer)(nil)

// Completer is a mock implementation of casebot.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, prompt string, opts casebot.CompletionOptions) (string, error)
}

func (c *Completer) Complete(ctx context.Context, prompt string, opts casebot.CompletionOptions) (string, error) {
	return c.CompleteFn(ctx, prompt, opts)
}
