package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/casebot"
)

var _ casebot.Completer = (*LoggingCompleter)(nil)

// LoggingCompleter wraps a Completer with logging. Prompts are not logged,
// only their sizes.
type LoggingCompleter struct {
	next   casebot.Completer
	model  string
	logger *slog.Logger
}

// NewLoggingCompleter creates a new LoggingCompleter. model is only used as a log attribute.
func NewLoggingCompleter(next casebot.Completer, model string, logger *slog.Logger) *LoggingCompleter {
	return &LoggingCompleter{next: next, model: model, logger: logger}
}

// Complete delegates to the wrapped completer and logs the call.
func (c *LoggingCompleter) Complete(ctx context.Context, prompt string, opts casebot.CompletionOptions) (reply string, err error) {
	defer func(begin time.Time) {
		logCall(ctx, c.logger, "complete", begin, err,
			"model", c.model,
			"prompt_chars", len([]rune(prompt)),
			"reply_chars", len([]rune(reply)),
			"max_tokens", opts.MaxTokens,
			"json", opts.JSON,
		)
	}(time.Now())
	return c.next.Complete(ctx, prompt, opts)
}
