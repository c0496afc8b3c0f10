package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/casebot"
)

var _ casebot.Embedder = (*LoggingEmbedder)(nil)

// LoggingEmbedder wraps an Embedder with logging.
type LoggingEmbedder struct {
	next   casebot.Embedder
	model  string
	logger *slog.Logger
}

// NewLoggingEmbedder creates a new LoggingEmbedder.
func NewLoggingEmbedder(next casebot.Embedder, model string, logger *slog.Logger) *LoggingEmbedder {
	return &LoggingEmbedder{next: next, model: model, logger: logger}
}

// EmbedDocuments delegates to the wrapped embedder and logs the batch size.
func (e *LoggingEmbedder) EmbedDocuments(ctx context.Context, texts []string) (vectors [][]float32, err error) {
	defer func(begin time.Time) {
		logCall(ctx, e.logger, "embed documents", begin, err,
			"model", e.model,
			"count", len(texts),
			"dims", dims(vectors),
		)
	}(time.Now())
	return e.next.EmbedDocuments(ctx, texts)
}

// EmbedQuery delegates to the wrapped embedder and logs the call.
func (e *LoggingEmbedder) EmbedQuery(ctx context.Context, text string) (vector []float32, err error) {
	defer func(begin time.Time) {
		logCall(ctx, e.logger, "embed query", begin, err, "model", e.model, "dims", len(vector))
	}(time.Now())
	return e.next.EmbedQuery(ctx, text)
}

func dims(vectors [][]float32) int {
	if len(vectors) == 0 {
		return 0
	}
	return len(vectors[0])
}
