package casebot

import "context"

// Embedder computes vector embeddings for documents and queries.
// Implementations must return identical vectors for identical text.
type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}
