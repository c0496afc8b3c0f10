package openai

import (
	"context"

	"github.com/fwojciec/casebot"
	goopenai "github.com/sashabaranov/go-openai"
)

// DefaultEmbeddingModel is the model used for embeddings.
const DefaultEmbeddingModel = "text-embedding-3-small"

var _ casebot.Embedder = (*Embedder)(nil)

// Embedder implements casebot.Embedder with the embeddings endpoint.
type Embedder struct {
	client *goopenai.Client
	model  string
}

// NewEmbedder creates a new Embedder. An empty model selects DefaultEmbeddingModel.
func NewEmbedder(client *goopenai.Client, model string) *Embedder {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	return &Embedder{client: client, model: model}
}

// Model returns the embedding model name.
func (e *Embedder) Model() string {
	return e.model
}

// EmbedDocuments embeds texts in one request. Vectors follow input order.
func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := e.client.CreateEmbeddings(ctx, goopenai.EmbeddingRequest{
		Input: texts,
		Model: goopenai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, apiError(err)
	}
	if len(resp.Data) != len(texts) {
		return nil, casebot.Errorf(casebot.EINTERNAL, "openai returned %d embeddings for %d texts", len(resp.Data), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(texts) || vectors[d.Index] != nil {
			return nil, casebot.Errorf(casebot.EINTERNAL, "openai returned invalid embedding index %d", d.Index)
		}
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}

// EmbedQuery embeds a search query.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}
