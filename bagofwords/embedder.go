// Package bagofwords provides a deterministic local embedder based on
// feature-hashed word counts. It needs no network access and is used for
// offline indexing and tests.
package bagofwords

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/casebot"
)

// DefaultDimensions is the vector size produced by NewEmbedder.
const DefaultDimensions = 512

var _ casebot.Embedder = (*Embedder)(nil)

// Embedder hashes lower-cased words into a fixed number of buckets and
// L2-normalizes the result, so cosine similarity reflects shared words.
type Embedder struct {
	dims int
}

// NewEmbedder returns an Embedder producing vectors of dims components.
// A non-positive dims selects DefaultDimensions.
func NewEmbedder(dims int) *Embedder {
	if dims <= 0 {
		dims = DefaultDimensions
	}
	return &Embedder{dims: dims}
}

// Model names the embedding scheme. Vectors of different sizes get
// different names.
func (e *Embedder) Model() string {
	return fmt.Sprintf("bagofwords-%d", e.dims)
}

// EmbedDocuments embeds each text independently.
func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vectors[i] = e.embed(text)
	}
	return vectors, nil
}

// EmbedQuery embeds a single query.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.embed(text), nil
}

func (e *Embedder) embed(text string) []float32 {
	v := make([]float32, e.dims)
	for _, word := range Tokenize(text) {
		h := xxhash.Sum64String(word)
		v[h%uint64(e.dims)]++
	}

	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	if norm == 0 {
		return v
	}
	norm = math.Sqrt(norm)
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
	return v
}

// Tokenize splits text into lower-cased runs of letters and digits.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
