package casebot

import (
	"context"
)

// DefaultTopK is the number of documents retrieved per question.
const DefaultTopK = 3

// Metadata links an index entry back to its source page for citation.
type Metadata struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// IndexEntry is one embedded document in a vector store.
// It holds copies of the page fields it was built from, not references.
type IndexEntry struct {
	ID       string    `json:"id"`
	Text     string    `json:"text"`
	Metadata Metadata  `json:"metadata"`
	Vector   []float32 `json:"vector,omitempty"`

	// Position is the insertion order within the store, used to break score ties.
	Position int `json:"position"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *IndexEntry) Validate() error {
	if e.Text == "" {
		return Errorf(EINVALID, "index entry text required")
	}
	if e.Metadata.URL == "" {
		return Errorf(EINVALID, "index entry source URL required")
	}
	if len(e.Vector) == 0 {
		return Errorf(EINVALID, "index entry vector required")
	}
	return nil
}

// SearchResult represents a vector store match.
type SearchResult struct {
	Entry *IndexEntry `json:"entry"`
	Score float32     `json:"score"`
}

// IndexInfo records how the vectors of an index were produced. Queries must
// be embedded the same way for their scores to mean anything.
type IndexInfo struct {
	Model      string `json:"model"`
	Dimensions int    `json:"dimensions"`
}

// VectorStore stores embedded entries and searches them by similarity.
type VectorStore interface {
	// Replace swaps the store contents for entries, assigning positions and
	// missing IDs. Entries are validated first; on any error the previous
	// contents are kept.
	Replace(ctx context.Context, entries []*IndexEntry, info IndexInfo) error

	// Search returns at most k entries ordered by decreasing cosine
	// similarity to vector. Ties keep insertion order.
	// Returns EINVALID if vector does not match the index dimensions.
	Search(ctx context.Context, vector []float32, k int) ([]SearchResult, error)

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)

	// Info returns the description recorded by the last Replace.
	// Returns ENOTFOUND if the store was never built.
	Info(ctx context.Context) (IndexInfo, error)
}

// ValidateEntries checks entries before they replace an index described
// by info. Every vector must have info.Dimensions components.
func ValidateEntries(entries []*IndexEntry, info IndexInfo) error {
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
		if len(e.Vector) != info.Dimensions {
			return Errorf(EINVALID, "index entry %q has %d dimensions, index has %d", e.Metadata.URL, len(e.Vector), info.Dimensions)
		}
	}
	return nil
}

// CheckDimensions returns EINVALID if a query vector cannot be compared
// with an index described by info.
func CheckDimensions(vector []float32, info IndexInfo) error {
	if len(vector) != info.Dimensions {
		return Errorf(EINVALID, "query vector has %d dimensions, index has %d", len(vector), info.Dimensions)
	}
	return nil
}

// RetrievedDoc is a document returned by a Retriever.
type RetrievedDoc struct {
	Text     string   `json:"text"`
	Metadata Metadata `json:"metadata"`
	Score    float32  `json:"score"`
}

// Retriever finds the documents most relevant to a query.
type Retriever interface {
	// Retrieve returns at most k documents ranked by decreasing similarity.
	Retrieve(ctx context.Context, query string, k int) ([]RetrievedDoc, error)
}
