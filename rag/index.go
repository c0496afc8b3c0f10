// Package rag builds the semantic index over the enriched corpus and
// answers questions from the documents it retrieves.
package rag

import (
	"context"
	"strings"

	"github.com/fwojciec/casebot"
)

// DefaultBatchSize is the number of texts sent per embedding call.
const DefaultBatchSize = 100

// Index embeds pages into a VectorStore and retrieves them by similarity.
type Index struct {
	Embedder casebot.Embedder
	Store    casebot.VectorStore

	// Model names the embedding model. It is recorded when the index is
	// built, and queries are refused when it differs from the recorded one.
	Model string

	// BatchSize defaults to DefaultBatchSize.
	BatchSize int
}

// Ensure Index implements casebot.Retriever at compile time.
var _ casebot.Retriever = (*Index)(nil)

// DocumentText returns the indexed text of a page: title and content, plus
// industry and client when the page is enriched.
func DocumentText(page *casebot.Page) string {
	var b strings.Builder
	b.WriteString(page.Title)
	b.WriteString("\n")
	b.WriteString(page.Content)
	if en := page.Enrichment; en != nil {
		b.WriteString("\nИндустрия: ")
		b.WriteString(en.Industry)
		b.WriteString("\nКлиент: ")
		b.WriteString(en.Company)
	}
	return b.String()
}

// Build replaces the store contents with one entry per successful page and
// returns the number of entries. Every failure is reported as EINDEX; the
// previous contents are kept when embedding or storing fails.
func (idx *Index) Build(ctx context.Context, pages []*casebot.Page) (int, error) {
	var entries []*casebot.IndexEntry
	for _, p := range pages {
		if !p.OK() {
			continue
		}
		entries = append(entries, &casebot.IndexEntry{
			Text:     DocumentText(p),
			Metadata: casebot.Metadata{URL: p.URL, Title: p.Title},
		})
	}

	size := idx.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}
	for start := 0; start < len(entries); start += size {
		batch := entries[start:min(start+size, len(entries))]

		texts := make([]string, len(batch))
		for i, e := range batch {
			texts[i] = e.Text
		}

		vectors, err := idx.Embedder.EmbedDocuments(ctx, texts)
		if err != nil {
			return 0, casebot.Errorf(casebot.EINDEX, "embedding documents %d-%d: %v", start+1, start+len(batch), err)
		}
		if len(vectors) != len(batch) {
			return 0, casebot.Errorf(casebot.EINDEX, "embedder returned %d vectors for %d documents", len(vectors), len(batch))
		}
		for i, v := range vectors {
			batch[i].Vector = v
		}
	}

	info := casebot.IndexInfo{Model: idx.Model}
	if len(entries) > 0 {
		info.Dimensions = len(entries[0].Vector)
	}
	if err := idx.Store.Replace(ctx, entries, info); err != nil {
		return 0, casebot.Errorf(casebot.EINDEX, "storing documents: %v", errorText(err))
	}
	return len(entries), nil
}

// Count returns the number of indexed documents.
func (idx *Index) Count(ctx context.Context) (int, error) {
	return idx.Store.Count(ctx)
}

// Check returns EINDEX if the stored index was built with another embedding
// model than idx.Model. An index that was never built passes.
func (idx *Index) Check(ctx context.Context) error {
	_, err := idx.info(ctx)
	return err
}

func (idx *Index) info(ctx context.Context) (casebot.IndexInfo, error) {
	info, err := idx.Store.Info(ctx)
	if casebot.ErrorCode(err) == casebot.ENOTFOUND {
		return casebot.IndexInfo{}, nil
	} else if err != nil {
		return casebot.IndexInfo{}, casebot.Errorf(casebot.EINDEX, "reading index: %v", errorText(err))
	}
	if info.Model != "" && idx.Model != "" && info.Model != idx.Model {
		return info, casebot.Errorf(casebot.EINDEX,
			"index was built with embedding model %q but queries use %q; rebuild the index", info.Model, idx.Model)
	}
	return info, nil
}

// Retrieve returns at most k documents ranked by decreasing similarity to
// query. Returns EINDEX when the query embedding cannot be compared with
// the stored vectors.
func (idx *Index) Retrieve(ctx context.Context, query string, k int) ([]casebot.RetrievedDoc, error) {
	if k <= 0 {
		return nil, casebot.Errorf(casebot.EINVALID, "k must be positive, got %d", k)
	}

	info, err := idx.info(ctx)
	if err != nil {
		return nil, err
	}

	vector, err := idx.Embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	if info.Dimensions > 0 && len(vector) != info.Dimensions {
		return nil, casebot.Errorf(casebot.EINDEX,
			"index holds %d-dimensional vectors but the query embedding has %d; rebuild the index", info.Dimensions, len(vector))
	}

	results, err := idx.Store.Search(ctx, vector, k)
	if err != nil {
		return nil, err
	}

	docs := make([]casebot.RetrievedDoc, len(results))
	for i, r := range results {
		docs[i] = casebot.RetrievedDoc{
			Text:     r.Entry.Text,
			Metadata: r.Entry.Metadata,
			Score:    r.Score,
		}
	}
	return docs, nil
}

// errorText returns the message of an application error and the full text
// of any other error.
func errorText(err error) string {
	if casebot.ErrorCode(err) == casebot.EINTERNAL {
		return err.Error()
	}
	return casebot.ErrorMessage(err)
}
