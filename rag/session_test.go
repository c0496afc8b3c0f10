package rag_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/fwojciec/casebot"
	"github.com/fwojciec/casebot/bagofwords"
	"github.com/fwojciec/casebot/fs"
	"github.com/fwojciec/casebot/memory"
	"github.com/fwojciec/casebot/mock"
	"github.com/fwojciec/casebot/rag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failingAnswerer(t *testing.T) *mock.Answerer {
	return &mock.Answerer{
		AnswerFn: func(context.Context, string, []casebot.RetrievedDoc) (string, error) {
			t.Error("model must not be called")
			return "", nil
		},
	}
}

func TestSession_Ask(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("nil index answers not configured without model call", func(t *testing.T) {
		t.Parallel()

		s := &rag.Session{Answerer: failingAnswerer(t)}

		answer, err := s.Ask(ctx, "Что вы делали для ритейла?")

		require.NoError(t, err)
		assert.Equal(t, casebot.NotConfiguredMessage, answer)
	})

	t.Run("empty index answers not configured without model call", func(t *testing.T) {
		t.Parallel()

		s := &rag.Session{Index: newIndex(), Answerer: failingAnswerer(t)}

		answer, err := s.Ask(ctx, "Что вы делали для ритейла?")

		require.NoError(t, err)
		assert.Equal(t, casebot.NotConfiguredMessage, answer)
	})

	t.Run("empty question is invalid", func(t *testing.T) {
		t.Parallel()

		s := &rag.Session{Answerer: failingAnswerer(t)}

		_, err := s.Ask(ctx, "   ")

		assert.Equal(t, casebot.EINVALID, casebot.ErrorCode(err))
	})

	t.Run("answers from top k documents", func(t *testing.T) {
		t.Parallel()

		idx := newIndex()
		_, err := idx.Build(ctx, corpus())
		require.NoError(t, err)

		var gotDocs []casebot.RetrievedDoc
		s := &rag.Session{
			Index: idx,
			Answerer: &mock.Answerer{
				AnswerFn: func(_ context.Context, question string, docs []casebot.RetrievedDoc) (string, error) {
					gotDocs = docs
					return "Мы делали HR-бота для Магнита.", nil
				},
			},
			K: 2,
		}

		answer, sources, err := s.AskWithSources(ctx, "  HR-бот для Магнита  ")

		require.NoError(t, err)
		assert.Equal(t, "Мы делали HR-бота для Магнита.", answer)
		require.Len(t, sources, 2)
		assert.Equal(t, gotDocs, sources)
		assert.Equal(t, "https://example.com/magnit", sources[0].Metadata.URL)
	})

	t.Run("defaults to three documents", func(t *testing.T) {
		t.Parallel()

		idx := newIndex()
		_, err := idx.Build(ctx, append(corpus(), &casebot.Page{
			URL: "https://example.com/extra", Title: "Ещё", Content: "проект", Status: casebot.PageSuccess,
		}))
		require.NoError(t, err)

		var n int
		s := &rag.Session{
			Index: idx,
			Answerer: &mock.Answerer{
				AnswerFn: func(_ context.Context, _ string, docs []casebot.RetrievedDoc) (string, error) {
					n = len(docs)
					return "ok", nil
				},
			},
		}

		_, err = s.Ask(ctx, "проект")

		require.NoError(t, err)
		assert.Equal(t, casebot.DefaultTopK, n)
	})

	t.Run("model failure is a query error", func(t *testing.T) {
		t.Parallel()

		idx := newIndex()
		_, err := idx.Build(ctx, corpus())
		require.NoError(t, err)

		s := &rag.Session{
			Index: idx,
			Answerer: &mock.Answerer{
				AnswerFn: func(context.Context, string, []casebot.RetrievedDoc) (string, error) {
					return "", errors.New("timeout")
				},
			},
		}

		_, err = s.Ask(ctx, "бот")

		assert.Equal(t, casebot.EQUERY, casebot.ErrorCode(err))
	})

	t.Run("budget drops lowest ranked documents", func(t *testing.T) {
		t.Parallel()

		idx := newIndex()
		_, err := idx.Build(ctx, corpus())
		require.NoError(t, err)

		var gotDocs []casebot.RetrievedDoc
		s := &rag.Session{
			Index: idx,
			Answerer: &mock.Answerer{
				AnswerFn: func(_ context.Context, _ string, docs []casebot.RetrievedDoc) (string, error) {
					gotDocs = docs
					return "ok", nil
				},
			},
			Budget: &rag.PromptBudget{Counter: runeCounter(), MaxTokens: 1},
		}

		_, sources, err := s.AskWithSources(ctx, "HR-бот для Магнита")

		require.NoError(t, err)
		require.Len(t, sources, 1)
		assert.Equal(t, gotDocs, sources)
		assert.Equal(t, "https://example.com/magnit", sources[0].Metadata.URL)
	})

	t.Run("index of another model is a query error", func(t *testing.T) {
		t.Parallel()

		store := memory.NewVectorStore()
		built := &rag.Index{Embedder: bagofwords.NewEmbedder(512), Store: store, Model: "bagofwords-512"}
		_, err := built.Build(ctx, corpus())
		require.NoError(t, err)

		s := &rag.Session{
			Index:    &rag.Index{Embedder: bagofwords.NewEmbedder(768), Store: store, Model: "bagofwords-768"},
			Answerer: failingAnswerer(t),
		}

		_, err = s.Ask(ctx, "поиск товаров по фото")

		assert.Equal(t, casebot.EQUERY, casebot.ErrorCode(err))
		assert.Contains(t, casebot.ErrorMessage(err), "rebuild the index")
	})

	t.Run("retrieval failure is a query error", func(t *testing.T) {
		t.Parallel()

		idx := &rag.Index{
			Embedder: &mock.Embedder{
				EmbedQueryFn: func(context.Context, string) ([]float32, error) {
					return nil, errors.New("embedding service down")
				},
			},
			Store: &mock.VectorStore{
				CountFn: func(context.Context) (int, error) { return 1, nil },
				InfoFn: func(context.Context) (casebot.IndexInfo, error) {
					return casebot.IndexInfo{Dimensions: 8}, nil
				},
			},
		}
		s := &rag.Session{Index: idx, Answerer: failingAnswerer(t)}

		_, err := s.Ask(ctx, "бот")

		assert.Equal(t, casebot.EQUERY, casebot.ErrorCode(err))
		assert.Contains(t, casebot.ErrorMessage(err), "embedding service down")
	})
}

func TestSetup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	saveCorpus := func(t *testing.T) *fs.CorpusStore {
		t.Helper()
		store := fs.NewCorpusStore(filepath.Join(t.TempDir(), "projects_enriched.json"))
		require.NoError(t, store.Save(ctx, corpus()))
		return store
	}

	t.Run("builds index from corpus when store is empty", func(t *testing.T) {
		t.Parallel()

		s, err := rag.Setup(ctx, rag.SetupConfig{
			Corpus:   saveCorpus(t),
			Embedder: bagofwords.NewEmbedder(0),
			Store:    memory.NewVectorStore(),
			K:        1,
		})

		require.NoError(t, err)
		n, err := s.Index.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, 1, s.K)
	})

	t.Run("opens existing index without reading corpus", func(t *testing.T) {
		t.Parallel()

		store := memory.NewVectorStore()
		require.NoError(t, store.Replace(ctx, []*casebot.IndexEntry{{
			Text: "x", Metadata: casebot.Metadata{URL: "u"}, Vector: []float32{1},
		}}, casebot.IndexInfo{Model: "bagofwords-512", Dimensions: 1}))

		s, err := rag.Setup(ctx, rag.SetupConfig{
			Corpus: &mock.CorpusStore{
				LoadFn: func(context.Context) ([]*casebot.Page, error) {
					t.Error("corpus must not be loaded")
					return nil, nil
				},
			},
			Embedder: bagofwords.NewEmbedder(0),
			Store:    store,
			Model:    "bagofwords-512",
		})

		require.NoError(t, err)
		n, _ := s.Index.Count(ctx)
		assert.Equal(t, 1, n)
	})

	t.Run("rebuilds an index made with another embedding model", func(t *testing.T) {
		t.Parallel()

		store := memory.NewVectorStore()
		require.NoError(t, store.Replace(ctx, []*casebot.IndexEntry{{
			Text: "x", Metadata: casebot.Metadata{URL: "u"}, Vector: []float32{1},
		}}, casebot.IndexInfo{Model: "text-embedding-3-small", Dimensions: 1}))
		embedder := bagofwords.NewEmbedder(0)

		s, err := rag.Setup(ctx, rag.SetupConfig{
			Corpus:   saveCorpus(t),
			Embedder: embedder,
			Store:    store,
			Model:    embedder.Model(),
		})

		require.NoError(t, err)
		n, _ := s.Index.Count(ctx)
		assert.Equal(t, 3, n)
		info, err := store.Info(ctx)
		require.NoError(t, err)
		assert.Equal(t, casebot.IndexInfo{Model: "bagofwords-512", Dimensions: bagofwords.DefaultDimensions}, info)
	})

	t.Run("rebuild reads corpus even when index exists", func(t *testing.T) {
		t.Parallel()

		store := memory.NewVectorStore()
		require.NoError(t, store.Replace(ctx, []*casebot.IndexEntry{{
			Text: "x", Metadata: casebot.Metadata{URL: "u"}, Vector: []float32{1},
		}}, casebot.IndexInfo{Model: "bagofwords-512", Dimensions: 1}))

		s, err := rag.Setup(ctx, rag.SetupConfig{
			Corpus:   saveCorpus(t),
			Embedder: bagofwords.NewEmbedder(0),
			Store:    store,
			Rebuild:  true,
		})

		require.NoError(t, err)
		n, _ := s.Index.Count(ctx)
		assert.Equal(t, 3, n)
	})

	t.Run("missing corpus is not found", func(t *testing.T) {
		t.Parallel()

		_, err := rag.Setup(ctx, rag.SetupConfig{
			Corpus:   fs.NewCorpusStore(filepath.Join(t.TempDir(), "missing.json")),
			Embedder: bagofwords.NewEmbedder(0),
			Store:    memory.NewVectorStore(),
		})

		assert.Equal(t, casebot.ENOTFOUND, casebot.ErrorCode(err))
	})
}
