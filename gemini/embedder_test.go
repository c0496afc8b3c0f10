package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/fwojciec/casebot"
	"github.com/fwojciec/casebot/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// embedHandler answers batchEmbedContents with one vector per request,
// the first component being the request index.
func embedHandler(tasks *[]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Requests []struct {
				TaskType string `json:"taskType"`
			} `json:"requests"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		embeddings := make([]any, len(body.Requests))
		for i, req := range body.Requests {
			if tasks != nil {
				*tasks = append(*tasks, req.TaskType)
			}
			embeddings[i] = map[string]any{"values": []float32{float32(i), 1}}
		}
		writeJSON(w, map[string]any{"embeddings": embeddings})
	}
}

func TestEmbedder_EmbedDocuments(t *testing.T) {
	t.Parallel()

	t.Run("returns vectors in input order", func(t *testing.T) {
		t.Parallel()

		var tasks []string
		e := gemini.NewEmbedder(newTestClient(t, embedHandler(&tasks)), "")

		vectors, err := e.EmbedDocuments(context.Background(), []string{"первый", "второй", "третий"})

		require.NoError(t, err)
		require.Len(t, vectors, 3)
		assert.Equal(t, []float32{0, 1}, vectors[0])
		assert.Equal(t, []float32{2, 1}, vectors[2])
		assert.Equal(t, []string{"RETRIEVAL_DOCUMENT", "RETRIEVAL_DOCUMENT", "RETRIEVAL_DOCUMENT"}, tasks)
	})

	t.Run("empty input makes no request", func(t *testing.T) {
		t.Parallel()

		e := gemini.NewEmbedder(nil, "")

		vectors, err := e.EmbedDocuments(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, vectors)
	})

	t.Run("count mismatch is an internal error", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{"embeddings": []any{}})
		})

		_, err := gemini.NewEmbedder(client, "").EmbedDocuments(context.Background(), []string{"a"})

		assert.Equal(t, casebot.EINTERNAL, casebot.ErrorCode(err))
	})
}

func TestEmbedder_EmbedQuery(t *testing.T) {
	t.Parallel()

	var tasks []string
	e := gemini.NewEmbedder(newTestClient(t, embedHandler(&tasks)), "")

	vector, err := e.EmbedQuery(context.Background(), "чат-бот")

	require.NoError(t, err)
	assert.Equal(t, []float32{0, 1}, vector)
	assert.Equal(t, []string{"RETRIEVAL_QUERY"}, tasks)
}
