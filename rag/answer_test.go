package rag_test

import (
	"context"
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/casebot"
	"github.com/fwojciec/casebot/mock"
	"github.com/fwojciec/casebot/rag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAnswerPrompt(t *testing.T) {
	t.Parallel()

	prompt := rag.BuildAnswerPrompt("Что вы делали для ритейла?", []casebot.RetrievedDoc{
		{Text: "HR-бот для Магнита"},
		{Text: "Поиск по фото для KazanExpress"},
	})

	assert.Contains(t, prompt, "Ты - консультант компании.")
	assert.Contains(t, prompt, "Мы делали X для компании Y")
	assert.Contains(t, prompt, "Контекст проектов:\nHR-бот для Магнита\n\nПоиск по фото для KazanExpress\n\nВопрос: Что вы делали для ритейла?")
	assert.Contains(t, prompt, "Конкретный ответ с примерами:")
}

func TestAnswerer_Answer(t *testing.T) {
	t.Parallel()

	var gotPrompt string
	var gotOpts casebot.CompletionOptions
	a := rag.NewAnswerer(&mock.Completer{
		CompleteFn: func(_ context.Context, prompt string, opts casebot.CompletionOptions) (string, error) {
			gotPrompt = prompt
			gotOpts = opts
			return "  Мы делали HR-бота для Магнита.  ", nil
		},
	})

	answer, err := a.Answer(context.Background(), "HR?", []casebot.RetrievedDoc{{Text: "HR-бот"}})

	require.NoError(t, err)
	assert.Equal(t, "  Мы делали HR-бота для Магнита.  ", answer)
	assert.Contains(t, gotPrompt, "Вопрос: HR?")
	assert.InDelta(t, 0.7, gotOpts.Temperature, 1e-6)
	assert.False(t, gotOpts.JSON)
}

// runeCounter counts one token per character.
func runeCounter() *mock.TokenCounter {
	return &mock.TokenCounter{
		CountTokensFn: func(_ context.Context, text string) (int, error) {
			return utf8.RuneCountInString(text), nil
		},
	}
}

func TestPromptBudget_Fit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	docs := []casebot.RetrievedDoc{
		{Text: "HR-бот для Магнита"},
		{Text: "Поиск по фото для KazanExpress"},
		{Text: "Скоринг для банка"},
	}
	promptLen := func(docs []casebot.RetrievedDoc) int {
		return utf8.RuneCountInString(rag.BuildAnswerPrompt("HR?", docs))
	}

	t.Run("keeps all documents within budget", func(t *testing.T) {
		t.Parallel()

		b := &rag.PromptBudget{Counter: runeCounter(), MaxTokens: promptLen(docs)}

		got, err := b.Fit(ctx, "HR?", docs)

		require.NoError(t, err)
		assert.Equal(t, docs, got)
	})

	t.Run("drops lowest ranked documents first", func(t *testing.T) {
		t.Parallel()

		b := &rag.PromptBudget{Counter: runeCounter(), MaxTokens: promptLen(docs[:2])}

		got, err := b.Fit(ctx, "HR?", docs)

		require.NoError(t, err)
		assert.Equal(t, docs[:2], got)
	})

	t.Run("always keeps the best document", func(t *testing.T) {
		t.Parallel()

		b := &rag.PromptBudget{Counter: runeCounter(), MaxTokens: 1}

		got, err := b.Fit(ctx, "HR?", docs)

		require.NoError(t, err)
		assert.Equal(t, docs[:1], got)
	})

	t.Run("zero budget disables counting", func(t *testing.T) {
		t.Parallel()

		b := &rag.PromptBudget{Counter: &mock.TokenCounter{}}

		got, err := b.Fit(ctx, "HR?", docs)

		require.NoError(t, err)
		assert.Equal(t, docs, got)
	})

	t.Run("returns counter errors", func(t *testing.T) {
		t.Parallel()

		b := &rag.PromptBudget{
			Counter: &mock.TokenCounter{
				CountTokensFn: func(context.Context, string) (int, error) {
					return 0, errors.New("tokenizer unavailable")
				},
			},
			MaxTokens: 10,
		}

		_, err := b.Fit(ctx, "HR?", docs)

		assert.EqualError(t, err, "tokenizer unavailable")
	})
}
