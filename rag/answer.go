package rag

import (
	"context"
	"fmt"

	"github.com/fwojciec/casebot"
)

// AnswerPromptVersion identifies the answer prompt below.
const AnswerPromptVersion = "answer-v1"

// AnswerTemperature is the sampling temperature for answers.
const AnswerTemperature = 0.7

const answerTemplate = `Ты - консультант компании. Отвечай на вопросы о проектах.

ПРАВИЛА ОТВЕТА:
- Всегда приводи КОНКРЕТНЫЕ примеры проектов из контекста
- Обязательно указывай названия КОМПАНИЙ-КЛИЕНТОВ (Магнит, KazanExpress, Lamoda и др.)
- Давай короткий, но информативный ответ в формате "Мы делали X для компании Y"
- Если в контексте нет релевантных примеров, честно скажи об этом

ПРИМЕРЫ ХОРОШИХ ОТВЕТОВ:
ВОПРОС: Что вы можете сделать для ритейлеров?
ОТВЕТ: Мы разрабатывали HR-бота для Магнита и систему поиска по изображениям для KazanExpress.


Контекст проектов:
%s

Вопрос: %s

Конкретный ответ с примерами:`

// BuildAnswerPrompt fills the answer template with the retrieved context.
func BuildAnswerPrompt(question string, docs []casebot.RetrievedDoc) string {
	return fmt.Sprintf(answerTemplate, casebot.FormatContext(docs), question)
}

// Ensure Answerer implements casebot.Answerer at compile time.
var _ casebot.Answerer = (*Answerer)(nil)

// Answerer composes answers with a Completer. The completion is returned
// as is.
type Answerer struct {
	Completer casebot.Completer
}

// NewAnswerer creates a new Answerer.
func NewAnswerer(c casebot.Completer) *Answerer {
	return &Answerer{Completer: c}
}

// Answer asks the model to answer question from docs.
func (a *Answerer) Answer(ctx context.Context, question string, docs []casebot.RetrievedDoc) (string, error) {
	return a.Completer.Complete(ctx, BuildAnswerPrompt(question, docs), casebot.CompletionOptions{
		Temperature: AnswerTemperature,
	})
}

// PromptBudget bounds the size of the answer prompt in tokens.
type PromptBudget struct {
	Counter   casebot.TokenCounter
	MaxTokens int
}

// Fit drops the lowest ranked documents until the answer prompt for
// question holds at most MaxTokens tokens. The best document is always
// kept, so the result may still exceed the budget.
func (b *PromptBudget) Fit(ctx context.Context, question string, docs []casebot.RetrievedDoc) ([]casebot.RetrievedDoc, error) {
	if b.MaxTokens <= 0 {
		return docs, nil
	}
	for len(docs) > 1 {
		n, err := b.Counter.CountTokens(ctx, BuildAnswerPrompt(question, docs))
		if err != nil {
			return nil, err
		}
		if n <= b.MaxTokens {
			break
		}
		docs = docs[:len(docs)-1]
	}
	return docs, nil
}
