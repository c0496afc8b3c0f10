package casebot

import "context"

// NotConfiguredMessage is returned instead of an answer when no index is available.
const NotConfiguredMessage = "Система не настроена: индекс проектов пуст. Запустите casebot setup."

// Answerer composes a natural language answer from retrieved documents.
type Answerer interface {
	// Answer returns the model's answer to question grounded on docs.
	Answer(ctx context.Context, question string, docs []RetrievedDoc) (string, error)
}

// Asker provides natural language question answering over the project corpus.
type Asker interface {
	// Ask answers a question. Returns NotConfiguredMessage when nothing is indexed.
	Ask(ctx context.Context, question string) (string, error)
}
