package main

import (
	"fmt"

	"github.com/fwojciec/casebot"
	"github.com/fwojciec/casebot/fs"
	"github.com/fwojciec/casebot/rag"
	"github.com/fwojciec/casebot/sqlite"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	session, closeIndex, err := openSession(deps, c.SessionOptions)
	if err != nil {
		return err
	}
	defer closeIndex()

	answer, docs, err := session.AskWithSources(deps.Ctx, c.Question)
	if err != nil {
		return err
	}

	printAnswer(deps, answer, docs, c.Sources)
	return nil
}

// openSession prepares a question-answering session. Without an index or a
// corpus to build one from, the session reports that it is not configured.
// An empty or stale index is rebuilt from the corpus when the corpus exists.
func openSession(deps *Dependencies, opts SessionOptions) (*rag.Session, func() error, error) {
	answerer := rag.NewAnswerer(deps.Completer)
	corpus := fs.NewCorpusStore(opts.Corpus)

	var budget *rag.PromptBudget
	if opts.MaxPromptTokens > 0 {
		budget = &rag.PromptBudget{Counter: deps.TokenCounter, MaxTokens: opts.MaxPromptTokens}
	}

	if !sqlite.IndexExists(opts.Dir) && !corpus.Exists() {
		return &rag.Session{Answerer: answerer, K: opts.TopK, Budget: budget}, func() error { return nil }, nil
	}

	db, store, err := openIndex(opts.Dir)
	if err != nil {
		return nil, nil, err
	}

	if !corpus.Exists() {
		return &rag.Session{
			Index:    &rag.Index{Embedder: deps.Embedder, Store: store, Model: deps.EmbeddingModel},
			Answerer: answerer,
			K:        opts.TopK,
			Budget:   budget,
		}, db.Close, nil
	}

	session, err := rag.Setup(deps.Ctx, rag.SetupConfig{
		Corpus:   corpus,
		Embedder: deps.Embedder,
		Store:    store,
		Answerer: answerer,
		K:        opts.TopK,
		Budget:   budget,
		Model:    deps.EmbeddingModel,
	})
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return session, db.Close, nil
}

func printAnswer(deps *Dependencies, answer string, docs []casebot.RetrievedDoc, sources bool) {
	st := deps.Styles
	fmt.Fprintln(deps.Stdout, st.Render(st.Answer, answer))
	if sources && len(docs) > 0 {
		fmt.Fprintln(deps.Stdout)
		fmt.Fprintln(deps.Stdout, st.Render(st.Muted, "Источники:\n"+casebot.FormatSources(docs)))
	}
}
