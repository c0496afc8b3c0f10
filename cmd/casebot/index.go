package main

import (
	"fmt"

	"github.com/fwojciec/casebot"
	"github.com/fwojciec/casebot/rag"
	"github.com/fwojciec/casebot/sqlite"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	pages, err := loadCorpus(deps.Ctx, c.In, "enrich")
	if err != nil {
		return err
	}

	db, store, err := openIndex(c.Dir)
	if err != nil {
		return err
	}
	defer db.Close()

	idx := &rag.Index{Embedder: deps.Embedder, Store: store, Model: deps.EmbeddingModel}
	n, err := idx.Build(deps.Ctx, pages)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Indexed %d documents into %s (%d pages, %d enriched)\n",
		n, c.Dir, len(pages), casebot.CountEnriched(pages))
	return nil
}

func openIndex(dir string) (*sqlite.DB, *sqlite.VectorStore, error) {
	db, err := sqlite.OpenIndex(dir)
	if err != nil {
		return nil, nil, casebot.Errorf(casebot.EINDEX, "failed to open index at %s: %v", dir, err)
	}
	return db, sqlite.NewVectorStore(db), nil
}
