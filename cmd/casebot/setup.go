package main

import (
	"fmt"

	"github.com/fwojciec/casebot"
	"github.com/fwojciec/casebot/fs"
	"github.com/fwojciec/casebot/rag"
)

// Run executes the setup command.
func (c *SetupCmd) Run(deps *Dependencies) error {
	ctx := deps.Ctx

	raw := fs.NewCorpusStore(c.Raw)
	var pages []*casebot.Page
	if raw.Exists() && !c.Force {
		fmt.Fprintf(deps.Stdout, "Using scraped pages from %s\n", c.Raw)
		var err error
		if pages, err = raw.Load(ctx); err != nil {
			return err
		}
	} else {
		var err error
		if pages, err = scrapeLinks(deps, c.Links, c.ScrapeDelay); err != nil {
			return err
		}
		if err := raw.Save(ctx, pages); err != nil {
			return err
		}
	}

	scraped := casebot.CountSuccessful(pages)
	if scraped == 0 {
		return casebot.Errorf(casebot.EFETCH, "no pages were scraped successfully. Check %s and network access", c.Links)
	}

	enriched := fs.NewCorpusStore(c.Enriched)
	if enriched.Exists() && !c.Force {
		previous, err := enriched.Load(ctx)
		if err != nil {
			return err
		}
		pages = keepEnrichments(pages, previous)
	}

	pages, err := enrichPages(deps, pages, c.EnrichDelay, c.Force)
	if err != nil {
		return err
	}
	if err := enriched.Save(ctx, pages); err != nil {
		return err
	}

	db, store, err := openIndex(c.Dir)
	if err != nil {
		return err
	}
	defer db.Close()

	idx := &rag.Index{Embedder: deps.Embedder, Store: store, Model: deps.EmbeddingModel}
	n, err := idx.Build(ctx, pages)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Setup complete: %d of %d pages scraped, %d enriched, %d indexed\n",
		scraped, len(pages), casebot.CountEnriched(pages), n)
	return nil
}
