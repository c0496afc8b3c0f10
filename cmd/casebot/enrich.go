package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fwojciec/casebot"
	"github.com/fwojciec/casebot/enrich"
	"github.com/fwojciec/casebot/fs"
)

// Run executes the enrich command.
func (c *EnrichCmd) Run(deps *Dependencies) error {
	pages, err := loadCorpus(deps.Ctx, c.In, "scrape")
	if err != nil {
		return err
	}

	out := fs.NewCorpusStore(c.Out)
	if out.Exists() && !c.Force {
		previous, err := out.Load(deps.Ctx)
		if err != nil {
			return err
		}
		pages = keepEnrichments(pages, previous)
	}

	pages, err = enrichPages(deps, pages, c.Delay, c.Force)
	if err != nil {
		return err
	}

	if err := out.Save(deps.Ctx, pages); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Enriched %d of %d pages, saved to %s\n", casebot.CountEnriched(pages), len(pages), c.Out)
	return nil
}

func enrichPages(deps *Dependencies, pages []*casebot.Page, delay time.Duration, force bool) ([]*casebot.Page, error) {
	e := &enrich.Enricher{
		Completer: deps.Completer,
		Delay:     delay,
		Force:     force,
	}
	return e.EnrichAll(deps.Ctx, pages, enrichProgress(deps.Stdout, deps.Styles))
}

// keepEnrichments attaches the enrichments of previous to the successful
// pages with the same URL. Pages are copied, never modified.
func keepEnrichments(pages, previous []*casebot.Page) []*casebot.Page {
	byURL := make(map[string]*casebot.Enrichment, len(previous))
	for _, p := range previous {
		if p.Enrichment != nil {
			byURL[p.URL] = p.Enrichment
		}
	}

	out := make([]*casebot.Page, len(pages))
	for i, p := range pages {
		if en, ok := byURL[p.URL]; ok && p.OK() && p.Enrichment == nil {
			cp := *p
			cp.Enrichment = en
			p = &cp
		}
		out[i] = p
	}
	return out
}

func enrichProgress(w io.Writer, st *Styles) casebot.EnrichProgressFunc {
	return func(p casebot.EnrichProgress) {
		prefix := fmt.Sprintf("[%d/%d] %s", p.Completed, p.Total, p.URL)
		switch {
		case p.Skipped:
			fmt.Fprintln(w, prefix, st.Render(st.Muted, "skipped"))
		case p.Error != nil:
			fmt.Fprintln(w, prefix, st.Render(st.Error, "fallback used: "+errorText(p.Error)))
		default:
			fmt.Fprintln(w, prefix, st.Render(st.OK, "ok"))
		}
	}
}
