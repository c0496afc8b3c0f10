package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fwojciec/casebot"
	"github.com/fwojciec/casebot/fs"
	"github.com/fwojciec/casebot/scrape"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	out := fs.NewCorpusStore(c.Out)
	if out.Exists() && !c.Force {
		return casebot.Errorf(casebot.EINVALID, "%s already exists. Use --force to scrape again", c.Out)
	}

	pages, err := scrapeLinks(deps, c.Links, c.Delay)
	if err != nil {
		return err
	}

	if err := out.Save(deps.Ctx, pages); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Scraped %d of %d pages, saved to %s\n", casebot.CountSuccessful(pages), len(pages), c.Out)
	return nil
}

// scrapeLinks scrapes every URL of the links file in order.
func scrapeLinks(deps *Dependencies, linksPath string, delay time.Duration) ([]*casebot.Page, error) {
	urls, err := fs.ReadLinks(linksPath)
	if err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		return nil, casebot.Errorf(casebot.EINVALID, "%s contains no URLs", linksPath)
	}

	fmt.Fprintf(deps.Stdout, "Scraping %d pages\n", len(urls))

	s := &scrape.Scraper{
		Fetcher:   deps.Fetcher,
		Extractor: deps.Extractor,
		Delay:     delay,
	}
	return s.ScrapeAll(deps.Ctx, urls, fetchProgress(deps.Stdout, deps.Styles))
}

func fetchProgress(w io.Writer, st *Styles) casebot.FetchProgressFunc {
	return func(p casebot.FetchProgress) {
		prefix := fmt.Sprintf("[%d/%d] %s", p.Completed, p.Total, p.URL)
		switch {
		case p.Error == nil:
			fmt.Fprintln(w, prefix, st.Render(st.OK, "ok"))
		case casebot.ErrorCode(p.Error) == casebot.EFORBIDDEN:
			fmt.Fprintln(w, prefix, st.Render(st.Error, "access denied (403), the site may block automated requests"))
		default:
			fmt.Fprintln(w, prefix, st.Render(st.Error, "error: "+errorText(p.Error)))
		}
	}
}

// loadCorpus loads a corpus file, naming the command that produces it
// when the file is missing.
func loadCorpus(ctx context.Context, path, producer string) ([]*casebot.Page, error) {
	pages, err := fs.NewCorpusStore(path).Load(ctx)
	if casebot.ErrorCode(err) == casebot.ENOTFOUND {
		return nil, casebot.Errorf(casebot.ENOTFOUND, "%s not found. Run 'casebot %s' first", path, producer)
	}
	return pages, err
}
