// Package enrich attaches structured business metadata to scraped pages
// using a language model, with a rule-based fallback when the model fails.
package enrich

import (
	"context"
	"time"

	"github.com/fwojciec/casebot"
	"golang.org/x/time/rate"
)

// DefaultDelay is the pause between consecutive model calls.
const DefaultDelay = time.Second

// Model parameters for enrichment calls.
const (
	MaxTokens   = 300
	Temperature = 0.3
)

// Outcome describes what Enrich did with a page.
type Outcome struct {
	// Skipped is set when the page was returned unchanged.
	Skipped bool

	// Err is the model or parse failure that was resolved by Fallback.
	Err error
}

// Enricher enriches pages through a Completer.
type Enricher struct {
	Completer casebot.Completer

	// Delay is the minimum spacing between model calls. Zero disables it.
	Delay time.Duration

	// Force re-enriches pages that already carry an Enrichment.
	Force bool

	// Now returns the enrichment timestamp. Defaults to time.Now.
	Now func() time.Time
}

// Enrich returns a copy of page with an Enrichment attached. Pages that
// failed to scrape, have no content, or are already enriched (unless Force
// is set) are returned unchanged. Model failures never surface as errors:
// the fallback enrichment is used and the failure reported in Outcome.
func (e *Enricher) Enrich(ctx context.Context, page *casebot.Page) (*casebot.Page, Outcome) {
	if !e.eligible(page) {
		return page, Outcome{Skipped: true}
	}

	enrichment, err := e.complete(ctx, page)
	if err != nil {
		enrichment = Fallback(page)
	}
	enrichment.CreatedAt = e.now()

	out := *page
	out.Enrichment = enrichment
	return &out, Outcome{Err: err}
}

func (e *Enricher) eligible(page *casebot.Page) bool {
	if !page.OK() || page.Content == "" {
		return false
	}
	return page.Enrichment == nil || e.Force
}

func (e *Enricher) complete(ctx context.Context, page *casebot.Page) (*casebot.Enrichment, error) {
	reply, err := e.Completer.Complete(ctx, BuildPrompt(page), casebot.CompletionOptions{
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
		JSON:        true,
	})
	if err != nil {
		return nil, casebot.Errorf(casebot.EENRICH, "model call failed: %v", err)
	}
	return Parse(reply)
}

func (e *Enricher) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// EnrichAll enriches pages in order, waiting Delay between model calls.
// Per-page failures never stop the batch; only context cancellation does,
// in which case the remaining pages are returned unchanged with the error.
func (e *Enricher) EnrichAll(ctx context.Context, pages []*casebot.Page, progress casebot.EnrichProgressFunc) ([]*casebot.Page, error) {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if e.Delay > 0 {
		limiter = rate.NewLimiter(rate.Every(e.Delay), 1)
	}

	out := make([]*casebot.Page, len(pages))
	copy(out, pages)

	for i, page := range pages {
		if e.eligible(page) {
			if err := limiter.Wait(ctx); err != nil {
				return out, err
			}
		}

		enriched, outcome := e.Enrich(ctx, page)
		if err := ctx.Err(); err != nil {
			return out, err
		}
		out[i] = enriched

		if progress != nil {
			progress(casebot.EnrichProgress{
				URL:       page.URL,
				Title:     page.Title,
				Completed: i + 1,
				Total:     len(pages),
				Skipped:   outcome.Skipped,
				Error:     outcome.Err,
			})
		}
	}
	return out, nil
}
