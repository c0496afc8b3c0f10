package casebot

import (
	"context"
	"time"
)

// MaxContentLength is the maximum number of characters kept from a page's text.
const MaxContentLength = 2000

// PageStatus reports whether a page was scraped successfully.
type PageStatus string

// PageStatus constants.
const (
	PageSuccess PageStatus = "success"
	PageError   PageStatus = "error"
)

// Page represents one scraped source, optionally carrying its enrichment.
type Page struct {
	URL        string      `json:"url"`
	Title      string      `json:"title"`
	Content    string      `json:"content"` // Plain text, at most MaxContentLength characters
	Status     PageStatus  `json:"status"`
	Error      string      `json:"error,omitempty"`
	Enrichment *Enrichment `json:"enriched,omitempty"`
}

// OK reports whether the page was scraped successfully.
func (p *Page) OK() bool {
	return p.Status == PageSuccess
}

// Validate returns an error if the page contains invalid fields.
func (p *Page) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	switch p.Status {
	case PageSuccess:
		if p.Error != "" {
			return Errorf(EINVALID, "page %q: error set on successful page", p.URL)
		}
	case PageError:
		if p.Error == "" {
			return Errorf(EINVALID, "page %q: error message required", p.URL)
		}
		if p.Enrichment != nil {
			return Errorf(EINVALID, "page %q: failed page cannot be enriched", p.URL)
		}
	default:
		return Errorf(EINVALID, "page %q: unknown status %q", p.URL, p.Status)
	}
	return nil
}

// Enrichment is structured metadata describing a page's business domain.
type Enrichment struct {
	Industry       string    `json:"industry"`
	SolutionType   string    `json:"solution_type"`
	Technologies   []string  `json:"technologies"`
	TargetAudience string    `json:"target_audience"`
	Company        string    `json:"company"`
	Keywords       []string  `json:"keywords"` // At most MaxKeywords
	Summary        string    `json:"summary"`
	CreatedAt      time.Time `json:"created_at"`
}

// MaxKeywords is the maximum number of keywords kept in an Enrichment.
const MaxKeywords = 3

// FetchProgress reports progress during page scraping.
type FetchProgress struct {
	URL       string
	Completed int
	Total     int
	Error     error
}

// FetchProgressFunc is called as pages are processed.
type FetchProgressFunc func(FetchProgress)

// EnrichProgress reports progress during page enrichment.
type EnrichProgress struct {
	URL       string
	Title     string
	Completed int
	Total     int

	// Skipped is set when the page was left untouched: it failed to scrape,
	// has no content, or was already enriched.
	Skipped bool

	// Error holds the model failure when the fallback enrichment was used.
	Error error
}

// EnrichProgressFunc is called as pages are enriched.
type EnrichProgressFunc func(EnrichProgress)

// CorpusStore persists an ordered page collection between pipeline stages.
type CorpusStore interface {
	// Load reads all pages in their stored order.
	// Returns ENOTFOUND if the corpus does not exist.
	Load(ctx context.Context) ([]*Page, error)

	// Save replaces the stored corpus with pages.
	Save(ctx context.Context, pages []*Page) error
}

// CountSuccessful returns the number of successfully scraped pages.
func CountSuccessful(pages []*Page) int {
	var n int
	for _, p := range pages {
		if p.OK() {
			n++
		}
	}
	return n
}

// CountEnriched returns the number of pages carrying an enrichment.
func CountEnriched(pages []*Page) int {
	var n int
	for _, p := range pages {
		if p.Enrichment != nil {
			n++
		}
	}
	return n
}
