// Package scrape turns a list of case-study URLs into page records.
// Pages are fetched one at a time with a fixed delay between requests.
package scrape

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/casebot"
	"golang.org/x/time/rate"
)

// DefaultDelay is the pause between consecutive requests.
const DefaultDelay = 2 * time.Second

// Scraper fetches pages and reduces them to plain text records.
type Scraper struct {
	Fetcher   casebot.Fetcher
	Extractor casebot.Extractor

	// Delay is the minimum spacing between requests. Zero disables it.
	Delay time.Duration

	// MaxContentLength defaults to casebot.MaxContentLength.
	MaxContentLength int
}

// Scrape fetches a single URL. It never fails: fetch and extraction errors
// are recorded on the returned page.
func (s *Scraper) Scrape(ctx context.Context, url string) *casebot.Page {
	page, _ := s.scrape(ctx, url)
	return page
}

// scrape returns the page record together with the error it encodes.
func (s *Scraper) scrape(ctx context.Context, url string) (*casebot.Page, error) {
	html, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return failed(url, err), err
	}

	res, err := s.Extractor.Extract(html)
	if err != nil {
		return failed(url, err), err
	}

	limit := s.MaxContentLength
	if limit <= 0 {
		limit = casebot.MaxContentLength
	}

	return &casebot.Page{
		URL:     url,
		Title:   casebot.CollapseWhitespace(res.Title),
		Content: casebot.Truncate(casebot.CollapseWhitespace(res.Text), limit),
		Status:  casebot.PageSuccess,
	}, nil
}

// failed builds the error record for url.
func failed(url string, err error) *casebot.Page {
	msg := err.Error()
	var e *casebot.Error
	if errors.As(err, &e) {
		msg = e.Message
	}
	return &casebot.Page{
		URL:    url,
		Status: casebot.PageError,
		Error:  msg,
	}
}

// ScrapeAll scrapes urls in order. A failed URL is recorded and the batch
// moves on; only context cancellation stops it, in which case the pages
// scraped so far are returned with the context error.
func (s *Scraper) ScrapeAll(ctx context.Context, urls []string, progress casebot.FetchProgressFunc) ([]*casebot.Page, error) {
	limiter := newLimiter(s.Delay)

	pages := make([]*casebot.Page, 0, len(urls))
	for i, url := range urls {
		if err := limiter.Wait(ctx); err != nil {
			return pages, err
		}

		page, err := s.scrape(ctx, url)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return pages, ctxErr
		}
		pages = append(pages, page)

		if progress != nil {
			progress(casebot.FetchProgress{
				URL:       url,
				Completed: i + 1,
				Total:     len(urls),
				Error:     err,
			})
		}
	}
	return pages, nil
}

func newLimiter(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}
