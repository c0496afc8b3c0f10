// Package readability extracts the main article text of a page with go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/casebot"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements casebot.Extractor at compile time.
var _ casebot.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to keep only a page's main content.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the article title and text.
func (e *Extractor) Extract(rawHTML string) (*casebot.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, casebot.Errorf(casebot.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, casebot.Errorf(casebot.EINVALID, "readability: %v", err)
	}

	return &casebot.ExtractResult{
		Title: strings.TrimSpace(article.Title),
		Text:  article.TextContent,
	}, nil
}
