// Package trafilatura extracts the main text of a page with go-trafilatura.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/casebot"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements casebot.Extractor at compile time.
var _ casebot.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to keep only a page's main content.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the page title and main text.
func (e *Extractor) Extract(rawHTML string) (*casebot.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, casebot.Errorf(casebot.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, casebot.Errorf(casebot.EINVALID, "trafilatura: %v", err)
	}

	return &casebot.ExtractResult{
		Title: strings.TrimSpace(result.Metadata.Title),
		Text:  result.ContentText,
	}, nil
}
