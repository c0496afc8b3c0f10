package mock

import "github.com/fwojciec/casebot"

var _ casebot.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of casebot.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*casebot.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*casebot.ExtractResult, error) {
	return e.ExtractFn(html)
}
