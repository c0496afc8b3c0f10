package mock

import (
	"context"

	"github.com/fwojciec/casebot"
)

var _ casebot.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of casebot.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *casebot.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *casebot.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
