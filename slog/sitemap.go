package slog

import (
	"context"
	"log/slog"
	"regexp"
	"time"

	"github.com/fwojciec/casebot"
)

var _ casebot.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService with logging of the site, the
// case link patterns in effect and the number of links found.
type LoggingSitemapService struct {
	next   casebot.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next casebot.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service and logs the result.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *casebot.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		attrs := []any{"site", baseURL, "links", len(urls)}
		if filter != nil {
			attrs = append(attrs, "include", patterns(filter.Include), "exclude", patterns(filter.Exclude))
		}
		logCall(ctx, s.logger, "discover links", begin, err, attrs...)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}

func patterns(res []*regexp.Regexp) []string {
	out := make([]string, 0, len(res))
	for _, re := range res {
		out = append(out, re.String())
	}
	return out
}
