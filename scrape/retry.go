package scrape

import (
	"context"
	"time"

	"github.com/fwojciec/casebot"
)

// Ensure RetryFetcher implements casebot.Fetcher at compile time.
var _ casebot.Fetcher = (*RetryFetcher)(nil)

// BackoffDelays returns n retry delays doubling from one second: 1s, 2s, 4s...
func BackoffDelays(n int) []time.Duration {
	delays := make([]time.Duration, n)
	d := time.Second
	for i := range delays {
		delays[i] = d
		d *= 2
	}
	return delays
}

// RetryFetcher retries failed fetches, waiting Delays[i] before retry i+1.
// Forbidden responses and context cancellation are returned immediately.
type RetryFetcher struct {
	Fetcher casebot.Fetcher
	Delays  []time.Duration

	// OnRetry, if set, is called before each retry with the failed attempt's error.
	OnRetry func(url string, attempt int, err error)
}

// Fetch returns the first successful result or the last error.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(f.Delays); attempt++ {
		html, err := f.Fetcher.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt == len(f.Delays) || casebot.ErrorCode(err) == casebot.EFORBIDDEN {
			break
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}

		if f.OnRetry != nil {
			f.OnRetry(url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.Delays[attempt]):
		}
	}
	return "", lastErr
}

// Close closes the wrapped fetcher.
func (f *RetryFetcher) Close() error {
	return f.Fetcher.Close()
}
