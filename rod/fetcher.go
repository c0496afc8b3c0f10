package rod

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fwojciec/casebot"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements casebot.Fetcher at compile time.
var _ casebot.Fetcher = (*Fetcher)(nil)

// DefaultTimeout bounds a single page render, navigation included.
const DefaultTimeout = 30 * time.Second

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// It is meant for case pages whose text only appears after JavaScript runs.
type Fetcher struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-page render timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, casebot.Errorf(casebot.ECONFIG, "launching browser: %v", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, casebot.Errorf(casebot.ECONFIG, "connecting to browser: %v", err)
	}

	f := &Fetcher{browser: browser, launcher: l, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// LauncherPID returns the process ID of the launched browser.
func (f *Fetcher) LauncherPID() int {
	return f.launcher.PID()
}

// Fetch navigates to the URL and returns the rendered HTML.
//
// The status of the main document response is checked the same way the
// plain HTTP fetcher does: 403 is EFORBIDDEN, any other non-2xx is EFETCH.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("opening page: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx).Timeout(f.timeout)

	var resp proto.NetworkResponseReceived
	wait := page.WaitEvent(&resp)

	if err := page.Navigate(url); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", casebot.Errorf(casebot.EFETCH, "network error: %v", err)
	}
	wait()

	if resp.Response != nil {
		if err := checkStatus(resp.Response.Status); err != nil {
			return "", err
		}
	}

	if err := page.WaitLoad(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return "", casebot.Errorf(casebot.EFETCH, "network error: render timed out after %s", f.timeout)
		}
		return "", err
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("reading rendered html: %w", err)
	}
	return html, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusForbidden:
		return casebot.Errorf(casebot.EFORBIDDEN, "HTTP %d: %s", code, http.StatusText(code))
	case code < 200 || code > 299:
		return casebot.Errorf(casebot.EFETCH, "HTTP %d: %s", code, http.StatusText(code))
	}
	return nil
}

// Close releases browser resources and terminates the launched process.
func (f *Fetcher) Close() error {
	err := f.browser.Close()
	f.launcher.Kill()
	return err
}
