// Package rod implements amzncost.Fetcher with a headless Chrome browser,
// for product pages whose price is only present after rendering.
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/amzncost"
	amzhttp "github.com/fwojciec/amzncost/http"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout is the default timeout for a single page load.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements amzncost.Fetcher at compile time.
var _ amzncost.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation.
type Fetcher struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the timeout for a single page load.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}

	l := launcher.New().
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = l
	return f, nil
}

// Fetch validates url, loads it with the browser identity of the HTTP
// fetcher and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*amzncost.ProductPage, error) {
	if err := amzncost.ValidateProductURL(url); err != nil {
		return nil, err
	}
	if f.browser == nil {
		return nil, amzncost.Errorf(amzncost.EFETCH, "Failed to fetch Amazon page: browser not started")
	}

	html, err := f.render(ctx, url)
	if err != nil {
		return nil, amzncost.Wrapf(err, amzncost.EFETCH, "Failed to fetch Amazon page: %v", err)
	}
	return &amzncost.ProductPage{URL: url, HTML: html}, nil
}

func (f *Fetcher) render(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	// Set context for all subsequent operations
	page = page.Context(ctx)

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      amzhttp.UserAgent,
		AcceptLanguage: amzhttp.AcceptLanguage,
	}); err != nil {
		return "", err
	}

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	return page.HTML()
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	var err error
	if f.browser != nil {
		err = f.browser.Close()
		f.browser = nil
	}
	if f.launcher != nil {
		f.launcher.Kill()
		f.launcher = nil
	}
	return err
}
