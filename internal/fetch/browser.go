package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// MinContentLength is the minimum HTML body length to consider a plain HTTP
// fetch usable. Shorter responses are almost certainly an SPA shell.
const MinContentLength = 500

// DefaultBrowserTimeout bounds a single headless rendering session.
const DefaultBrowserTimeout = 30 * time.Second

// ShouldUseBrowser returns true if the fetched HTML is too short,
// indicating the listing is rendered client-side.
func ShouldUseBrowser(html string) bool {
	return len(strings.TrimSpace(html)) < MinContentLength
}

// maybeRender upgrades a thin HTTP result to a browser-rendered one when the
// fetcher is configured for it. Rendering failures fall back to the HTTP
// result rather than failing the fetch.
func (f *Fetcher) maybeRender(ctx context.Context, result *Result) (*Result, error) {
	if !f.cfg.UseBrowser || !ShouldUseBrowser(result.HTML) {
		return result, nil
	}

	html, err := renderPage(ctx, result.URL, DefaultBrowserTimeout)
	if err != nil {
		f.log.Warn("browser rendering failed, keeping HTTP response",
			zap.String("url", result.URL), zap.Error(err))
		return result, nil
	}

	rendered := *result
	rendered.HTML = html
	return &rendered, nil
}

// renderPage loads url in a headless browser and returns the rendered HTML.
// Requires Chrome/Chromium to be installed on the system.
func renderPage(ctx context.Context, url string, timeout time.Duration) (string, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// Give client-side rendering a moment to populate the job cards
		chromedp.Sleep(3*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	return html, nil
}
