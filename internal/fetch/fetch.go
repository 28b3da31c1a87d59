// Package fetch provides polite, retrying HTTP fetching for job board pages.
// Every fetcher instance enforces a minimum interval between outbound
// requests and retries transient failures with exponential backoff.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 10 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// DefaultMinInterval is the politeness delay between consecutive requests.
const DefaultMinInterval = 3 * time.Second

// DefaultMaxRetries is the number of attempts before a fetch is abandoned.
const DefaultMaxRetries = 2

// DefaultBackoffBase is the base for the exponential retry backoff
// (delay = 2^attempt * base).
const DefaultBackoffBase = time.Second

// Result holds the content retrieved from a URL.
type Result struct {
	URL         string
	HTML        string
	ContentType string
	StatusCode  int
}

// Options configures the outbound request behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Config holds the knobs for a Fetcher instance.
type Config struct {
	MinInterval time.Duration // politeness delay between requests
	MaxRetries  int           // total attempts, not additional retries
	BackoffBase time.Duration
	Options     *Options
	UseBrowser  bool // fall back to headless rendering for thin responses
}

// DefaultConfig returns the default fetcher configuration.
func DefaultConfig() *Config {
	return &Config{
		MinInterval: DefaultMinInterval,
		MaxRetries:  DefaultMaxRetries,
		BackoffBase: DefaultBackoffBase,
		Options:     DefaultOptions(),
	}
}

// Stats reports observability counters for a fetcher instance.
type Stats struct {
	Requests    int
	LastRequest time.Time
}

// Fetcher performs rate-limited, retrying HTTP GETs. Safe for concurrent
// use; the limiter serializes callers so the politeness delay holds across
// goroutines.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	cfg     *Config
	log     *zap.Logger

	mu          sync.Mutex
	requests    int
	lastRequest time.Time
}

// New constructs a Fetcher from cfg. A nil cfg or nil log uses defaults.
func New(cfg *Config, log *zap.Logger) *Fetcher {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Options == nil {
		cfg.Options = DefaultOptions()
	}
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = DefaultMinInterval
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = DefaultBackoffBase
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Fetcher{
		client:  &http.Client{Timeout: cfg.Options.Timeout},
		limiter: rate.NewLimiter(rate.Every(cfg.MinInterval), 1),
		cfg:     cfg,
		log:     log,
	}
}

// Fetch retrieves a URL, waiting out the politeness delay first and
// retrying transient failures. After the final attempt fails it returns a
// *Error wrapping the last underlying cause.
func (f *Fetcher) Fetch(ctx context.Context, urlStr string, headers map[string]string) (*Result, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{
			URL:     urlStr,
			Message: "invalid URL",
			Cause:   err,
		}
	}

	// Politeness delay. Wait is cancellable, so a shutting-down process is
	// never stuck waiting for its slot.
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, &Error{URL: urlStr, Message: "rate limit wait aborted", Cause: err}
	}

	f.recordRequest()

	var lastErr error
	for attempt := 1; attempt <= f.cfg.MaxRetries; attempt++ {
		result, err := f.do(ctx, urlStr, headers)
		if err == nil {
			return f.maybeRender(ctx, result)
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}

		if attempt < f.cfg.MaxRetries {
			delay := time.Duration(1<<uint(attempt)) * f.cfg.BackoffBase
			f.log.Debug("fetch retry",
				zap.String("url", urlStr),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay))
			if err := sleep(ctx, delay); err != nil {
				break
			}
		}
	}

	// A transient failure stays retryable for the caller; a cancelled
	// context means the caller is shutting down, not that the URL is bad.
	return nil, &Error{
		URL:       urlStr,
		Message:   fmt.Sprintf("giving up after %d attempts", f.cfg.MaxRetries),
		Cause:     lastErr,
		Retryable: ctx.Err() == nil,
	}
}

// do performs a single GET attempt.
func (f *Fetcher) do(ctx context.Context, urlStr string, headers map[string]string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.cfg.Options.UserAgent)
	for key, value := range f.cfg.Options.Headers {
		req.Header.Set(key, value)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP status %d", resp.StatusCode)
	}

	return &Result{
		URL:         urlStr,
		HTML:        string(bodyBytes),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}, nil
}

// Stats returns request counters for observability.
func (f *Fetcher) Stats() Stats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Stats{Requests: f.requests, LastRequest: f.lastRequest}
}

func (f *Fetcher) recordRequest() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests++
	f.lastRequest = time.Now()
}

// sleep waits for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
