package scrape

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/jobscout/internal/fetch"
	"github.com/jonathan/jobscout/internal/types"
)

// Scraper composes a source definition with a polite fetcher. The pipeline
// is always rate-limit, fetch, parse; sources contribute only data.
type Scraper struct {
	fetcher *fetch.Fetcher
	source  Source
	log     *zap.Logger
}

// NewScraper wires a scraper from its dependencies.
func NewScraper(fetcher *fetch.Fetcher, source Source, log *zap.Logger) *Scraper {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scraper{fetcher: fetcher, source: source, log: log}
}

// Source returns the source this scraper targets.
func (s *Scraper) Source() Source {
	return s.source
}

// Scrape fetches the listing page for query and extracts its postings.
// The fetcher enforces the politeness delay and retry policy.
func (s *Scraper) Scrape(ctx context.Context, query Query) ([]types.Posting, error) {
	searchURL := s.source.SearchURL(query)
	s.log.Info("scraping",
		zap.String("source", s.source.Name()),
		zap.String("url", searchURL))

	result, err := s.fetcher.Fetch(ctx, searchURL, s.source.Headers())
	if err != nil {
		return nil, err
	}

	postings, err := Parse(result.HTML, s.source)
	if err != nil {
		return nil, err
	}

	s.log.Info("scrape complete",
		zap.String("source", s.source.Name()),
		zap.Int("postings", len(postings)))

	return postings, nil
}
