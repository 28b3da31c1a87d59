// Package scheduler runs the recurring scrape loop. Each pass turns the
// most popular user skills into scrape targets, ingests the results, and
// purges postings past their retention window.
package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/jonathan/jobscout/internal/config"
	"github.com/jonathan/jobscout/internal/profile"
	"github.com/jonathan/jobscout/internal/scrape"
	"github.com/jonathan/jobscout/internal/store"
	"github.com/jonathan/jobscout/internal/types"
)

// JobScraper is the slice of *scrape.Scraper the scheduler needs.
type JobScraper interface {
	Scrape(ctx context.Context, query scrape.Query) ([]types.Posting, error)
}

// Scheduler wraps robfig/cron and manages the scrape loop.
type Scheduler struct {
	cron     *cron.Cron
	scraper  JobScraper
	store    store.Store
	provider profile.Provider
	cfg      *config.Config
	log      *zap.Logger
	spec     string

	running atomic.Bool
}

// New creates a Scheduler that fires every cfg.ScrapeIntervalHours hours.
func New(scraper JobScraper, st store.Store, provider profile.Provider,
	cfg *config.Config, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		cron:     cron.New(),
		scraper:  scraper,
		store:    st,
		provider: provider,
		cfg:      cfg,
		log:      log,
		spec:     fmt.Sprintf("@every %dh", cfg.ScrapeIntervalHours),
	}
}

// Start registers the cron entry and runs one pass immediately so the store
// is populated without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.RunPass(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to register scrape schedule: %w", err)
	}

	s.cron.Start()
	s.log.Info("scheduler started", zap.String("spec", s.spec))

	go s.RunPass(ctx)

	return nil
}

// Stop halts the cron loop. In-flight passes stop at their next context
// check once the caller cancels the context passed to Start.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info("scheduler stopped")
}

// RunPass executes one full scrape pass. At most one pass runs at a time;
// a tick that arrives while a pass is still running is dropped, not queued.
func (s *Scheduler) RunPass(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		s.log.Warn("scrape pass still running, skipping tick")
		return
	}
	defer s.running.Store(false)

	started := time.Now()
	s.log.Info("scrape pass started")

	demand, err := s.provider.TopSkills(ctx, s.cfg.TopSkills)
	if err != nil {
		s.log.Error("failed to aggregate skill demand", zap.Error(err))
		return
	}
	if len(demand) == 0 {
		s.log.Info("no user skills registered, nothing to scrape")
		return
	}

	for i, target := range demand {
		if ctx.Err() != nil {
			s.log.Info("scrape pass cancelled")
			return
		}
		if i > 0 {
			if err := sleep(ctx, s.cfg.TargetDelay()); err != nil {
				s.log.Info("scrape pass cancelled")
				return
			}
		}

		run := s.scrapeTarget(ctx, target.Skill, s.cfg.DefaultLocation)
		s.log.Info("scrape target finished",
			zap.String("keyword", run.Keyword),
			zap.Int("users", target.Users),
			zap.Int("found", run.JobsFound),
			zap.Int("saved", run.Saved),
			zap.Int("duplicates", run.Duplicates),
			zap.Int("errors", run.Errors))
	}

	s.purge(ctx)

	s.log.Info("scrape pass complete",
		zap.Int("targets", len(demand)),
		zap.Duration("elapsed", time.Since(started)))
}

// TriggerManual scrapes a single keyword outside the schedule. It shares
// the store and fetcher with scheduled passes, so politeness and dedup
// still apply.
func (s *Scheduler) TriggerManual(ctx context.Context, keyword, location string) (types.ScrapeRun, error) {
	if keyword == "" {
		return types.ScrapeRun{}, fmt.Errorf("keyword is required")
	}
	if location == "" {
		location = s.cfg.DefaultLocation
	}

	run := s.scrapeTarget(ctx, keyword, location)
	s.purge(ctx)

	return run, nil
}

// scrapeTarget runs one keyword through scrape and save. Failures are
// reported in the run, never propagated; one bad target must not stop a
// pass.
func (s *Scheduler) scrapeTarget(ctx context.Context, keyword, location string) types.ScrapeRun {
	run := types.ScrapeRun{Keyword: keyword, StartedAt: time.Now()}

	postings, err := s.scraper.Scrape(ctx, scrape.Query{Keywords: keyword, Location: location})
	if err != nil {
		s.log.Error("scrape target failed",
			zap.String("keyword", keyword), zap.Error(err))
		run.Errors++
		return run
	}
	run.JobsFound = len(postings)

	report, err := s.store.SaveMany(ctx, postings)
	if err != nil {
		s.log.Error("failed to save postings",
			zap.String("keyword", keyword), zap.Error(err))
		run.Errors++
		return run
	}
	run.Saved = report.Saved
	run.Duplicates = report.Duplicates
	run.Errors = report.Errors

	return run
}

func (s *Scheduler) purge(ctx context.Context) {
	purged, err := s.store.PurgeExpired(ctx)
	if err != nil {
		s.log.Error("failed to purge expired postings", zap.Error(err))
		return
	}
	if purged > 0 {
		s.log.Info("purged expired postings", zap.Int("count", purged))
	}
}

// sleep waits for d or until ctx is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
