package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scrape scheduler until interrupted",
	Long:  "Start the recurring scrape loop: every interval, aggregate the most popular user skills, scrape a listing page per skill, save the postings, and purge expired ones.",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := a.sched.Start(ctx); err != nil {
			return err
		}
		<-ctx.Done()
		a.sched.Stop()
		return nil
	})

	a.log.Info("jobscout serving",
		zap.Int("interval_hours", a.cfg.ScrapeIntervalHours),
		zap.Int("top_skills", a.cfg.TopSkills))

	return group.Wait()
}
