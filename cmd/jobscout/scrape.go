package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape one keyword immediately",
	Long:  "Run a single scrape target outside the schedule and report how many postings were found, saved, and deduplicated.",
	RunE:  runScrape,
}

var (
	scrapeKeyword  string
	scrapeLocation string
)

func init() {
	scrapeCmd.Flags().StringVarP(&scrapeKeyword, "keyword", "k", "", "Search keyword (required)")
	scrapeCmd.Flags().StringVarP(&scrapeLocation, "location", "l", "", "Search location (default from config)")

	if err := scrapeCmd.MarkFlagRequired("keyword"); err != nil {
		panic(fmt.Sprintf("failed to mark keyword flag as required: %v", err))
	}

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	run, err := a.sched.TriggerManual(ctx, scrapeKeyword, scrapeLocation)
	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Scraped %q: %d found, %d saved, %d duplicates, %d errors\n",
		run.Keyword, run.JobsFound, run.Saved, run.Duplicates, run.Errors)

	return nil
}
