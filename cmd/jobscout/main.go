// Package main provides the entry point for the jobscout CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobscout",
	Short: "Job posting ingestion and matching",
	Long:  "Jobscout scrapes job boards politely, deduplicates postings into a store, tags them with canonical skills, and scores them against user profiles.",
}

var (
	configPath string
	flagJSON   bool
	flagDebug  bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to JSON config file")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json-logs", false, "Emit JSON logs instead of console output")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
