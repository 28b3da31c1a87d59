package types

import "time"

// ScrapeRun summarizes one scrape of a single target keyword. Runs are
// ephemeral: reported in logs and command output, never stored.
type ScrapeRun struct {
	Keyword    string    `json:"keyword"`
	JobsFound  int       `json:"jobs_found"`
	Saved      int       `json:"saved"`
	Duplicates int       `json:"duplicates"`
	Errors     int       `json:"errors"`
	StartedAt  time.Time `json:"started_at"`
}
