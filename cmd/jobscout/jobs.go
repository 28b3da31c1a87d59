package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobscout/internal/matching"
	"github.com/jonathan/jobscout/internal/types"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List stored postings",
	Long:  "Query live postings with optional filters. With --user, each posting also gets a 0-100 match score against that user's profile and results are ordered best match first.",
	RunE:  runJobs,
}

var (
	jobsKeyword   string
	jobsLocation  string
	jobsSkills    []string
	jobsRemote    bool
	jobsMinSalary int
	jobsMaxSalary int
	jobsPage      int
	jobsLimit     int
	jobsSortBy    string
	jobsUser      string
)

func init() {
	jobsCmd.Flags().StringVarP(&jobsKeyword, "keyword", "k", "", "Keyword over title, description, and skills")
	jobsCmd.Flags().StringVarP(&jobsLocation, "location", "l", "", "Location substring over city and state")
	jobsCmd.Flags().StringSliceVar(&jobsSkills, "skills", nil, "Match postings carrying any of these skills")
	jobsCmd.Flags().BoolVar(&jobsRemote, "remote", false, "Only remote postings")
	jobsCmd.Flags().IntVar(&jobsMinSalary, "min-salary", 0, "Minimum salary floor")
	jobsCmd.Flags().IntVar(&jobsMaxSalary, "max-salary", 0, "Maximum salary ceiling")
	jobsCmd.Flags().IntVar(&jobsPage, "page", 1, "Result page")
	jobsCmd.Flags().IntVar(&jobsLimit, "limit", 20, "Results per page")
	jobsCmd.Flags().StringVar(&jobsSortBy, "sort", "", "Sort key: title, company, scraped_at (default newest first)")
	jobsCmd.Flags().StringVarP(&jobsUser, "user", "u", "", "Score results against this user's profile")

	rootCmd.AddCommand(jobsCmd)
}

func runJobs(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	filters := types.Filters{
		Keywords:  jobsKeyword,
		Location:  jobsLocation,
		Skills:    jobsSkills,
		MinSalary: jobsMinSalary,
		MaxSalary: jobsMaxSalary,
		Page:      jobsPage,
		Limit:     jobsLimit,
		SortBy:    jobsSortBy,
	}
	if cmd.Flags().Changed("remote") {
		filters.Remote = &jobsRemote
	}

	result, err := a.store.Query(ctx, filters)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if jobsUser != "" {
		user, err := a.provider.Profile(ctx, jobsUser)
		if err != nil {
			return fmt.Errorf("failed to load user profile: %w", err)
		}
		for _, ranked := range matching.Rank(user, result.Items) {
			printPosting(&ranked.Posting, &ranked.Match)
		}
	} else {
		for i := range result.Items {
			printPosting(&result.Items[i], nil)
		}
	}

	fmt.Fprintf(os.Stdout, "Page %d of %d (%d total)\n",
		result.Page.Page, result.Page.Pages, result.Page.Total)
	return nil
}

func printPosting(p *types.Posting, match *types.MatchResult) {
	fmt.Fprintf(os.Stdout, "%s at %s", p.Title, p.Company)
	if match != nil {
		fmt.Fprintf(os.Stdout, " [match %d]", match.Overall)
	}
	fmt.Fprintln(os.Stdout)

	location := p.Location.City
	if p.Location.Remote {
		location = strings.TrimSpace("Remote " + location)
	}
	fmt.Fprintf(os.Stdout, "  %s", location)
	if p.Salary != nil {
		fmt.Fprintf(os.Stdout, " | %d-%d %s", p.Salary.Min, p.Salary.Max, p.Salary.Currency)
	}
	if len(p.Skills) > 0 {
		fmt.Fprintf(os.Stdout, " | %s", strings.Join(p.Skills, ", "))
	}
	fmt.Fprintf(os.Stdout, "\n  %s\n", p.Source.URL)
}
