package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobscout/internal/skills"
)

var resumeSkillsCmd = &cobra.Command{
	Use:   "resume-skills",
	Short: "Extract canonical skills from a resume text file",
	Long:  "Scan a plain-text resume against the skill lexicon and print each recognized skill with its category and an estimated proficiency.",
	RunE:  runResumeSkills,
}

var resumeFile string

func init() {
	resumeSkillsCmd.Flags().StringVarP(&resumeFile, "file", "f", "", "Path to plain-text resume (required)")

	if err := resumeSkillsCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	rootCmd.AddCommand(resumeSkillsCmd)
}

func runResumeSkills(_ *cobra.Command, _ []string) error {
	data, err := os.ReadFile(resumeFile)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	extraction := skills.Extract(string(data))
	if len(extraction.Skills) == 0 {
		fmt.Fprintln(os.Stdout, "No recognized skills found")
		return nil
	}

	for _, tag := range extraction.Tags() {
		fmt.Fprintf(os.Stdout, "%-20s %-15s proficiency %d/5\n",
			tag.Name, tag.Category, tag.Proficiency)
	}
	fmt.Fprintf(os.Stdout, "Confidence: %.2f (%d skills)\n",
		extraction.Confidence, len(extraction.Skills))

	return nil
}
