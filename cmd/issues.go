package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielolaszy/tracksync/internal/issues"
	"github.com/danielolaszy/tracksync/internal/ui"
	"github.com/danielolaszy/tracksync/pkg/models"
)

// issuesCmd groups the document-side utilities: querying and editing the
// .issues.md file itself, independent of any tracker.
var issuesCmd = &cobra.Command{
	Use:   "issues",
	Short: "Query and edit an .issues.md document",
}

// nextCmd prints the next eligible issue: the first Ready issue whose
// dependencies are all Done.
var nextCmd = &cobra.Command{
	Use:   "next <issues-file>",
	Short: "Print the next eligible issue (Ready with all dependencies Done)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parsed, err := issues.ParseFile(args[0])
		if err != nil {
			return err
		}

		next := issues.NextEligible(parsed)
		if next == nil {
			fmt.Println("NONE")
			return nil
		}

		fmt.Println(next.ID)
		fmt.Println(next.Title)
		return nil
	},
}

// detailCmd prints the full raw block of one issue.
var detailCmd = &cobra.Command{
	Use:   "detail <issues-file> <issue-id>",
	Short: "Print the full block of one issue",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		parsed, err := issues.ParseFile(args[0])
		if err != nil {
			return err
		}

		issue := issues.Find(parsed, args[1])
		if issue == nil {
			return fmt.Errorf("%s not found in %s", args[1], args[0])
		}

		fmt.Println(issue.RawBlock)
		return nil
	},
}

// summaryCmd prints a one-line-per-issue overview of the document.
var summaryCmd = &cobra.Command{
	Use:   "summary <issues-file>",
	Short: "Print a one-line summary per issue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parsed, err := issues.ParseFile(args[0])
		if err != nil {
			return err
		}

		for _, issue := range parsed {
			deps := "-"
			if len(issue.Dependencies) > 0 {
				deps = strings.Join(issue.Dependencies, ", ")
			}
			fmt.Printf("  [%s]  %s: %s  (deps: %s)\n",
				ui.RenderStatus(issue.Status), issue.ID, issue.Title, deps)
		}
		return nil
	},
}

// updateStatusCmd rewrites one issue's status field in-place.
var updateStatusCmd = &cobra.Command{
	Use:   "update-status <issues-file> <issue-id> <status>",
	Short: "Update an issue's status in the document",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		newStatus := models.Status(args[2])
		if !validStatus(newStatus) {
			return fmt.Errorf("invalid status %q (valid: Backlog, Ready, In Progress, In Review, Done)", args[2])
		}
		return issues.UpdateStatus(args[0], args[1], newStatus)
	},
}

// updateNotesCmd appends to one issue's dev-notes field in-place.
var updateNotesCmd = &cobra.Command{
	Use:   "update-notes <issues-file> <issue-id> <note>",
	Short: "Append to an issue's dev notes in the document",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return issues.AppendDevNotes(args[0], args[1], args[2])
	},
}

func validStatus(s models.Status) bool {
	switch s {
	case models.StatusBacklog, models.StatusReady, models.StatusInProgress,
		models.StatusInReview, models.StatusDone:
		return true
	}
	return false
}

func init() {
	issuesCmd.AddCommand(nextCmd)
	issuesCmd.AddCommand(detailCmd)
	issuesCmd.AddCommand(summaryCmd)
	issuesCmd.AddCommand(updateStatusCmd)
	issuesCmd.AddCommand(updateNotesCmd)
	rootCmd.AddCommand(issuesCmd)
}
