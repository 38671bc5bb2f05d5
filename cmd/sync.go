package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danielolaszy/tracksync/internal/issues"
	"github.com/danielolaszy/tracksync/internal/logging"
	syncengine "github.com/danielolaszy/tracksync/internal/sync"
	"github.com/danielolaszy/tracksync/internal/ui"
)

// syncCmd reconciles an issues document against the configured tracker.
var syncCmd = &cobra.Command{
	Use:   "sync <issues-file>",
	Short: "Push document changes to the configured tracker",
	Long: `Parse the issues document, compare it with the last known sync state, and
push the changes to the configured tracker: create new issues, update changed
statuses and descriptions, and archive issues removed from the document.

With --dry-run, every comparison is made and reported but nothing is pushed
and no state is saved.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docPath := args[0]

		dryRun, err := cmd.Flags().GetBool("dry-run")
		if err != nil {
			return err
		}

		if err := requireDocument(docPath); err != nil {
			return err
		}

		parsed, err := issues.ParseFile(docPath)
		if err != nil {
			return err
		}

		adapter, err := buildAdapter(cmd, docPath)
		if err != nil {
			return err
		}

		store, err := buildStore(cmd)
		if err != nil {
			return err
		}

		logging.Info("starting sync",
			"file", docPath,
			"issues", len(parsed),
			"dry_run", dryRun)

		fmt.Printf("\n  %s  ←  %s\n\n", ui.HeaderStyle.Render("tracksync"), docPath)

		reporter := ui.NewConsoleReporter(os.Stdout)
		engine := syncengine.NewEngine(adapter, store, reporter, dryRun)

		if _, err := engine.Sync(docPath, parsed); err != nil {
			return fmt.Errorf("sync aborted: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().Bool("dry-run", false, "report what would change without pushing anything")
}
