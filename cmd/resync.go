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

// resyncCmd re-pushes descriptions regardless of what changed.
var resyncCmd = &cobra.Command{
	Use:   "resync <issues-file>",
	Short: "Re-push every tracked issue's description to the tracker",
	Long: `Bypass change detection and push the current description of every tracked
issue to the tracker. Useful after fixing description formatting, or when the
tracker-side content drifted. Issues with no tracker mapping yet, and issues
with nothing to describe, are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docPath := args[0]

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

		logging.Info("starting description resync", "file", docPath, "issues", len(parsed))

		fmt.Printf("\n  %s  ←  %s\n\n", ui.HeaderStyle.Render("tracksync resync"), docPath)

		reporter := ui.NewConsoleReporter(os.Stdout)
		engine := syncengine.NewEngine(adapter, store, reporter, false)

		if _, err := engine.ResyncDescriptions(docPath, parsed); err != nil {
			return fmt.Errorf("resync aborted: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resyncCmd)
}
