package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielolaszy/tracksync/internal/issues"
	"github.com/danielolaszy/tracksync/internal/ui"
)

// statusCmd reports the current sync mapping without mutating anything.
var statusCmd = &cobra.Command{
	Use:   "status <issues-file>",
	Short: "Show the sync state of each issue in a document",
	Long: `Display, for each issue in the document, whether it is mapped to a tracker
item and what status was last pushed. Nothing is contacted or modified.`,
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

		store, err := buildStore(cmd)
		if err != nil {
			return err
		}

		st, err := store.Load(docPath)
		if err != nil {
			return err
		}

		if len(st) == 0 {
			fmt.Println("  No sync state found. Run sync first.")
			return nil
		}

		for _, issue := range parsed {
			var synced string
			if entry, ok := st[issue.ID]; ok {
				synced = fmt.Sprintf("%s → %s  (last: %s)",
					ui.SyncedText.Render("synced"), entry.TrackerID, entry.LastStatus)
			} else {
				synced = ui.NotSyncedText.Render("not synced")
			}
			fmt.Printf("  %s: %s  [%s]\n", issue.ID, issue.Title, synced)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
