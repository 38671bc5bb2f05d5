// Package cmd provides the command-line interface for the tracksync tool.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danielolaszy/tracksync/internal/config"
	"github.com/danielolaszy/tracksync/internal/state"
	"github.com/danielolaszy/tracksync/internal/tracker"

	// Tracker adapters register themselves on import.
	_ "github.com/danielolaszy/tracksync/internal/tracker/github"
	_ "github.com/danielolaszy/tracksync/internal/tracker/jira"
	_ "github.com/danielolaszy/tracksync/internal/tracker/monday"
)

var rootCmd = &cobra.Command{
	Use:   "tracksync",
	Short: "tracksync keeps .issues.md documents synchronized with a project tracker",
	Long: `tracksync is a one-way reconciler between human-authored .issues.md documents
and a remote project tracker (Monday.com, JIRA, GitHub Issues).

The document is the source of truth; the tracker is a reflection. Each run
parses the document, compares it with the last known sync state, and pushes
the minimal set of changes: new issues are created, status changes and edited
descriptions are updated, and issues removed from the document are archived.

Configuration lives in .sync-config.json; sync identity lives in
.sync-state.json, which should be committed alongside the documents.`,
	SilenceUsage: true,
}

// Execute runs the root command and returns any error for main to report.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultPath, "path to the sync configuration file")
	rootCmd.PersistentFlags().String("state", state.DefaultPath, "path to the sync state file")
}

// requireDocument fails when the issues document doesn't exist, before any
// configuration or remote work is attempted.
func requireDocument(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("issues file %s not found", path)
	}
	return nil
}

// buildAdapter loads configuration and constructs the configured tracker
// adapter. Configuration problems surface here, before any remote mutation.
func buildAdapter(cmd *cobra.Command, docPath string) (tracker.Adapter, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	adapter, err := tracker.New(cfg, docPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracker adapter: %w", err)
	}
	return adapter, nil
}

// buildStore returns the state store selected by the --state flag.
func buildStore(cmd *cobra.Command) (*state.Store, error) {
	statePath, err := cmd.Flags().GetString("state")
	if err != nil {
		return nil, err
	}
	return state.NewStore(statePath), nil
}
