// Package main is the entry point for the tracksync CLI.
package main

import (
	"fmt"
	"os"

	"github.com/danielolaszy/tracksync/cmd"
	"github.com/danielolaszy/tracksync/internal/logging"
)

// main executes the root command and exits non-zero on any unrecoverable error.
func main() {
	if err := cmd.Execute(); err != nil {
		logging.Error("command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
}
