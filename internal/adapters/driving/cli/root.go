// Package cli provides the cobra command tree for the cortex binary.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/cortex-kb/cortex/internal/logger"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "cortex",
	Short: "Local personal knowledge base backend",
	Long: `Cortex is a local-first personal knowledge base backend.

It stores saved webpages, notes, and files in a local SQLite database,
serves them to the desktop app over HTTP, and talks to a local Ollama
instance for embeddings and chat. Nothing leaves the machine.`,
	PersistentPreRun: func(*cobra.Command, []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
