// Package cli defines the command tree of the server binary.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mentor-ai/backend/internal/app"
)

var (
	version = "dev"
	commit  = "unknown"
)

// NewRootCmd builds the command tree. Running it without a subcommand starts
// the HTTP server.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "server",
		Short: "Mentor AI backend",
		Long: `Mentor AI backend: branching conversations with context compression,
file revision history and one API over OpenAI, Anthropic, OpenRouter and Ollama.

Quick Start:
  server                                   # Start the HTTP server
  server export chat.json --format md      # Render an exported conversation
  server models                            # Show the provider catalog
  server diff old.txt new.txt              # Line diff of two files`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	rootCmd.AddCommand(newServeCmd(), newExportCmd(), newModelsCmd(), newDiffCmd())
	return rootCmd
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long:  "Start the HTTP server. Configuration comes from a .env file and the environment.",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	if code := app.Run(); code != 0 {
		return fmt.Errorf("server exited with code %d", code)
	}
	return nil
}
