package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mentor-ai/backend/internal/diff"
)

func newDiffCmd() *cobra.Command {
	var statsOnly bool

	cmd := &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Line diff of two files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldContent, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			newContent, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[1], err)
			}

			lines := diff.Compare(string(oldContent), string(newContent))
			if !statsOnly {
				fmt.Fprint(cmd.OutOrStdout(), diff.Unified(lines))
			}
			stats := diff.Stats(lines)
			fmt.Fprintf(cmd.OutOrStdout(), "%d additions, %d deletions, %d modifications\n",
				stats.Additions, stats.Deletions, stats.Modifications)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&statsOnly, "stat", "s", false, "Print only the change counts")
	return cmd
}
