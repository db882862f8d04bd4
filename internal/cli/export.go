package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"mentor-ai/backend/internal/export"
	"mentor-ai/backend/internal/model"
)

func newExportCmd() *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export <conversation.json>",
		Short: "Render an exported conversation",
		Long: `Render a conversation exported as JSON in another format (md, yaml, html, json).

The result is written to stdout unless --output is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			var conv model.Conversation
			if err := json.Unmarshal(data, &conv); err != nil {
				return fmt.Errorf("%s is not a conversation export: %w", args[0], err)
			}
			exporter, err := export.NewExporter(format)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			return exporter.Export(&conv, w)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "md", "Output format: md, yaml, html or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}
