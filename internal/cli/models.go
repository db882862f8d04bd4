package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"mentor-ai/backend/internal/registry"
)

func newModelsCmd() *cobra.Command {
	var provider string

	cmd := &cobra.Command{
		Use:   "models",
		Short: "Show the provider catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PROVIDER\tMODEL\tCONTEXT\tINPUT/1K\tOUTPUT/1K")
			for _, m := range registry.Default().AllModels() {
				if provider != "" && string(m.Provider) != provider {
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", m.Provider, m.ID, m.ContextWindowTokens,
					m.CostPer1kTokens.Input.String(), m.CostPer1kTokens.Output.String())
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&provider, "provider", "p", "", "Only list models of this provider")
	return cmd
}
