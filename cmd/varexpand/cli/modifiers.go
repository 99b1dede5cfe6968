package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/varexpand/pkg/varexpand"
)

func newModifiersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modifiers",
		Short: "List the available modifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, m := range varexpand.Modifiers() {
				fmt.Fprintf(tw, "%c\t%s\n", m.Key, m.Name)
			}
			return tw.Flush()
		},
	}
}
