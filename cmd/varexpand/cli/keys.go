package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/varexpand/pkg/varexpand"
)

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys <template>",
		Short: "List the variable keys a template references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, k := range varexpand.Keys(args[0]) {
				fmt.Fprintf(out, "%c\n", k)
			}
			return nil
		},
	}
}
