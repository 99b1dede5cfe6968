package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/varexpand/pkg/varexpand/observability"
	"github.com/randalmurphal/varexpand/pkg/varexpand/store"
)

type storeOptions struct {
	dbPath string
}

func newStoreCmd(root *rootOptions) *cobra.Command {
	opts := &storeOptions{}
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage named templates",
	}
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", defaultDBPath, "template store path")
	cmd.AddCommand(
		&cobra.Command{
			Use:   "put <name> <template>",
			Short: "Save a named template",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(cmd, root, opts, "put", args[0], func(s store.Store) error {
					return s.Save(args[0], args[1])
				})
			},
		},
		&cobra.Command{
			Use:   "get <name>",
			Short: "Print a named template",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(cmd, root, opts, "get", args[0], func(s store.Store) error {
					tmpl, err := s.Load(args[0])
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), tmpl)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List named templates",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(cmd, root, opts, "list", "", func(s store.Store) error {
					infos, err := s.List()
					if err != nil {
						return err
					}
					tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
					fmt.Fprintln(tw, "NAME\tKEYS\tSIZE\tUPDATED\tID")
					for _, info := range infos {
						fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
							info.Name, info.Keys, info.Size, info.Updated.Format(time.RFC3339), info.ID)
					}
					return tw.Flush()
				})
			},
		},
		&cobra.Command{
			Use:   "delete <name>",
			Short: "Delete a named template",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(cmd, root, opts, "delete", args[0], func(s store.Store) error {
					return s.Delete(args[0])
				})
			},
		},
	)
	return cmd
}

func withStore(cmd *cobra.Command, root *rootOptions, opts *storeOptions, op, name string, fn func(store.Store) error) error {
	s, err := store.NewSQLiteStore(opts.dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := fn(s); err != nil {
		observability.LogStoreError(root.logger(cmd), op, name, err)
		return fmt.Errorf("store %s: %w", op, err)
	}
	return nil
}
