// Package cli implements the varexpand command tree.
package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const defaultDBPath = "varexpand.db"

// Run executes the command line with the process's standard streams.
func Run(args []string) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(os.Stdin)
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)
	return cmd.Execute()
}

type rootOptions struct {
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "varexpand",
		Short:         "Expand %-directive templates",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "log diagnostics as JSON to stderr")
	cmd.AddCommand(
		newExpandCmd(opts),
		newKeysCmd(),
		newModifiersCmd(),
		newStoreCmd(opts),
	)
	return cmd
}

// logger returns nil unless --verbose is set; the expander and the log
// helpers treat a nil logger as disabled.
func (o *rootOptions) logger(cmd *cobra.Command) *slog.Logger {
	if !o.verbose {
		return nil
	}
	return slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// interactive reports whether r is a terminal. Anything else (a pipe, a
// file, an in-memory reader) is treated as template input.
func interactive(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
