package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/varexpand/pkg/varexpand"
	"github.com/randalmurphal/varexpand/pkg/varexpand/config"
	"github.com/randalmurphal/varexpand/pkg/varexpand/observability"
	"github.com/randalmurphal/varexpand/pkg/varexpand/store"
)

type expandOptions struct {
	vars         []string
	cfgPath      string
	templateName string
	stored       bool
	dbPath       string
	missing      string
	hash         string
}

func newExpandCmd(root *rootOptions) *cobra.Command {
	opts := expandOptions{dbPath: defaultDBPath}
	cmd := &cobra.Command{
		Use:   "expand [template]",
		Short: "Expand a template",
		Long: `Expand a template against variables given with --var or a config profile.

Without a template argument or --template, every line read from a
non-terminal stdin is expanded as its own template.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpand(cmd, root, opts, args)
		},
	}
	fs := cmd.Flags()
	fs.StringArrayVarP(&opts.vars, "var", "v", nil, "variable as key=value (repeatable)")
	fs.StringVarP(&opts.cfgPath, "config", "c", "", "profile yaml/json path")
	fs.StringVarP(&opts.templateName, "template", "t", "", "named template from the profile (or the store with --stored)")
	fs.BoolVar(&opts.stored, "stored", false, "look up --template in the template store")
	fs.StringVar(&opts.dbPath, "db", defaultDBPath, "template store path")
	fs.StringVar(&opts.missing, "missing", "", "unknown variable handling: empty|keep|error")
	fs.StringVar(&opts.hash, "hash", "", "hash for the H modifier: elf|xxhash")
	return cmd
}

func runExpand(cmd *cobra.Command, root *rootOptions, opts expandOptions, args []string) error {
	if len(args) > 0 && opts.templateName != "" {
		return errors.New("template argument and --template are mutually exclusive")
	}
	if opts.stored && opts.templateName == "" {
		return errors.New("--stored requires --template")
	}

	var profile config.Profile
	if opts.cfgPath != "" {
		var err error
		if profile, err = config.LoadProfile(opts.cfgPath); err != nil {
			return err
		}
	}

	table, err := buildTable(profile.Table, opts.vars)
	if err != nil {
		return err
	}

	missing := profile.MissingAction
	if opts.missing != "" {
		if missing, err = varexpand.ParseMissingAction(opts.missing); err != nil {
			return err
		}
	}
	hash := profile.HashFunc
	if opts.hash != "" {
		if hash, err = varexpand.ParseHashFunc(opts.hash); err != nil {
			return err
		}
	}

	logger := root.logger(cmd)
	exp := varexpand.NewExpander(
		varexpand.WithMissingAction(missing),
		varexpand.WithHashFunc(hash),
		varexpand.WithLogger(logger),
	)

	templates, err := resolveTemplates(cmd, opts, profile, args)
	if err != nil {
		observability.LogStoreError(logger, "load", opts.templateName, err)
		return err
	}

	out := cmd.OutOrStdout()
	for _, tmpl := range templates {
		result, err := exp.ExpandContext(cmd.Context(), tmpl, table)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, result)
	}
	return nil
}

// resolveTemplates picks the template source: the argument, a named
// template, or stdin lines.
func resolveTemplates(cmd *cobra.Command, opts expandOptions, profile config.Profile, args []string) ([]string, error) {
	switch {
	case len(args) == 1:
		return args, nil
	case opts.stored:
		s, err := store.NewSQLiteStore(opts.dbPath)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		tmpl, err := s.Load(opts.templateName)
		if err != nil {
			return nil, fmt.Errorf("template %q: %w", opts.templateName, err)
		}
		return []string{tmpl}, nil
	case opts.templateName != "":
		tmpl, ok := profile.Templates[opts.templateName]
		if !ok {
			return nil, fmt.Errorf("template %q: %w", opts.templateName, store.ErrNotFound)
		}
		return []string{tmpl}, nil
	}

	in := cmd.InOrStdin()
	if interactive(in) {
		return nil, errors.New("no template given (pass an argument, --template, or pipe templates on stdin)")
	}
	var templates []string
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		templates = append(templates, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return templates, nil
}

// buildTable layers --var flags over the profile table; flags win.
func buildTable(base varexpand.Table, flagVars []string) (varexpand.Table, error) {
	vars := make(map[string]string, len(flagVars))
	for _, kv := range flagVars {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --var %q (expect key=value)", kv)
		}
		vars[k] = v
	}
	overrides, err := varexpand.ParseTable(vars)
	if err != nil {
		return nil, err
	}
	// Lookup takes the first match, so overrides go in front.
	return append(overrides, base...), nil
}
