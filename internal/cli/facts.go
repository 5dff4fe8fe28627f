package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonlawlor/relcalc/internal/facts"
)

// SourceOptions names where facts are loaded from.  At most one of them may
// be set; with neither, the built-in income and payment facts are used.
type SourceOptions struct {
	Facts    string
	Database string
}

func (s *SourceOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.Facts, "facts", "", "path to a YAML fact file")
	cmd.Flags().StringVar(&s.Database, "db", "", "path to a SQLite fact database")
}

var errConflictingSources = errors.New("--facts and --db are mutually exclusive")

// load reads the fact base
func (s *SourceOptions) load(ctx context.Context) (*facts.Base, error) {
	switch {
	case s.Facts != "" && s.Database != "":
		return nil, errConflictingSources
	case s.Facts != "":
		slog.Info("loading facts", "path", s.Facts)
		return facts.LoadFile(s.Facts)
	case s.Database != "":
		slog.Info("loading facts", "db", s.Database)
		return facts.LoadDB(ctx, s.Database)
	}
	slog.Debug("no facts given, using the built-in example")
	return facts.Example(), nil
}

// loadFailure maps a load error to the CLI error it is reported as
func loadFailure(f *OutputFormatter, err error) error {
	if errors.Is(err, errConflictingSources) {
		return fail(f, ExitCommandError, ErrCodeInvalidFlags, "invalid flags", err)
	}
	return fail(f, ExitCommandError, ErrCodeLoadFailed, "failed to load facts", err)
}

// FactsOptions holds flags for the facts command.
type FactsOptions struct {
	*RootOptions
	SourceOptions

	// Save writes the loaded facts into a SQLite database
	Save string
	// Export writes the loaded facts into a YAML fact file
	Export string
}

// NewFactsCommand creates the facts command.
func NewFactsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FactsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "facts",
		Short: "Print the base relations",
		Long: `Load base relations and print their headings and sizes.

Example:
  relcalc facts --facts ./income.yaml
  relcalc facts --facts ./income.yaml --save ./income.sqlite
  relcalc facts --db ./income.sqlite --format json
  relcalc facts --db ./income.sqlite --export ./income.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFacts(opts, cmd)
		},
	}

	opts.SourceOptions.addFlags(cmd)
	cmd.Flags().StringVar(&opts.Save, "save", "", "write the facts into a SQLite database")
	cmd.Flags().StringVar(&opts.Export, "export", "", "write the facts into a YAML fact file")

	return cmd
}

func runFacts(opts *FactsOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	b, err := opts.load(ctx)
	if err != nil {
		return loadFailure(formatter, err)
	}

	if opts.Save != "" {
		if err := facts.SaveDB(ctx, opts.Save, b); err != nil {
			return fail(formatter, ExitCommandError, ErrCodeWriteFailed, "failed to save facts", err)
		}
		slog.Info("saved facts", "db", opts.Save, "relations", len(b.Relations))
	}
	if opts.Export != "" {
		if err := facts.SaveFile(opts.Export, b); err != nil {
			return fail(formatter, ExitCommandError, ErrCodeWriteFailed, "failed to export facts", err)
		}
		slog.Info("exported facts", "path", opts.Export, "relations", len(b.Relations))
	}

	if opts.Format == "json" {
		return formatter.Success(b)
	}
	return formatter.Success(factsText(b))
}

// factsText renders one line per relation, e.g. "bevetel(Date, Sum): 4 tuples"
func factsText(b *facts.Base) string {
	lines := make([]string, len(b.Relations))
	for i, r := range b.Relations {
		lines[i] = fmt.Sprintf("%s(%s): %d tuples", r.Name, strings.Join(r.Heading, ", "), len(r.Tuples))
	}
	return strings.Join(lines, "\n")
}
