package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jonlawlor/relcalc/internal/catalog"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	SourceOptions

	Domain string
	Start  int
	Count  int
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}
	defaults := catalog.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "run <query>",
		Short: "Evaluate a query from the catalog",
		Long: `Evaluate a calculus query from the catalog against base relations.

Every free variable ranges over the interpretation domain: either the
integers [start, start+count), or the active domain made of the values
that occur in the relations the query reads.  The result is a table for
queries with free variables, and true or false for closed formulas.

Example:
  relcalc run paid-income
  relcalc run unpaid-income --facts ./income.yaml --domain active
  relcalc run every-income-paid --db ./income.sqlite --start 0 --count 10`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return WrapExitError(ExitCommandError, "invalid arguments", err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, args[0], cmd)
		},
	}

	opts.SourceOptions.addFlags(cmd)
	cmd.Flags().StringVar(&opts.Domain, "domain", defaults.Domain, "interpretation domain (range|active)")
	cmd.Flags().IntVar(&opts.Start, "start", defaults.Start, "first integer of the range domain")
	cmd.Flags().IntVar(&opts.Count, "count", defaults.Count, "number of integers in the range domain")

	return cmd
}

func runQuery(opts *RunOptions, name string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	q, err := catalog.Lookup(name)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeUnknownQuery, "no such query", err)
	}

	b, err := opts.load(ctx)
	if err != nil {
		return loadFailure(formatter, err)
	}

	res, err := q.Run(b, catalog.Options{Domain: opts.Domain, Start: opts.Start, Count: opts.Count})
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidDomain) {
			return fail(formatter, ExitCommandError, ErrCodeInvalidFlags, "invalid flags", err)
		}
		return fail(formatter, ExitFailure, ErrCodeEvalFailed, "evaluation failed", err)
	}
	slog.Info("query evaluated", "query", q.Name, "tuples", len(res.Tuples))

	return formatter.Success(res)
}
