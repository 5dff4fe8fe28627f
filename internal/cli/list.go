package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonlawlor/relcalc/internal/catalog"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List the queries in the catalog",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:  rootOpts.Format,
				Writer:  cmd.OutOrStdout(),
				Verbose: rootOpts.Verbose,
			}
			qs := catalog.All()
			if rootOpts.Format == "json" {
				return formatter.Success(qs)
			}
			return formatter.Success(listText(qs))
		},
	}

	return cmd
}

// listText renders one block per query: name and description, then the
// formula and the relations it reads.
func listText(qs []catalog.Query) string {
	var b strings.Builder
	for i, q := range qs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s: %s\n", q.Name, q.Description)
		fmt.Fprintf(&b, "  %s\n", q.Formula)
		fmt.Fprintf(&b, "  relations: %s\n", strings.Join(q.Relations, ", "))
	}
	return strings.TrimSuffix(b.String(), "\n")
}
