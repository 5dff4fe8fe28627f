// Command relcalc evaluates tuple relational calculus queries from a built-in
// catalog against base relations loaded from YAML or SQLite.
package main

import (
	"fmt"
	"os"

	"github.com/jonlawlor/relcalc/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
