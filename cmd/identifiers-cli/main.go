// identifiers-cli is the command-line interface for component identifiers.
//
// It validates component names against the configured naming rules and
// reports interning table statistics:
//   - identifiers-cli check <name>... [--keep-going]
//   - identifiers-cli stats [name]... [--format prometheus]
//   - identifiers-cli version
package main

import (
	"fmt"
	"os"

	"github.com/sufield/identifiers/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}
