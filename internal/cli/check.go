package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sufield/identifiers/pkg/identifiers"
)

// CheckResult is the outcome of validating one name.
type CheckResult struct {
	Input   string `json:"input" yaml:"input"`
	Valid   bool   `json:"valid" yaml:"valid"`
	Display string `json:"display,omitempty" yaml:"display,omitempty"`
	Debug   string `json:"debug,omitempty" yaml:"debug,omitempty"`
	Hash    string `json:"hash,omitempty" yaml:"hash,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

func newCheckCmd(st *state) *cobra.Command {
	var keepGoing bool

	cmd := &cobra.Command{
		Use:   "check <name>...",
		Short: "Validate component names",
		Long: `Validate component names against the configured naming rules.

Each valid name is printed with its display form, its debug form and its
content hash. Checking stops at the first invalid name unless --keep-going
is set.`,
		Example: `  identifiers check RiskEngine ExecEngine
  identifiers check --config rules.yaml --keep-going "" RiskEngine
  identifiers check --format json RiskEngine`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("%w: at least one name is required", ErrUsage)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, st, args, keepGoing)
		},
	}

	cmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", false, "Check every name even after a failure")

	return cmd
}

func runCheck(cmd *cobra.Command, st *state, names []string, keepGoing bool) error {
	results := make([]CheckResult, 0, len(names))
	rejected := 0

	for _, name := range names {
		id, err := identifiers.NewComponentIDChecked(name)
		if err != nil {
			rejected++
			st.logger.Debug("name rejected", "input", name, "error", err)
			results = append(results, CheckResult{Input: name, Error: err.Error()})
			if !keepGoing {
				break
			}
			continue
		}

		st.logger.Debug("name accepted", "component", id)
		results = append(results, CheckResult{
			Input:   name,
			Valid:   true,
			Display: id.String(),
			Debug:   id.GoString(),
			Hash:    fmt.Sprintf("%016x", id.Hash()),
		})
	}

	if err := renderCheckResults(cmd, st.format, results); err != nil {
		return err
	}

	if rejected > 0 {
		return fmt.Errorf("%w: %d of %d names rejected", ErrInvalid, rejected, len(names))
	}
	return nil
}

func renderCheckResults(cmd *cobra.Command, format string, results []CheckResult) error {
	if format != FormatText {
		return writeStructured(cmd.OutOrStdout(), format, results)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, r := range results {
		if r.Valid {
			fmt.Fprintf(tw, "VALID\t%s\t%s\t%s\n", r.Display, r.Debug, r.Hash)
		} else {
			fmt.Fprintf(tw, "INVALID\t%q\t%s\t\n", r.Input, r.Error)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("%w: failed to write output: %v", ErrInternal, err)
	}
	return nil
}
