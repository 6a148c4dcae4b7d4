package cli

import (
	"fmt"

	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/sufield/identifiers/pkg/identifiers"
	"github.com/sufield/identifiers/pkg/intern"
)

// StatsReport describes the interning table after the requested names were
// interned.
type StatsReport struct {
	Components []identifiers.ComponentID `json:"components" yaml:"components"`
	Table      intern.Stats              `json:"table" yaml:"table"`
}

func newStatsCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [name]...",
		Short: "Show interning table statistics",
		Long: `Intern the configured components plus any names given as arguments and
report the interning table statistics.

Use --format prometheus to print the interning metrics in the Prometheus
text exposition format.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, st, args)
		},
	}
}

func runStats(cmd *cobra.Command, st *state, names []string) error {
	seen := make(map[identifiers.ComponentID]struct{}, len(st.cfg.Components)+len(names))
	components := make([]identifiers.ComponentID, 0, len(st.cfg.Components)+len(names))

	add := func(id identifiers.ComponentID) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		components = append(components, id)
	}

	for _, id := range st.cfg.Components {
		add(identifiers.NewComponentID(id.AsStr()))
	}
	for _, name := range names {
		id, err := identifiers.NewComponentIDChecked(name)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		add(id)
	}
	identifiers.Sort(components)

	report := StatsReport{
		Components: components,
		Table:      intern.Default().Stats(),
	}
	st.logger.Debug("interning table inspected", "distinct", report.Table.Distinct)

	switch st.format {
	case FormatText:
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Distinct strings: %d\n", report.Table.Distinct)
		fmt.Fprintf(out, "Hits: %d\n", report.Table.Hits)
		fmt.Fprintf(out, "Misses: %d\n", report.Table.Misses)
		fmt.Fprintf(out, "Components (%d):\n", len(report.Components))
		for _, id := range report.Components {
			fmt.Fprintf(out, "  %s\n", id)
		}
		return nil
	case FormatPrometheus:
		families, err := st.registry.Gather()
		if err != nil {
			return fmt.Errorf("%w: failed to gather metrics: %v", ErrInternal, err)
		}
		for _, mf := range families {
			if _, err := expfmt.MetricFamilyToText(cmd.OutOrStdout(), mf); err != nil {
				return fmt.Errorf("%w: failed to write metrics: %v", ErrInternal, err)
			}
		}
		return nil
	default:
		return writeStructured(cmd.OutOrStdout(), st.format, report)
	}
}
