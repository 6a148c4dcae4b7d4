// Package cli provides the command-line interface for component identifiers.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/sufield/identifiers/internal/adapters/logging"
	"github.com/sufield/identifiers/internal/adapters/metrics"
	"github.com/sufield/identifiers/internal/config"
	"github.com/sufield/identifiers/pkg/correctness"
	"github.com/sufield/identifiers/pkg/intern"
)

// Output formats
const (
	FormatText       = "text"
	FormatJSON       = "json"
	FormatYAML       = "yaml"
	FormatPrometheus = "prometheus"
)

// state is shared by every subcommand of one root command.
type state struct {
	configFile string
	logLevel   string
	format     string

	cfg      *config.Configuration
	logger   *slog.Logger
	registry *prometheus.Registry
}

// NewRootCommand builds the identifiers command tree.
func NewRootCommand() *cobra.Command {
	st := &state{}

	rootCmd := &cobra.Command{
		Use:   "identifiers",
		Short: "Validate and inspect component identifiers",
		Long: `Validate and inspect component identifiers.

Component identifiers name the addressable parts of a message-driven system,
such as RiskEngine or ExecEngine. Use this CLI to check names against the
configured naming rules and to inspect the interning table.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: st.setup,
	}

	rootCmd.PersistentFlags().StringVarP(&st.configFile, "config", "c", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&st.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&st.format, "format", "f", FormatText, "Output format (text, json, yaml)")
	_ = rootCmd.MarkPersistentFlagFilename("config", "yaml", "yml")

	rootCmd.AddCommand(
		newCheckCmd(st),
		newStatsCmd(st),
		newVersionCmd(st),
		newManCmd(),
	)

	return rootCmd
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCommand().Execute()
}

func (st *state) setup(cmd *cobra.Command, _ []string) error {
	st.registry = prometheus.NewRegistry()
	internMetrics, err := metrics.NewInternMetrics(st.registry)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	intern.SetObserver(internMetrics)
	internMetrics.Sync(intern.Default().Stats())

	cfg, err := config.Load(st.configFile)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if st.logLevel != "" {
		cfg.Log.Level = st.logLevel
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	checker, err := cfg.Checker()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	correctness.SetDefault(checker)

	// Configured components were decoded before the rules were installed.
	for _, id := range cfg.Components {
		if err := correctness.Check(id.AsStr(), "components"); err != nil {
			return fmt.Errorf("%w: %v", ErrConfig, err)
		}
	}

	st.cfg = cfg
	st.logger = logger.With("command", cmd.Name())
	st.logger.Debug("configuration loaded",
		"config_file", st.configFile,
		"components", len(cfg.Components),
		"custom_rules", checker != nil)
	return nil
}
