package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Set at link time, e.g.
// -ldflags "-X github.com/sufield/identifiers/internal/cli.Version=v1.0.0".
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)

// VersionInfo contains detailed version and build information
type VersionInfo struct {
	Version    string `json:"version" yaml:"version"`
	CommitHash string `json:"commit_hash" yaml:"commit_hash"`
	BuildTime  string `json:"build_time" yaml:"build_time"`
	GoVersion  string `json:"go_version" yaml:"go_version"`
	GOOS       string `json:"os" yaml:"os"`
	GOARCH     string `json:"arch" yaml:"arch"`
}

// GetVersionInfo returns detailed version information
func GetVersionInfo() *VersionInfo {
	return &VersionInfo{
		Version:    Version,
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		GoVersion:  runtime.Version(),
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
	}
}

func newVersionCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display detailed version and build information for the identifiers CLI.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVersion(cmd, st.format)
		},
	}
}

func runVersion(cmd *cobra.Command, format string) error {
	info := GetVersionInfo()

	if format != FormatText {
		return writeStructured(cmd.OutOrStdout(), format, info)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Version: %s\n", info.Version)
	fmt.Fprintf(out, "Commit: %s\n", info.CommitHash)
	fmt.Fprintf(out, "Build Time: %s\n", info.BuildTime)
	fmt.Fprintf(out, "Go Version: %s\n", info.GoVersion)
	fmt.Fprintf(out, "OS/Arch: %s/%s\n", info.GOOS, info.GOARCH)
	return nil
}
