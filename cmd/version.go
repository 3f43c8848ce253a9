package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Build metadata, overridden via ldflags at release time.
var buildInfo = struct {
	version string
	commit  string
	date    string
}{
	version: "dev",
	commit:  "none",
	date:    "unknown",
}

// SetVersionInfo records build metadata (called from release builds).
func SetVersionInfo(version, commit, date string) {
	if version != "" {
		buildInfo.version = version
	}
	if commit != "" {
		buildInfo.commit = commit
	}
	if date != "" {
		buildInfo.date = date
	}
}

// NewCmdVersion creates the version command.
func NewCmdVersion() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Printf("stalecheck %s\n", buildInfo.version)
			fmt.Printf("  commit:   %s\n", buildInfo.commit)
			fmt.Printf("  built:    %s\n", buildInfo.date)
			fmt.Printf("  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			fmt.Printf("  go:       %s\n", runtime.Version())
		},
	}
}
