package cmd

import (
	"github.com/spf13/cobra"
)

// New creates the root command with all subcommands registered.
func New() *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:     "stalecheck",
		Version: buildInfo.version,
		Short:   "Find stale repositories in a GitHub organization",
		Long: `A CLI tool that scans the repositories of an organization (or of the
token's user) and reports the ones with no activity past a configurable
threshold, with optional release and pull request recency metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, opts)
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Add scan flags to root command so `stalecheck` and `stalecheck scan`
	// work identically
	addScanFlags(rootCmd, opts)

	// Register subcommands
	rootCmd.AddCommand(NewCmdScan(opts))
	rootCmd.AddCommand(NewCmdConfig())
	rootCmd.AddCommand(NewCmdVersion())

	return rootCmd
}
