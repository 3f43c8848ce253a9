package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/croft/stalecheck/config"
)

// NewCmdConfig creates the config command.
func NewCmdConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE:  runConfigShow,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		RunE:  runConfigInit,
	})

	return cmd
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Println("Configuration:")
	fmt.Printf("  Global config: %s\n", config.ConfigPath())
	fmt.Printf("  Local config:  %s\n", config.LocalConfigPath())
	if cfg.Organization != "" {
		fmt.Printf("  Organization: %s\n", cfg.Organization)
	} else {
		fmt.Println("  Organization: (unset - scans repos owned by the token's user)")
	}
	if cfg.InactiveDays != nil {
		fmt.Printf("  Inactive days: %d\n", *cfg.InactiveDays)
	} else {
		fmt.Println("  Inactive days: (unset)")
	}
	fmt.Printf("  Activity method: %s\n", cfg.ActivityMethod)
	if len(cfg.ExemptRepos) > 0 {
		fmt.Printf("  Exempt repos: %s\n", strings.Join(cfg.ExemptRepos, ", "))
	}
	if len(cfg.ExemptTopics) > 0 {
		fmt.Printf("  Exempt topics: %s\n", strings.Join(cfg.ExemptTopics, ", "))
	}
	if len(cfg.AdditionalMetrics) > 0 {
		fmt.Printf("  Additional metrics: %s\n", strings.Join(cfg.AdditionalMetrics, ", "))
	}
	fmt.Printf("  Default format: %s\n", cfg.DefaultFormat)

	if cfg.Token() != "" {
		fmt.Println("  GitHub token: (set via environment)")
	} else {
		fmt.Println("  GitHub token: (not set - set GH_TOKEN or GITHUB_TOKEN)")
	}

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.ConfigPath()
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := config.SaveTo(path, config.MinimalConfig()); err != nil {
		return err
	}
	fmt.Printf("Wrote starter config to %s\n", path)
	return nil
}
