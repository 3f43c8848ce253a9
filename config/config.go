// Package config assembles the scan policy from config files, environment
// variables, and flags. The engine itself never reads ambient process
// state; everything funnels through the Policy value built here.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/croft/stalecheck/internal/stale"
)

// Config represents the application configuration.
type Config struct {
	Organization string `yaml:"organization,omitempty"`

	// InactiveDays is nil when no threshold has been configured; zero is a
	// valid threshold (every repo with any inactivity is stale).
	InactiveDays *int `yaml:"inactive_days,omitempty"`

	ActivityMethod    string   `yaml:"activity_method,omitempty"`
	ExemptRepos       []string `yaml:"exempt_repos,omitempty"`
	ExemptTopics      []string `yaml:"exempt_topics,omitempty"`
	AdditionalMetrics []string `yaml:"additional_metrics,omitempty"`

	DefaultFormat   string `yaml:"default_format,omitempty"`
	SkipEmptyReport *bool  `yaml:"skip_empty_reports,omitempty"`
	WorkflowSummary *bool  `yaml:"workflow_summary,omitempty"`
	EnterpriseURL   string `yaml:"enterprise_url,omitempty"`
}

// DefaultConfigDir returns the default config directory.
func DefaultConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".stalecheck"
	}
	return filepath.Join(configDir, "stalecheck")
}

// ConfigPath returns the path to the global config file.
func ConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// LocalConfigPath returns the path to the local config file in the current
// directory.
func LocalConfigPath() string {
	return ".stalecheck.yaml"
}

// Load loads the configuration. Precedence, lowest to highest: global YAML
// config, local .stalecheck.yaml, environment variables. A .env file in the
// working directory is loaded first so action-style invocations work
// without exporting anything.
func Load() (*Config, error) {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	cfg := &Config{DefaultFormat: "table"}

	for _, path := range []string{ConfigPath(), LocalConfigPath()} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		var layer Config
		if err := yaml.Unmarshal(data, &layer); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		cfg.merge(&layer)
	}

	cfg.applyEnv()

	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = "table"
	}
	if cfg.ActivityMethod == "" {
		cfg.ActivityMethod = string(stale.ActivityPushed)
	}
	return cfg, nil
}

// merge layers another config on top of c. Set values win; unset values
// preserve what is already there.
func (c *Config) merge(layer *Config) {
	if layer.Organization != "" {
		c.Organization = layer.Organization
	}
	if layer.InactiveDays != nil {
		c.InactiveDays = layer.InactiveDays
	}
	if layer.ActivityMethod != "" {
		c.ActivityMethod = layer.ActivityMethod
	}
	if len(layer.ExemptRepos) > 0 {
		c.ExemptRepos = layer.ExemptRepos
	}
	if len(layer.ExemptTopics) > 0 {
		c.ExemptTopics = layer.ExemptTopics
	}
	if len(layer.AdditionalMetrics) > 0 {
		c.AdditionalMetrics = layer.AdditionalMetrics
	}
	if layer.DefaultFormat != "" {
		c.DefaultFormat = layer.DefaultFormat
	}
	if layer.SkipEmptyReport != nil {
		c.SkipEmptyReport = layer.SkipEmptyReport
	}
	if layer.WorkflowSummary != nil {
		c.WorkflowSummary = layer.WorkflowSummary
	}
	if layer.EnterpriseURL != "" {
		c.EnterpriseURL = layer.EnterpriseURL
	}
}

// applyEnv overlays the environment variable contract used by the original
// action: ORGANIZATION, INACTIVE_DAYS, ACTIVITY_METHOD, EXEMPT_REPOS,
// EXEMPT_TOPICS, ADDITIONAL_METRICS, SKIP_EMPTY_REPORTS,
// WORKFLOW_SUMMARY_ENABLED, GH_ENTERPRISE_URL.
func (c *Config) applyEnv() {
	if v := os.Getenv("ORGANIZATION"); v != "" {
		c.Organization = v
	}
	if v, ok := getIntEnv("INACTIVE_DAYS"); ok {
		c.InactiveDays = &v
	}
	if v := os.Getenv("ACTIVITY_METHOD"); v != "" {
		c.ActivityMethod = strings.ToLower(v)
	}
	if v := os.Getenv("EXEMPT_REPOS"); v != "" {
		c.ExemptRepos = splitList(v)
	}
	if v := os.Getenv("EXEMPT_TOPICS"); v != "" {
		c.ExemptTopics = splitList(v)
	}
	if v := os.Getenv("ADDITIONAL_METRICS"); v != "" {
		c.AdditionalMetrics = splitList(v)
	}
	if v, ok := getBoolEnv("SKIP_EMPTY_REPORTS"); ok {
		c.SkipEmptyReport = &v
	}
	if v, ok := getBoolEnv("WORKFLOW_SUMMARY_ENABLED"); ok {
		c.WorkflowSummary = &v
	}
	if v := os.Getenv("GH_ENTERPRISE_URL"); v != "" {
		c.EnterpriseURL = v
	}
}

// Token returns the GitHub token. GH_TOKEN takes precedence over
// GITHUB_TOKEN; tokens are never stored in config files.
func (c *Config) Token() string {
	if t := os.Getenv("GH_TOKEN"); t != "" {
		return t
	}
	return os.Getenv("GITHUB_TOKEN")
}

// SkipEmpty reports whether file reports should be skipped when no stale
// repositories are found. Defaults to true.
func (c *Config) SkipEmpty() bool {
	if c.SkipEmptyReport == nil {
		return true
	}
	return *c.SkipEmptyReport
}

// WorkflowSummaryEnabled reports whether the markdown report should also be
// appended to the GitHub Actions step summary. Defaults to false.
func (c *Config) WorkflowSummaryEnabled() bool {
	return c.WorkflowSummary != nil && *c.WorkflowSummary
}

// Policy builds the immutable scan policy. Validation failures here are
// configuration errors and abort before any scan work.
func (c *Config) Policy() (stale.Policy, error) {
	if c.InactiveDays == nil {
		return stale.Policy{}, fmt.Errorf("inactivity threshold not set: provide INACTIVE_DAYS or --days")
	}
	if *c.InactiveDays < 0 {
		return stale.Policy{}, fmt.Errorf("inactivity threshold must be >= 0, got %d", *c.InactiveDays)
	}

	method, err := stale.ParseActivityMethod(c.ActivityMethod)
	if err != nil {
		return stale.Policy{}, err
	}

	metrics := make([]stale.Metric, 0, len(c.AdditionalMetrics))
	for _, name := range c.AdditionalMetrics {
		m, err := stale.ParseMetric(name)
		if err != nil {
			return stale.Policy{}, err
		}
		metrics = append(metrics, m)
	}

	return stale.Policy{
		ThresholdDays:  *c.InactiveDays,
		ExemptRepos:    c.ExemptRepos,
		ExemptTopics:   c.ExemptTopics,
		ActivityMethod: method,
		Metrics:        metrics,
	}, nil
}

// splitList parses a comma-separated env list, stripping spaces the way the
// original action does ("a, b,c " -> ["a","b","c"]).
func splitList(s string) []string {
	s = strings.ReplaceAll(s, " ", "")
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// getBoolEnv reads a boolean environment variable. ok is false when the
// variable is unset or blank; only the literal "true" (any case) is true.
func getBoolEnv(name string) (value, ok bool) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return false, false
	}
	return strings.EqualFold(v, "true"), true
}

// getIntEnv reads an integer environment variable. ok is false when the
// variable is unset, blank, or not an integer.
func getIntEnv(name string) (value int, ok bool) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Save writes the configuration to the global config file.
func (c *Config) Save() error {
	configDir := DefaultConfigDir()
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveTo writes content to a specific path, creating directories as needed.
func SaveTo(path string, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}

// MinimalConfig returns a commented starter config file.
func MinimalConfig() string {
	return `# stalecheck configuration file

# Organization to scan; leave unset to scan repos owned by the token's user.
# organization: my-org

# Days of inactivity before a repository is considered stale (required,
# can also come from the INACTIVE_DAYS environment variable).
inactive_days: 365

# Last-activity signal: pushed or default_branch_updated
activity_method: pushed

# Repositories exempt from the check (shell glob patterns, case-sensitive)
# exempt_repos:
#   - data-*
#   - archive-snapshot

# Topics that exempt a repository
# exempt_topics:
#   - keep-alive

# Supplemental metrics to attach: release, pr
# additional_metrics:
#   - release
#   - pr

# Output format: table, markdown, or json
default_format: table
`
}
