package config

import (
	"testing"

	"github.com/croft/stalecheck/internal/stale"
)

func intPtr(v int) *int { return &v }

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "plain list", input: "a,b,c", want: []string{"a", "b", "c"}},
		{name: "spaces stripped", input: "a, b , c", want: []string{"a", "b", "c"}},
		{name: "single value", input: "solo", want: []string{"solo"}},
		{name: "trailing comma", input: "a,b,", want: []string{"a", "b"}},
		{name: "empty segments dropped", input: ",,a,,", want: []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitList(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("splitList(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("splitList(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestGetBoolEnv(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		wantValue bool
		wantOK    bool
	}{
		{name: "true", value: "true", wantValue: true, wantOK: true},
		{name: "mixed case true", value: "True", wantValue: true, wantOK: true},
		{name: "false", value: "false", wantValue: false, wantOK: true},
		{name: "anything else is false", value: "yes", wantValue: false, wantOK: true},
		{name: "blank is unset", value: "", wantOK: false},
		{name: "whitespace only is unset", value: "  ", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("STALECHECK_TEST_BOOL", tt.value)
			gotValue, gotOK := getBoolEnv("STALECHECK_TEST_BOOL")
			if gotOK != tt.wantOK {
				t.Fatalf("getBoolEnv ok = %v, want %v", gotOK, tt.wantOK)
			}
			if gotValue != tt.wantValue {
				t.Errorf("getBoolEnv value = %v, want %v", gotValue, tt.wantValue)
			}
		})
	}
}

func TestGetIntEnv(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		wantValue int
		wantOK    bool
	}{
		{name: "number", value: "365", wantValue: 365, wantOK: true},
		{name: "padded number", value: " 30 ", wantValue: 30, wantOK: true},
		{name: "not a number", value: "soon", wantOK: false},
		{name: "blank is unset", value: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("STALECHECK_TEST_INT", tt.value)
			gotValue, gotOK := getIntEnv("STALECHECK_TEST_INT")
			if gotOK != tt.wantOK {
				t.Fatalf("getIntEnv ok = %v, want %v", gotOK, tt.wantOK)
			}
			if gotValue != tt.wantValue {
				t.Errorf("getIntEnv value = %d, want %d", gotValue, tt.wantValue)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("ORGANIZATION", "testorg")
	t.Setenv("INACTIVE_DAYS", "90")
	t.Setenv("ACTIVITY_METHOD", "DEFAULT_BRANCH_UPDATED")
	t.Setenv("EXEMPT_REPOS", "archive-*, docs")
	t.Setenv("EXEMPT_TOPICS", "keep-alive")
	t.Setenv("ADDITIONAL_METRICS", "release, pr")
	t.Setenv("SKIP_EMPTY_REPORTS", "false")
	t.Setenv("WORKFLOW_SUMMARY_ENABLED", "true")
	t.Setenv("GH_ENTERPRISE_URL", "https://ghe.corp.example")

	cfg := &Config{Organization: "from-file", InactiveDays: intPtr(365)}
	cfg.applyEnv()

	if cfg.Organization != "testorg" {
		t.Errorf("Organization = %s, want testorg", cfg.Organization)
	}
	if cfg.InactiveDays == nil || *cfg.InactiveDays != 90 {
		t.Errorf("InactiveDays = %v, want 90", cfg.InactiveDays)
	}
	// Method names are lowercased to match the action's env contract.
	if cfg.ActivityMethod != "default_branch_updated" {
		t.Errorf("ActivityMethod = %s, want default_branch_updated", cfg.ActivityMethod)
	}
	if len(cfg.ExemptRepos) != 2 || cfg.ExemptRepos[0] != "archive-*" || cfg.ExemptRepos[1] != "docs" {
		t.Errorf("ExemptRepos = %v", cfg.ExemptRepos)
	}
	if len(cfg.ExemptTopics) != 1 || cfg.ExemptTopics[0] != "keep-alive" {
		t.Errorf("ExemptTopics = %v", cfg.ExemptTopics)
	}
	if len(cfg.AdditionalMetrics) != 2 {
		t.Errorf("AdditionalMetrics = %v", cfg.AdditionalMetrics)
	}
	if cfg.SkipEmpty() {
		t.Error("SkipEmpty() = true, want false after SKIP_EMPTY_REPORTS=false")
	}
	if !cfg.WorkflowSummaryEnabled() {
		t.Error("WorkflowSummaryEnabled() = false, want true")
	}
	if cfg.EnterpriseURL != "https://ghe.corp.example" {
		t.Errorf("EnterpriseURL = %s", cfg.EnterpriseURL)
	}
}

func TestApplyEnvZeroThreshold(t *testing.T) {
	t.Setenv("INACTIVE_DAYS", "0")

	cfg := &Config{ActivityMethod: "pushed"}
	cfg.applyEnv()

	if cfg.InactiveDays == nil || *cfg.InactiveDays != 0 {
		t.Fatalf("InactiveDays = %v, want 0", cfg.InactiveDays)
	}
	if _, err := cfg.Policy(); err != nil {
		t.Errorf("Policy() error = %v, INACTIVE_DAYS=0 should be accepted", err)
	}
}

func TestApplyEnvLeavesUnsetAlone(t *testing.T) {
	t.Setenv("ORGANIZATION", "")
	t.Setenv("INACTIVE_DAYS", "")
	t.Setenv("SKIP_EMPTY_REPORTS", "")

	cfg := &Config{Organization: "from-file", InactiveDays: intPtr(365)}
	cfg.applyEnv()

	if cfg.Organization != "from-file" {
		t.Errorf("Organization = %s, want from-file", cfg.Organization)
	}
	if cfg.InactiveDays == nil || *cfg.InactiveDays != 365 {
		t.Errorf("InactiveDays = %v, want 365", cfg.InactiveDays)
	}
	if cfg.SkipEmptyReport != nil {
		t.Errorf("SkipEmptyReport = %v, want nil", *cfg.SkipEmptyReport)
	}
}

func TestMerge(t *testing.T) {
	skip := false
	base := &Config{Organization: "base-org", InactiveDays: intPtr(365), DefaultFormat: "table"}
	base.merge(&Config{
		InactiveDays:    intPtr(90),
		ExemptTopics:    []string{"keep-alive"},
		SkipEmptyReport: &skip,
	})

	if base.Organization != "base-org" {
		t.Errorf("Organization = %s, unset layer value should not clear it", base.Organization)
	}
	if base.InactiveDays == nil || *base.InactiveDays != 90 {
		t.Errorf("InactiveDays = %v, want 90", base.InactiveDays)
	}
	if base.DefaultFormat != "table" {
		t.Errorf("DefaultFormat = %s, want table", base.DefaultFormat)
	}
	if len(base.ExemptTopics) != 1 {
		t.Errorf("ExemptTopics = %v", base.ExemptTopics)
	}
	if base.SkipEmptyReport == nil || *base.SkipEmptyReport {
		t.Error("SkipEmptyReport not layered")
	}
}

func TestToken(t *testing.T) {
	tests := []struct {
		name        string
		ghToken     string
		githubToken string
		want        string
	}{
		{name: "GH_TOKEN wins", ghToken: "gh", githubToken: "github", want: "gh"},
		{name: "falls back to GITHUB_TOKEN", ghToken: "", githubToken: "github", want: "github"},
		{name: "neither set", ghToken: "", githubToken: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GH_TOKEN", tt.ghToken)
			t.Setenv("GITHUB_TOKEN", tt.githubToken)
			if got := (&Config{}).Token(); got != tt.want {
				t.Errorf("Token() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSkipEmptyDefaults(t *testing.T) {
	if !(&Config{}).SkipEmpty() {
		t.Error("SkipEmpty() = false, want true by default")
	}
	if (&Config{}).WorkflowSummaryEnabled() {
		t.Error("WorkflowSummaryEnabled() = true, want false by default")
	}
}

func TestPolicy(t *testing.T) {
	t.Run("builds a valid policy", func(t *testing.T) {
		cfg := &Config{
			InactiveDays:      intPtr(365),
			ActivityMethod:    "pushed",
			ExemptRepos:       []string{"archive-*"},
			ExemptTopics:      []string{"keep-alive"},
			AdditionalMetrics: []string{"release", "pr"},
		}
		policy, err := cfg.Policy()
		if err != nil {
			t.Fatalf("Policy() error = %v", err)
		}
		if policy.ThresholdDays != 365 {
			t.Errorf("ThresholdDays = %d, want 365", policy.ThresholdDays)
		}
		if policy.ActivityMethod != stale.ActivityPushed {
			t.Errorf("ActivityMethod = %s", policy.ActivityMethod)
		}
		if len(policy.Metrics) != 2 || policy.Metrics[0] != stale.MetricRelease || policy.Metrics[1] != stale.MetricPR {
			t.Errorf("Metrics = %v", policy.Metrics)
		}
	})

	t.Run("zero threshold is a valid configuration", func(t *testing.T) {
		cfg := &Config{InactiveDays: intPtr(0), ActivityMethod: "pushed"}
		policy, err := cfg.Policy()
		if err != nil {
			t.Fatalf("Policy() error = %v", err)
		}
		if policy.ThresholdDays != 0 {
			t.Errorf("ThresholdDays = %d, want 0", policy.ThresholdDays)
		}
	})

	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "missing threshold", cfg: Config{ActivityMethod: "pushed"}},
		{name: "negative threshold", cfg: Config{InactiveDays: intPtr(-5), ActivityMethod: "pushed"}},
		{name: "bad activity method", cfg: Config{InactiveDays: intPtr(30), ActivityMethod: "cloned"}},
		{name: "bad metric", cfg: Config{InactiveDays: intPtr(30), ActivityMethod: "pushed", AdditionalMetrics: []string{"stars"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.cfg.Policy(); err == nil {
				t.Error("Policy() error = nil, want configuration error")
			}
		})
	}
}
