package stale

import "testing"

func TestParseActivityMethod(t *testing.T) {
	tests := []struct {
		input   string
		want    ActivityMethod
		wantErr bool
	}{
		{input: "pushed", want: ActivityPushed},
		{input: "default_branch_updated", want: ActivityDefaultBranchUpdated},
		{input: "", wantErr: true},
		{input: "PUSHED", wantErr: true},
		{input: "cloned", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseActivityMethod(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseActivityMethod(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseActivityMethod(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseMetric(t *testing.T) {
	tests := []struct {
		input   string
		want    Metric
		wantErr bool
	}{
		{input: "release", want: MetricRelease},
		{input: "pr", want: MetricPR},
		{input: "stars", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMetric(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMetric(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMetric(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPolicyWantsMetric(t *testing.T) {
	p := Policy{Metrics: []Metric{MetricRelease}}
	if !p.WantsMetric(MetricRelease) {
		t.Error("WantsMetric(release) = false, want true")
	}
	if p.WantsMetric(MetricPR) {
		t.Error("WantsMetric(pr) = true, want false")
	}
}
