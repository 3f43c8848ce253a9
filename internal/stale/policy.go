package stale

import (
	"fmt"
	"slices"
)

// ActivityMethod selects which timestamp counts as a repository's last
// activity.
type ActivityMethod string

const (
	// ActivityPushed uses the repository's raw last-push timestamp.
	ActivityPushed ActivityMethod = "pushed"

	// ActivityDefaultBranchUpdated uses the committer timestamp of the tip
	// commit on the default branch.
	ActivityDefaultBranchUpdated ActivityMethod = "default_branch_updated"
)

// ParseActivityMethod validates an activity method string.
func ParseActivityMethod(s string) (ActivityMethod, error) {
	switch ActivityMethod(s) {
	case ActivityPushed, ActivityDefaultBranchUpdated:
		return ActivityMethod(s), nil
	}
	return "", fmt.Errorf("unsupported activity method %q (allowed: %q, %q)",
		s, ActivityPushed, ActivityDefaultBranchUpdated)
}

// Metric identifies an optional supplemental metric attached to results.
type Metric string

const (
	// MetricRelease reports days since the most recent release.
	MetricRelease Metric = "release"

	// MetricPR reports days since the most recent pull request.
	MetricPR Metric = "pr"
)

// ParseMetric validates a supplemental metric name.
func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricRelease, MetricPR:
		return Metric(s), nil
	}
	return "", fmt.Errorf("unsupported metric %q (allowed: %q, %q)", s, MetricRelease, MetricPR)
}

// Policy is the immutable configuration for one classification run. It is
// assembled once at the boundary and passed by value into the engine; the
// engine never reads ambient process state.
type Policy struct {
	// ThresholdDays is the inactivity threshold. A repository is stale only
	// when its days-inactive count strictly exceeds this value.
	ThresholdDays int

	// ExemptRepos holds case-sensitive shell glob patterns (* and ?)
	// matched against repository names. A name match short-circuits the
	// topic check.
	ExemptRepos []string

	// ExemptTopics holds topic values that exempt a repository.
	ExemptTopics []string

	// ActivityMethod selects the last-activity signal.
	ActivityMethod ActivityMethod

	// Metrics lists the supplemental metrics to attach to each result.
	Metrics []Metric
}

// Validate reports configuration errors. It is called before any scan work
// begins so an unsupported method or negative threshold never fails
// per-repository.
func (p Policy) Validate() error {
	if p.ThresholdDays < 0 {
		return fmt.Errorf("inactivity threshold must be >= 0, got %d", p.ThresholdDays)
	}
	if _, err := ParseActivityMethod(string(p.ActivityMethod)); err != nil {
		return err
	}
	for _, m := range p.Metrics {
		if _, err := ParseMetric(string(m)); err != nil {
			return err
		}
	}
	return nil
}

// WantsMetric reports whether the policy requests the given metric.
func (p Policy) WantsMetric(m Metric) bool {
	return slices.Contains(p.Metrics, m)
}
