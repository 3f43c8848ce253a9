package stale

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
)

// metricsFetcher resolves the supplemental metrics requested by the policy.
// Each metric is resolved independently and defaults to absent (nil) on any
// failure; a metrics failure never affects the repository's own inclusion.
type metricsFetcher struct {
	policy  Policy
	now     func() time.Time
	noticef func(format string, args ...any)
}

func newMetricsFetcher(policy Policy, now func() time.Time, noticef func(string, ...any)) *metricsFetcher {
	return &metricsFetcher{policy: policy, now: now, noticef: noticef}
}

// fetch returns the days-since-last-release and days-since-last-PR counts
// for the metrics the policy requests. Unrequested metrics stay nil. The two
// signals are independent, so they are fetched concurrently.
func (m *metricsFetcher) fetch(ctx context.Context, repo Repo) (release, pr *int) {
	wantRelease := m.policy.WantsMetric(MetricRelease)
	wantPR := m.policy.WantsMetric(MetricPR)
	if !wantRelease && !wantPR {
		return nil, nil
	}

	var g errgroup.Group
	if wantRelease {
		g.Go(func() error {
			release = m.daysSinceLastRelease(ctx, repo)
			return nil
		})
	}
	if wantPR {
		g.Go(func() error {
			pr = m.daysSinceLastPR(ctx, repo)
			return nil
		})
	}
	_ = g.Wait() // goroutines only report through the captured pointers
	return release, pr
}

func (m *metricsFetcher) daysSinceLastRelease(ctx context.Context, repo Repo) *int {
	created, err := repo.LatestRelease(ctx)
	if err != nil {
		if errors.Is(err, ErrGhostUser) {
			m.noticef("%s had an exception trying to get the last release. Potentially caused by ghost user.", repo.URL())
		} else {
			m.noticef("%s had an exception trying to get the last release: %v", repo.URL(), err)
		}
		return nil
	}
	if created == nil {
		return nil
	}
	return m.daysAgo(*created)
}

func (m *metricsFetcher) daysSinceLastPR(ctx context.Context, repo Repo) *int {
	created, err := repo.LatestPullRequest(ctx)
	if err != nil {
		m.noticef("%s had an exception trying to get the last PR: %v", repo.URL(), err)
		return nil
	}
	if created == nil {
		return nil
	}
	return m.daysAgo(*created)
}

func (m *metricsFetcher) daysAgo(t time.Time) *int {
	days := int(m.now().UTC().Sub(t.UTC()).Hours() / 24)
	return &days
}
