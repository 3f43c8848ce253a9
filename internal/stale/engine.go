package stale

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/croft/stalecheck/internal/log"
)

// Engine classifies repositories against a Policy. It consumes a RepoSource
// one repository at a time and performs at most a handful of lazy provider
// lookups per repository before moving on; there is no cross-repository
// state beyond the accumulating result slice.
type Engine struct {
	policy  Policy
	org     string
	now     func() time.Time
	metrics *metricsFetcher

	// noticeMu serializes notice writes; the metric lookups for one
	// repository run on separate goroutines and may both fail.
	noticeMu sync.Mutex
	notices  io.Writer

	// progress, when set, is called after each repository is examined.
	progress func(scanned, stale int)
}

// Option configures an Engine.
type Option func(*Engine)

// WithOrganization scopes the trailing summary notice to an organization
// name. An empty name leaves the summary unscoped.
func WithOrganization(name string) Option {
	return func(e *Engine) { e.org = name }
}

// WithNow overrides the clock. Classification is deterministic for a frozen
// clock, which the tests rely on.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithNotices redirects the human-readable notice lines (exemptions,
// per-repository classifications, the trailing summary). Defaults to stdout.
func WithNotices(w io.Writer) Option {
	return func(e *Engine) { e.notices = w }
}

// WithProgress registers a callback invoked after every repository with the
// running scanned and stale counts.
func WithProgress(fn func(scanned, stale int)) Option {
	return func(e *Engine) { e.progress = fn }
}

// NewEngine validates the policy and builds an engine. Policy errors are
// configuration errors and surface here, before any scan work.
func NewEngine(policy Policy, opts ...Option) (*Engine, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		policy:  policy,
		now:     time.Now,
		notices: os.Stdout,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.metrics = newMetricsFetcher(e.policy, e.now, e.noticef)
	return e, nil
}

// Classify evaluates every repository from the source in order and returns
// the results for those that crossed the inactivity threshold, preserving
// source order. A hard provider failure (listing error) aborts the run and
// returns no results; soft per-repository failures are recovered locally.
func (e *Engine) Classify(ctx context.Context, repos RepoSource) ([]Result, error) {
	var results []Result
	scanned := 0

	for {
		repo, ok, err := repos.Next(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing repositories: %w", err)
		}
		if !ok {
			break
		}
		scanned++

		if res, ok := e.classifyOne(ctx, repo); ok {
			results = append(results, res)
		}
		if e.progress != nil {
			e.progress(scanned, len(results))
		}
	}

	if e.org != "" {
		e.noticef("Found %d stale repos in %s", len(results), e.org)
	} else {
		e.noticef("Found %d stale repos", len(results))
	}
	return results, nil
}

// classifyOne runs the per-repository pipeline: archived gate, exemption
// gate, activity resolution, threshold test, metric enrichment.
func (e *Engine) classifyOne(ctx context.Context, repo Repo) (Result, bool) {
	// Archived repositories are never evaluated, not even for exemption
	// notices.
	if repo.Archived() {
		return Result{}, false
	}
	if e.exempt(ctx, repo) {
		return Result{}, false
	}

	active, ok := e.lastActive(ctx, repo)
	if !ok {
		return Result{}, false
	}

	daysInactive := e.daysSince(active)
	if daysInactive <= e.policy.ThresholdDays {
		return Result{}, false
	}

	res := Result{
		URL:            repo.URL(),
		DaysInactive:   daysInactive,
		LastActiveDate: active.UTC().Format("2006-01-02"),
		Visibility:     visibility(repo),
	}
	res.DaysSinceLastRelease, res.DaysSinceLastPR = e.metrics.fetch(ctx, repo)

	e.noticef("%s %d days inactive", repo.URL(), daysInactive)
	return res, true
}

// daysSince returns the whole number of days between t and now, in UTC.
func (e *Engine) daysSince(t time.Time) int {
	return int(e.now().UTC().Sub(t.UTC()).Hours() / 24)
}

func visibility(repo Repo) string {
	if repo.Private() {
		return VisibilityPrivate
	}
	return VisibilityPublic
}

func (e *Engine) noticef(format string, args ...any) {
	e.noticeMu.Lock()
	fmt.Fprintf(e.notices, format+"\n", args...)
	e.noticeMu.Unlock()
	log.Debug("notice", "text", fmt.Sprintf(format, args...))
}
