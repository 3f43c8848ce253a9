// Package stale implements the stale-repository classification engine.
package stale

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Repo lookups when the underlying resource does
// not exist or is not visible to the token (topics on restricted forks,
// deleted default branches).
var ErrNotFound = errors.New("not found")

// ErrGhostUser is returned when a lookup fails because the associated user
// account no longer resolves (deleted release authors, orphaned committers).
var ErrGhostUser = errors.New("ghost user")

// Repo is the read-only view of a repository that the engine evaluates.
// The cheap accessors come from the listing payload; the context-taking
// lookups hit the provider lazily and may fail with ErrNotFound,
// ErrGhostUser, or a hard provider error.
type Repo interface {
	// URL returns the repository's HTML URL.
	URL() string

	// Name returns the bare repository name (no owner prefix).
	Name() string

	// Archived reports whether the repository is archived.
	Archived() bool

	// Private reports whether the repository is private. Repositories the
	// provider does not explicitly mark private are treated as public.
	Private() bool

	// PushedAt returns the last-push timestamp, or nil when the provider
	// has never recorded a push.
	PushedAt() *time.Time

	// DefaultBranch returns the name of the default branch.
	DefaultBranch() string

	// Topics returns the repository's topic set.
	Topics(ctx context.Context) ([]string, error)

	// DefaultBranchUpdatedAt returns the committer timestamp of the tip
	// commit on the default branch.
	DefaultBranchUpdatedAt(ctx context.Context) (time.Time, error)

	// LatestRelease returns the creation time of the most recent release,
	// or nil when the repository has no releases.
	LatestRelease(ctx context.Context) (*time.Time, error)

	// LatestPullRequest returns the creation time of the most recent pull
	// request across all states, or nil when there has never been one.
	LatestPullRequest(ctx context.Context) (*time.Time, error)
}

// RepoSource yields repositories one at a time in provider order. It is
// typically backed by a paginated listing; a page fetch failure surfaces as
// an error from Next and aborts the scan.
type RepoSource interface {
	// Next returns the next repository. ok is false once the source is
	// exhausted. A non-nil error is a hard provider failure.
	Next(ctx context.Context) (repo Repo, ok bool, err error)
}

// Repos adapts an in-memory slice to a RepoSource. Useful for tests and for
// callers that have already materialized the listing.
func Repos(repos ...Repo) RepoSource {
	return &sliceSource{repos: repos}
}

type sliceSource struct {
	repos []Repo
	next  int
}

func (s *sliceSource) Next(context.Context) (Repo, bool, error) {
	if s.next >= len(s.repos) {
		return nil, false, nil
	}
	r := s.repos[s.next]
	s.next++
	return r, true, nil
}
