package stale

import (
	"context"
	"errors"
	"path"

	"github.com/croft/stalecheck/internal/log"
)

// exempt decides whether a repository is excluded from staleness
// evaluation. The rules run in a fixed order and the first match wins:
// name patterns first (topics are not fetched when a name matches), then
// topic membership. A topic lookup that 404s leaves the repository not
// exempt; some restricted or temporary forks have topics disabled.
func (e *Engine) exempt(ctx context.Context, repo Repo) bool {
	if matchName(repo.Name(), e.policy.ExemptRepos) {
		e.noticef("%s is exempt from stale repo check", repo.URL())
		return true
	}

	if len(e.policy.ExemptTopics) == 0 {
		return false
	}

	topics, err := repo.Topics(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			e.noticef("%s does not have topics enabled and may be a private temporary fork", repo.URL())
			return false
		}
		// Other topic failures also leave the repository in the scan;
		// exemption is a narrowing rule and should fail open.
		log.Warn("topic lookup failed", "repo", repo.URL(), "error", err)
		return false
	}

	exempt := make(map[string]struct{}, len(e.policy.ExemptTopics))
	for _, t := range e.policy.ExemptTopics {
		exempt[t] = struct{}{}
	}
	for _, t := range topics {
		if _, ok := exempt[t]; ok {
			e.noticef("%s is exempt from stale repo check", repo.URL())
			return true
		}
	}
	return false
}

// matchName reports whether name matches any of the shell glob patterns.
// Matching is case-sensitive; a malformed pattern matches nothing.
func matchName(name string, patterns []string) bool {
	for _, pattern := range patterns {
		ok, err := path.Match(pattern, name)
		if err != nil {
			log.Warn("malformed exempt pattern", "pattern", pattern, "error", err)
			continue
		}
		if ok {
			return true
		}
	}
	return false
}
