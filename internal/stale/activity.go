package stale

import (
	"context"
	"time"
)

// lastActive resolves the repository's last-activity timestamp according to
// the policy's activity method. ok is false when no timestamp is available;
// such repositories are silently skipped by the caller.
//
// The method itself was validated when the engine was built, so an unknown
// value here is unreachable.
func (e *Engine) lastActive(ctx context.Context, repo Repo) (time.Time, bool) {
	switch e.policy.ActivityMethod {
	case ActivityDefaultBranchUpdated:
		t, err := repo.DefaultBranchUpdatedAt(ctx)
		if err != nil {
			// Branch or commit resolution failures (including 404 and
			// ghost committers) make the activity unavailable rather
			// than aborting the scan.
			e.noticef("%s had an exception trying to get the activity date. Potentially caused by ghost user.", repo.URL())
			return time.Time{}, false
		}
		return t, true
	default: // ActivityPushed
		t := repo.PushedAt()
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	}
}
