package ghclient

import (
	"context"
	"errors"
	"net/http"
	"time"

	gh "github.com/google/go-github/v57/github"

	"github.com/croft/stalecheck/internal/log"
	"github.com/croft/stalecheck/internal/stale"
)

// listPageSize is the page size for repository listings.
const listPageSize = 100

// Repositories returns a lazy, paginated source of the repositories to
// scan. With a non-empty org it lists the organization's repositories;
// otherwise it lists repositories owned by the token's user.
func (c *Client) Repositories(org string) stale.RepoSource {
	return &repoPager{client: c, org: org, page: 1}
}

// repoPager walks the paginated listing one page at a time, handing out one
// repository per Next call. Page fetches happen on demand so the engine's
// pull-based iteration stays lazy.
type repoPager struct {
	client *Client
	org    string

	buf  []*gh.Repository
	page int
	done bool
}

func (p *repoPager) Next(ctx context.Context) (stale.Repo, bool, error) {
	for len(p.buf) == 0 {
		if p.done {
			return nil, false, nil
		}
		if err := p.fetchPage(ctx); err != nil {
			return nil, false, err
		}
	}

	repo := p.buf[0]
	p.buf = p.buf[1:]
	return &repoSummary{client: p.client, repo: repo}, true, nil
}

func (p *repoPager) fetchPage(ctx context.Context) error {
	var (
		repos []*gh.Repository
		resp  *gh.Response
		err   error
	)
	if p.org != "" {
		opt := &gh.RepositoryListByOrgOptions{
			ListOptions: gh.ListOptions{PerPage: listPageSize, Page: p.page},
		}
		repos, resp, err = p.client.client.Repositories.ListByOrg(ctx, p.org, opt)
	} else {
		opt := &gh.RepositoryListOptions{
			Type:        "owner",
			ListOptions: gh.ListOptions{PerPage: listPageSize, Page: p.page},
		}
		repos, resp, err = p.client.client.Repositories.List(ctx, "", opt)
	}
	if err != nil {
		return err
	}

	log.Debug("fetched repository page", "page", p.page, "count", len(repos))
	p.buf = repos
	if resp.NextPage == 0 {
		p.done = true
	} else {
		p.page = resp.NextPage
	}
	return nil
}

// repoSummary adapts a go-github repository to the stale.Repo view. The
// listing payload covers the cheap accessors; the lookups issue one API
// call each.
type repoSummary struct {
	client *Client
	repo   *gh.Repository
}

var _ stale.Repo = (*repoSummary)(nil)

func (r *repoSummary) URL() string  { return r.repo.GetHTMLURL() }
func (r *repoSummary) Name() string { return r.repo.GetName() }

func (r *repoSummary) Archived() bool { return r.repo.GetArchived() }

// Private treats repositories without an explicit private flag as public.
func (r *repoSummary) Private() bool { return r.repo.GetPrivate() }

func (r *repoSummary) PushedAt() *time.Time {
	if r.repo.PushedAt == nil {
		return nil
	}
	t := r.repo.PushedAt.Time
	return &t
}

func (r *repoSummary) DefaultBranch() string { return r.repo.GetDefaultBranch() }

func (r *repoSummary) owner() string { return r.repo.GetOwner().GetLogin() }

func (r *repoSummary) Topics(ctx context.Context) ([]string, error) {
	topics, _, err := r.client.client.Repositories.ListAllTopics(ctx, r.owner(), r.Name())
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return topics, nil
}

func (r *repoSummary) DefaultBranchUpdatedAt(ctx context.Context) (time.Time, error) {
	commits, _, err := r.client.client.Repositories.ListCommits(ctx, r.owner(), r.Name(), &gh.CommitsListOptions{
		SHA:         r.DefaultBranch(),
		ListOptions: gh.ListOptions{PerPage: 1},
	})
	if err != nil {
		return time.Time{}, wrapNotFound(err)
	}
	if len(commits) == 0 {
		return time.Time{}, stale.ErrNotFound
	}

	committer := commits[0].GetCommit().GetCommitter()
	if committer == nil || committer.Date == nil {
		return time.Time{}, stale.ErrGhostUser
	}
	return committer.Date.Time, nil
}

func (r *repoSummary) LatestRelease(ctx context.Context) (*time.Time, error) {
	releases, _, err := r.client.client.Repositories.ListReleases(ctx, r.owner(), r.Name(), &gh.ListOptions{PerPage: 1})
	if err != nil {
		return nil, wrapNotFound(err)
	}
	if len(releases) == 0 {
		return nil, nil
	}

	rel := releases[0]
	// Releases whose author account was deleted come back without a
	// resolvable author; callers treat this like the upstream ghost-user
	// failure and record the metric as absent.
	if rel.GetAuthor() == nil || rel.CreatedAt == nil {
		return nil, stale.ErrGhostUser
	}
	t := rel.CreatedAt.Time
	return &t, nil
}

func (r *repoSummary) LatestPullRequest(ctx context.Context) (*time.Time, error) {
	prs, _, err := r.client.client.PullRequests.List(ctx, r.owner(), r.Name(), &gh.PullRequestListOptions{
		State:       "all",
		Sort:        "created",
		Direction:   "desc",
		ListOptions: gh.ListOptions{PerPage: 1},
	})
	if err != nil {
		return nil, wrapNotFound(err)
	}
	if len(prs) == 0 || prs[0].CreatedAt == nil {
		return nil, nil
	}
	t := prs[0].CreatedAt.Time
	return &t, nil
}

// wrapNotFound maps GitHub 404 responses onto the engine's typed
// soft-failure sentinel and passes everything else through.
func wrapNotFound(err error) error {
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound {
		return stale.ErrNotFound
	}
	return err
}
