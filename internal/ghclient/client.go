// Package ghclient talks to the GitHub API on behalf of the scan. It adapts
// go-github repositories to the stale.Repo view the engine consumes.
package ghclient

import (
	"context"
	"fmt"
	"os"

	gh "github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// Client wraps the GitHub API client.
type Client struct {
	client *gh.Client
}

// NewClient creates a GitHub client using a personal access token. When
// enterpriseURL is non-empty the client targets that GitHub Enterprise
// instance instead of github.com.
func NewClient(ctx context.Context, token, enterpriseURL string) (*Client, error) {
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		return nil, fmt.Errorf("GitHub token not provided. Set GH_TOKEN or GITHUB_TOKEN")
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	// Wrap transport with rate limit handling
	tc.Transport = &rateLimitTransport{
		base: tc.Transport,
	}

	client := gh.NewClient(tc)
	if enterpriseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(enterpriseURL, enterpriseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid enterprise URL %q: %w", enterpriseURL, err)
		}
	}

	return &Client{client: client}, nil
}

// newClientWithGitHub wraps an existing go-github client. Used by tests to
// point at an httptest server.
func newClientWithGitHub(client *gh.Client) *Client {
	return &Client{client: client}
}

// AuthenticatedUser returns the authenticated user's login.
func (c *Client) AuthenticatedUser(ctx context.Context) (string, error) {
	user, _, err := c.client.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to get authenticated user: %w", err)
	}
	return user.GetLogin(), nil
}
