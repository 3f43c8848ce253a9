package ghclient

import (
	"context"
	"fmt"
	"net/http"
	"testing"
)

func TestNewClientRequiresToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")

	if _, err := NewClient(context.Background(), "", ""); err == nil {
		t.Error("NewClient() error = nil, want missing token failure")
	}
}

func TestNewClientTokenFallback(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "fallback-token")

	if _, err := NewClient(context.Background(), "", ""); err != nil {
		t.Errorf("NewClient() error = %v, want fallback to GITHUB_TOKEN", err)
	}
}

func TestNewClientRejectsBadEnterpriseURL(t *testing.T) {
	if _, err := NewClient(context.Background(), "token", "://not-a-url"); err == nil {
		t.Error("NewClient() error = nil, want invalid enterprise URL failure")
	}
}

func TestAuthenticatedUser(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"login":"octocat"}`)
	})

	c := newTestClient(t, mux)
	user, err := c.AuthenticatedUser(context.Background())
	if err != nil {
		t.Fatalf("AuthenticatedUser() error = %v", err)
	}
	if user != "octocat" {
		t.Errorf("AuthenticatedUser() = %q, want octocat", user)
	}
}
