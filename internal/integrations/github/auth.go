package github

import (
	"context"
	"net/http"

	"github.com/google/go-github/v60/github"
	"golang.org/x/oauth2"
)

// NewClient creates a client for one repository using the provided token.
// If token is empty, the REST client is unauthenticated and the discussions
// listing is disabled (the GraphQL API requires a token).
func NewClient(ctx context.Context, owner, repo, token string) *Client {
	var tc *http.Client

	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		tc = oauth2.NewClient(ctx, ts)
	}

	return &Client{
		client:  github.NewClient(tc),
		graphql: NewGraphQLClient(nil, token),
		owner:   owner,
		repo:    repo,
		token:   token,
	}
}
