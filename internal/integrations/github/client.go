// Package github wraps the GitHub REST and GraphQL APIs for one repository:
// listing issues, pull requests and discussions on the source side and
// creating report issues on the target side.
package github

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/go-github/v60/github"

	"github.com/YoWuwuuuw/github-repo-report-bot/internal/core/model"
)

const perPage = 100

// Client wraps the GitHub API clients for a single owner/repo.
type Client struct {
	client  *github.Client
	graphql *GraphQLClient
	owner   string
	repo    string
	token   string
}

// Repo returns the owner/repo this client talks to.
func (c *Client) Repo() string {
	return c.owner + "/" + c.repo
}

// ListIssues fetches up to maxCount issues, newest activity first. The
// issues endpoint also returns pull requests; those are filtered out.
// A zero since lists without a time filter.
func (c *Client) ListIssues(ctx context.Context, state string, since time.Time, maxCount int) ([]model.Issue, error) {
	opts := &github.IssueListByRepoOptions{
		State:       state,
		ListOptions: github.ListOptions{PerPage: perPage, Page: 1},
	}
	if !since.IsZero() {
		opts.Since = since
	}

	var all []model.Issue
	for len(all) < maxCount {
		issues, _, err := c.client.Issues.ListByRepo(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list issues: %w", err)
		}
		if len(issues) == 0 {
			break
		}

		for _, issue := range issues {
			if issue.IsPullRequest() {
				continue
			}
			all = append(all, convertIssue(issue))
			if len(all) == maxCount {
				break
			}
		}

		if len(issues) < perPage {
			break
		}
		opts.Page++
	}

	return all, nil
}

// ListPullRequests fetches up to maxCount pull requests, newest first.
func (c *Client) ListPullRequests(ctx context.Context, state string, maxCount int) ([]model.PullRequest, error) {
	opts := &github.PullRequestListOptions{
		State:       state,
		ListOptions: github.ListOptions{PerPage: perPage, Page: 1},
	}

	var all []model.PullRequest
	for len(all) < maxCount {
		prs, _, err := c.client.PullRequests.List(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list pull requests: %w", err)
		}
		if len(prs) == 0 {
			break
		}

		for _, pr := range prs {
			all = append(all, convertPullRequest(pr))
			if len(all) == maxCount {
				break
			}
		}

		if len(prs) < perPage {
			break
		}
		opts.Page++
	}

	return all, nil
}

// PullRequestDetail fetches a single pull request with its change counters
// and the full file listing merged in.
func (c *Client) PullRequestDetail(ctx context.Context, number int) (*model.PullRequest, error) {
	pr, _, err := c.client.PullRequests.Get(ctx, c.owner, c.repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch PR #%d: %w", number, err)
	}

	detail := convertPullRequest(pr)

	fileOpts := &github.ListOptions{PerPage: perPage}
	for {
		files, resp, err := c.client.PullRequests.ListFiles(ctx, c.owner, c.repo, number, fileOpts)
		if err != nil {
			return nil, fmt.Errorf("failed to list files of PR #%d: %w", number, err)
		}
		for _, f := range files {
			detail.Files = append(detail.Files, model.ChangedFile{
				Filename:  f.GetFilename(),
				Status:    f.GetStatus(),
				Additions: f.GetAdditions(),
				Deletions: f.GetDeletions(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		fileOpts.Page = resp.NextPage
	}

	return &detail, nil
}

// CreateIssue creates a new issue with the given labels. Labels that the
// create call silently drops are added with a follow-up call; a failure
// there leaves the issue in place without labels.
func (c *Client) CreateIssue(ctx context.Context, title, body string, labels []string) (int, error) {
	if c.token == "" {
		return 0, fmt.Errorf("a token is required to create issues")
	}

	valid := make([]string, 0, len(labels))
	for _, l := range labels {
		if strings.TrimSpace(l) != "" {
			valid = append(valid, l)
		}
	}

	req := &github.IssueRequest{
		Title: github.String(title),
		Body:  github.String(body),
	}
	if len(valid) > 0 {
		req.Labels = &valid
	}

	issue, _, err := c.client.Issues.Create(ctx, c.owner, c.repo, req)
	if err != nil {
		return 0, fmt.Errorf("failed to create issue: %w", err)
	}
	number := issue.GetNumber()

	if len(valid) > 0 && number != 0 {
		applied := make(map[string]bool, len(issue.Labels))
		for _, l := range issue.Labels {
			applied[l.GetName()] = true
		}
		var missing []string
		for _, l := range valid {
			if !applied[l] {
				missing = append(missing, l)
			}
		}
		if len(missing) > 0 {
			if _, _, err := c.client.Issues.AddLabelsToIssue(ctx, c.owner, c.repo, number, missing); err != nil {
				return number, fmt.Errorf("issue #%d created but labels not applied: %w", number, err)
			}
		}
	}

	return number, nil
}

func convertIssue(issue *github.Issue) model.Issue {
	assignees := make([]string, 0, len(issue.Assignees))
	for _, a := range issue.Assignees {
		assignees = append(assignees, a.GetLogin())
	}

	return model.Issue{
		Number:    issue.GetNumber(),
		Title:     issue.GetTitle(),
		Body:      issue.GetBody(),
		State:     issue.GetState(),
		Labels:    labelNames(issue.Labels),
		CreatedAt: timestampString(issue.CreatedAt),
		UpdatedAt: timestampString(issue.UpdatedAt),
		ClosedAt:  timestampString(issue.ClosedAt),
		Author:    issue.GetUser().GetLogin(),
		Assignees: assignees,
		Comments:  issue.GetComments(),
	}
}

func convertPullRequest(pr *github.PullRequest) model.PullRequest {
	return model.PullRequest{
		Number:         pr.GetNumber(),
		Title:          pr.GetTitle(),
		Body:           pr.GetBody(),
		State:          pr.GetState(),
		Labels:         labelNames(pr.Labels),
		CreatedAt:      timestampString(pr.CreatedAt),
		UpdatedAt:      timestampString(pr.UpdatedAt),
		MergedAt:       timestampString(pr.MergedAt),
		Author:         pr.GetUser().GetLogin(),
		Additions:      pr.GetAdditions(),
		Deletions:      pr.GetDeletions(),
		ChangedFiles:   pr.GetChangedFiles(),
		Commits:        pr.GetCommits(),
		Comments:       pr.GetComments(),
		ReviewComments: pr.GetReviewComments(),
	}
}

func labelNames(labels []*github.Label) []string {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		names = append(names, l.GetName())
	}
	return names
}

// timestampString renders a GitHub timestamp as RFC 3339 UTC, or "" when the
// field is absent.
func timestampString(ts *github.Timestamp) string {
	if ts == nil || ts.Time.IsZero() {
		return ""
	}
	return ts.Time.UTC().Format(time.RFC3339)
}
