package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/YoWuwuuuw/github-repo-report-bot/internal/core/model"
)

const discussionsQuery = `
	query($owner: String!, $repo: String!, $first: Int!, $after: String) {
		repository(owner: $owner, name: $repo) {
			discussions(first: $first, after: $after, orderBy: {field: CREATED_AT, direction: DESC}) {
				pageInfo {
					hasNextPage
					endCursor
				}
				nodes {
					number
					title
					body
					closed
					createdAt
					updatedAt
					author {
						login
					}
					comments {
						totalCount
					}
					category {
						name
					}
					labels(first: 10) {
						nodes {
							name
						}
					}
				}
			}
		}
	}
`

type discussionsPage struct {
	Repository struct {
		Discussions struct {
			PageInfo struct {
				HasNextPage bool   `json:"hasNextPage"`
				EndCursor   string `json:"endCursor"`
			} `json:"pageInfo"`
			Nodes []struct {
				Number    int    `json:"number"`
				Title     string `json:"title"`
				Body      string `json:"body"`
				Closed    bool   `json:"closed"`
				CreatedAt string `json:"createdAt"`
				UpdatedAt string `json:"updatedAt"`
				Author    struct {
					Login string `json:"login"`
				} `json:"author"`
				Comments struct {
					TotalCount int `json:"totalCount"`
				} `json:"comments"`
				Category struct {
					Name string `json:"name"`
				} `json:"category"`
				Labels struct {
					Nodes []struct {
						Name string `json:"name"`
					} `json:"nodes"`
				} `json:"labels"`
			} `json:"nodes"`
		} `json:"discussions"`
	} `json:"repository"`
}

// ListDiscussions fetches up to maxCount discussions, newest first, via the
// GraphQL API. A repository with discussions disabled (or a token without
// access) yields an empty slice, not an error; only transport failures are
// reported, together with whatever pages were already collected. Records
// created before since (RFC 3339, empty means no cutoff) are skipped.
func (c *Client) ListDiscussions(ctx context.Context, since string, maxCount int) ([]model.Discussion, error) {
	if c.token == "" {
		return nil, nil
	}

	var all []model.Discussion
	var cursor *string

	for len(all) < maxCount {
		variables := map[string]interface{}{
			"owner": c.owner,
			"repo":  c.repo,
			"first": min(perPage, maxCount-len(all)),
			"after": cursor,
		}

		data, err := c.graphql.execute(ctx, discussionsQuery, variables)
		if err != nil {
			var qe *QueryError
			if errors.As(err, &qe) {
				// Discussions disabled or denied: not an error condition.
				return all, nil
			}
			return all, fmt.Errorf("failed to list discussions: %w", err)
		}

		var page discussionsPage
		if err := json.Unmarshal(data, &page); err != nil {
			return all, fmt.Errorf("failed to parse discussions: %w", err)
		}

		nodes := page.Repository.Discussions.Nodes
		if len(nodes) == 0 {
			break
		}

		for _, node := range nodes {
			// Listing is created-at descending, so stale records are only
			// skipped, never the whole page: an old discussion may still
			// carry a fresh update.
			if since != "" && node.CreatedAt < since && node.UpdatedAt < since {
				continue
			}

			state := "open"
			if node.Closed {
				state = "closed"
			}
			labels := make([]string, 0, len(node.Labels.Nodes))
			for _, l := range node.Labels.Nodes {
				labels = append(labels, l.Name)
			}
			category := node.Category.Name
			if category == "" {
				category = "general"
			}

			all = append(all, model.Discussion{
				Number:    node.Number,
				Title:     node.Title,
				Body:      node.Body,
				State:     state,
				Labels:    labels,
				CreatedAt: node.CreatedAt,
				UpdatedAt: node.UpdatedAt,
				Author:    node.Author.Login,
				Comments:  node.Comments.TotalCount,
				Category:  category,
			})
		}

		info := page.Repository.Discussions.PageInfo
		if !info.HasNextPage {
			break
		}
		cursor = &info.EndCursor
	}

	if len(all) > maxCount {
		all = all[:maxCount]
	}
	return all, nil
}
