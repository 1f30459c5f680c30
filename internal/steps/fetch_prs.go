package steps

import (
	"fmt"
	"log"

	"github.com/YoWuwuuuw/github-repo-report-bot/internal/core/model"
	"github.com/YoWuwuuuw/github-repo-report-bot/internal/core/pipeline"
	"github.com/YoWuwuuuw/github-repo-report-bot/internal/timewindow"
)

// FetchPRs lists the source repository's pull requests created inside the
// report window and loads their change details.
type FetchPRs struct {
	verbose bool
}

// NewFetchPRs creates a new pull request fetch step.
func NewFetchPRs(deps *pipeline.Dependencies) *FetchPRs {
	return &FetchPRs{verbose: deps.Verbose}
}

// Name returns the step name.
func (s *FetchPRs) Name() string {
	return "fetch_prs"
}

// Run fetches pull requests. Only PRs created in the window are kept; an
// update to an old PR does not pull it into the report. The detail fetch is
// best effort per PR, so one failing lookup degrades that record instead of
// aborting the run.
func (s *FetchPRs) Run(ctx *pipeline.Context) error {
	if ctx.Source == nil {
		return fmt.Errorf("source client not configured")
	}

	listed, err := ctx.Source.ListPullRequests(ctx.Ctx, "all", ctx.Config.Analysis.MaxPRCount)
	if err != nil {
		log.Printf("[fetch_prs] Warning: pull request listing failed: %v", err)
		ctx.Result.Errors = append(ctx.Result.Errors, fmt.Errorf("pull request listing: %w", err))
		return nil
	}

	kept := timewindow.FilterCreated(listed, ctx.Window, func(pr model.PullRequest) string {
		return pr.CreatedAt
	})

	for i := range kept {
		detail, err := ctx.Source.PullRequestDetail(ctx.Ctx, kept[i].Item.Number)
		if err != nil {
			log.Printf("[fetch_prs] Warning: detail fetch for PR #%d failed: %v", kept[i].Item.Number, err)
			ctx.Result.Errors = append(ctx.Result.Errors, fmt.Errorf("pr #%d detail: %w", kept[i].Item.Number, err))
			continue
		}
		kept[i].Item = *detail
	}

	ctx.PRs = kept
	ctx.Result.PRsFetched = len(kept)
	log.Printf("[fetch_prs] %d pull requests in period out of %d listed", len(kept), len(listed))

	if s.verbose {
		for _, pr := range kept {
			log.Printf("[fetch_prs] PR #%d %q (+%d/-%d, %d files)",
				pr.Item.Number, pr.Item.Title, pr.Item.Additions, pr.Item.Deletions, pr.Item.ChangedFiles)
		}
	}
	return nil
}
