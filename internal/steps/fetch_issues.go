// Package steps contains the modular pipeline steps of a report run.
// Each step implements the pipeline.Step interface.
package steps

import (
	"fmt"
	"log"

	"github.com/YoWuwuuuw/github-repo-report-bot/internal/core/model"
	"github.com/YoWuwuuuw/github-repo-report-bot/internal/core/pipeline"
	"github.com/YoWuwuuuw/github-repo-report-bot/internal/timewindow"
)

// FetchIssues lists the source repository's issues and keeps the ones
// created or updated inside the report window.
type FetchIssues struct {
	verbose bool
}

// NewFetchIssues creates a new issue fetch step.
func NewFetchIssues(deps *pipeline.Dependencies) *FetchIssues {
	return &FetchIssues{verbose: deps.Verbose}
}

// Name returns the step name.
func (s *FetchIssues) Name() string {
	return "fetch_issues"
}

// Run fetches and partitions the issues. A listing failure degrades the
// report to an empty issue section instead of aborting the run.
func (s *FetchIssues) Run(ctx *pipeline.Context) error {
	if ctx.Source == nil {
		return fmt.Errorf("source client not configured")
	}

	issues, err := ctx.Source.ListIssues(ctx.Ctx, "all", ctx.Window.Start, ctx.Config.Analysis.MaxIssueCount)
	if err != nil {
		log.Printf("[fetch_issues] Warning: issue listing failed: %v", err)
		ctx.Result.Errors = append(ctx.Result.Errors, fmt.Errorf("issue listing: %w", err))
		return nil
	}

	result := timewindow.Partition(issues, ctx.Window, timewindow.Accessors[model.Issue]{
		Number:    func(i model.Issue) int { return i.Number },
		CreatedAt: func(i model.Issue) string { return i.CreatedAt },
		UpdatedAt: func(i model.Issue) string { return i.UpdatedAt },
	})

	ctx.Issues = result.Records
	ctx.Result.IssuesFetched = len(result.Records)
	log.Printf("[fetch_issues] %d issues in period (%d created, %d updated) out of %d listed",
		len(result.Records), result.Created, result.Updated, len(issues))

	if s.verbose {
		for _, issue := range result.Records {
			log.Printf("[fetch_issues] Issue #%d %q (created_in_period=%v)",
				issue.Item.Number, issue.Item.Title, issue.CreatedInPeriod)
		}
	}
	return nil
}
