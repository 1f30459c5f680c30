package steps

import (
	"log"

	"github.com/YoWuwuuuw/github-repo-report-bot/internal/analysis"
	"github.com/YoWuwuuuw/github-repo-report-bot/internal/core/pipeline"
)

// Assemble turns the raw fetched records and the collected reviews into the
// immutable analysis records the renderers consume.
type Assemble struct{}

// NewAssemble creates a new assemble step.
func NewAssemble(deps *pipeline.Dependencies) *Assemble {
	return &Assemble{}
}

// Name returns the step name.
func (s *Assemble) Name() string {
	return "assemble"
}

// Run builds the analysis records. Summaries for issues and discussions go
// through the scorer here as well; degraded summaries fall back to the
// heuristic body summaries, so this step never fails.
func (s *Assemble) Run(ctx *pipeline.Context) error {
	ctx.IssueAnalyses = analysis.AnalyzeIssues(ctx.Ctx, ctx.Issues, ctx.Scorer)
	ctx.DiscussionAnalyses = analysis.AnalyzeDiscussions(ctx.Ctx, ctx.Discussions, ctx.Scorer)
	ctx.PRAnalyses = analysis.AnalyzePullRequests(ctx.PRs, ctx.Reviews)

	log.Printf("[assemble] Built %d issue, %d PR and %d discussion analyses",
		len(ctx.IssueAnalyses), len(ctx.PRAnalyses), len(ctx.DiscussionAnalyses))
	return nil
}
