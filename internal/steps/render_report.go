package steps

import (
	"fmt"
	"log"

	"github.com/YoWuwuuuw/github-repo-report-bot/internal/core/pipeline"
	"github.com/YoWuwuuuw/github-repo-report-bot/internal/report"
)

// RenderReport writes the full Markdown report file to the configured
// report directory.
type RenderReport struct{}

// NewRenderReport creates a new report render step.
func NewRenderReport(deps *pipeline.Dependencies) *RenderReport {
	return &RenderReport{}
}

// Name returns the step name.
func (s *RenderReport) Name() string {
	return "render_report"
}

// Run renders and writes the report. The file is written even when the
// period was empty; an empty report is still a statement about the period.
func (s *RenderReport) Run(ctx *pipeline.Context) error {
	path, err := report.WriteMarkdown(reportData(ctx), ctx.Config.Output.ReportDir)
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	ctx.Result.ReportPath = path
	log.Printf("[render_report] Report written to %s", path)
	return nil
}

// reportData collects the renderer input from the pipeline context.
func reportData(ctx *pipeline.Context) report.Data {
	return report.Data{
		RepoFullName: ctx.Config.GitHub.Source.FullName(),
		Window:       ctx.Window,
		GeneratedAt:  ctx.StartedAt,
		RunID:        ctx.Result.RunID,
		Issues:       ctx.IssueAnalyses,
		PRs:          ctx.PRAnalyses,
		Discussions:  ctx.DiscussionAnalyses,
	}
}
