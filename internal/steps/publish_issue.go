package steps

import (
	"fmt"
	"log"

	"github.com/YoWuwuuuw/github-repo-report-bot/internal/core/pipeline"
	"github.com/YoWuwuuuw/github-repo-report-bot/internal/report"
)

// PublishIssue creates the condensed summary issue in the target repository.
type PublishIssue struct{}

// NewPublishIssue creates a new issue publish step.
func NewPublishIssue(deps *pipeline.Dependencies) *PublishIssue {
	return &PublishIssue{}
}

// Name returns the step name.
func (s *PublishIssue) Name() string {
	return "publish_issue"
}

// Run publishes the summary issue. Publishing is opt-in via config and
// suppressed entirely in dry-run mode.
func (s *PublishIssue) Run(ctx *pipeline.Context) error {
	if !ctx.Config.Output.CreateIssue {
		log.Printf("[publish_issue] Issue publishing disabled in config, skipping")
		return nil
	}
	if ctx.DryRun {
		log.Printf("[publish_issue] Dry run, not creating an issue in %s", ctx.Config.GitHub.Target.FullName())
		return nil
	}
	if ctx.Target == nil {
		return fmt.Errorf("target client not configured")
	}

	data := reportData(ctx)
	title := report.IssueTitle(data)
	body := report.BuildIssueBody(data)
	labels := report.IssueLabels(ctx.Config.Output.IssueLabels, ctx.Window.Kind)

	number, err := ctx.Target.CreateIssue(ctx.Ctx, title, body, labels)
	if err != nil {
		return fmt.Errorf("failed to create summary issue: %w", err)
	}

	ctx.Result.IssueNumber = number
	ctx.Result.IssueURL = fmt.Sprintf("https://github.com/%s/issues/%d",
		ctx.Config.GitHub.Target.FullName(), number)
	log.Printf("[publish_issue] Created %s", ctx.Result.IssueURL)
	return nil
}
