package steps

import (
	"github.com/YoWuwuuuw/github-repo-report-bot/internal/core/pipeline"
)

// RegisterAll registers all built-in steps with the registry.
func RegisterAll(r *pipeline.Registry) {
	r.Register("fetch_issues", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewFetchIssues(deps), nil
	})

	r.Register("fetch_prs", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewFetchPRs(deps), nil
	})

	r.Register("fetch_discussions", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewFetchDiscussions(deps), nil
	})

	r.Register("score_prs", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewScorePRs(deps), nil
	})

	r.Register("assemble", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewAssemble(deps), nil
	})

	r.Register("render_report", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewRenderReport(deps), nil
	})

	r.Register("publish_issue", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewPublishIssue(deps), nil
	})
}
