package steps

import (
	"log"

	"github.com/YoWuwuuuw/github-repo-report-bot/internal/analysis"
	"github.com/YoWuwuuuw/github-repo-report-bot/internal/core/pipeline"
)

// ScorePRs sends each fetched pull request to the external review model and
// collects the six dimension scores plus the reviewer comment.
type ScorePRs struct {
	verbose bool
}

// NewScorePRs creates a new PR scoring step.
func NewScorePRs(deps *pipeline.Dependencies) *ScorePRs {
	return &ScorePRs{verbose: deps.Verbose}
}

// Name returns the step name.
func (s *ScorePRs) Name() string {
	return "score_prs"
}

// Run reviews every fetched PR. An unconfigured or failing scorer degrades
// the affected records to zero dimension scores instead of failing the run.
func (s *ScorePRs) Run(ctx *pipeline.Context) error {
	if len(ctx.PRs) == 0 {
		log.Printf("[score_prs] No pull requests to score")
		return nil
	}
	if ctx.Scorer == nil {
		log.Printf("[score_prs] No scorer wired, all PRs keep zero dimension scores")
		ctx.Result.ScorerDegraded = true
		return nil
	}
	if !ctx.Scorer.Configured() {
		log.Printf("[score_prs] Scorer not configured, all PRs keep zero dimension scores")
	}

	scored := 0
	for _, pr := range ctx.PRs {
		prContext := analysis.BuildPRContext(&pr.Item)
		review := ctx.Scorer.ReviewPR(ctx.Ctx, prContext)
		ctx.Reviews[pr.Item.Number] = review

		if review.Degraded {
			ctx.Result.ScorerDegraded = true
			log.Printf("[score_prs] PR #%d degraded: %s", pr.Item.Number, review.Reason)
			continue
		}
		scored++
		if s.verbose {
			log.Printf("[score_prs] PR #%d scored: quality=%d tests=%d docs=%d compliance=%d blast=%d value=%d",
				pr.Item.Number,
				review.Scores.CodeQuality, review.Scores.TestCoverage,
				review.Scores.DocMaintain, review.Scores.ComplianceSecurity,
				review.Scores.MergeHistory, review.Scores.Collaboration)
		}
	}

	ctx.Result.PRsScored = scored
	log.Printf("[score_prs] Scored %d/%d pull requests", scored, len(ctx.PRs))
	return nil
}
