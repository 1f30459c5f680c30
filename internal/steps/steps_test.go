package steps

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/YoWuwuuuw/github-repo-report-bot/internal/core/config"
	"github.com/YoWuwuuuw/github-repo-report-bot/internal/core/model"
	"github.com/YoWuwuuuw/github-repo-report-bot/internal/core/pipeline"
	"github.com/YoWuwuuuw/github-repo-report-bot/internal/integrations/scorer"
	"github.com/YoWuwuuuw/github-repo-report-bot/internal/timewindow"
)

// stubScorer returns canned reviews and summaries.
type stubScorer struct {
	configured bool
	review     scorer.PRReview
	summary    scorer.Summary
	reviewed   []string
}

func (s *stubScorer) ReviewPR(ctx context.Context, prContext string) scorer.PRReview {
	s.reviewed = append(s.reviewed, prContext)
	return s.review
}

func (s *stubScorer) SummarizeIssue(ctx context.Context, issueContext string) scorer.Summary {
	return s.summary
}

func (s *stubScorer) SummarizeDiscussion(ctx context.Context, discussionContext string) scorer.Summary {
	return s.summary
}

func (s *stubScorer) Configured() bool { return s.configured }
func (s *stubScorer) Close() error     { return nil }

func newRunContext(t *testing.T) *pipeline.Context {
	t.Helper()
	w, err := timewindow.Resolve("day", time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	cfg := &config.Config{}
	cfg.GitHub.Source = config.RepoConfig{Owner: "apache", Repo: "kafka"}
	cfg.GitHub.Target = config.RepoConfig{Owner: "o", Repo: "reports"}
	cfg.Output.ReportDir = filepath.Join(t.TempDir(), "reports")

	return pipeline.NewContext(context.Background(), cfg, w, "run-1")
}

func taggedPR(number int, title string) timewindow.Tagged[model.PullRequest] {
	return timewindow.Tagged[model.PullRequest]{
		Item: model.PullRequest{
			Number:    number,
			Title:     title,
			State:     "open",
			CreatedAt: "2026-03-09T08:00:00Z",
			Author:    "alice",
			Additions: 10,
		},
		CreatedInPeriod: true,
	}
}

func TestScorePRsCollectsReviews(t *testing.T) {
	ctx := newRunContext(t)
	ctx.PRs = []timewindow.Tagged[model.PullRequest]{
		taggedPR(1, "feat: one"),
		taggedPR(2, "fix: two"),
	}
	sc := &stubScorer{
		configured: true,
		review: scorer.PRReview{
			Scores:  model.DimensionScores{CodeQuality: 7},
			Comment: "fine",
		},
	}
	ctx.Scorer = sc

	if err := NewScorePRs(&pipeline.Dependencies{}).Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(ctx.Reviews) != 2 {
		t.Fatalf("got %d reviews, want 2", len(ctx.Reviews))
	}
	if ctx.Result.PRsScored != 2 {
		t.Fatalf("scored = %d, want 2", ctx.Result.PRsScored)
	}
	if ctx.Result.ScorerDegraded {
		t.Fatal("successful reviews should not mark the run degraded")
	}
	if len(sc.reviewed) != 2 || !strings.Contains(sc.reviewed[0], "feat: one") {
		t.Fatalf("scorer should receive the PR context, got %d calls", len(sc.reviewed))
	}
}

func TestScorePRsDegradedReviewsMarkRun(t *testing.T) {
	ctx := newRunContext(t)
	ctx.PRs = []timewindow.Tagged[model.PullRequest]{taggedPR(1, "feat: one")}
	ctx.Scorer = &stubScorer{
		configured: true,
		review:     scorer.PRReview{Degraded: true, Reason: "quota exceeded"},
	}

	if err := NewScorePRs(&pipeline.Dependencies{}).Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !ctx.Result.ScorerDegraded {
		t.Fatal("degraded review should mark the run degraded")
	}
	if ctx.Result.PRsScored != 0 {
		t.Fatalf("scored = %d, want 0", ctx.Result.PRsScored)
	}
}

func TestScorePRsWithoutScorer(t *testing.T) {
	ctx := newRunContext(t)
	ctx.PRs = []timewindow.Tagged[model.PullRequest]{taggedPR(1, "feat: one")}

	if err := NewScorePRs(&pipeline.Dependencies{}).Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !ctx.Result.ScorerDegraded {
		t.Fatal("missing scorer should mark the run degraded")
	}
}

func TestAssembleBuildsAnalyses(t *testing.T) {
	ctx := newRunContext(t)
	ctx.PRs = []timewindow.Tagged[model.PullRequest]{taggedPR(1, "feat: one")}
	ctx.Issues = []timewindow.Tagged[model.Issue]{
		{
			Item: model.Issue{
				Number:    9,
				Title:     "Crash when the log directory is read-only",
				Body:      "the broker exits immediately with a stack trace",
				State:     "open",
				CreatedAt: "2026-03-09T08:00:00Z",
			},
			CreatedInPeriod: true,
		},
	}
	ctx.Reviews[1] = scorer.PRReview{Scores: model.DimensionScores{CodeQuality: 8}}

	if err := NewAssemble(&pipeline.Dependencies{}).Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(ctx.PRAnalyses) != 1 || len(ctx.IssueAnalyses) != 1 {
		t.Fatalf("analyses = %d PRs, %d issues", len(ctx.PRAnalyses), len(ctx.IssueAnalyses))
	}
	if ctx.PRAnalyses[0].Dimensions.CodeQuality != 8 {
		t.Fatal("review scores should flow into the PR analysis")
	}
}

func TestRenderReportWritesFile(t *testing.T) {
	ctx := newRunContext(t)
	ctx.PRAnalyses = []model.PRAnalysis{{Number: 1, Title: "feat: one", TotalScore: 50}}

	if err := NewRenderReport(&pipeline.Dependencies{}).Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if ctx.Result.ReportPath == "" {
		t.Fatal("report path not recorded")
	}
	content, err := os.ReadFile(ctx.Result.ReportPath)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	if !strings.Contains(string(content), "apache/kafka") {
		t.Fatal("report should name the source repository")
	}
}

func TestPublishIssueSkipsWhenDisabled(t *testing.T) {
	ctx := newRunContext(t)
	ctx.Config.Output.CreateIssue = false

	if err := NewPublishIssue(&pipeline.Dependencies{}).Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if ctx.Result.IssueNumber != 0 {
		t.Fatal("disabled publishing should not create an issue")
	}
}

func TestPublishIssueSkipsOnDryRun(t *testing.T) {
	ctx := newRunContext(t)
	ctx.Config.Output.CreateIssue = true
	ctx.DryRun = true

	if err := NewPublishIssue(&pipeline.Dependencies{}).Run(ctx); err != nil {
		t.Fatalf("dry run should not error, got %v", err)
	}
	if ctx.Result.IssueNumber != 0 || ctx.Result.IssueURL != "" {
		t.Fatal("dry run should not record a published issue")
	}
}

func TestPublishIssueRequiresTargetClient(t *testing.T) {
	ctx := newRunContext(t)
	ctx.Config.Output.CreateIssue = true

	if err := NewPublishIssue(&pipeline.Dependencies{}).Run(ctx); err == nil {
		t.Fatal("publishing without a target client should fail")
	}
}

func TestStepsRegistryCoversReportPreset(t *testing.T) {
	registry := pipeline.NewRegistry()
	RegisterAll(registry)

	names := pipeline.ResolveSteps(nil, "report")
	p, err := registry.BuildFromNames(names, &pipeline.Dependencies{})
	if err != nil {
		t.Fatalf("report preset should build, got %v", err)
	}
	if len(p.Steps()) != len(names) {
		t.Fatalf("built %d steps, want %d", len(p.Steps()), len(names))
	}
}
