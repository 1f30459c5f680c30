package analysis

import (
	"context"
	"strings"
	"testing"

	"github.com/YoWuwuuuw/github-repo-report-bot/internal/core/model"
	"github.com/YoWuwuuuw/github-repo-report-bot/internal/integrations/scorer"
	"github.com/YoWuwuuuw/github-repo-report-bot/internal/timewindow"
)

// stubScorer implements scorer.Client with canned responses.
type stubScorer struct {
	configured bool
	summary    scorer.Summary
	review     scorer.PRReview
}

func (s *stubScorer) ReviewPR(ctx context.Context, prContext string) scorer.PRReview {
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

func taggedIssue(number int, title, body string) timewindow.Tagged[model.Issue] {
	return timewindow.Tagged[model.Issue]{
		Item: model.Issue{
			Number:    number,
			Title:     title,
			Body:      body,
			State:     "open",
			CreatedAt: "2026-03-09T08:00:00Z",
			Author:    "alice",
		},
		CreatedInPeriod: true,
	}
}

func TestAnalyzeIssuesUsesAISummaryWhenUsable(t *testing.T) {
	sc := &stubScorer{
		configured: true,
		summary:    scorer.Summary{Text: "Crash when the config file is empty."},
	}

	issues := []timewindow.Tagged[model.Issue]{
		taggedIssue(1, "Crash on startup with empty config file present", "long body describing the crash in detail"),
	}

	results := AnalyzeIssues(context.Background(), issues, sc)
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Summary != "Crash when the config file is empty." {
		t.Fatalf("summary = %q, want the AI summary", results[0].Summary)
	}
	if results[0].Category != string(CategoryBug) {
		t.Fatalf("category = %q, want bug", results[0].Category)
	}
	if !results[0].CreatedInPeriod {
		t.Fatal("created-in-period flag lost")
	}
}

func TestAnalyzeIssuesFallsBackOnDegradedSummary(t *testing.T) {
	sc := &stubScorer{
		configured: true,
		summary:    scorer.Summary{Degraded: true, Reason: "quota exceeded"},
	}

	issues := []timewindow.Tagged[model.Issue]{
		taggedIssue(2, "Crash on startup with empty config file present", "the process panics immediately after start"),
	}

	results := AnalyzeIssues(context.Background(), issues, sc)
	want := "Crash on startup with empty config file present the process panics immediately after start"
	if results[0].Summary != want {
		t.Fatalf("summary = %q, want heuristic fallback %q", results[0].Summary, want)
	}
}

func TestAnalyzeIssuesWithNilScorer(t *testing.T) {
	issues := []timewindow.Tagged[model.Issue]{
		taggedIssue(3, "Crash on startup with empty config file present", "the process panics immediately after start"),
	}

	results := AnalyzeIssues(context.Background(), issues, nil)
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Summary == "" {
		t.Fatal("heuristic summary should still be produced without a scorer")
	}
}

func TestAnalyzeDiscussionsKeepsAISummarySeparate(t *testing.T) {
	sc := &stubScorer{
		configured: true,
		summary:    scorer.Summary{Text: "Debate about the retry policy defaults."},
	}

	discussions := []timewindow.Tagged[model.Discussion]{
		{
			Item: model.Discussion{
				Number:    5,
				Title:     "Should retries be enabled by default in the client",
				Body:      "long thread body with many opinions about retries",
				State:     "open",
				CreatedAt: "2026-03-09T09:00:00Z",
				Author:    "bob",
			},
			CreatedInPeriod: true,
		},
	}

	results := AnalyzeDiscussions(context.Background(), discussions, sc)
	if results[0].AISummary != "Debate about the retry policy defaults." {
		t.Fatalf("ai summary = %q", results[0].AISummary)
	}
	if results[0].Summary == "" || results[0].Summary == results[0].AISummary {
		t.Fatalf("heuristic summary should be kept alongside: %q", results[0].Summary)
	}
	if results[0].Category != "general" {
		t.Fatalf("empty category should default to general, got %q", results[0].Category)
	}
}

func TestAnalyzePullRequests(t *testing.T) {
	prs := []timewindow.Tagged[model.PullRequest]{
		{
			Item: model.PullRequest{
				Number:    10,
				Title:     "feat: add csv export",
				Body:      "adds export support",
				State:     "closed",
				MergedAt:  "2026-03-09T12:00:00Z",
				CreatedAt: "2026-03-09T08:00:00Z",
				Author:    "alice",
				Additions: 120,
				Deletions: 30,
			},
			CreatedInPeriod: true,
		},
		{
			Item: model.PullRequest{
				Number:    11,
				Title:     "fix typo in readme",
				State:     "open",
				CreatedAt: "2026-03-09T09:00:00Z",
				Author:    "bob",
				Additions: 1,
				Deletions: 1,
			},
			CreatedInPeriod: true,
		},
	}

	reviews := map[int]scorer.PRReview{
		10: {
			Scores: model.DimensionScores{
				CodeQuality:        8,
				TestCoverage:       7,
				DocMaintain:        7,
				ComplianceSecurity: 8,
				MergeHistory:       7,
				Collaboration:      8,
			},
			Comment: "Well scoped feature with tests.",
		},
		11: {Degraded: true, Reason: "quota exceeded"},
	}

	results := AnalyzePullRequests(prs, reviews)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	first := results[0]
	if first.PRType != string(PRTypeFeat) || first.Priority != string(PriorityP1) {
		t.Fatalf("type/priority = %q/%q", first.PRType, first.Priority)
	}
	if first.SizeCategory != string(SizeMedium) {
		t.Fatalf("size = %q, want medium for 150 lines", first.SizeCategory)
	}
	// feat(10)*0.5 + medium(7)*0.5 + (8+7+7+8+7+8)*1.5 = 5 + 3.5 + 67.5 = 76.0
	if first.TotalScore != 76.0 {
		t.Fatalf("total = %v, want 76.0", first.TotalScore)
	}
	if first.Rating != string(RatingGood) {
		t.Fatalf("rating = %q, want good", first.Rating)
	}
	if first.ReviewComment == "" {
		t.Fatal("review comment lost")
	}
	if !first.Merged() {
		t.Fatal("merged_at should mark the analysis merged")
	}

	second := results[1]
	if second.Dimensions != (model.DimensionScores{}) {
		t.Fatalf("degraded review should leave zero dimensions: %+v", second.Dimensions)
	}
	if second.ReviewComment != "" {
		t.Fatalf("degraded review comment should be empty, got %q", second.ReviewComment)
	}
	if second.Rating != string(RatingFair) {
		t.Fatalf("rating = %q, want fair", second.Rating)
	}
}

func TestAnalyzePullRequestsMissingReview(t *testing.T) {
	prs := []timewindow.Tagged[model.PullRequest]{
		{Item: model.PullRequest{Number: 12, Title: "docs: fix links", CreatedAt: "2026-03-09T08:00:00Z"}},
	}

	results := AnalyzePullRequests(prs, map[int]scorer.PRReview{})
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Dimensions != (model.DimensionScores{}) {
		t.Fatalf("missing review should leave zero dimensions")
	}
	if strings.TrimSpace(results[0].ReviewComment) != "" {
		t.Fatalf("missing review should leave no comment")
	}
}
