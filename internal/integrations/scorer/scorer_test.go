package scorer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/YoWuwuuuw/github-repo-report-bot/internal/core/model"
)

// fakeBackend returns canned JSON fields or a fixed error.
type fakeBackend struct {
	fields map[string]any
	err    error
	calls  int
}

func (f *fakeBackend) completeJSON(ctx context.Context, system, user string) (map[string]any, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.fields, nil
}

func (f *fakeBackend) Close() error { return nil }

func newTestScorer(b backend) *Scorer {
	s := &Scorer{backend: b, limiter: newLimiter(1000)}
	clock := newFakeClock()
	s.limiter.now = clock.now
	s.limiter.sleep = clock.sleep
	return s
}

func TestUnconfiguredScorerReturnsPlaceholders(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("QWEN_API_KEY", "")

	s, err := New(Config{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if s.Configured() {
		t.Fatal("scorer without keys should be unconfigured")
	}

	review := s.ReviewPR(context.Background(), "context")
	if !review.Degraded {
		t.Fatal("unconfigured review should be degraded")
	}
	if !strings.Contains(review.Reason, "not configured") {
		t.Fatalf("unexpected degradation reason %q", review.Reason)
	}
	if review.Scores != (model.DimensionScores{}) {
		t.Fatalf("placeholder review should carry zero scores, got %+v", review.Scores)
	}

	summary := s.SummarizeIssue(context.Background(), "context")
	if !summary.Degraded || summary.Usable() {
		t.Fatal("unconfigured summary should be degraded and unusable")
	}
}

func TestReviewPRParsesDimensionScores(t *testing.T) {
	b := &fakeBackend{fields: map[string]any{
		"code_quality_score":        float64(8),
		"test_coverage_score":       float64(7),
		"doc_maintain_score":        float64(6),
		"compliance_security_score": float64(9),
		"merge_history_score":       float64(5),
		"collaboration_score":       float64(7),
		"comment":                   "Solid change with tests.",
	}}
	s := newTestScorer(b)

	review := s.ReviewPR(context.Background(), "pr context")
	if review.Degraded {
		t.Fatalf("unexpected degradation: %s", review.Reason)
	}
	if review.Scores.CodeQuality != 8 || review.Scores.ComplianceSecurity != 9 {
		t.Fatalf("scores not mapped: %+v", review.Scores)
	}
	if review.Comment != "Solid change with tests." {
		t.Fatalf("comment = %q", review.Comment)
	}
}

func TestReviewPRDefaultsMissingFieldsToZero(t *testing.T) {
	b := &fakeBackend{fields: map[string]any{
		"code_quality_score": float64(8),
		"comment":            42, // wrong type
	}}
	s := newTestScorer(b)

	review := s.ReviewPR(context.Background(), "pr context")
	if review.Degraded {
		t.Fatalf("unexpected degradation: %s", review.Reason)
	}
	if review.Scores.TestCoverage != 0 || review.Scores.Collaboration != 0 {
		t.Fatalf("missing fields should default to zero: %+v", review.Scores)
	}
	if review.Comment != "" {
		t.Fatalf("non-string comment should default to empty, got %q", review.Comment)
	}
}

func TestReviewPRDegradesOnBackendError(t *testing.T) {
	b := &fakeBackend{err: errors.New("boom")}
	s := newTestScorer(b)

	review := s.ReviewPR(context.Background(), "pr context")
	if !review.Degraded {
		t.Fatal("backend error should degrade the review")
	}
	if review.Reason == "" {
		t.Fatal("degraded review should carry a reason")
	}
}

func TestSummarizeDiscussionUsesSummaryField(t *testing.T) {
	b := &fakeBackend{fields: map[string]any{"summary": "Thread about retry policy."}}
	s := newTestScorer(b)

	summary := s.SummarizeDiscussion(context.Background(), "discussion context")
	if !summary.Usable() {
		t.Fatalf("expected usable summary, got %+v", summary)
	}
	if summary.Text != "Thread about retry policy." {
		t.Fatalf("text = %q", summary.Text)
	}
}

func TestIntFieldCoercions(t *testing.T) {
	fields := map[string]any{
		"float": float64(7.9),
		"int":   5,
		"text":  "9",
	}
	if got := intField(fields, "float"); got != 7 {
		t.Fatalf("float coercion = %d, want 7", got)
	}
	if got := intField(fields, "int"); got != 5 {
		t.Fatalf("int passthrough = %d, want 5", got)
	}
	if got := intField(fields, "text"); got != 0 {
		t.Fatalf("string field = %d, want 0", got)
	}
	if got := intField(fields, "missing"); got != 0 {
		t.Fatalf("missing field = %d, want 0", got)
	}
}
