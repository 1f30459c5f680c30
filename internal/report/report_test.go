package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/YoWuwuuuw/github-repo-report-bot/internal/core/model"
	"github.com/YoWuwuuuw/github-repo-report-bot/internal/timewindow"
)

func testData(t *testing.T) Data {
	t.Helper()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	w, err := timewindow.Resolve("day", now)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	return Data{
		RepoFullName: "apache/kafka",
		Window:       w,
		GeneratedAt:  now,
		RunID:        "run-123",
		Issues: []model.IssueAnalysis{
			{
				Number:          200,
				Title:           "Broker crashes on startup",
				State:           "open",
				Author:          "alice",
				Category:        "bug",
				Comments:        3,
				CreatedAt:       "2026-03-09T08:00:00Z",
				Summary:         "Broker crashes when the log dir is read-only.",
				CreatedInPeriod: true,
			},
			{
				Number:    150,
				Title:     "Support zstd level tuning",
				State:     "open",
				Author:    "bob",
				Category:  "feature request",
				CreatedAt: "2026-03-01T08:00:00Z",
				Summary:   "Expose the zstd compression level in broker config.",
			},
		},
		PRs: []model.PRAnalysis{
			{
				Number:       301,
				Title:        "fix: handle read-only log dir",
				State:        "open",
				Author:       "carol",
				PRType:       "fix",
				SizeCategory: "small",
				Priority:     "P3",
				TypeScore:    6,
				SizeScore:    5,
				TotalScore:   55.5,
				Rating:       "fair",
				CreatedAt:    "2026-03-09T10:00:00Z",
			},
			{
				Number:       302,
				Title:        "feat: zstd level tuning",
				State:        "closed",
				MergedAt:     "2026-03-09T20:00:00Z",
				Author:       "bob",
				PRType:       "feat",
				SizeCategory: "medium",
				Priority:     "P1",
				TypeScore:    10,
				SizeScore:    7,
				Dimensions: model.DimensionScores{
					CodeQuality: 8, TestCoverage: 8, DocMaintain: 7,
					ComplianceSecurity: 8, MergeHistory: 7, Collaboration: 8,
				},
				TotalScore:    77.5,
				Rating:        "good",
				ReviewComment: "Well tested and scoped.",
				CreatedAt:     "2026-03-09T09:00:00Z",
			},
		},
		Discussions: []model.DiscussionAnalysis{
			{
				Number:          40,
				Title:           "Default retention debate",
				Author:          "dave",
				State:           "open",
				Category:        "ideas",
				Summary:         "Thread about shortening default retention.",
				AISummary:       "Proposal to shorten default retention to 3 days.",
				CreatedInPeriod: true,
			},
			{
				Number:   35,
				Title:    "Upgrade path questions",
				Author:   "erin",
				State:    "open",
				Category: "q-a",
				Summary:  "Questions about rolling upgrades.",
			},
		},
	}
}

func TestRenderMarkdown(t *testing.T) {
	got := RenderMarkdown(testData(t))

	for _, want := range []string{
		"# Daily analysis report - apache/kafka",
		"- **Run ID**: run-123",
		"- **Issues**: 2",
		"| PR-302 | feat: zstd level tuning | bob | feat | P1 | medium | 77.5 | good | closed |",
		"### PR-302 - feat: zstd level tuning",
		"- State: closed (merged: true)",
		"**Composite score: 77.5 (good)**",
		"Well tested and scoped.",
		"### Issue-200 - Broker crashes on startup",
		"Summary: Broker crashes when the log dir is read-only.",
		"### Created in period",
		"#### Discussion-40 - Default retention debate",
		"AI summary: Proposal to shorten default retention to 3 days.",
		"### Updated in period",
		"#### Discussion-35 - Upgrade path questions",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q", want)
		}
	}

	// PRs sorted by score: 302 before 301 in the overview table.
	if strings.Index(got, "| PR-302 |") > strings.Index(got, "| PR-301 |") {
		t.Error("PR overview should be sorted by score descending")
	}
	// Degraded PR carries no reviewer notes block.
	detail301 := got[strings.Index(got, "### PR-301"):]
	if idx := strings.Index(detail301, "### Issue"); idx >= 0 {
		detail301 = detail301[:idx]
	}
	if strings.Contains(detail301, "**Reviewer notes:**") {
		t.Error("PR without a review comment should not render reviewer notes")
	}
}

func TestWriteMarkdown(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")

	path, err := WriteMarkdown(testData(t), dir)
	if err != nil {
		t.Fatalf("WriteMarkdown returned error: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("report written to %q, want dir %q", path, dir)
	}
	if base := filepath.Base(path); !strings.HasPrefix(base, "report-") || !strings.HasSuffix(base, ".md") {
		t.Fatalf("unexpected report file name %q", base)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	if !strings.Contains(string(content), "apache/kafka") {
		t.Fatal("written report does not contain the repo name")
	}
}

func TestIssueTitlePerPeriod(t *testing.T) {
	data := testData(t)

	// day: dated by the covered day, not the generation day.
	if got := IssueTitle(data); got != "Daily report - apache/kafka - 2026-03-09" {
		t.Fatalf("day title = %q", got)
	}

	now := time.Date(2026, 3, 11, 2, 0, 0, 0, time.UTC)
	week, err := timewindow.Resolve("week", now)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	data.Window = week
	if got := IssueTitle(data); got != "Weekly report - apache/kafka - 2026-03-02 to 2026-03-08" {
		t.Fatalf("week title = %q", got)
	}

	today, err := timewindow.Resolve("today", now)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	data.Window = today
	data.GeneratedAt = now
	// 02:00 UTC is already 10:00 in CST, same calendar day.
	if got := IssueTitle(data); got != "Today's report - apache/kafka - 2026-03-11" {
		t.Fatalf("today title = %q", got)
	}
}

func TestIssueLabels(t *testing.T) {
	labels := IssueLabels([]string{"automated", "report"}, timewindow.KindDay)
	if len(labels) != 3 || labels[2] != "day" {
		t.Fatalf("labels = %v, want period appended", labels)
	}

	// A period label already present is not duplicated.
	labels = IssueLabels([]string{"automated", "week"}, timewindow.KindWeek)
	if len(labels) != 2 {
		t.Fatalf("labels = %v, want no duplicate period", labels)
	}
}

func TestBuildIssueBody(t *testing.T) {
	got := BuildIssueBody(testData(t))

	for _, want := range []string{
		"# Daily activity report for apache/kafka",
		"- Pull requests analyzed: 2",
		"## Top pull requests",
		"| PR-302 | feat: zstd level tuning | bob | feat | 77.5 | good |",
		"### Highlights",
		"**PR-302 - feat: zstd level tuning** (by bob, feat, medium)",
		"| 8 | 8 | 7 | 8 | 7 | 8 | **77.5 (good)** |",
		"## Issues",
		"### Opened in period (1)",
		"**Bug (1)**",
		"- Issue-200 Broker crashes on startup (by alice, open, 3 comments): Broker crashes when the log dir is read-only.",
		"### Updated in period (1)",
		"**Feature request (1)**",
		"## Discussions",
		"- Discussion-40 Default retention debate (by dave, ideas, 0 comments): Proposal to shorten default retention to 3 days.",
		"## Scoring rubric",
		"*This report was generated automatically.*",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("issue body missing %q", want)
		}
	}
}
