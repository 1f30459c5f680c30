// Package report renders analysis records into Markdown: the full report
// file and the condensed issue body published to the target repository.
// Rendering is pure formatting; every decision was made upstream.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/YoWuwuuuw/github-repo-report-bot/internal/core/model"
	"github.com/YoWuwuuuw/github-repo-report-bot/internal/timewindow"
)

// Data carries everything the renderers need for one report run.
type Data struct {
	RepoFullName string
	Window       timewindow.Window
	GeneratedAt  time.Time
	RunID        string
	Issues       []model.IssueAnalysis
	PRs          []model.PRAnalysis
	Discussions  []model.DiscussionAnalysis
}

// WriteMarkdown renders the full report and writes it under reportDir. It
// returns the path of the written file.
func WriteMarkdown(data Data, reportDir string) (string, error) {
	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report dir: %w", err)
	}

	slug := data.GeneratedAt.UTC().Format("20060102-150405")
	path := filepath.Join(reportDir, fmt.Sprintf("report-%s.md", slug))

	if err := os.WriteFile(path, []byte(RenderMarkdown(data)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// RenderMarkdown produces the full report document.
func RenderMarkdown(data Data) string {
	var sb strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&sb, format+"\n", args...)
	}

	line("# %s analysis report - %s", periodDisplay(data.Window.Kind), data.RepoFullName)
	line("")
	line("- **Generated**: %s", cst(data.GeneratedAt))
	if data.RunID != "" {
		line("- **Run ID**: %s", data.RunID)
	}
	line("- **Period**: %s", data.Window.Label)
	line("- **Range**: %s to %s (CST)", cst(data.Window.Start), cst(data.Window.End))
	line("- **Issues**: %d", len(data.Issues))
	line("- **Pull requests**: %d", len(data.PRs))
	line("- **Discussions**: %d", len(data.Discussions))
	line("")

	prs := sortedByScore(data.PRs)

	if len(prs) > 0 {
		line("## Pull request overview")
		line("")
		line("| Number | Title | Author | Type | Priority | Size | Score | Rating | State |")
		line("| --- | --- | --- | --- | --- | --- | --- | --- | --- |")
		for _, pr := range prs {
			line("| PR-%d | %s | %s | %s | %s | %s | %v | %s | %s |",
				pr.Number, clipTitle(pr.Title), pr.Author, pr.PRType,
				pr.Priority, pr.SizeCategory, pr.TotalScore, pr.Rating, pr.State)
		}
		line("")
	}

	if len(data.Issues) > 0 {
		line("## Issue overview")
		line("")
		line("| Number | Title | Author | State | Category | Comments | Created |")
		line("| --- | --- | --- | --- | --- | --- | --- |")
		for _, it := range data.Issues {
			line("| Issue-%d | %s | %s | %s | %s | %d | %s |",
				it.Number, clipTitle(it.Title), it.Author, it.State,
				it.Category, it.Comments, datePart(it.CreatedAt))
		}
		line("")
	}

	if len(prs) > 0 {
		line("## Pull request details")
	}
	for _, pr := range prs {
		line("")
		line("### PR-%d - %s", pr.Number, pr.Title)
		line("")
		line("- Author: %s", pr.Author)
		line("- State: %s (merged: %v)", pr.State, pr.Merged())
		line("- Created: %s", pr.CreatedAt)
		line("- Changed files: %d", pr.ChangedFiles)
		line("- Additions / deletions: +%d / -%d", pr.Additions, pr.Deletions)
		line("- Commits: %d", pr.Commits)
		line("- Type: %s, priority: %s", pr.PRType, pr.Priority)
		line("- Size: %s", pr.SizeCategory)
		line("")
		line("**Dimension scores (0-10):**")
		line("- Change type: %d", pr.TypeScore)
		line("- Change size: %d", pr.SizeScore)
		line("- Code quality: %d", pr.Dimensions.CodeQuality)
		line("- Test coverage: %d", pr.Dimensions.TestCoverage)
		line("- Docs and maintainability: %d", pr.Dimensions.DocMaintain)
		line("- Compliance and security: %d", pr.Dimensions.ComplianceSecurity)
		line("- Blast-radius reasonableness: %d", pr.Dimensions.MergeHistory)
		line("- Value and purpose: %d", pr.Dimensions.Collaboration)
		line("")
		line("**Composite score: %v (%s)**", pr.TotalScore, pr.Rating)
		line("")
		if pr.ReviewComment != "" {
			line("**Reviewer notes:**")
			line("")
			line("%s", pr.ReviewComment)
			line("")
		}
	}

	if len(data.Issues) > 0 {
		line("## Issue details")
		for _, it := range data.Issues {
			line("")
			line("### Issue-%d - %s", it.Number, it.Title)
			line("")
			line("- Author: %s", it.Author)
			line("- State: %s", it.State)
			line("- Category: %s", it.Category)
			line("- Labels: %s", labelList(it.Labels))
			line("- Comments: %d", it.Comments)
			line("- Created: %s", it.CreatedAt)
			if it.ClosedAt != "" {
				line("- Closed: %s", it.ClosedAt)
			}
			line("")
			line("Summary: %s", it.Summary)
		}
		line("")
	}

	if len(data.Discussions) > 0 {
		line("## Discussion details")
		created, updated := splitDiscussions(data.Discussions)

		if len(created) > 0 {
			line("")
			line("### Created in period")
			writeDiscussionDetails(line, created)
		}
		if len(updated) > 0 {
			line("")
			line("### Updated in period")
			writeDiscussionDetails(line, updated)
		}
	}

	return sb.String()
}

func writeDiscussionDetails(line func(string, ...any), discussions []model.DiscussionAnalysis) {
	for _, disc := range discussions {
		line("")
		line("#### Discussion-%d - %s", disc.Number, disc.Title)
		line("")
		line("- Author: %s", disc.Author)
		line("- State: %s", disc.State)
		line("- Category: %s", disc.Category)
		line("- Labels: %s", labelList(disc.Labels))
		line("- Comments: %d", disc.Comments)
		line("- Created: %s", disc.CreatedAt)
		if disc.UpdatedAt != "" {
			line("- Updated: %s", disc.UpdatedAt)
		}
		line("")
		line("Summary: %s", disc.Summary)
		if disc.AISummary != "" {
			line("AI summary: %s", disc.AISummary)
		}
	}
}

func periodDisplay(kind timewindow.Kind) string {
	switch kind {
	case timewindow.KindToday:
		return "Today's"
	case timewindow.KindWeek:
		return "Weekly"
	default:
		return "Daily"
	}
}

func cst(t time.Time) string {
	return t.In(timewindow.CST).Format("2006-01-02 15:04:05")
}

func datePart(iso string) string {
	if len(iso) >= 10 {
		return iso[:10]
	}
	return iso
}

func clipTitle(title string) string {
	runes := []rune(title)
	if len(runes) > 40 {
		return string(runes[:40])
	}
	return title
}

func labelList(labels []string) string {
	if len(labels) == 0 {
		return "none"
	}
	return strings.Join(labels, ", ")
}

func sortedByScore(prs []model.PRAnalysis) []model.PRAnalysis {
	sorted := make([]model.PRAnalysis, len(prs))
	copy(sorted, prs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalScore > sorted[j].TotalScore
	})
	return sorted
}

func sortedByNumberDesc[T any](items []T, number func(T) int) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return number(sorted[i]) > number(sorted[j])
	})
	return sorted
}

func splitDiscussions(discussions []model.DiscussionAnalysis) (created, updated []model.DiscussionAnalysis) {
	for _, d := range discussions {
		if d.CreatedInPeriod {
			created = append(created, d)
		} else {
			updated = append(updated, d)
		}
	}
	number := func(d model.DiscussionAnalysis) int { return d.Number }
	return sortedByNumberDesc(created, number), sortedByNumberDesc(updated, number)
}
