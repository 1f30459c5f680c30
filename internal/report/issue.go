package report

import (
	"fmt"
	"strings"

	"github.com/YoWuwuuuw/github-repo-report-bot/internal/core/model"
	"github.com/YoWuwuuuw/github-repo-report-bot/internal/timewindow"
)

const (
	topPRsInTable  = 10
	topPRsDetailed = 5
)

// IssueTitle builds the title of the published summary issue, dated by the
// period the report covers rather than the moment it was generated.
func IssueTitle(data Data) string {
	var date string
	switch data.Window.Kind {
	case timewindow.KindToday:
		date = data.GeneratedAt.In(timewindow.CST).Format("2006-01-02")
	case timewindow.KindWeek:
		date = fmt.Sprintf("%s to %s",
			data.Window.Start.Format("2006-01-02"),
			data.Window.End.AddDate(0, 0, -1).Format("2006-01-02"))
	default:
		date = data.Window.Start.Format("2006-01-02")
	}
	return fmt.Sprintf("%s report - %s - %s", periodDisplay(data.Window.Kind), data.RepoFullName, date)
}

// IssueLabels returns the period label to attach alongside the configured
// report labels.
func IssueLabels(configured []string, kind timewindow.Kind) []string {
	labels := make([]string, 0, len(configured)+1)
	labels = append(labels, configured...)
	period := string(kind)
	for _, l := range labels {
		if l == period {
			return labels
		}
	}
	return append(labels, period)
}

// BuildIssueBody renders the condensed report published as an issue in the
// target repository. It is a digest of the full Markdown report: overview
// counts, the highest scored pull requests, and issues and discussions
// grouped by how they entered the period.
func BuildIssueBody(data Data) string {
	var sb strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&sb, format+"\n", args...)
	}

	line("# %s activity report for %s", periodDisplay(data.Window.Kind), data.RepoFullName)
	line("")
	line("> Period: %s, %s to %s (CST). Generated %s.",
		data.Window.Label, cst(data.Window.Start), cst(data.Window.End), cst(data.GeneratedAt))
	line("")
	line("## Overview")
	line("")
	line("- Pull requests analyzed: %d", len(data.PRs))
	line("- Issues analyzed: %d", len(data.Issues))
	line("- Discussions analyzed: %d", len(data.Discussions))
	line("")

	writeIssuePRSections(line, data.PRs)
	writeIssueIssueSections(line, data.Issues)
	writeIssueDiscussionSections(line, data.Discussions)

	line("## Scoring rubric")
	line("")
	line("Each pull request gets a composite score out of 100:")
	line("")
	line("- Change type and change size: 5% each.")
	line("- Code quality, test coverage, docs and maintainability, compliance")
	line("  and security, blast-radius reasonableness, value and purpose:")
	line("  15% each, scored 0-10 by an external reviewer model.")
	line("- Rating bands: above 80 excellent, above 60 good, otherwise fair.")
	line("")
	line("---")
	line("*This report was generated automatically.*")

	return sb.String()
}

func writeIssuePRSections(line func(string, ...any), prs []model.PRAnalysis) {
	if len(prs) == 0 {
		return
	}
	sorted := sortedByScore(prs)

	line("## Top pull requests")
	line("")
	line("| Number | Title | Author | Type | Score | Rating |")
	line("| --- | --- | --- | --- | --- | --- |")
	table := sorted
	if len(table) > topPRsInTable {
		table = table[:topPRsInTable]
	}
	for _, pr := range table {
		line("| PR-%d | %s | %s | %s | %v | %s |",
			pr.Number, clipTitle(pr.Title), pr.Author, pr.PRType, pr.TotalScore, pr.Rating)
	}
	line("")

	detailed := sorted
	if len(detailed) > topPRsDetailed {
		detailed = detailed[:topPRsDetailed]
	}
	line("### Highlights")
	for _, pr := range detailed {
		line("")
		line("**PR-%d - %s** (by %s, %s, %s)", pr.Number, pr.Title, pr.Author, pr.PRType, pr.SizeCategory)
		line("")
		line("| Quality | Tests | Docs | Compliance | Blast radius | Value | Total |")
		line("| --- | --- | --- | --- | --- | --- | --- |")
		line("| %d | %d | %d | %d | %d | %d | **%v (%s)** |",
			pr.Dimensions.CodeQuality, pr.Dimensions.TestCoverage,
			pr.Dimensions.DocMaintain, pr.Dimensions.ComplianceSecurity,
			pr.Dimensions.MergeHistory, pr.Dimensions.Collaboration,
			pr.TotalScore, pr.Rating)
		if pr.ReviewComment != "" {
			line("")
			line("%s", pr.ReviewComment)
		}
	}
	line("")
}

func writeIssueIssueSections(line func(string, ...any), issues []model.IssueAnalysis) {
	if len(issues) == 0 {
		return
	}
	var created, updated []model.IssueAnalysis
	for _, it := range issues {
		if it.CreatedInPeriod {
			created = append(created, it)
		} else {
			updated = append(updated, it)
		}
	}
	number := func(it model.IssueAnalysis) int { return it.Number }
	created = sortedByNumberDesc(created, number)
	updated = sortedByNumberDesc(updated, number)

	line("## Issues")
	line("")
	if len(created) > 0 {
		line("### Opened in period (%d)", len(created))
		line("")
		writeIssueGroups(line, created)
	}
	if len(updated) > 0 {
		line("### Updated in period (%d)", len(updated))
		line("")
		writeIssueGroups(line, updated)
	}
}

// writeIssueGroups renders one issue list grouped by category, keeping a
// stable category order so consecutive reports diff cleanly.
func writeIssueGroups(line func(string, ...any), issues []model.IssueAnalysis) {
	order := []string{"bug", "feature request", "question", "other"}
	byCategory := make(map[string][]model.IssueAnalysis)
	for _, it := range issues {
		byCategory[it.Category] = append(byCategory[it.Category], it)
	}
	for _, category := range order {
		group := byCategory[category]
		if len(group) == 0 {
			continue
		}
		line("**%s (%d)**", capitalize(category), len(group))
		line("")
		for _, it := range group {
			line("- Issue-%d %s (by %s, %s, %d comments): %s",
				it.Number, it.Title, it.Author, it.State, it.Comments, it.Summary)
		}
		line("")
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func writeIssueDiscussionSections(line func(string, ...any), discussions []model.DiscussionAnalysis) {
	if len(discussions) == 0 {
		return
	}
	created, updated := splitDiscussions(discussions)

	line("## Discussions")
	line("")
	if len(created) > 0 {
		line("### Opened in period (%d)", len(created))
		line("")
		writeDiscussionList(line, created)
	}
	if len(updated) > 0 {
		line("### Updated in period (%d)", len(updated))
		line("")
		writeDiscussionList(line, updated)
	}
}

func writeDiscussionList(line func(string, ...any), discussions []model.DiscussionAnalysis) {
	for _, disc := range discussions {
		summary := disc.Summary
		if disc.AISummary != "" {
			summary = disc.AISummary
		}
		line("- Discussion-%d %s (by %s, %s, %d comments): %s",
			disc.Number, disc.Title, disc.Author, disc.Category, disc.Comments, summary)
	}
	line("")
}
