// Package tui renders the end-of-run console summary. The bot is a batch
// job, so this is plain styled output, not an interactive program.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/YoWuwuuuw/github-repo-report-bot/internal/core/pipeline"
)

// Brand color
var (
	primaryColor = lipgloss.Color("#ff7300")
	subtleColor  = lipgloss.Color("#626262")
	successColor = lipgloss.Color("#04B575")
	errorColor   = lipgloss.Color("#FF0000")

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(subtleColor)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	okStyle = lipgloss.NewStyle().
		Foreground(successColor)

	warnStyle = lipgloss.NewStyle().
			Foreground(errorColor)
)

// RenderRunSummary formats the run result for the console.
func RenderRunSummary(repo string, result *pipeline.Result) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("Report run for %s", repo)))
	sb.WriteString("\n\n")

	row := func(label, value string) {
		sb.WriteString(fmt.Sprintf("  %s %s\n",
			labelStyle.Render(fmt.Sprintf("%-14s", label+":")), valueStyle.Render(value)))
	}

	row("Run ID", result.RunID)
	row("Issues", fmt.Sprintf("%d", result.IssuesFetched))
	row("Pull requests", fmt.Sprintf("%d (%d scored)", result.PRsFetched, result.PRsScored))
	row("Discussions", fmt.Sprintf("%d", result.DiscussionsSeen))
	if result.ReportPath != "" {
		row("Report", result.ReportPath)
	}
	if result.IssueURL != "" {
		row("Issue", result.IssueURL)
	}

	sb.WriteString("\n")
	switch {
	case len(result.Errors) > 0:
		sb.WriteString(warnStyle.Render(fmt.Sprintf("Completed with %d warning(s):", len(result.Errors))))
		sb.WriteString("\n")
		for _, err := range result.Errors {
			sb.WriteString(warnStyle.Render("  - " + err.Error()))
			sb.WriteString("\n")
		}
	case result.ScorerDegraded:
		sb.WriteString(warnStyle.Render("Completed, but some records carry placeholder scores."))
		sb.WriteString("\n")
	default:
		sb.WriteString(okStyle.Render("Completed."))
		sb.WriteString("\n")
	}

	return sb.String()
}
