package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/YoWuwuuuw/github-repo-report-bot/internal/core/model"
)

// DefaultSummaryLen is the maximum summary length used across the pipeline.
const DefaultSummaryLen = 200

// Issue template boilerplate blocks stripped before summarizing. Matched
// non-greedily up to the next section header, case-insensitively, across
// line breaks. The Chinese checklist header appears in the upstream
// project's issue templates.
var templatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)### Check Ahead.*?###`),
	regexp.MustCompile(`(?is)### 检查清单.*?###`),
	regexp.MustCompile(`(?is)\[x\] I have searched.*?###`),
	regexp.MustCompile(`(?is)### Environment.*?###`),
	regexp.MustCompile(`(?is)### Description.*?###`),
}

// Residual boilerplate markers. If either survives cleaning, the summary
// falls back to the title alone.
var residualMarkers = []string{"check ahead", "searched the issues"}

// Summarize produces a short plain-text summary of an issue or discussion.
// Template boilerplate is stripped from the body, the title and cleaned body
// are joined with internal whitespace collapsed, and the result is truncated
// to maxLen with a trailing ellipsis. If the combined text is shorter than 20
// characters or still carries boilerplate markers, the (truncated) title is
// returned instead. Output never exceeds maxLen+3 characters.
func Summarize(title, body string, maxLen int) string {
	cleaned := body
	for _, re := range templatePatterns {
		cleaned = re.ReplaceAllString(cleaned, "")
	}

	text := strings.Join(strings.Fields(title+" "+cleaned), " ")

	lower := strings.ToLower(text)
	short := len([]rune(strings.TrimSpace(text))) < 20
	residual := false
	for _, marker := range residualMarkers {
		if strings.Contains(lower, marker) {
			residual = true
			break
		}
	}

	if short || residual {
		return truncate(title, maxLen)
	}
	return truncate(text, maxLen)
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}

// Cross-reference rewrite rules, applied in order. Specific word-prefixed
// forms run first so the generic #N rule cannot see them; every rewrite
// removes the '#', so no token is rewritten twice.
var referenceRewrites = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(?i)\bpull\s+request\s+#(\d+)`), "PR-$1"},
	{regexp.MustCompile(`(?i)\bissue\s+#(\d+)`), "Issue-$1"},
	{regexp.MustCompile(`(?i)\bpr\s+#(\d+)`), "PR-$1"},
	{regexp.MustCompile(`(?i)\bdiscussion\s+#(\d+)`), "Discussion-$1"},
	{regexp.MustCompile(`(\w+)/(\w+)#(\d+)`), "$1-$2-$3"},
	{regexp.MustCompile(`(\w+)#(\d+)`), "$1-$2"},
	{regexp.MustCompile(`#(\d+)`), "Item-$1"},
}

// CleanReferences rewrites GitHub cross-reference shorthand (#123,
// owner/repo#123, "issue #123", ...) into non-linkable plain-text tokens so
// that the rendered report and the scorer's output cannot accidentally link
// to unrelated items.
func CleanReferences(text string) string {
	cleaned := text
	for _, rw := range referenceRewrites {
		cleaned = rw.re.ReplaceAllString(cleaned, rw.repl)
	}
	return cleaned
}

// Display caps for the categorized file listing in the scoring context.
const (
	maxFilesConsidered = 50
	maxAddedShown      = 20
	maxModifiedShown   = 30
	maxRemovedShown    = 10
)

// BuildPRContext assembles the structured text document handed to the
// external scorer. It is the scorer's only channel of information about the
// pull request, so the layout is a contract, not cosmetics.
func BuildPRContext(pr *model.PullRequest) string {
	body := CleanReferences(pr.Body)
	if strings.TrimSpace(body) == "" {
		body = "No description provided."
	}

	author := pr.Author
	if author == "" {
		author = "unknown"
	}

	prType := DetectPRType(pr.Title, pr.Body, pr.Labels)
	isWIP := DetectWIP(pr.Title, pr.Body, pr.Labels)

	var sb strings.Builder
	sb.WriteString("## Pull Request Information\n\n")
	fmt.Fprintf(&sb, "**Title**: %s\n", pr.Title)
	fmt.Fprintf(&sb, "**Author**: %s\n", author)
	fmt.Fprintf(&sb, "**Type**: %s\n", prType)
	if isWIP {
		sb.WriteString("**Status**: WIP (in progress) - score on expected value and importance, do not mark down for incompleteness\n")
	} else {
		state := pr.State
		if state == "" {
			state = "unknown"
		}
		fmt.Fprintf(&sb, "**Status**: %s", state)
		if pr.MergedAt != "" {
			fmt.Fprintf(&sb, " (merged at %s)", pr.MergedAt)
		}
		sb.WriteString("\n")
	}
	created := pr.CreatedAt
	if created == "" {
		created = "unknown"
	}
	fmt.Fprintf(&sb, "**Created**: %s\n", created)
	if pr.UpdatedAt != "" {
		fmt.Fprintf(&sb, "**Updated**: %s\n", pr.UpdatedAt)
	}

	sb.WriteString("\n**Change statistics**:\n")
	fmt.Fprintf(&sb, "- Changed files: %d\n", pr.ChangedFiles)
	fmt.Fprintf(&sb, "- Additions: +%d\n", pr.Additions)
	fmt.Fprintf(&sb, "- Deletions: -%d\n", pr.Deletions)
	fmt.Fprintf(&sb, "- Commits: %d\n", pr.Commits)
	fmt.Fprintf(&sb, "- Comments: %d\n", pr.Comments)
	if pr.ReviewComments > 0 {
		fmt.Fprintf(&sb, "- Review comments: %d\n", pr.ReviewComments)
	}

	fmt.Fprintf(&sb, "\n**Description**:\n%s\n\n", body)

	if len(pr.Files) > 0 {
		writeFileChanges(&sb, pr.Files)
	}

	if len(pr.Labels) > 0 {
		fmt.Fprintf(&sb, "**Labels**: %s\n\n", strings.Join(pr.Labels, ", "))
	}

	sb.WriteString("**Scoring hints**:\n")
	switch prType {
	case PRTypeFeat, PRTypeOpt:
		fmt.Fprintf(&sb, "- This is a %s PR, usually high value; a wide blast radius is reasonable when the importance matches.\n", prType)
	case PRTypeTest, PRTypeDocs:
		fmt.Fprintf(&sb, "- This is a %s PR, relatively low value; a wide blast radius with low importance should score low (it adds review burden without much need).\n", prType)
	}
	if isWIP {
		sb.WriteString("- This PR is WIP; score on expected value and importance, focusing on the effect once finished.\n")
	}

	sb.WriteString("---\n\n")
	sb.WriteString("Based on the information above, assess the pull request's value, importance and blast-radius reasonableness.")

	return sb.String()
}

func writeFileChanges(sb *strings.Builder, files []model.ChangedFile) {
	sb.WriteString("## File Changes\n\n")

	var added, modified, removed []string
	considered := files
	if len(considered) > maxFilesConsidered {
		considered = considered[:maxFilesConsidered]
	}
	for _, f := range considered {
		switch f.Status {
		case "added":
			added = append(added, fmt.Sprintf("- `%s` (added, +%d lines)", f.Filename, f.Additions))
		case "removed":
			removed = append(removed, fmt.Sprintf("- `%s` (removed, -%d lines)", f.Filename, f.Deletions))
		default:
			modified = append(modified, fmt.Sprintf("- `%s` (modified, +%d/-%d, %d lines changed)",
				f.Filename, f.Additions, f.Deletions, f.Additions+f.Deletions))
		}
	}

	if len(added) > 0 {
		sb.WriteString("### Added files:\n")
		sb.WriteString(strings.Join(capList(added, maxAddedShown), "\n") + "\n\n")
	}
	if len(modified) > 0 {
		sb.WriteString("### Modified files:\n")
		sb.WriteString(strings.Join(capList(modified, maxModifiedShown), "\n") + "\n\n")
	}
	if len(removed) > 0 {
		sb.WriteString("### Removed files:\n")
		sb.WriteString(strings.Join(capList(removed, maxRemovedShown), "\n") + "\n\n")
	}

	totalChanges := 0
	for _, f := range files {
		totalChanges += f.Additions + f.Deletions
	}
	fmt.Fprintf(sb, "**Total**: %d files, %d changed lines\n\n", len(files), totalChanges)
}

func capList(items []string, max int) []string {
	if len(items) > max {
		return items[:max]
	}
	return items
}
