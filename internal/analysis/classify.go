// Package analysis implements the scoring and classification core of the
// report bot: rule-based classifiers, heuristic scoring, text summaries and
// the assembly of per-entity analysis records.
package analysis

import "strings"

// Category buckets an issue by intent.
type Category string

const (
	CategoryBug            Category = "bug"
	CategoryFeatureRequest Category = "feature request"
	CategoryQuestion       Category = "question"
	CategoryOther          Category = "other"
)

// PRType buckets a pull request by the kind of change it makes.
type PRType string

const (
	PRTypeFeat  PRType = "feat"
	PRTypeFix   PRType = "fix"
	PRTypeOpt   PRType = "opt"
	PRTypeTest  PRType = "test"
	PRTypeDocs  PRType = "docs"
	PRTypeOther PRType = "other"
)

// ClassifyIssueCategory buckets an issue using case-insensitive substring
// matches over title+body and the joined label names. First match wins:
// bug signals, then feature signals, then question signals, then other.
func ClassifyIssueCategory(title, body string, labels []string) Category {
	text := strings.ToLower(title + "\n" + body)
	labelText := strings.ToLower(strings.Join(labels, " "))

	switch {
	case strings.Contains(labelText, "bug") || strings.Contains(text, "bug") ||
		strings.Contains(text, "error") || strings.Contains(text, "fix"):
		return CategoryBug
	case strings.Contains(labelText, "feature") || strings.Contains(labelText, "enhancement") ||
		strings.Contains(text, "feat") || strings.Contains(text, "request"):
		return CategoryFeatureRequest
	case strings.Contains(labelText, "question") || strings.Contains(labelText, "help") ||
		strings.Contains(text, "how to"):
		return CategoryQuestion
	default:
		return CategoryOther
	}
}

// DetectPRType buckets a pull request by the same substring-match style as
// ClassifyIssueCategory, precedence feat > fix > opt > test > docs > other.
func DetectPRType(title, body string, labels []string) PRType {
	text := strings.ToLower(title + "\n" + body)
	labelText := strings.ToLower(strings.Join(labels, " "))

	switch {
	case strings.Contains(text, "feat") || strings.Contains(text, "feature") ||
		strings.Contains(labelText, "enhancement"):
		return PRTypeFeat
	case strings.Contains(text, "fix") || strings.Contains(labelText, "bug"):
		return PRTypeFix
	case strings.Contains(text, "refactor") || strings.Contains(text, "opt") ||
		strings.Contains(text, "optimization"):
		return PRTypeOpt
	case strings.Contains(labelText, "test") || strings.Contains(text, "test"):
		return PRTypeTest
	case strings.Contains(labelText, "doc") || strings.Contains(text, "docs"):
		return PRTypeDocs
	default:
		return PRTypeOther
	}
}

// DetectWIP reports whether a pull request is marked work-in-progress: "wip"
// anywhere in the title, body or joined labels (case-insensitive), or a
// trimmed title starting with "WIP" or "[WIP]".
func DetectWIP(title, body string, labels []string) bool {
	trimmed := strings.TrimSpace(title)
	return strings.Contains(strings.ToLower(title), "wip") ||
		strings.Contains(strings.ToLower(body), "wip") ||
		strings.Contains(strings.ToLower(strings.Join(labels, " ")), "wip") ||
		strings.HasPrefix(trimmed, "WIP") ||
		strings.HasPrefix(trimmed, "[WIP]")
}
