// Package model defines the typed records flowing through the report pipeline:
// raw issues, pull requests and discussions as fetched from GitHub, and the
// immutable analysis records produced from them.
//
// Timestamps are kept as ISO-8601 strings exactly as the API returned them; an
// absent field is the empty string. Only the timewindow package parses them.
package model

// Label is a label name attached to an issue, PR or discussion.
type Label = string

// Issue is a raw issue record as listed from the source repository.
type Issue struct {
	Number    int     `json:"number"`
	Title     string  `json:"title"`
	Body      string  `json:"body"`
	State     string  `json:"state"`
	Labels    []Label `json:"labels"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
	ClosedAt  string  `json:"closed_at"`
	Author    string  `json:"author"`
	Assignees []string
	Comments  int `json:"comments"`
}

// ChangedFile is one entry of a pull request's file listing.
type ChangedFile struct {
	Filename  string `json:"filename"`
	Status    string `json:"status"` // "added", "modified", "removed"
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// PullRequest is a raw pull request record. Files is only populated by the
// detail fetch; the list endpoint leaves it nil.
type PullRequest struct {
	Number         int     `json:"number"`
	Title          string  `json:"title"`
	Body           string  `json:"body"`
	State          string  `json:"state"`
	Labels         []Label `json:"labels"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
	MergedAt       string  `json:"merged_at"`
	Author         string  `json:"author"`
	Additions      int     `json:"additions"`
	Deletions      int     `json:"deletions"`
	ChangedFiles   int     `json:"changed_files"`
	Commits        int     `json:"commits"`
	Comments       int     `json:"comments"`
	ReviewComments int     `json:"review_comments"`
	Files          []ChangedFile
}

// Discussion is a raw discussion record as returned by the GraphQL listing.
type Discussion struct {
	Number    int     `json:"number"`
	Title     string  `json:"title"`
	Body      string  `json:"body"`
	State     string  `json:"state"` // normalized to "open"/"closed"
	Labels    []Label `json:"labels"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
	Author    string  `json:"author"`
	Comments  int     `json:"comments"`
	Category  string  `json:"category"`
}

// DimensionScores holds the six externally supplied quality dimensions, each
// on a 0-10 scale. Missing or non-numeric values default to zero upstream.
type DimensionScores struct {
	CodeQuality        int `json:"code_quality_score"`
	TestCoverage       int `json:"test_coverage_score"`
	DocMaintain        int `json:"doc_maintain_score"`
	ComplianceSecurity int `json:"compliance_security_score"`
	MergeHistory       int `json:"merge_history_score"`
	Collaboration      int `json:"collaboration_score"`
}

// IssueAnalysis is the per-issue result record. Built once, never mutated.
type IssueAnalysis struct {
	Number          int
	Title           string
	State           string
	Labels          []Label
	CreatedAt       string
	ClosedAt        string
	Author          string
	Assignees       []string
	Comments        int
	Category        string
	Summary         string
	CreatedInPeriod bool
}

// DiscussionAnalysis is the per-discussion result record.
type DiscussionAnalysis struct {
	Number          int
	Title           string
	State           string
	Labels          []Label
	CreatedAt       string
	UpdatedAt       string
	Author          string
	Comments        int
	Category        string
	Summary         string
	AISummary       string
	CreatedInPeriod bool
}

// PRAnalysis is the per-pull-request result record, carrying both the
// heuristic scores and the external dimension scores that produced the
// composite total.
type PRAnalysis struct {
	Number          int
	Title           string
	State           string
	Labels          []Label
	CreatedAt       string
	MergedAt        string
	Author          string
	ChangedFiles    int
	Additions       int
	Deletions       int
	Commits         int
	PRType          string
	SizeCategory    string
	Priority        string
	TypeScore       int
	SizeScore       int
	Dimensions      DimensionScores
	TotalScore      float64
	Rating          string
	ReviewComment   string
	CreatedInPeriod bool
}

// Merged reports whether the pull request behind this analysis was merged.
func (p PRAnalysis) Merged() bool {
	return p.MergedAt != ""
}
