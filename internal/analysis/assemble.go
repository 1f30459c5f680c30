package analysis

import (
	"context"

	"github.com/YoWuwuuuw/github-repo-report-bot/internal/core/model"
	"github.com/YoWuwuuuw/github-repo-report-bot/internal/integrations/scorer"
	"github.com/YoWuwuuuw/github-repo-report-bot/internal/timewindow"
)

// Caps on externally supplied text carried into analysis records.
const (
	maxAISummaryLen           = 200
	maxDiscussionAISummaryLen = 300
	maxReviewCommentLen       = 500
)

// AnalyzeIssues builds the per-issue analysis records. When a configured
// scorer is available its summary replaces the heuristic one, but only if
// the tagged result is usable; a degraded or empty result is silently
// ignored and the heuristic summary stands.
func AnalyzeIssues(ctx context.Context, issues []timewindow.Tagged[model.Issue], sc scorer.Client) []model.IssueAnalysis {
	results := make([]model.IssueAnalysis, 0, len(issues))
	for _, tagged := range issues {
		issue := tagged.Item
		summary := Summarize(issue.Title, issue.Body, DefaultSummaryLen)

		if sc != nil && sc.Configured() {
			enhanced := sc.SummarizeIssue(ctx, scorer.BuildIssueContext(issue.Title, issue.Body))
			if enhanced.Usable() {
				summary = clip(enhanced.Text, maxAISummaryLen)
			}
		}

		results = append(results, model.IssueAnalysis{
			Number:          issue.Number,
			Title:           issue.Title,
			State:           issue.State,
			Labels:          issue.Labels,
			CreatedAt:       issue.CreatedAt,
			ClosedAt:        issue.ClosedAt,
			Author:          issue.Author,
			Assignees:       issue.Assignees,
			Comments:        issue.Comments,
			Category:        string(ClassifyIssueCategory(issue.Title, issue.Body, issue.Labels)),
			Summary:         summary,
			CreatedInPeriod: tagged.CreatedInPeriod,
		})
	}
	return results
}

// AnalyzeDiscussions builds the per-discussion analysis records. The AI
// summary is best-effort: it stays empty when the scorer is missing or the
// call degrades.
func AnalyzeDiscussions(ctx context.Context, discussions []timewindow.Tagged[model.Discussion], sc scorer.Client) []model.DiscussionAnalysis {
	results := make([]model.DiscussionAnalysis, 0, len(discussions))
	for _, tagged := range discussions {
		disc := tagged.Item
		summary := Summarize(disc.Title, disc.Body, DefaultSummaryLen)

		aiSummary := ""
		if sc != nil && sc.Configured() {
			enhanced := sc.SummarizeDiscussion(ctx, scorer.BuildDiscussionContext(disc.Title, disc.Body))
			if enhanced.Usable() {
				aiSummary = clip(enhanced.Text, maxDiscussionAISummaryLen)
			}
		}

		category := disc.Category
		if category == "" {
			category = "general"
		}

		results = append(results, model.DiscussionAnalysis{
			Number:          disc.Number,
			Title:           disc.Title,
			State:           disc.State,
			Labels:          disc.Labels,
			CreatedAt:       disc.CreatedAt,
			UpdatedAt:       disc.UpdatedAt,
			Author:          disc.Author,
			Comments:        disc.Comments,
			Category:        category,
			Summary:         summary,
			AISummary:       aiSummary,
			CreatedInPeriod: tagged.CreatedInPeriod,
		})
	}
	return results
}

// AnalyzePullRequests combines the heuristic classifiers and scores with the
// externally supplied reviews, keyed by PR number. A missing review leaves
// every dimension at zero; the pipeline never fails on it.
func AnalyzePullRequests(prs []timewindow.Tagged[model.PullRequest], reviews map[int]scorer.PRReview) []model.PRAnalysis {
	results := make([]model.PRAnalysis, 0, len(prs))
	for _, tagged := range prs {
		pr := tagged.Item
		prType := DetectPRType(pr.Title, pr.Body, pr.Labels)
		typeScore := TypeScore(prType)
		sizeCategory, sizeScore := SizeCategoryAndScore(pr.Additions, pr.Deletions)

		review := reviews[pr.Number]
		total := CompositeScore(typeScore, sizeScore, review.Scores)

		comment := ""
		if !review.Degraded {
			comment = clip(review.Comment, maxReviewCommentLen)
		}

		results = append(results, model.PRAnalysis{
			Number:          pr.Number,
			Title:           pr.Title,
			State:           pr.State,
			Labels:          pr.Labels,
			CreatedAt:       pr.CreatedAt,
			MergedAt:        pr.MergedAt,
			Author:          pr.Author,
			ChangedFiles:    pr.ChangedFiles,
			Additions:       pr.Additions,
			Deletions:       pr.Deletions,
			Commits:         pr.Commits,
			PRType:          string(prType),
			SizeCategory:    string(sizeCategory),
			Priority:        string(PRPriority(prType)),
			TypeScore:       typeScore,
			SizeScore:       sizeScore,
			Dimensions:      review.Scores,
			TotalScore:      total,
			Rating:          string(RatingFor(total)),
			ReviewComment:   comment,
			CreatedInPeriod: tagged.CreatedInPeriod,
		})
	}
	return results
}

// clip hard-truncates externally supplied text without an ellipsis marker.
func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
