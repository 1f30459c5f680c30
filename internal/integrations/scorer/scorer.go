// Package scorer provides the external LLM scoring capability: pull request
// quality reviews and issue/discussion summaries. Every call degrades
// gracefully: a missing API key or a failed call yields a tagged placeholder
// result, never an error the pipeline has to handle.
package scorer

import (
	"context"
	"strings"
	"time"

	"github.com/YoWuwuuuw/github-repo-report-bot/internal/core/model"
)

const callTimeout = 60 * time.Second

// PRReview is the scorer's verdict on a pull request. When Degraded is set
// the scores are zero placeholders and Reason carries the cause; Comment is
// only meaningful on non-degraded results.
type PRReview struct {
	Scores   model.DimensionScores
	Comment  string
	Degraded bool
	Reason   string
}

// Summary is the scorer's short explanation of an issue or discussion.
type Summary struct {
	Text     string
	Degraded bool
	Reason   string
}

// Usable reports whether the summary should replace a heuristic one.
func (s Summary) Usable() bool {
	return !s.Degraded && strings.TrimSpace(s.Text) != ""
}

// Client is the scoring capability the pipeline depends on.
type Client interface {
	ReviewPR(ctx context.Context, prContext string) PRReview
	SummarizeIssue(ctx context.Context, issueContext string) Summary
	SummarizeDiscussion(ctx context.Context, discussionContext string) Summary
	Configured() bool
	Close() error
}

// Scorer implements Client over a JSON-completion backend (Gemini or an
// OpenAI-compatible endpoint) behind a sliding-window rate limit.
type Scorer struct {
	backend backend
	limiter *limiter
}

// New builds a Scorer from config. When no API key is available the returned
// Scorer is unconfigured: every call produces a deterministic placeholder
// without touching the network.
func New(cfg Config) (*Scorer, error) {
	provider, key, err := ResolveProvider(cfg)
	if err != nil {
		// No credentials is not fatal: the pipeline still runs, only poorer.
		return &Scorer{limiter: newLimiter(cfg.MaxRequestsPerMinute)}, nil
	}

	var b backend
	switch provider {
	case ProviderGemini:
		b, err = newGeminiBackend(key, cfg.Model)
		if err != nil {
			return nil, err
		}
	default:
		b = newOpenAIBackend(cfg.BaseURL, key, cfg.Model)
	}

	return &Scorer{
		backend: b,
		limiter: newLimiter(cfg.MaxRequestsPerMinute),
	}, nil
}

// Configured reports whether a real backend is wired up.
func (s *Scorer) Configured() bool {
	return s.backend != nil
}

// Close releases the backend, if any.
func (s *Scorer) Close() error {
	if s.backend == nil {
		return nil
	}
	return s.backend.Close()
}

// ReviewPR scores a pull request on the six quality dimensions (0-10 each)
// and returns a free-text comment.
func (s *Scorer) ReviewPR(ctx context.Context, prContext string) PRReview {
	if s.backend == nil {
		return PRReview{Degraded: true, Reason: "scorer API key not configured; model not called"}
	}

	s.limiter.acquire()
	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	fields, err := s.backend.completeJSON(callCtx, prReviewSystemPrompt, prReviewUserPrompt(prContext))
	if err != nil {
		return PRReview{Degraded: true, Reason: err.Error()}
	}

	return PRReview{
		Scores: model.DimensionScores{
			CodeQuality:        intField(fields, "code_quality_score"),
			TestCoverage:       intField(fields, "test_coverage_score"),
			DocMaintain:        intField(fields, "doc_maintain_score"),
			ComplianceSecurity: intField(fields, "compliance_security_score"),
			MergeHistory:       intField(fields, "merge_history_score"),
			Collaboration:      intField(fields, "collaboration_score"),
		},
		Comment: stringField(fields, "comment"),
	}
}

// SummarizeIssue extracts the core problem of an issue, stripped of template
// boilerplate.
func (s *Scorer) SummarizeIssue(ctx context.Context, issueContext string) Summary {
	return s.summarize(ctx, issueSummarySystemPrompt, issueSummaryUserPrompt(issueContext))
}

// SummarizeDiscussion produces a short explanation of a discussion thread.
func (s *Scorer) SummarizeDiscussion(ctx context.Context, discussionContext string) Summary {
	return s.summarize(ctx, discussionSummarySystemPrompt, discussionSummaryUserPrompt(discussionContext))
}

func (s *Scorer) summarize(ctx context.Context, system, user string) Summary {
	if s.backend == nil {
		return Summary{Degraded: true, Reason: "scorer API key not configured; model not called"}
	}

	s.limiter.acquire()
	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	fields, err := s.backend.completeJSON(callCtx, system, user)
	if err != nil {
		return Summary{Degraded: true, Reason: err.Error()}
	}

	text := stringField(fields, "summary")
	if text == "" {
		text = stringField(fields, "comment")
	}
	return Summary{Text: text}
}

// intField reads a 0-10 score from a decoded JSON object. Missing or
// non-numeric values default to 0; the pipeline never fails on them.
func intField(fields map[string]any, key string) int {
	switch v := fields[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func stringField(fields map[string]any, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}
