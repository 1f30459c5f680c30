package scorer

import "fmt"

// Every prompt forbids link generation: rewritten references (Issue-123,
// PR-123) must stay plain text so the published report cannot accidentally
// link unrelated items.
const noLinksInstruction = `**Important - never generate links**:
- Never use Markdown link syntax such as [text](url) or [#123](url).
- Never use GitHub reference syntax such as #123, owner/repo#123, issue #123, PR #123 or apache#123.
- When you need to mention an Issue, PR or Discussion, use plain-text tokens such as Issue-123, PR-123 or Discussion-123 (hyphen, no hash sign).
- Do not produce any form of link or reference, only plain-text descriptions.`

const prReviewSystemPrompt = `You are a senior code review expert skilled at judging the quality, value and importance of pull requests. Analyze the PR's code changes, type, blast radius and the problem it solves, and score each dimension from 0 to 10.

**Baseline quality dimensions** (score the first four objectively and evenhandedly):
- code_quality_score: code quality (style, readability, design, best practices)
- test_coverage_score: test coverage (unit tests, integration tests, edge cases)
- doc_maintain_score: documentation and maintainability (comments, doc updates, maintainability)
- compliance_security_score: compliance and security (vulnerabilities, compliance, dependency safety)

**Value dimensions** (score by PR type and actual situation):
- merge_history_score: blast-radius reasonableness. A high-importance PR with a wide blast radius is reasonable; a low-importance PR touching a lot of code adds review burden without much need and should score low. Consider whether the scope matches the PR's importance, backward compatibility and system impact.
- collaboration_score: PR value and purpose. feat/opt changes usually carry more value, fix depends on the severity of the problem, test/docs are comparatively lower. Also weigh the importance and urgency of the problem solved, business value and whether it addresses something critical.

**Special notes**:
- If the PR is marked WIP (work in progress), do not mark it down for being unfinished; score on its importance and the expected effect once completed.
- A low-importance PR with a wide blast radius (for example a trivial doc/test change touching many files) should get a low blast-radius score.
- A high-importance PR with a wide blast radius (an important feat/opt) deserves a high score when the value matches.

**comment field requirements** (detailed, paragraphed, readable):
Provide a detailed review comment with these parts, separated by blank lines:
1. Core value: the PR's core value and importance (2-3 sentences).
2. Key strengths: highlights in code quality, design or implementation (2-3 sentences).
3. Suggestions: the one or two improvements most worth attention, if any (1-2 sentences).
4. Overall: the overall judgement and expected impact (1-2 sentences).
Keep the whole comment between 200 and 300 words, professional and constructive.

` + noLinksInstruction

func prReviewUserPrompt(prContext string) string {
	return fmt.Sprintf(`Analyze the following pull request, focusing on its value, importance and blast-radius reasonableness:

%s

Return JSON containing every score field (0-10) and a detailed comment. The comment must be paragraphed and between 200 and 300 words, covering core value, key strengths, suggestions and an overall judgement. If this is a WIP PR, score on expected value rather than completeness.

**Strictly forbidden**: any link syntax (such as [#123](url), #123 or apache#123). When mentioning an Issue/PR/Discussion use plain-text tokens such as Issue-123 or PR-123 (hyphen, no hash sign).`, prContext)
}

const discussionSummarySystemPrompt = `You are a technical community analyst skilled at summarizing and explaining discussions. Summarize the discussion's core points, questions or proposals in concise, professional language, within 80 words.

` + noLinksInstruction

func discussionSummaryUserPrompt(discussionContext string) string {
	return fmt.Sprintf(`Summarize the core content of the following discussion:

%s

Return JSON with a "summary" field (at most 80 words).

**Strictly forbidden**: any link syntax. When mentioning an Issue/PR/Discussion use plain-text tokens such as Issue-123 or PR-123.`, discussionContext)
}

const issueSummarySystemPrompt = `You are a technical problem analyst skilled at extracting the core problem of an issue report. Summarize the issue's core problem, error message or request in concise, professional language, removing all template boilerplate (such as "Check Ahead" or "I have searched" checklists), within 100 words. Keep only the real problem description.

` + noLinksInstruction

func issueSummaryUserPrompt(issueContext string) string {
	return fmt.Sprintf(`Extract the core problem of the following issue, removing template boilerplate:

%s

Return JSON with a "summary" field (the core problem, at most 100 words, no template text).

**Strictly forbidden**: any link syntax. When mentioning an Issue/PR/Discussion use plain-text tokens such as Issue-123 or PR-123.`, issueContext)
}

// BuildIssueContext assembles the short context document for issue
// summarization. The body is truncated because only the opening matters for
// extracting the core problem.
func BuildIssueContext(title, body string) string {
	return fmt.Sprintf("Title: %s\nBody: %s", title, truncateRunes(body, 800))
}

// BuildDiscussionContext assembles the short context document for
// discussion summarization.
func BuildDiscussionContext(title, body string) string {
	return fmt.Sprintf("Title: %s\nBody: %s", title, truncateRunes(body, 500))
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
