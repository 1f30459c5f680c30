package analysis

import (
	"math"

	"github.com/YoWuwuuuw/github-repo-report-bot/internal/core/model"
)

// SizeCategory buckets a pull request by total changed lines.
type SizeCategory string

const (
	SizeSmall  SizeCategory = "small"
	SizeMedium SizeCategory = "medium"
	SizeLarge  SizeCategory = "large"
)

// Priority ranks a pull request for review ordering.
type Priority string

const (
	PriorityP1 Priority = "P1"
	PriorityP2 Priority = "P2"
	PriorityP3 Priority = "P3"
	PriorityP4 Priority = "P4"
)

// Rating is the qualitative tier derived from the composite score.
type Rating string

const (
	RatingExcellent Rating = "excellent"
	RatingGood      Rating = "good"
	RatingFair      Rating = "fair"
)

// Composite score weights. Type and size are minor tie-breakers (10%
// combined); the six external dimensions dominate equally (90% combined).
// Downstream rating thresholds assume this exact split.
const (
	weightType      = 0.05
	weightSize      = 0.05
	weightDimension = 0.15
)

// TypeScore maps a PR type to its heuristic score on a 0-10 scale.
func TypeScore(prType PRType) int {
	switch prType {
	case PRTypeFeat:
		return 10
	case PRTypeOpt:
		return 8
	case PRTypeFix:
		return 6
	case PRTypeTest:
		return 4
	case PRTypeDocs:
		return 5
	default:
		return 5
	}
}

// SizeCategoryAndScore buckets a change by additions+deletions. Fewer than 50
// lines is small, 50 through 200 inclusive is medium, above 200 is large.
// The thresholds are load-bearing for report bucketing.
func SizeCategoryAndScore(additions, deletions int) (SizeCategory, int) {
	lines := additions + deletions
	switch {
	case lines < 50:
		return SizeSmall, 5
	case lines <= 200:
		return SizeMedium, 7
	default:
		return SizeLarge, 9
	}
}

// PRPriority maps a PR type to its review priority.
func PRPriority(prType PRType) Priority {
	switch prType {
	case PRTypeFeat:
		return PriorityP1
	case PRTypeOpt:
		return PriorityP2
	case PRTypeFix, PRTypeDocs:
		return PriorityP3
	case PRTypeTest:
		return PriorityP4
	default:
		return PriorityP3
	}
}

// CompositeScore blends the heuristic type and size scores with the six
// external dimension scores. Every input is on a 0-10 scale; each is scaled
// to 0-100 and weighted, and the sum is rounded to one decimal place. With
// inputs in range the result is always within [0, 100].
func CompositeScore(typeScore, sizeScore int, d model.DimensionScores) float64 {
	total := float64(typeScore)*10*weightType +
		float64(sizeScore)*10*weightSize +
		float64(d.CodeQuality)*10*weightDimension +
		float64(d.TestCoverage)*10*weightDimension +
		float64(d.DocMaintain)*10*weightDimension +
		float64(d.ComplianceSecurity)*10*weightDimension +
		float64(d.MergeHistory)*10*weightDimension +
		float64(d.Collaboration)*10*weightDimension
	return math.Round(total*10) / 10
}

// RatingFor tiers a composite score. The upper bounds are strict: exactly 80
// is good, exactly 60 is fair.
func RatingFor(totalScore float64) Rating {
	switch {
	case totalScore > 80:
		return RatingExcellent
	case totalScore > 60:
		return RatingGood
	default:
		return RatingFair
	}
}
