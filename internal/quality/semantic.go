package quality

import (
	"context"

	"github.com/yungbote/guidequality-backend/internal/types"
)

// SemanticVerifier abstracts the external evaluator that judges factual
// accuracy, coherence and cultural sensitivity of a whole document, plus a
// per-chapter plausibility check. Implementations may be slow or
// unreliable: the engine bounds every call with a timeout and substitutes
// the conservative fallback profile when a call fails. This is the only
// seam through which the engine performs I/O.
type SemanticVerifier interface {
	AssessDocument(ctx context.Context, doc types.GuideDocument) (types.SemanticAssessment, error)
	CheckChapterReality(ctx context.Context, chapterTitle, location string) (types.RealityCheck, error)
}

// FallbackAssessment is the conservative profile used when the semantic
// verifier is unavailable, times out, or returns garbage. It carries a
// single explanatory issue instead of an error.
func FallbackAssessment(cfg Config) types.SemanticAssessment {
	return types.SemanticAssessment{
		FactualAccuracy:     cfg.DefaultScore,
		CoherenceScore:      cfg.DefaultScore,
		CulturalSensitivity: cfg.DefaultScore,
		ConfidenceLevel:     cfg.FallbackConfidence,
		Issues: []types.ValidationIssue{{
			Category:    types.IssueFactual,
			Severity:    types.SeverityMedium,
			Description: "semantic verification was unavailable",
			Suggestion:  "re-run verification once the semantic verifier is reachable",
		}},
		Recommendations: []string{"Perform a manual review of factual claims"},
	}
}

// ClampAssessment forces every numeric field of an assessment into [0,100].
// Missing-field defaulting happens where missing is still observable, in
// the adapter's response parsing.
func ClampAssessment(a types.SemanticAssessment) types.SemanticAssessment {
	a.FactualAccuracy = clamp(a.FactualAccuracy)
	a.CoherenceScore = clamp(a.CoherenceScore)
	a.CulturalSensitivity = clamp(a.CulturalSensitivity)
	a.ConfidenceLevel = clamp(a.ConfidenceLevel)
	return a
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
