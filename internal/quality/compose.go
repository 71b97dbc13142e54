package quality

import (
	"math"

	"github.com/yungbote/guidequality-backend/internal/types"
)

// ScoreComposer folds the structural and semantic results into the final
// report. Scores are combined with the configured weights, so a change to
// the weighting never touches the analyzers.
type ScoreComposer struct {
	cfg Config
}

func NewScoreComposer(cfg Config) *ScoreComposer {
	return &ScoreComposer{cfg: cfg}
}

// Compose merges the two assessments. Structural issues come first in the
// merged report, then semantic ones, each in arrival order. A semantic
// score of zero is kept as zero; only scores the assessment never carried
// default to the neutral midpoint, which the adapter handles at parse
// time.
func (c *ScoreComposer) Compose(structural StructuralResult, semantic types.SemanticAssessment) types.QualityReport {
	factual := clamp(semantic.FactualAccuracy)
	completeness := clamp(structural.ContentCompleteness)
	coherence := clamp(semantic.CoherenceScore)
	cultural := clamp(semantic.CulturalSensitivity)

	overall := factual*c.cfg.Weights.FactualAccuracy +
		completeness*c.cfg.Weights.ContentCompleteness +
		coherence*c.cfg.Weights.CoherenceScore +
		cultural*c.cfg.Weights.CulturalSensitivity
	overall = math.Round(clamp(overall))

	issues := make([]types.ValidationIssue, 0, len(structural.Issues)+len(semantic.Issues))
	issues = append(issues, structural.Issues...)
	issues = append(issues, semantic.Issues...)

	recs := NewOrderedSet()
	for _, r := range structural.Recommendations {
		recs.Add(r)
	}
	for _, r := range semantic.Recommendations {
		recs.Add(r)
	}
	dims := []types.DimensionScore{
		{Name: "factualAccuracy", Value: factual, Weight: c.cfg.Weights.FactualAccuracy},
		{Name: "contentCompleteness", Value: completeness, Weight: c.cfg.Weights.ContentCompleteness},
		{Name: "coherenceScore", Value: coherence, Weight: c.cfg.Weights.CoherenceScore},
		{Name: "culturalSensitivity", Value: cultural, Weight: c.cfg.Weights.CulturalSensitivity},
	}
	SynthesizeRecommendations(recs, dims, c.cfg)

	confidence := semantic.ConfidenceLevel
	if confidence <= 0 {
		confidence = c.cfg.DefaultConfidence
	}

	return types.QualityReport{
		FactualAccuracy:     factual,
		ContentCompleteness: completeness,
		CoherenceScore:      coherence,
		CulturalSensitivity: cultural,
		OverallQuality:      overall,
		ConfidenceLevel:     clamp(confidence),
		QualityTier:         c.Classify(overall),
		Issues:              issues,
		Recommendations:     recs.Values(),
	}
}

// Classify maps an overall score onto the tier ladder.
func (c *ScoreComposer) Classify(overall float64) string {
	b := c.cfg.TierBounds
	switch {
	case overall >= b.Excellent:
		return types.TierExcellent
	case overall >= b.Good:
		return types.TierGood
	case overall >= b.Acceptable:
		return types.TierAcceptable
	case overall >= b.Poor:
		return types.TierPoor
	default:
		return types.TierCritical
	}
}
