package types

// Issue categories.
const (
	IssueFactual      = "factual"
	IssueStructure    = "structure"
	IssueLanguage     = "language"
	IssueCultural     = "cultural"
	IssueCompleteness = "completeness"
)

// Issue severities.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Quality tiers, ordered best to worst.
const (
	TierExcellent  = "excellent"
	TierGood       = "good"
	TierAcceptable = "acceptable"
	TierPoor       = "poor"
	TierCritical   = "critical"
)

// ValidationIssue is one concrete problem found during verification.
// Issues are append-only within a run and never mutated after creation.
type ValidationIssue struct {
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
	Location    string `json:"location,omitempty"`
	Suggestion  string `json:"suggestion"`
}

// DimensionScore is one named, weighted, [0,100]-bounded sub-score.
type DimensionScore struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Weight float64 `json:"weight"`
}

// QualityReport is the engine's sole output for a guide verification.
type QualityReport struct {
	FactualAccuracy     float64           `json:"factualAccuracy"`
	ContentCompleteness float64           `json:"contentCompleteness"`
	CoherenceScore      float64           `json:"coherenceScore"`
	CulturalSensitivity float64           `json:"culturalSensitivity"`
	OverallQuality      float64           `json:"overallQuality"`
	ConfidenceLevel     float64           `json:"confidenceLevel"`
	QualityTier         string            `json:"qualityTier"`
	Issues              []ValidationIssue `json:"issues"`
	Recommendations     []string          `json:"recommendations"`
	ProcessingTimeMs    int64             `json:"processingTimeMs"`
}

// SemanticAssessment is the Semantic Verifier Adapter's output profile.
// All numeric fields are clamped into [0,100] by the adapter.
type SemanticAssessment struct {
	FactualAccuracy     float64           `json:"factualAccuracy"`
	CoherenceScore      float64           `json:"coherenceScore"`
	CulturalSensitivity float64           `json:"culturalSensitivity"`
	ConfidenceLevel     float64           `json:"confidenceLevel"`
	Issues              []ValidationIssue `json:"issues"`
	Recommendations     []string          `json:"recommendations"`
}

// RealityCheck is the per-chapter plausibility verdict from the semantic
// verifier: Confidence is the confidence that the chapter is NOT real.
type RealityCheck struct {
	IsReal     bool     `json:"isReal"`
	Confidence float64  `json:"confidence"`
	Suggestion string   `json:"suggestion,omitempty"`
	Reasons    []string `json:"reasons,omitempty"`
}
