package quality

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Weights used by the score composer. They must sum to 1.0.
type Weights struct {
	FactualAccuracy     float64 `yaml:"factualAccuracy"`
	ContentCompleteness float64 `yaml:"contentCompleteness"`
	CoherenceScore      float64 `yaml:"coherenceScore"`
	CulturalSensitivity float64 `yaml:"culturalSensitivity"`
}

// TierBounds are the lower bounds of each quality tier.
type TierBounds struct {
	Excellent  float64 `yaml:"excellent"`
	Good       float64 `yaml:"good"`
	Acceptable float64 `yaml:"acceptable"`
	Poor       float64 `yaml:"poor"`
}

// StructuralPenalties are the completeness-score deductions applied by the
// structural validator.
type StructuralPenalties struct {
	MissingMetadata   float64 `yaml:"missingMetadata"`
	MissingChapters   float64 `yaml:"missingChapters"`
	EmptyTitle        float64 `yaml:"emptyTitle"`
	ShortContent      float64 `yaml:"shortContent"`
	RealityHigh       float64 `yaml:"realityHigh"`
	RealityMedium     float64 `yaml:"realityMedium"`
	SuspiciousPattern float64 `yaml:"suspiciousPattern"`
	MissingElement    float64 `yaml:"missingElement"`
}

// ScriptStandards are the thresholds of the conversational-style profile.
type ScriptStandards struct {
	MinOverall          float64 `yaml:"minOverall"`
	MinInfoDensity      float64 `yaml:"minInfoDensity"`
	MaxTurnLength       int     `yaml:"maxTurnLength"`
	MinEngagementCount  int     `yaml:"minEngagementCount"`
	MinSurpriseCount    int     `yaml:"minSurpriseCount"`
	IdealSpeakerRatio   float64 `yaml:"idealSpeakerRatio"`
	MinNaturalWords     int     `yaml:"minNaturalWords"`
	MinConnectorDensity float64 `yaml:"minConnectorDensity"`
	MinQuestionRatio    float64 `yaml:"minQuestionRatio"`
	MinScriptLength     int     `yaml:"minScriptLength"`
	MinFactCount        int     `yaml:"minFactCount"`
}

// Config carries every numeric constant of the engine. It is immutable
// after construction and injected into the analyzers and the composer so
// tests can run with alternate configurations.
type Config struct {
	Weights             Weights             `yaml:"weights"`
	TierBounds          TierBounds          `yaml:"tierBounds"`
	Penalties           StructuralPenalties `yaml:"penalties"`
	Script              ScriptStandards     `yaml:"script"`
	MinContentLength    int                 `yaml:"minContentLength"`
	SemanticTimeout     time.Duration       `yaml:"-"`
	SemanticTimeoutSec  int                 `yaml:"semanticTimeoutSeconds"`
	RealityHighConf     float64             `yaml:"realityHighConf"`
	RealityMediumConf   float64             `yaml:"realityMediumConf"`
	NeedsImprovement    float64             `yaml:"needsImprovement"`
	HighPriorityBelow   float64             `yaml:"highPriorityBelow"`
	DefaultScore        float64             `yaml:"defaultScore"`
	DefaultConfidence   float64             `yaml:"defaultConfidence"`
	FallbackConfidence  float64             `yaml:"fallbackConfidence"`
	DefaultLocale       string              `yaml:"defaultLocale"`
}

// DefaultConfig mirrors the thresholds the production validators shipped
// with. Weights sum to 1.0.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			FactualAccuracy:     0.35,
			ContentCompleteness: 0.25,
			CoherenceScore:      0.20,
			CulturalSensitivity: 0.20,
		},
		TierBounds: TierBounds{
			Excellent:  90,
			Good:       75,
			Acceptable: 60,
			Poor:       40,
		},
		Penalties: StructuralPenalties{
			MissingMetadata:   15,
			MissingChapters:   25,
			EmptyTitle:        5,
			ShortContent:      10,
			RealityHigh:       15,
			RealityMedium:     8,
			SuspiciousPattern: 10,
			MissingElement:    5,
		},
		Script: ScriptStandards{
			MinOverall:          75,
			MinInfoDensity:      8,
			MaxTurnLength:       150,
			MinEngagementCount:  5,
			MinSurpriseCount:    3,
			IdealSpeakerRatio:   0.6,
			MinNaturalWords:     8,
			MinConnectorDensity: 5,
			MinQuestionRatio:    0.3,
			MinScriptLength:     1000,
			MinFactCount:        3,
		},
		MinContentLength:   50,
		SemanticTimeout:    25 * time.Second,
		SemanticTimeoutSec: 25,
		RealityHighConf:    0.7,
		RealityMediumConf:  0.5,
		NeedsImprovement:   70,
		HighPriorityBelow:  50,
		DefaultScore:       50,
		DefaultConfidence:  70,
		FallbackConfidence: 20,
		DefaultLocale:      "ko",
	}
}

// LoadConfigFile overlays a YAML file on top of the defaults. Unset fields
// keep their default values.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read quality config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse quality config: %w", err)
	}
	if cfg.SemanticTimeoutSec > 0 {
		cfg.SemanticTimeout = time.Duration(cfg.SemanticTimeoutSec) * time.Second
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// Validate rejects configs whose composer weights do not sum to 1.0.
func (c Config) Validate() error {
	sum := c.Weights.FactualAccuracy + c.Weights.ContentCompleteness +
		c.Weights.CoherenceScore + c.Weights.CulturalSensitivity
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("composer weights sum to %.3f, want 1.0", sum)
	}
	return nil
}
