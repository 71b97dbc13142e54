package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QualityRecord is the persisted form of one verification run, kept for
// history and trend analysis.
type QualityRecord struct {
	ID                  uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	LocationName        string         `gorm:"column:location_name;index:idx_quality_record_loc_lang" json:"locationName"`
	Language            string         `gorm:"column:language;index:idx_quality_record_loc_lang" json:"language"`
	FactualAccuracy     float64        `gorm:"column:factual_accuracy" json:"factualAccuracy"`
	ContentCompleteness float64        `gorm:"column:content_completeness" json:"contentCompleteness"`
	CoherenceScore      float64        `gorm:"column:coherence_score" json:"coherenceScore"`
	CulturalSensitivity float64        `gorm:"column:cultural_sensitivity" json:"culturalSensitivity"`
	OverallQuality      float64        `gorm:"column:overall_quality" json:"overallQuality"`
	ConfidenceLevel     float64        `gorm:"column:confidence_level" json:"confidenceLevel"`
	QualityTier         string         `gorm:"column:quality_tier" json:"qualityTier"`
	Issues              datatypes.JSON `gorm:"column:detected_issues" json:"issues"`
	Recommendations     datatypes.JSON `gorm:"column:recommendations" json:"recommendations"`
	VerificationMethod  string         `gorm:"column:verification_method" json:"verificationMethod"`
	ProcessingTimeMs    int64          `gorm:"column:processing_time_ms" json:"processingTimeMs"`
	CreatedAt           time.Time      `gorm:"column:created_at" json:"createdAt"`
}

func (QualityRecord) TableName() string { return "quality_record" }

// Trend values derived from recent history.
const (
	TrendImproving = "improving"
	TrendStable    = "stable"
	TrendDeclining = "declining"
)

// Risk levels derived from tier, weak components and trend.
const (
	RiskLow      = "low"
	RiskMedium   = "medium"
	RiskHigh     = "high"
	RiskCritical = "critical"
)
