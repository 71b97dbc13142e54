package services

import (
	"github.com/yungbote/guidequality-backend/internal/types"
)

// ClassifyTrend compares the newest overall score against the oldest of
// the recent window (records ordered newest first). Movement of more than
// five points either way counts as a trend.
func ClassifyTrend(records []*types.QualityRecord) string {
	if len(records) < 2 {
		return types.TrendStable
	}
	newest := records[0].OverallQuality
	oldest := records[len(records)-1].OverallQuality
	diff := newest - oldest
	switch {
	case diff > 5:
		return types.TrendImproving
	case diff < -5:
		return types.TrendDeclining
	default:
		return types.TrendStable
	}
}

// RiskLevel grades how urgently a location's content needs attention. The
// tier sets the baseline, weak component scores escalate it, and a clear
// trend shifts it one step.
func RiskLevel(record *types.QualityRecord, trend string) string {
	if record == nil {
		return types.RiskHigh
	}

	level := 0
	switch record.QualityTier {
	case types.TierExcellent:
		level = 0
	case types.TierGood:
		level = 0
	case types.TierAcceptable:
		level = 1
	case types.TierPoor:
		level = 2
	default:
		level = 3
	}

	if record.FactualAccuracy < 70 {
		level++
	}
	if record.ContentCompleteness < 60 {
		level++
	}
	if record.CulturalSensitivity < 60 {
		level++
	}

	switch trend {
	case types.TrendImproving:
		level--
	case types.TrendDeclining:
		level++
	}

	if level < 0 {
		level = 0
	}
	if level > 3 {
		level = 3
	}
	return [...]string{types.RiskLow, types.RiskMedium, types.RiskHigh, types.RiskCritical}[level]
}
