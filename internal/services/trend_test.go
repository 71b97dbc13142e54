package services

import (
	"testing"

	"github.com/yungbote/guidequality-backend/internal/types"
)

func recordsWithOveralls(overalls ...float64) []*types.QualityRecord {
	out := make([]*types.QualityRecord, len(overalls))
	for i, v := range overalls {
		out[i] = &types.QualityRecord{OverallQuality: v}
	}
	return out
}

func TestClassifyTrend(t *testing.T) {
	cases := []struct {
		name     string
		overalls []float64
		want     string
	}{
		{"no history", nil, types.TrendStable},
		{"single record", []float64{80}, types.TrendStable},
		{"improving", []float64{85, 80, 70}, types.TrendImproving},
		{"declining", []float64{60, 70, 80}, types.TrendDeclining},
		{"exactly plus five is stable", []float64{75, 70}, types.TrendStable},
		{"exactly minus five is stable", []float64{70, 75}, types.TrendStable},
		{"six up is improving", []float64{76, 70}, types.TrendImproving},
	}
	for _, tc := range cases {
		if got := ClassifyTrend(recordsWithOveralls(tc.overalls...)); got != tc.want {
			t.Errorf("%s: trend = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestRiskLevel(t *testing.T) {
	healthy := &types.QualityRecord{
		QualityTier:         types.TierGood,
		FactualAccuracy:     85,
		ContentCompleteness: 80,
		CulturalSensitivity: 80,
	}
	if got := RiskLevel(healthy, types.TrendStable); got != types.RiskLow {
		t.Errorf("healthy risk = %q, want low", got)
	}

	weakFactual := &types.QualityRecord{
		QualityTier:         types.TierAcceptable,
		FactualAccuracy:     65,
		ContentCompleteness: 80,
		CulturalSensitivity: 80,
	}
	if got := RiskLevel(weakFactual, types.TrendStable); got != types.RiskHigh {
		t.Errorf("weak-factual risk = %q, want high", got)
	}
	if got := RiskLevel(weakFactual, types.TrendImproving); got != types.RiskMedium {
		t.Errorf("improving weak-factual risk = %q, want medium", got)
	}

	critical := &types.QualityRecord{
		QualityTier:         types.TierCritical,
		FactualAccuracy:     20,
		ContentCompleteness: 30,
		CulturalSensitivity: 40,
	}
	if got := RiskLevel(critical, types.TrendDeclining); got != types.RiskCritical {
		t.Errorf("critical risk = %q, want critical", got)
	}

	if got := RiskLevel(nil, types.TrendStable); got != types.RiskHigh {
		t.Errorf("missing record risk = %q, want high", got)
	}
}
