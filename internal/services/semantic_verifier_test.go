package services

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/guidequality-backend/internal/logger"
	"github.com/yungbote/guidequality-backend/internal/quality"
	"github.com/yungbote/guidequality-backend/internal/types"
)

type fakeGemini struct {
	obj map[string]any
	err error
}

func (f *fakeGemini) GenerateJSON(ctx context.Context, system, user string) (map[string]any, error) {
	return f.obj, f.err
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func TestAssessDocumentParsesReply(t *testing.T) {
	client := &fakeGemini{obj: map[string]any{
		"factualAccuracy":     88.0,
		"coherenceScore":      91.0,
		"culturalSensitivity": 79.0,
		"confidenceLevel":     85.0,
		"issues": []any{
			map[string]any{"category": "cultural", "severity": "low", "description": "minor phrasing", "suggestion": "soften it"},
			map[string]any{"category": "factual"}, // no description, dropped
		},
		"recommendations": []any{"Double-check the founding year", 7.0},
	}}
	v := NewGeminiVerifier(client, quality.DefaultConfig(), testLogger(t))

	a, err := v.AssessDocument(context.Background(), types.GuideDocument{Location: "Gyeongju", Language: "ko"})
	if err != nil {
		t.Fatalf("AssessDocument: %v", err)
	}
	if a.FactualAccuracy != 88 || a.CoherenceScore != 91 || a.CulturalSensitivity != 79 {
		t.Fatalf("scores = %+v", a)
	}
	if len(a.Issues) != 1 || a.Issues[0].Category != types.IssueCultural {
		t.Fatalf("issues = %+v", a.Issues)
	}
	if len(a.Recommendations) != 1 || a.Recommendations[0] != "Double-check the founding year" {
		t.Fatalf("recommendations = %v", a.Recommendations)
	}
}

func TestAssessDocumentDefaultsMissingScores(t *testing.T) {
	client := &fakeGemini{obj: map[string]any{
		"factualAccuracy": 82.0,
	}}
	v := NewGeminiVerifier(client, quality.DefaultConfig(), testLogger(t))

	a, err := v.AssessDocument(context.Background(), types.GuideDocument{})
	if err != nil {
		t.Fatalf("AssessDocument: %v", err)
	}
	if a.FactualAccuracy != 82 {
		t.Fatalf("factual = %v", a.FactualAccuracy)
	}
	if a.CoherenceScore != 50 || a.CulturalSensitivity != 50 {
		t.Fatalf("missing scores not defaulted to 50: %+v", a)
	}
	if a.ConfidenceLevel != 70 {
		t.Fatalf("confidence = %v, want default 70", a.ConfidenceLevel)
	}
}

func TestAssessDocumentParseFailureProfile(t *testing.T) {
	client := &fakeGemini{obj: map[string]any{"verdict": "looks fine"}}
	v := NewGeminiVerifier(client, quality.DefaultConfig(), testLogger(t))

	a, err := v.AssessDocument(context.Background(), types.GuideDocument{})
	if err != nil {
		t.Fatalf("AssessDocument: %v", err)
	}
	if a.FactualAccuracy != 60 || a.CoherenceScore != 60 || a.CulturalSensitivity != 70 {
		t.Fatalf("parse-failure profile = %+v", a)
	}
	if a.ConfidenceLevel != 30 {
		t.Fatalf("confidence = %v, want 30", a.ConfidenceLevel)
	}
	if len(a.Issues) != 1 {
		t.Fatalf("issues = %+v", a.Issues)
	}
}

func TestAssessDocumentClampsOutOfRange(t *testing.T) {
	client := &fakeGemini{obj: map[string]any{
		"factualAccuracy":     140.0,
		"coherenceScore":      -12.0,
		"culturalSensitivity": 70.0,
		"confidenceLevel":     110.0,
	}}
	v := NewGeminiVerifier(client, quality.DefaultConfig(), testLogger(t))

	a, err := v.AssessDocument(context.Background(), types.GuideDocument{})
	if err != nil {
		t.Fatalf("AssessDocument: %v", err)
	}
	if a.FactualAccuracy != 100 || a.CoherenceScore != 0 || a.ConfidenceLevel != 100 {
		t.Fatalf("clamping failed: %+v", a)
	}
}

func TestAssessDocumentPropagatesTransportError(t *testing.T) {
	client := &fakeGemini{err: errors.New("dial timeout")}
	v := NewGeminiVerifier(client, quality.DefaultConfig(), testLogger(t))
	if _, err := v.AssessDocument(context.Background(), types.GuideDocument{}); err == nil {
		t.Fatal("transport errors must surface so the engine can degrade")
	}
}

func TestCheckChapterReality(t *testing.T) {
	client := &fakeGemini{obj: map[string]any{
		"isReal":     false,
		"confidence": 1.4,
		"suggestion": " Gyeongbokgung ",
		"reasons":    []any{"no such palace in records"},
	}}
	v := NewGeminiVerifier(client, quality.DefaultConfig(), testLogger(t))

	check, err := v.CheckChapterReality(context.Background(), "Crystal Sky Palace", "Seoul")
	if err != nil {
		t.Fatalf("CheckChapterReality: %v", err)
	}
	if check.IsReal {
		t.Fatal("IsReal = true, want false")
	}
	if check.Confidence != 1 {
		t.Fatalf("confidence = %v, want clamped 1", check.Confidence)
	}
	if check.Suggestion != "Gyeongbokgung" {
		t.Fatalf("suggestion = %q", check.Suggestion)
	}
	if len(check.Reasons) != 1 {
		t.Fatalf("reasons = %v", check.Reasons)
	}
}
