package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yungbote/guidequality-backend/internal/clients/gemini"
	"github.com/yungbote/guidequality-backend/internal/logger"
	"github.com/yungbote/guidequality-backend/internal/quality"
	"github.com/yungbote/guidequality-backend/internal/types"
)

const assessSystemPrompt = `You are a strict reviewer of location-based travel guides.
Evaluate the guide for factual accuracy, narrative coherence and cultural sensitivity.
Respond with a single JSON object:
{"factualAccuracy": <0-100>, "coherenceScore": <0-100>, "culturalSensitivity": <0-100>,
 "confidenceLevel": <0-100>,
 "issues": [{"category": "factual|cultural|language", "severity": "low|medium|high|critical",
             "description": "...", "suggestion": "..."}],
 "recommendations": ["..."]}`

const realitySystemPrompt = `You verify whether a named place or exhibit really exists at a location.
Respond with a single JSON object:
{"isReal": true|false, "confidence": <0.0-1.0 that it does NOT exist>,
 "suggestion": "a real alternative if not real", "reasons": ["..."]}`

// GeminiVerifier implements the engine's semantic seam on top of the
// Gemini client. It degrades, never escalates: a malformed model reply
// becomes a conservative assessment rather than an error, so the engine
// only sees errors for transport-level failures it can time out on.
type GeminiVerifier struct {
	log    *logger.Logger
	client gemini.Client
	cfg    quality.Config
}

func NewGeminiVerifier(client gemini.Client, cfg quality.Config, log *logger.Logger) *GeminiVerifier {
	return &GeminiVerifier{
		log:    log.With("service", "GeminiVerifier"),
		client: client,
		cfg:    cfg,
	}
}

func (v *GeminiVerifier) AssessDocument(ctx context.Context, doc types.GuideDocument) (types.SemanticAssessment, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return types.SemanticAssessment{}, err
	}
	user := fmt.Sprintf("Location: %s\nLanguage: %s\nGuide document:\n%s", doc.Location, doc.Language, payload)

	obj, err := v.client.GenerateJSON(ctx, assessSystemPrompt, user)
	if err != nil {
		return types.SemanticAssessment{}, err
	}
	return v.parseAssessment(obj), nil
}

// parseAssessment coerces the model's JSON into an assessment. Individual
// missing scores default to the neutral midpoint; a reply that carries no
// usable score at all gets the conservative parse-failure profile.
func (v *GeminiVerifier) parseAssessment(obj map[string]any) types.SemanticAssessment {
	factual, okF := coerceScore(obj["factualAccuracy"])
	coherence, okCo := coerceScore(obj["coherenceScore"])
	cultural, okCu := coerceScore(obj["culturalSensitivity"])
	confidence, okConf := coerceScore(obj["confidenceLevel"])

	if !okF && !okCo && !okCu {
		v.log.Warn("semantic reply carried no scores, using parse-failure profile")
		return types.SemanticAssessment{
			FactualAccuracy:     60,
			CoherenceScore:      60,
			CulturalSensitivity: 70,
			ConfidenceLevel:     30,
			Issues: []types.ValidationIssue{{
				Category:    types.IssueFactual,
				Severity:    types.SeverityMedium,
				Description: "the semantic reply could not be interpreted",
				Suggestion:  "re-run verification",
			}},
		}
	}

	a := types.SemanticAssessment{
		FactualAccuracy:     v.cfg.DefaultScore,
		CoherenceScore:      v.cfg.DefaultScore,
		CulturalSensitivity: v.cfg.DefaultScore,
		ConfidenceLevel:     v.cfg.DefaultConfidence,
	}
	if okF {
		a.FactualAccuracy = factual
	}
	if okCo {
		a.CoherenceScore = coherence
	}
	if okCu {
		a.CulturalSensitivity = cultural
	}
	if okConf {
		a.ConfidenceLevel = confidence
	}
	a.Issues = parseIssues(obj["issues"])
	a.Recommendations = parseStrings(obj["recommendations"])
	return quality.ClampAssessment(a)
}

func (v *GeminiVerifier) CheckChapterReality(ctx context.Context, chapterTitle, location string) (types.RealityCheck, error) {
	user := fmt.Sprintf("Location: %s\nChapter title: %s", location, chapterTitle)
	obj, err := v.client.GenerateJSON(ctx, realitySystemPrompt, user)
	if err != nil {
		return types.RealityCheck{}, err
	}

	check := types.RealityCheck{IsReal: true}
	if b, ok := obj["isReal"].(bool); ok {
		check.IsReal = b
	}
	if f, ok := obj["confidence"].(float64); ok {
		if f < 0 {
			f = 0
		}
		if f > 1 {
			f = 1
		}
		check.Confidence = f
	}
	if s, ok := obj["suggestion"].(string); ok {
		check.Suggestion = strings.TrimSpace(s)
	}
	check.Reasons = parseStrings(obj["reasons"])
	return check, nil
}

func coerceScore(raw any) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case string:
		var f float64
		if _, err := fmt.Sscanf(strings.TrimSpace(n), "%f", &f); err == nil {
			return f, true
		}
	}
	return 0, false
}

func parseIssues(raw any) []types.ValidationIssue {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]types.ValidationIssue, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		issue := types.ValidationIssue{
			Category:    coerceIssueField(m["category"], types.IssueFactual),
			Severity:    coerceIssueField(m["severity"], types.SeverityMedium),
			Description: strings.TrimSpace(coerceIssueField(m["description"], "")),
			Suggestion:  strings.TrimSpace(coerceIssueField(m["suggestion"], "")),
		}
		if issue.Description == "" {
			continue
		}
		out = append(out, issue)
	}
	return out
}

func coerceIssueField(raw any, fallback string) string {
	if s, ok := raw.(string); ok && strings.TrimSpace(s) != "" {
		return strings.TrimSpace(s)
	}
	return fallback
}

func parseStrings(raw any) []string {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}
