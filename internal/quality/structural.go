package quality

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/guidequality-backend/internal/types"
)

// StructuralResult is the structural validator's contribution to a report.
type StructuralResult struct {
	ContentCompleteness float64
	Issues              []types.ValidationIssue
	Recommendations     []string
}

// StructuralValidator verifies schema completeness and flags implausible
// chapters. It is total: any internal panic is converted into a single
// critical issue with a zeroed score.
type StructuralValidator struct {
	cfg     Config
	catalog *Catalog
}

func NewStructuralValidator(cfg Config, catalog *Catalog) *StructuralValidator {
	return &StructuralValidator{cfg: cfg, catalog: catalog}
}

// Validate scores schema completeness starting from 100 and deducting the
// configured penalty per defect. The verifier, when non-nil, is consulted
// for per-chapter reality checks; any failure there falls back to the
// locale's suspicious-pattern set.
func (v *StructuralValidator) Validate(ctx context.Context, doc types.GuideDocument, expectedElements []string, verifier SemanticVerifier) (result StructuralResult) {
	defer func() {
		if r := recover(); r != nil {
			result = StructuralResult{
				ContentCompleteness: 0,
				Issues: []types.ValidationIssue{{
					Category:    types.IssueStructure,
					Severity:    types.SeverityCritical,
					Description: fmt.Sprintf("structural analysis failed: %v", r),
					Suggestion:  "check the guide document format",
				}},
			}
		}
	}()

	score := 100.0
	issues := []types.ValidationIssue{}
	recommendations := []string{}
	patterns := v.catalog.ForLocale(doc.Language)

	if len(doc.Chapters) == 0 {
		score -= v.cfg.Penalties.MissingChapters
		issues = append(issues, types.ValidationIssue{
			Category:    types.IssueStructure,
			Severity:    types.SeverityHigh,
			Description: "the guide has no chapters",
			Suggestion:  "add at least one chapter",
		})
	}

	for i, ch := range doc.Chapters {
		if strings.TrimSpace(ch.Title) == "" {
			score -= v.cfg.Penalties.EmptyTitle
			issues = append(issues, types.ValidationIssue{
				Category:    types.IssueCompleteness,
				Severity:    types.SeverityMedium,
				Description: fmt.Sprintf("chapter %d has an empty title", i+1),
				Location:    fmt.Sprintf("chapters[%d].title", i),
				Suggestion:  "add a chapter title",
			})
		}
		if len(strings.TrimSpace(ch.Content)) < v.cfg.MinContentLength {
			score -= v.cfg.Penalties.ShortContent
			issues = append(issues, types.ValidationIssue{
				Category:    types.IssueCompleteness,
				Severity:    types.SeverityMedium,
				Description: fmt.Sprintf("chapter %d content is too short", i+1),
				Location:    fmt.Sprintf("chapters[%d].content", i),
				Suggestion:  "expand the chapter content",
			})
		}
		if penalty, issue := v.checkChapterReality(ctx, doc, i, ch, patterns, verifier); penalty > 0 {
			score -= penalty
			issues = append(issues, issue)
		}
	}

	if doc.MissingMetadata {
		score -= v.cfg.Penalties.MissingMetadata
		issues = append(issues, types.ValidationIssue{
			Category:    types.IssueCompleteness,
			Severity:    types.SeverityMedium,
			Description: "basic metadata is missing",
			Suggestion:  "add location and overview fields",
		})
	}

	for _, element := range expectedElements {
		if element == "" {
			continue
		}
		if !strings.Contains(doc.Serialized, strings.ToLower(element)) {
			score -= v.cfg.Penalties.MissingElement
			issues = append(issues, types.ValidationIssue{
				Category:    types.IssueCompleteness,
				Severity:    types.SeverityLow,
				Description: fmt.Sprintf("expected element %q is missing", element),
				Suggestion:  fmt.Sprintf("add information about %s", element),
			})
		}
	}

	if score < 90 {
		recommendations = append(recommendations, "Add the missing required fields to improve completeness")
	}
	for _, issue := range issues {
		if issue.Category == types.IssueStructure {
			recommendations = append(recommendations, "Restructure the guide to match the standard format")
			break
		}
	}

	if score < 0 {
		score = 0
	}
	return StructuralResult{
		ContentCompleteness: score,
		Issues:              issues,
		Recommendations:     recommendations,
	}
}

// checkChapterReality asks the semantic verifier whether a chapter refers
// to something real, degrading to the local suspicious-pattern catalog
// when the verifier is absent, errors, or the deadline has passed.
func (v *StructuralValidator) checkChapterReality(ctx context.Context, doc types.GuideDocument, idx int, ch types.Chapter, patterns *PatternSet, verifier SemanticVerifier) (float64, types.ValidationIssue) {
	title := strings.TrimSpace(ch.Title)
	if title == "" {
		return 0, types.ValidationIssue{}
	}

	if verifier != nil && ctx.Err() == nil {
		check, err := verifier.CheckChapterReality(ctx, title, doc.Location)
		if err == nil {
			if !check.IsReal && check.Confidence > v.cfg.RealityHighConf {
				suggestion := check.Suggestion
				if suggestion == "" {
					suggestion = "replace it with a place that actually exists"
				}
				return v.cfg.Penalties.RealityHigh, types.ValidationIssue{
					Category:    types.IssueFactual,
					Severity:    types.SeverityHigh,
					Description: fmt.Sprintf("chapter %q is unlikely to refer to a real place", title),
					Location:    fmt.Sprintf("chapters[%d].title", idx),
					Suggestion:  suggestion,
				}
			}
			if !check.IsReal && check.Confidence > v.cfg.RealityMediumConf {
				return v.cfg.Penalties.RealityMedium, types.ValidationIssue{
					Category:    types.IssueFactual,
					Severity:    types.SeverityMedium,
					Description: fmt.Sprintf("chapter %q may not refer to a real place", title),
					Location:    fmt.Sprintf("chapters[%d].title", idx),
					Suggestion:  "double-check that this place exists",
				}
			}
			return 0, types.ValidationIssue{}
		}
	}

	// Pattern fallback when the verifier is unavailable.
	if patterns != nil {
		for _, re := range patterns.Suspicious {
			if re.MatchString(title) {
				return v.cfg.Penalties.SuspiciousPattern, types.ValidationIssue{
					Category:    types.IssueFactual,
					Severity:    types.SeverityMedium,
					Description: fmt.Sprintf("chapter %q matches a suspicious naming pattern", title),
					Location:    fmt.Sprintf("chapters[%d].title", idx),
					Suggestion:  "use a concrete, verifiable place name",
				}
			}
		}
	}
	return 0, types.ValidationIssue{}
}
