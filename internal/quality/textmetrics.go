package quality

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yungbote/guidequality-backend/internal/types"
)

// speakerTagRE strips the bold speaker markers so turn length measures
// spoken text only.
var speakerTagRE = regexp.MustCompile(`\*\*[^*]+\*\*`)

func collectMatches(text string, res []*regexp.Regexp) []string {
	out := []string{}
	for _, re := range res {
		out = append(out, re.FindAllString(text, -1)...)
	}
	return out
}

// TextMetricsAnalyzer extracts deterministic pattern statistics from a
// narration script and scores the six conversational-quality dimensions.
// It is a pure function of its input text and configuration: identical
// input always yields identical output, and it performs no I/O.
type TextMetricsAnalyzer struct {
	cfg     Config
	catalog *Catalog
}

func NewTextMetricsAnalyzer(cfg Config, catalog *Catalog) *TextMetricsAnalyzer {
	return &TextMetricsAnalyzer{cfg: cfg, catalog: catalog}
}

// Analyze runs the full conversational profile: raw counts, dimension
// scores, critical errors, warnings and per-dimension recommendations.
// The overall score is the flat unweighted mean of the six dimensions;
// it is deliberately independent of the weighted guide composite.
func (a *TextMetricsAnalyzer) Analyze(script, locale string) (report types.ScriptReport) {
	defer func() {
		if r := recover(); r != nil {
			report = types.ScriptReport{
				Errors: []string{fmt.Sprintf("text metrics analysis failed: %v", r)},
			}
		}
	}()

	patterns := a.catalog.ForLocale(locale)
	analysis := a.extract(script, patterns)
	dims := a.score(script, analysis, patterns)

	overall := (dims.InformationDensity + dims.ConversationFlow + dims.AudienceEngagement +
		dims.ExpertiseBalance + dims.Naturalness + dims.StyleAlignment) / 6

	report = types.ScriptReport{
		Overall:       math.Round(overall),
		Dimensions:    dims,
		PassesMinimum: overall >= a.cfg.Script.MinOverall,
		Errors:        a.criticalErrors(script, analysis),
		Warnings:      a.warnings(dims),
		Suggestions:   a.suggestions(dims),
		Analysis:      analysis,
	}
	report.Recommendations = scriptRecommendations(dims, a.cfg)
	return report
}

func (a *TextMetricsAnalyzer) extract(script string, p *PatternSet) types.ScriptAnalysis {
	hostTurns := 0
	guestTurns := 0
	if p.HostTag != nil {
		hostTurns = len(p.HostTag.FindAllString(script, -1))
	}
	if p.GuestTag != nil {
		guestTurns = len(p.GuestTag.FindAllString(script, -1))
	}

	factCount := 0
	for _, re := range p.Facts {
		factCount += len(re.FindAllString(script, -1))
	}

	engagement := collectMatches(script, p.Engagement)
	surprise := collectMatches(script, p.Surprise)
	connectors := collectMatches(script, p.Connectors)
	technical := collectMatches(script, p.TechnicalTerms)

	// Speaker tags are stripped before measuring spoken length.
	spoken := utf8.RuneCountInString(speakerTagRE.ReplaceAllString(script, ""))
	totalTurns := hostTurns + guestTurns
	avgTurn := 0
	if totalTurns > 0 {
		avgTurn = spoken / totalTurns
	}

	return types.ScriptAnalysis{
		CharCount:         utf8.RuneCountInString(script),
		HostTurns:         hostTurns,
		GuestTurns:        guestTurns,
		AverageTurnLength: avgTurn,
		FactCount:         factCount,
		QuestionCount:     strings.Count(script, "?"),
		EngagementPhrases: engagement,
		SurpriseElements:  surprise,
		ConnectorWords:    connectors,
		TechnicalTerms:    technical,
	}
}

func (a *TextMetricsAnalyzer) score(script string, analysis types.ScriptAnalysis, p *PatternSet) types.ScriptDimensions {
	std := a.cfg.Script
	kilochars := float64(analysis.CharCount) / 1000

	density := 0.0
	if kilochars > 0 && std.MinInfoDensity > 0 {
		density = math.Min(100, (float64(analysis.FactCount)/kilochars)/std.MinInfoDensity*100)
	}

	flow := 100.0
	if analysis.AverageTurnLength > std.MaxTurnLength {
		flow -= math.Min(30, float64(analysis.AverageTurnLength-std.MaxTurnLength)*0.5)
	}
	if kilochars > 0 {
		connectorDensity := float64(len(analysis.ConnectorWords)) / kilochars
		if connectorDensity < std.MinConnectorDensity {
			flow -= 15
		}
	}
	totalTurns := analysis.HostTurns + analysis.GuestTurns
	if totalTurns > 0 {
		questionRatio := float64(analysis.QuestionCount) / float64(totalTurns)
		if questionRatio < std.MinQuestionRatio {
			flow -= 10
		}
	}
	flow = math.Max(0, flow)

	engagementScore := 0.0
	if std.MinEngagementCount > 0 {
		engagementScore = math.Min(100, float64(len(analysis.EngagementPhrases))/float64(std.MinEngagementCount)*100)
	}

	balance := 0.0
	if analysis.HostTurns > 0 && analysis.GuestTurns > 0 {
		lo := math.Min(float64(analysis.HostTurns), float64(analysis.GuestTurns))
		hi := math.Max(float64(analysis.HostTurns), float64(analysis.GuestTurns))
		balance = math.Min(100, (lo/hi)/std.IdealSpeakerRatio*100)
	}

	naturalWords := 0
	for _, w := range analysis.ConnectorWords {
		if p.NaturalWords[strings.ToLower(strings.TrimSpace(w))] {
			naturalWords++
		}
	}
	uniqueEmotions := map[string]bool{}
	for _, w := range analysis.SurpriseElements {
		uniqueEmotions[strings.ToLower(w)] = true
	}
	naturalness := math.Min(30, float64(len(uniqueEmotions))/5*30)
	if std.MinSurpriseCount > 0 {
		naturalness += math.Min(40, float64(len(analysis.SurpriseElements))/float64(std.MinSurpriseCount)*40)
	}
	if std.MinNaturalWords > 0 {
		naturalness += math.Min(30, float64(naturalWords)/float64(std.MinNaturalWords)*30)
	}

	styleMarkers := 0
	for _, re := range p.StyleMarkers {
		styleMarkers += len(re.FindAllString(script, -1))
	}
	layering := 0.0
	for _, re := range p.Layering {
		layering += float64(len(re.FindAllString(script, -1))) * 15
	}
	style := math.Min(50, float64(styleMarkers)*5) + math.Min(50, layering)

	return types.ScriptDimensions{
		InformationDensity: math.Round(density),
		ConversationFlow:   math.Round(flow),
		AudienceEngagement: math.Round(engagementScore),
		ExpertiseBalance:   math.Round(balance),
		Naturalness:        math.Round(naturalness),
		StyleAlignment:     math.Round(style),
	}
}

func (a *TextMetricsAnalyzer) criticalErrors(script string, analysis types.ScriptAnalysis) []string {
	errs := []string{}
	if analysis.HostTurns == 0 && analysis.GuestTurns == 0 {
		errs = append(errs, "no speaker tags found; dialogue must mark both speakers")
	} else {
		if analysis.HostTurns == 0 {
			errs = append(errs, "the host never speaks")
		}
		if analysis.GuestTurns == 0 {
			errs = append(errs, "the expert never speaks")
		}
	}
	if analysis.CharCount < a.cfg.Script.MinScriptLength {
		errs = append(errs, fmt.Sprintf("script is too short: %d chars, minimum %d", analysis.CharCount, a.cfg.Script.MinScriptLength))
	}
	if analysis.FactCount < a.cfg.Script.MinFactCount {
		errs = append(errs, fmt.Sprintf("not enough concrete facts: %d, minimum %d", analysis.FactCount, a.cfg.Script.MinFactCount))
	}
	return errs
}

func (a *TextMetricsAnalyzer) warnings(dims types.ScriptDimensions) []string {
	warns := []string{}
	if dims.InformationDensity < 60 {
		warns = append(warns, "information density is low; include more concrete facts")
	}
	if dims.AudienceEngagement < 50 {
		warns = append(warns, "the script rarely addresses the audience")
	}
	if dims.Naturalness < 60 {
		warns = append(warns, "the dialogue reads stiff; add interjections and reactions")
	}
	if dims.ExpertiseBalance < 50 {
		warns = append(warns, "speaker turns are unbalanced")
	}
	return warns
}

func (a *TextMetricsAnalyzer) suggestions(dims types.ScriptDimensions) []string {
	out := []string{}
	if dims.StyleAlignment < 80 {
		out = append(out, "Lean into the layered reveal style: open with a basic fact, then an elaboration, then the surprising detail")
	}
	if dims.ConversationFlow < 70 {
		out = append(out, "Shorten individual turns and use natural connector words between them")
	}
	if dims.InformationDensity < 70 {
		out = append(out, "Raise information density with specific numbers, dates and sizes")
	}
	return out
}
