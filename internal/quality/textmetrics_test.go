package quality

import (
	"math"
	"reflect"
	"strings"
	"testing"
)

const sampleScript = `**Host:** Welcome everyone! Today we are visiting the museum in Gyeongju. Did you know it opened in 1945?
**Expert:** That's right. And get this, the gold crown on display is 27 cm tall and was excavated in 1973.
**Host:** Wow, amazing! So how heavy is it?
**Expert:** Well, it weighs 1 kg. But here's the interesting part, the curator says it was worn only once.
**Host:** Incredible! Imagine wearing that. Listeners, picture this in your mind.
**Expert:** Actually, the whole collection holds over 30,000 artifacts from the heritage of the Silla kingdom.
`

func TestAnalyzeIsDeterministic(t *testing.T) {
	a := NewTextMetricsAnalyzer(DefaultConfig(), DefaultCatalog("ko"))
	first := a.Analyze(sampleScript, "en")
	second := a.Analyze(sampleScript, "en")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same input produced different reports:\n%+v\n%+v", first, second)
	}
}

func TestAnalyzeCountsTurnsAndFacts(t *testing.T) {
	a := NewTextMetricsAnalyzer(DefaultConfig(), DefaultCatalog("ko"))
	report := a.Analyze(sampleScript, "en")
	if report.Analysis.HostTurns != 3 || report.Analysis.GuestTurns != 3 {
		t.Fatalf("turns = %d/%d, want 3/3", report.Analysis.HostTurns, report.Analysis.GuestTurns)
	}
	if report.Analysis.FactCount < 3 {
		t.Fatalf("fact count = %d, want at least 3", report.Analysis.FactCount)
	}
	if report.Analysis.QuestionCount != 2 {
		t.Fatalf("question count = %d, want 2", report.Analysis.QuestionCount)
	}
	if report.Dimensions.ExpertiseBalance != 100 {
		t.Fatalf("balance = %v, want 100 for equal turns", report.Dimensions.ExpertiseBalance)
	}
}

func TestAnalyzeShortScriptErrors(t *testing.T) {
	a := NewTextMetricsAnalyzer(DefaultConfig(), DefaultCatalog("ko"))
	report := a.Analyze("**Host:** hello\n**Expert:** hi", "en")
	if report.PassesMinimum {
		t.Fatal("a two-line script passed the minimum standard")
	}
	wantShort, wantFacts := false, false
	for _, e := range report.Errors {
		if strings.Contains(e, "too short") {
			wantShort = true
		}
		if strings.Contains(e, "concrete facts") {
			wantFacts = true
		}
	}
	if !wantShort || !wantFacts {
		t.Fatalf("errors = %v, want too-short and not-enough-facts", report.Errors)
	}
}

func TestAnalyzeZeroThresholdsStayFinite(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Script.MinSurpriseCount = 0
	cfg.Script.MinNaturalWords = 0
	a := NewTextMetricsAnalyzer(cfg, DefaultCatalog("ko"))
	report := a.Analyze(sampleScript, "en")
	if math.IsNaN(report.Dimensions.Naturalness) || math.IsInf(report.Dimensions.Naturalness, 0) {
		t.Fatalf("naturalness = %v, want a finite score with zeroed thresholds", report.Dimensions.Naturalness)
	}
	if math.IsNaN(report.Overall) {
		t.Fatalf("overall = %v, want a finite score", report.Overall)
	}
	if report.Dimensions.Naturalness > 30 {
		t.Fatalf("naturalness = %v, want at most the emotion share when both thresholds are disabled", report.Dimensions.Naturalness)
	}
}

func TestAnalyzeOneSidedScript(t *testing.T) {
	a := NewTextMetricsAnalyzer(DefaultConfig(), DefaultCatalog("ko"))
	script := strings.Repeat("**Host:** The palace was built in 1395 and covers 40 hectares of central Seoul.\n", 20)
	report := a.Analyze(script, "en")
	if report.Dimensions.ExpertiseBalance != 0 {
		t.Fatalf("balance = %v, want 0 when one speaker is silent", report.Dimensions.ExpertiseBalance)
	}
	found := false
	for _, e := range report.Errors {
		if strings.Contains(e, "expert never speaks") {
			found = true
		}
	}
	if !found {
		t.Fatalf("errors = %v, want silent-expert error", report.Errors)
	}
}

func TestAnalyzeMissingSpeakerTags(t *testing.T) {
	a := NewTextMetricsAnalyzer(DefaultConfig(), DefaultCatalog("ko"))
	report := a.Analyze("A plain paragraph about a palace built in 1395.", "en")
	found := false
	for _, e := range report.Errors {
		if strings.Contains(e, "no speaker tags") {
			found = true
		}
	}
	if !found {
		t.Fatalf("errors = %v, want no-speaker-tags error", report.Errors)
	}
}

func TestAnalyzeUnknownLocaleFallsBackToDefault(t *testing.T) {
	a := NewTextMetricsAnalyzer(DefaultConfig(), DefaultCatalog("ko"))
	korean := "**진행자:** 여러분, 1973년에 발굴된 금관 보셨나요?\n**큐레이터:** 와, 정말 놀라운 유물이죠. 높이 27cm에 국보 87호입니다.\n"
	withDefault := a.Analyze(korean, "ko")
	withUnknown := a.Analyze(korean, "fr")
	if !reflect.DeepEqual(withDefault, withUnknown) {
		t.Fatal("unknown locale did not fall back to the default pattern set")
	}
}

func TestAnalyzeRecommendationsPriority(t *testing.T) {
	a := NewTextMetricsAnalyzer(DefaultConfig(), DefaultCatalog("ko"))
	report := a.Analyze("**Host:** hi\n**Expert:** hello", "en")
	if len(report.Recommendations) == 0 {
		t.Fatal("a minimal script produced no recommendations")
	}
	for _, rec := range report.Recommendations {
		if rec.Priority != "high" && rec.Priority != "medium" {
			t.Fatalf("recommendation priority = %q", rec.Priority)
		}
		if rec.Dimension == "" || rec.Solution == "" {
			t.Fatalf("incomplete recommendation: %+v", rec)
		}
	}
}
