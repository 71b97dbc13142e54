package quality

import (
	"reflect"
	"testing"

	"github.com/yungbote/guidequality-backend/internal/types"
)

func TestOrderedSetKeepsInsertionOrder(t *testing.T) {
	s := NewOrderedSet("b", "a", "c")
	if got := s.Values(); !reflect.DeepEqual(got, []string{"b", "a", "c"}) {
		t.Fatalf("Values() = %v", got)
	}
}

func TestOrderedSetCaseInsensitiveDedupe(t *testing.T) {
	s := NewOrderedSet()
	if !s.Add("Check the dates") {
		t.Fatal("first Add returned false")
	}
	if s.Add("check THE dates") {
		t.Fatal("case variant was inserted")
	}
	if s.Add("  ") {
		t.Fatal("blank value was inserted")
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if !s.Contains("CHECK the dates") {
		t.Fatal("Contains is case sensitive")
	}
	if !s.ContainsSubstring("the dates") {
		t.Fatal("ContainsSubstring missed an entry")
	}
}

func TestSynthesizeSkipsCoveredDimensions(t *testing.T) {
	set := NewOrderedSet("Re-check every factual claim against a primary source")
	dims := []types.DimensionScore{
		{Name: "factualAccuracy", Value: 30},
		{Name: "contentCompleteness", Value: 60},
	}
	SynthesizeRecommendations(set, dims, DefaultConfig())
	for _, v := range set.Values() {
		if v == guideRemedies["factualAccuracy"].text {
			t.Fatalf("factual remedy added although already covered: %v", set.Values())
		}
	}
	if !set.Contains(guideRemedies["contentCompleteness"].text) {
		t.Fatalf("completeness remedy missing: %v", set.Values())
	}
}

func TestScriptRecommendationPriorities(t *testing.T) {
	dims := types.ScriptDimensions{
		InformationDensity: 30,
		ConversationFlow:   65,
		AudienceEngagement: 80,
		ExpertiseBalance:   80,
		Naturalness:        80,
		StyleAlignment:     80,
	}
	recs := scriptRecommendations(dims, DefaultConfig())
	if len(recs) != 2 {
		t.Fatalf("recommendations = %+v, want 2", recs)
	}
	if recs[0].Dimension != "informationDensity" || recs[0].Priority != "high" {
		t.Fatalf("recs[0] = %+v", recs[0])
	}
	if recs[1].Dimension != "conversationFlow" || recs[1].Priority != "medium" {
		t.Fatalf("recs[1] = %+v", recs[1])
	}
}
