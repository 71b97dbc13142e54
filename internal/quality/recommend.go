package quality

import (
	"strings"

	"github.com/yungbote/guidequality-backend/internal/types"
)

// OrderedSet collects strings with first-insertion order and
// case-insensitive exact-match uniqueness.
type OrderedSet struct {
	seen  map[string]bool
	items []string
}

func NewOrderedSet(items ...string) *OrderedSet {
	s := &OrderedSet{seen: map[string]bool{}}
	for _, it := range items {
		s.Add(it)
	}
	return s
}

// Add inserts v unless an equal entry (ignoring case) is already present.
// It reports whether the value was inserted.
func (s *OrderedSet) Add(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	key := strings.ToLower(v)
	if s.seen[key] {
		return false
	}
	s.seen[key] = true
	s.items = append(s.items, v)
	return true
}

// Contains reports whether an entry equal to v (ignoring case) exists.
func (s *OrderedSet) Contains(v string) bool {
	return s.seen[strings.ToLower(strings.TrimSpace(v))]
}

// ContainsSubstring reports whether any entry contains sub (ignoring case).
func (s *OrderedSet) ContainsSubstring(sub string) bool {
	sub = strings.ToLower(sub)
	for key := range s.seen {
		if strings.Contains(key, sub) {
			return true
		}
	}
	return false
}

func (s *OrderedSet) Values() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

func (s *OrderedSet) Len() int { return len(s.items) }

// remediation phrasing per document dimension. Data, not code: the keyword
// is what makes an existing recommendation count as already covering the
// dimension.
type dimensionRemedy struct {
	keyword string
	text    string
}

var guideRemedies = map[string]dimensionRemedy{
	"factualAccuracy": {
		keyword: "factual",
		text:    "Strengthen factual verification and back claims with reliable sources",
	},
	"contentCompleteness": {
		keyword: "completeness",
		text:    "Fill in the missing required information to improve completeness",
	},
	"coherenceScore": {
		keyword: "flow",
		text:    "Improve the storytelling flow and the transitions between chapters",
	},
	"culturalSensitivity": {
		keyword: "cultural",
		text:    "Review the wording for cultural sensitivity and local context",
	},
}

// SynthesizeRecommendations appends one remediation per weak dimension to
// the merged set, skipping dimensions an earlier stage already addressed.
// Dimensions below the high-priority threshold are added first.
func SynthesizeRecommendations(set *OrderedSet, dims []types.DimensionScore, cfg Config) {
	var weak, weaker []types.DimensionScore
	for _, d := range dims {
		if d.Value >= cfg.NeedsImprovement {
			continue
		}
		if d.Value < cfg.HighPriorityBelow {
			weaker = append(weaker, d)
		} else {
			weak = append(weak, d)
		}
	}
	for _, d := range append(weaker, weak...) {
		remedy, ok := guideRemedies[d.Name]
		if !ok {
			continue
		}
		if set.ContainsSubstring(remedy.keyword) {
			continue
		}
		set.Add(remedy.text)
	}
}

// script remediation catalog, keyed by dimension name.
var scriptRemedies = map[string]types.ScriptRecommendation{
	"informationDensity": {
		Dimension: "informationDensity",
		Issue:     "information density is too low",
		Solution:  "include two or three concrete facts (numbers, dates, sizes) per turn",
		Examples:  []string{"27.5 cm tall", "excavated in 1973", "weighs one kilogram"},
	},
	"conversationFlow": {
		Dimension: "conversationFlow",
		Issue:     "the conversation does not flow naturally",
		Solution:  "shorten turns and bridge them with natural connectors",
		Examples:  []string{"by the way", "oh, and", "did you know?"},
	},
	"audienceEngagement": {
		Dimension: "audienceEngagement",
		Issue:     "the audience is rarely addressed",
		Solution:  "speak to the listeners directly and invite them to imagine the scene",
		Examples:  []string{"you might be surprised to hear", "imagine standing there"},
	},
	"expertiseBalance": {
		Dimension: "expertiseBalance",
		Issue:     "host and expert turns are unbalanced",
		Solution:  "alternate question and answer so both speakers get similar time",
		Examples:  []string{"host question, expert answer, host follow-up"},
	},
	"naturalness": {
		Dimension: "naturalness",
		Issue:     "the dialogue sounds scripted",
		Solution:  "add spontaneous reactions and interjections",
		Examples:  []string{"wow, really?", "that much?", "I never would have guessed"},
	},
	"styleAlignment": {
		Dimension: "styleAlignment",
		Issue:     "the script misses the layered-reveal narration style",
		Solution:  "lead with a basic fact, elaborate, then land the surprising detail",
		Examples:  []string{"but here's the interesting part", "I only just learned this myself"},
	},
}

// scriptRecommendations returns one remediation per dimension scoring
// below the needs-improvement threshold, with threshold-based priority.
func scriptRecommendations(dims types.ScriptDimensions, cfg Config) []types.ScriptRecommendation {
	scores := []types.DimensionScore{
		{Name: "informationDensity", Value: dims.InformationDensity},
		{Name: "conversationFlow", Value: dims.ConversationFlow},
		{Name: "audienceEngagement", Value: dims.AudienceEngagement},
		{Name: "expertiseBalance", Value: dims.ExpertiseBalance},
		{Name: "naturalness", Value: dims.Naturalness},
		{Name: "styleAlignment", Value: dims.StyleAlignment},
	}
	out := []types.ScriptRecommendation{}
	for _, d := range scores {
		if d.Value >= cfg.NeedsImprovement {
			continue
		}
		rec, ok := scriptRemedies[d.Name]
		if !ok {
			continue
		}
		switch {
		case d.Value < cfg.HighPriorityBelow:
			rec.Priority = "high"
		default:
			rec.Priority = "medium"
		}
		out = append(out, rec)
	}
	return out
}
