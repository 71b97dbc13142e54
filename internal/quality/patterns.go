package quality

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// PatternSet is the per-locale catalog of compiled text patterns the
// analyzers run against. New languages are data, not code: a set can be
// loaded from YAML next to the built-in ones.
type PatternSet struct {
	Locale         string
	Facts          []*regexp.Regexp
	Engagement     []*regexp.Regexp
	Surprise       []*regexp.Regexp
	Connectors     []*regexp.Regexp
	NaturalWords   map[string]bool
	TechnicalTerms []*regexp.Regexp
	StyleMarkers   []*regexp.Regexp
	Layering       []*regexp.Regexp
	Suspicious     []*regexp.Regexp
	HostTag        *regexp.Regexp
	GuestTag       *regexp.Regexp
}

// Catalog maps locale codes to pattern sets.
type Catalog struct {
	sets          map[string]*PatternSet
	defaultLocale string
}

func NewCatalog(defaultLocale string, sets ...*PatternSet) *Catalog {
	c := &Catalog{sets: map[string]*PatternSet{}, defaultLocale: defaultLocale}
	for _, ps := range sets {
		if ps != nil {
			c.sets[ps.Locale] = ps
		}
	}
	return c
}

// ForLocale resolves a pattern set: exact match, then base language
// ("en-US" -> "en"), then the default locale.
func (c *Catalog) ForLocale(locale string) *PatternSet {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if ps, ok := c.sets[locale]; ok {
		return ps
	}
	if idx := strings.IndexByte(locale, '-'); idx > 0 {
		if ps, ok := c.sets[locale[:idx]]; ok {
			return ps
		}
	}
	return c.sets[c.defaultLocale]
}

// Add registers or replaces a locale's pattern set.
func (c *Catalog) Add(ps *PatternSet) {
	if ps != nil {
		c.sets[ps.Locale] = ps
	}
}

// DefaultCatalog carries the built-in Korean and English sets. Korean is
// the set the production prompts were tuned against.
func DefaultCatalog(defaultLocale string) *Catalog {
	return NewCatalog(defaultLocale, koreanPatterns(), englishPatterns())
}

func mustAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}

func koreanPatterns() *PatternSet {
	return &PatternSet{
		Locale: "ko",
		Facts: mustAll(
			`\d+(?:,\d{3})*(?:cm|m|km|kg|년|세기|층|점|명|개)`,
			`국보\s*\d+호`,
			`세계\s*최[초고대]`,
			`\d{4}년`,
			`높이\s*\d+`,
			`무게\s*\d+`,
		),
		Engagement: mustAll(`청취자`, `여러분`, `상상해보세요`, `어떨까요`, `함께`, `우리`),
		Surprise:   mustAll(`와`, `헉`, `정말`, `놀라운`, `신기한`, `대단한`, `엄청난`),
		Connectors: mustAll(`그런데`, `그리고`, `또한`, `하지만`, `근데`, `아`, `어`),
		NaturalWords: map[string]bool{
			"아": true, "어": true, "음": true, "그런데": true, "근데": true,
		},
		TechnicalTerms: mustAll(`박물관`, `큐레이터`, `전시`, `소장품`, `유물`, `작품`, `문화재`),
		StyleMarkers: mustAll(
			`그런데\s+더\s+[흥놀]`,
			`저도\s+[처이번]`,
			`청취자(?:분들)?[이가도]`,
			`상상해보세요`,
			`[와헉어]\s*[!,]?\s*[정진]`,
		),
		Layering: mustAll(
			`기본적으로.*그런데.*놀라운`,
			`\d+.*더.*신기한`,
			`사실.*하지만.*정말`,
		),
		Suspicious: mustAll(
			`(?i)(가상|상상|임의|예시|테스트)`,
			`존재하지\s*않는`,
			`\b(?:OO|XX|YY|ZZ)\b`,
			`(?i)(AI\s*생성|자동\s*생성)`,
			`\[[^\]]*\]`,
		),
		HostTag:  regexp.MustCompile(`\*\*진행자:\*\*[^*]*`),
		GuestTag: regexp.MustCompile(`\*\*큐레이터:\*\*[^*]*`),
	}
}

func englishPatterns() *PatternSet {
	return &PatternSet{
		Locale: "en",
		Facts: mustAll(
			`\d+(?:,\d{3})*\s*(?:cm|m|km|kg|meters?|feet|tons?|stories|floors)`,
			`\b(?:1[0-9]{3}|20[0-9]{2})\b`,
			`\b(?:tallest|largest|oldest|longest|biggest|first)\b`,
			`(?i)height\s+of\s+\d+`,
			`(?i)weigh(?:s|ing)?\s+\d+`,
		),
		Engagement: mustAll(
			`(?i)\blisteners?\b`, `(?i)\beveryone\b`, `(?i)imagine`,
			`(?i)picture this`, `(?i)\blet'?s\b`, `(?i)\btogether\b`,
		),
		Surprise: mustAll(
			`(?i)\bwow\b`, `(?i)\bamazing\b`, `(?i)\bincredible\b`,
			`(?i)\bsurprising\b`, `(?i)\bremarkable\b`, `(?i)\bastonishing\b`,
		),
		Connectors: mustAll(
			`(?i)\bbut\b`, `(?i)\band\b`, `(?i)\balso\b`, `(?i)\bhowever\b`,
			`(?i)\bwell\b`, `(?i)\bso\b`, `(?i)\bactually\b`,
		),
		NaturalWords: map[string]bool{
			"well": true, "so": true, "actually": true, "oh": true, "right": true,
		},
		TechnicalTerms: mustAll(
			`(?i)\bmuseum\b`, `(?i)\bcurator\b`, `(?i)\bexhibit`,
			`(?i)\bartifact`, `(?i)\bcollection\b`, `(?i)\bheritage\b`,
		),
		StyleMarkers: mustAll(
			`(?i)but here'?s the`,
			`(?i)i (?:just|only) learned`,
			`(?i)\blisteners?\b`,
			`(?i)imagine`,
			`(?i)get this`,
		),
		Layering: mustAll(
			`(?i)basically.*but.*(?:surprising|amazing)`,
			`(?i)\d+.*even more`,
			`(?i)in fact.*but.*really`,
		),
		Suspicious: mustAll(
			`(?i)\b(?:example|fictional|unknown|placeholder|hypothetical|imaginary)\b`,
			`(?i)\b(?:does not exist|nonexistent)\b`,
			`\b(?:OO|XX|YY|ZZ|TBD)\b`,
			`(?i)(?:AI|auto)[ -]generated`,
			`\[[^\]]*\]`,
		),
		HostTag:  regexp.MustCompile(`\*\*Host:\*\*[^*]*`),
		GuestTag: regexp.MustCompile(`\*\*(?:Curator|Expert):\*\*[^*]*`),
	}
}

type patternFile struct {
	Locale         string   `yaml:"locale"`
	Facts          []string `yaml:"facts"`
	Engagement     []string `yaml:"engagement"`
	Surprise       []string `yaml:"surprise"`
	Connectors     []string `yaml:"connectors"`
	NaturalWords   []string `yaml:"naturalWords"`
	TechnicalTerms []string `yaml:"technicalTerms"`
	StyleMarkers   []string `yaml:"styleMarkers"`
	Layering       []string `yaml:"layering"`
	Suspicious     []string `yaml:"suspicious"`
	HostTag        string   `yaml:"hostTag"`
	GuestTag       string   `yaml:"guestTag"`
}

// LoadPatternFile compiles a locale catalog from YAML.
func LoadPatternFile(path string) (*PatternSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pattern file: %w", err)
	}
	var pf patternFile
	if err := yaml.Unmarshal(raw, &pf); err != nil {
		return nil, fmt.Errorf("parse pattern file: %w", err)
	}
	if strings.TrimSpace(pf.Locale) == "" {
		return nil, fmt.Errorf("pattern file %s: missing locale", path)
	}
	ps := &PatternSet{
		Locale:       strings.ToLower(strings.TrimSpace(pf.Locale)),
		NaturalWords: map[string]bool{},
	}
	compile := func(name string, exprs []string) ([]*regexp.Regexp, error) {
		out := make([]*regexp.Regexp, 0, len(exprs))
		for _, e := range exprs {
			re, err := regexp.Compile(e)
			if err != nil {
				return nil, fmt.Errorf("pattern file %s: %s pattern %q: %w", path, name, e, err)
			}
			out = append(out, re)
		}
		return out, nil
	}
	if ps.Facts, err = compile("facts", pf.Facts); err != nil {
		return nil, err
	}
	if ps.Engagement, err = compile("engagement", pf.Engagement); err != nil {
		return nil, err
	}
	if ps.Surprise, err = compile("surprise", pf.Surprise); err != nil {
		return nil, err
	}
	if ps.Connectors, err = compile("connectors", pf.Connectors); err != nil {
		return nil, err
	}
	if ps.TechnicalTerms, err = compile("technicalTerms", pf.TechnicalTerms); err != nil {
		return nil, err
	}
	if ps.StyleMarkers, err = compile("styleMarkers", pf.StyleMarkers); err != nil {
		return nil, err
	}
	if ps.Layering, err = compile("layering", pf.Layering); err != nil {
		return nil, err
	}
	if ps.Suspicious, err = compile("suspicious", pf.Suspicious); err != nil {
		return nil, err
	}
	for _, w := range pf.NaturalWords {
		ps.NaturalWords[w] = true
	}
	if pf.HostTag != "" {
		if ps.HostTag, err = regexp.Compile(pf.HostTag); err != nil {
			return nil, fmt.Errorf("pattern file %s: hostTag: %w", path, err)
		}
	}
	if pf.GuestTag != "" {
		if ps.GuestTag, err = regexp.Compile(pf.GuestTag); err != nil {
			return nil, fmt.Errorf("pattern file %s: guestTag: %w", path, err)
		}
	}
	return ps, nil
}
