package types

// ScriptAnalysis holds the raw deterministic counts extracted from a
// narration script before any scoring.
type ScriptAnalysis struct {
	CharCount         int      `json:"charCount"`
	HostTurns         int      `json:"hostTurns"`
	GuestTurns        int      `json:"guestTurns"`
	AverageTurnLength int      `json:"averageTurnLength"`
	FactCount         int      `json:"factCount"`
	QuestionCount     int      `json:"questionCount"`
	EngagementPhrases []string `json:"engagementPhrases"`
	SurpriseElements  []string `json:"surpriseElements"`
	ConnectorWords    []string `json:"connectorWords"`
	TechnicalTerms    []string `json:"technicalTerms"`
}

// ScriptDimensions are the six conversational-quality dimension scores,
// each in [0,100].
type ScriptDimensions struct {
	InformationDensity float64 `json:"informationDensity"`
	ConversationFlow   float64 `json:"conversationFlow"`
	AudienceEngagement float64 `json:"audienceEngagement"`
	ExpertiseBalance   float64 `json:"expertiseBalance"`
	Naturalness        float64 `json:"naturalness"`
	StyleAlignment     float64 `json:"styleAlignment"`
}

// ScriptRecommendation is a per-dimension remediation suggestion.
type ScriptRecommendation struct {
	Dimension string   `json:"dimension"`
	Issue     string   `json:"issue"`
	Solution  string   `json:"solution"`
	Priority  string   `json:"priority"`
	Examples  []string `json:"examples,omitempty"`
}

// ScriptReport is the output of the conversational-style scoring profile.
// Overall is the flat unweighted mean of the six dimensions; it is kept
// independent of the weighted guide composite on purpose.
type ScriptReport struct {
	Overall          float64                `json:"overall"`
	Dimensions       ScriptDimensions       `json:"dimensions"`
	PassesMinimum    bool                   `json:"passesMinimumStandard"`
	Errors           []string               `json:"errors"`
	Warnings         []string               `json:"warnings"`
	Suggestions      []string               `json:"suggestions"`
	Recommendations  []ScriptRecommendation `json:"recommendations"`
	Analysis         ScriptAnalysis         `json:"detailedAnalysis"`
	ProcessingTimeMs int64                  `json:"processingTimeMs"`
}
