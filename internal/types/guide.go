package types

// Chapter is one content unit of a guide. Title and Content are always
// present after normalization (possibly empty), never nil.
type Chapter struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// GuideDocument is the canonical in-memory shape of a guide under
// verification. The engine treats it as read-only.
type GuideDocument struct {
	Location string         `json:"location"`
	Language string         `json:"language"`
	Overview map[string]any `json:"overview"`
	Chapters []Chapter      `json:"chapters"`

	// Serialized is the lowercased JSON of the raw input, kept for
	// whole-document substring checks (expected elements).
	Serialized string `json:"-"`

	// MissingMetadata is set by the normalizer when location or language
	// were absent from the raw input.
	MissingMetadata bool `json:"-"`
}
