package quality

import (
	"errors"
	"testing"

	pkgerrors "github.com/yungbote/guidequality-backend/internal/pkg/errors"
)

func TestNormalizeRejectsNonObject(t *testing.T) {
	for _, raw := range []any{nil, "just a string", 42.0, []any{"a", "b"}} {
		_, err := Normalize(raw, "Gyeongju", "ko")
		if !errors.Is(err, pkgerrors.ErrUnnormalizable) {
			t.Fatalf("Normalize(%T) error = %v, want ErrUnnormalizable", raw, err)
		}
	}
}

func TestNormalizeFullDocument(t *testing.T) {
	raw := map[string]any{
		"location": "경주",
		"language": "ko",
		"overview": map[string]any{"summary": "신라의 수도"},
		"chapters": []any{
			map[string]any{"id": "1", "title": "불국사", "content": "불국사는 774년에 완공된 사찰이다"},
			map[string]any{"id": 2.0, "title": "석굴암", "content": "석굴암 본존불"},
		},
	}
	doc, err := Normalize(raw, "", "")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if doc.Location != "경주" || doc.Language != "ko" {
		t.Errorf("metadata = %q/%q, want 경주/ko", doc.Location, doc.Language)
	}
	if doc.MissingMetadata {
		t.Error("MissingMetadata = true for a complete document")
	}
	if len(doc.Chapters) != 2 {
		t.Fatalf("chapters = %d, want 2", len(doc.Chapters))
	}
	if doc.Chapters[1].ID != "2" {
		t.Errorf("numeric chapter id coerced to %q, want \"2\"", doc.Chapters[1].ID)
	}
	if doc.Serialized == "" {
		t.Error("Serialized is empty")
	}
}

func TestNormalizeFallsBackToRequestParams(t *testing.T) {
	doc, err := Normalize(map[string]any{"overview": map[string]any{}}, "Seoul", "en")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if doc.Location != "Seoul" || doc.Language != "en" {
		t.Errorf("fallback metadata = %q/%q, want Seoul/en", doc.Location, doc.Language)
	}
}

func TestNormalizeFlagsMissingMetadata(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]any
	}{
		{"no overview", map[string]any{"location": "Seoul", "language": "en"}},
		{"overview not an object", map[string]any{"location": "Seoul", "language": "en", "overview": "text"}},
		{"no location anywhere", map[string]any{"language": "en", "overview": map[string]any{}}},
	}
	for _, tc := range cases {
		doc, err := Normalize(tc.raw, "", "en")
		if err != nil {
			t.Fatalf("%s: Normalize: %v", tc.name, err)
		}
		if !doc.MissingMetadata {
			t.Errorf("%s: MissingMetadata = false, want true", tc.name)
		}
	}
}

func TestNormalizeNestedChapters(t *testing.T) {
	raw := map[string]any{
		"location": "Seoul",
		"language": "en",
		"overview": map[string]any{},
		"realTimeGuide": map[string]any{
			"chapters": []any{
				map[string]any{"title": "Gyeongbokgung", "content": "The main royal palace of the Joseon dynasty."},
			},
		},
	}
	doc, err := Normalize(raw, "", "")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(doc.Chapters) != 1 || doc.Chapters[0].Title != "Gyeongbokgung" {
		t.Fatalf("nested chapters not picked up: %+v", doc.Chapters)
	}
}

func TestNormalizeMalformedChapters(t *testing.T) {
	raw := map[string]any{
		"location": "Seoul",
		"language": "en",
		"overview": map[string]any{},
		"chapters": []any{
			"not an object",
			map[string]any{"title": 7.0, "content": []any{"x"}},
		},
	}
	doc, err := Normalize(raw, "", "")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(doc.Chapters) != 2 {
		t.Fatalf("chapters = %d, want 2", len(doc.Chapters))
	}
	for i, ch := range doc.Chapters {
		if ch.Title != "" || ch.Content != "" {
			t.Errorf("chapter %d not collapsed to empty fields: %+v", i, ch)
		}
	}
}
