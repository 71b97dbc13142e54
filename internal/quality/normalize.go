package quality

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yungbote/guidequality-backend/internal/normalization"
	pkgerrors "github.com/yungbote/guidequality-backend/internal/pkg/errors"
	"github.com/yungbote/guidequality-backend/internal/types"
)

// Normalize coerces an arbitrary decoded JSON document into the canonical
// GuideDocument shape. It is a total function over map inputs: optional
// fields default (overview -> {}, chapters -> []), malformed chapter fields
// collapse to empty strings, and nothing here ever panics. Only input that
// is not an object at all is rejected.
func Normalize(raw any, locationName, language string) (types.GuideDocument, error) {
	doc := types.GuideDocument{
		Overview: map[string]any{},
		Chapters: []types.Chapter{},
	}

	obj, ok := raw.(map[string]any)
	if !ok || obj == nil {
		return doc, fmt.Errorf("%w: expected a JSON object, got %T", pkgerrors.ErrUnnormalizable, raw)
	}

	doc.Location = normalization.CoerceString(obj["location"])
	if doc.Location == "" {
		doc.Location = strings.TrimSpace(locationName)
	}
	doc.Language = normalization.CoerceString(obj["language"])
	if doc.Language == "" {
		doc.Language = strings.TrimSpace(language)
	}
	if doc.Location == "" || doc.Language == "" {
		doc.MissingMetadata = true
	}

	if ov, ok := obj["overview"].(map[string]any); ok && ov != nil {
		doc.Overview = ov
	} else {
		doc.MissingMetadata = true
	}

	doc.Chapters = coerceChapters(obj)

	if raw, err := json.Marshal(obj); err == nil {
		doc.Serialized = strings.ToLower(string(raw))
	}

	return doc, nil
}

// coerceChapters accepts chapters either at the top level or nested under
// realTimeGuide, the shape the guide generator emits.
func coerceChapters(obj map[string]any) []types.Chapter {
	rawChapters, ok := obj["chapters"].([]any)
	if !ok {
		if rtg, ok2 := obj["realTimeGuide"].(map[string]any); ok2 {
			rawChapters, _ = rtg["chapters"].([]any)
		}
	}
	chapters := make([]types.Chapter, 0, len(rawChapters))
	for _, rc := range rawChapters {
		cm, ok := rc.(map[string]any)
		if !ok {
			chapters = append(chapters, types.Chapter{})
			continue
		}
		ch := types.Chapter{
			Title:   normalization.CoerceString(cm["title"]),
			Content: normalization.CoerceString(cm["content"]),
		}
		switch id := cm["id"].(type) {
		case string:
			ch.ID = strings.TrimSpace(id)
		case float64:
			ch.ID = strings.TrimSpace(fmt.Sprintf("%.0f", id))
		}
		chapters = append(chapters, ch)
	}
	return chapters
}
