package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/memoria-chat/memoria/pkg/types"
)

// legacyFlatProfile is the original profile document shape: basic_info and
// preferences at the top level, plus timestamped important_events and notes
// lists that predate per-character buckets.
type legacyFlatProfile struct {
	BasicInfo       map[string]string  `json:"basic_info"`
	Preferences     types.Preferences  `json:"preferences"`
	ImportantEvents []legacyTimedEntry `json:"important_events"`
	Notes           []legacyTimedEntry `json:"notes"`
	LastUpdated     *time.Time         `json:"last_updated"`
}

type legacyTimedEntry struct {
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// Migrate decodes a raw profile document into the current nested shape.
// It accepts either the current shape (common_profile + character_memories)
// or the legacy flat shape, which is converted in place: basic_info and
// preferences are preserved, while legacy important_events and notes are
// discarded — they predate character buckets and have no destination in the
// current shape, so the migration is lossy for those two lists.
//
// An empty or all-whitespace document yields a fresh empty profile. The only
// error condition is malformed JSON.
func Migrate(raw []byte) (*types.Profile, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return types.NewProfile(), nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("storage: malformed profile document: %w", err)
	}

	_, hasCommon := probe["common_profile"]
	_, hasBuckets := probe["character_memories"]
	if hasCommon || hasBuckets {
		var p types.Profile
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("storage: malformed profile document: %w", err)
		}
		p.Normalize()
		return &p, nil
	}

	// Legacy flat shape.
	var legacy legacyFlatProfile
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return nil, fmt.Errorf("storage: malformed legacy profile document: %w", err)
	}

	if n := len(legacy.ImportantEvents) + len(legacy.Notes); n > 0 {
		log.Printf("storage: legacy profile migration discarded %d important_events/notes entries", n)
	}

	p := types.NewProfile()
	if legacy.BasicInfo != nil {
		p.Common.BasicInfo = legacy.BasicInfo
	}
	if legacy.Preferences.Likes != nil {
		p.Common.Preferences.Likes = legacy.Preferences.Likes
	}
	if legacy.Preferences.Dislikes != nil {
		p.Common.Preferences.Dislikes = legacy.Preferences.Dislikes
	}
	p.LastUpdated = legacy.LastUpdated
	return p, nil
}
