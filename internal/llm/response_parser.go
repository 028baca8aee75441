package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractionResponse is the strict schema for extraction output: two
// optional top-level sections, nothing else. Unknown fields fail parsing so
// a malformed response is rejected whole instead of partially applied.
type ExtractionResponse struct {
	Common            *CommonUpdate    `json:"common,omitempty"`
	CharacterSpecific *CharacterUpdate `json:"character_specific,omitempty"`
}

// CommonUpdate carries candidate updates to the shared profile.
type CommonUpdate struct {
	BasicInfo map[string]string `json:"basic_info,omitempty"`
	Likes     []string          `json:"likes,omitempty"`
	Dislikes  []string          `json:"dislikes,omitempty"`
}

// CharacterUpdate carries candidate entries for the character's bucket.
type CharacterUpdate struct {
	Topics []string `json:"topics,omitempty"`
	Events []string `json:"events,omitempty"`
	Notes  []string `json:"notes,omitempty"`
}

// Empty reports whether the response carries no candidate updates at all.
func (r *ExtractionResponse) Empty() bool {
	if r.Common != nil {
		if len(r.Common.BasicInfo) > 0 || len(r.Common.Likes) > 0 || len(r.Common.Dislikes) > 0 {
			return false
		}
	}
	if r.CharacterSpecific != nil {
		if len(r.CharacterSpecific.Topics) > 0 || len(r.CharacterSpecific.Events) > 0 || len(r.CharacterSpecific.Notes) > 0 {
			return false
		}
	}
	return true
}

// stripCodeFence removes a fenced code block wrapper from model output,
// accepting either a "json"-tagged or bare fence. Models add fences despite
// instructions; everything outside the first fence pair is dropped.
func stripCodeFence(text string) string {
	if i := strings.Index(text, "```json"); i >= 0 {
		text = text[i+len("```json"):]
		if j := strings.Index(text, "```"); j >= 0 {
			text = text[:j]
		}
	} else if i := strings.Index(text, "```"); i >= 0 {
		text = text[i+len("```"):]
		if j := strings.Index(text, "```"); j >= 0 {
			text = text[:j]
		}
	}
	return strings.TrimSpace(text)
}

// ParseExtractionResponse parses extraction output into the strict schema.
// A fenced code block wrapper is tolerated; after unwrapping, the remaining
// text must be exactly one JSON object matching ExtractionResponse. Any
// parse or schema violation returns an error — callers discard the whole
// extraction rather than applying part of it.
func ParseExtractionResponse(raw string) (*ExtractionResponse, error) {
	clean := stripCodeFence(raw)

	dec := json.NewDecoder(strings.NewReader(clean))
	dec.DisallowUnknownFields()

	var resp ExtractionResponse
	if err := dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to parse extraction JSON: %w", err)
	}
	// Reject trailing garbage after the object.
	if dec.More() {
		return nil, fmt.Errorf("failed to parse extraction JSON: trailing content after object")
	}

	return &resp, nil
}
