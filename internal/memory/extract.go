package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/memoria-chat/memoria/internal/llm"
	"github.com/memoria-chat/memoria/pkg/types"
)

const (
	// extractTailLen is how many trailing transcript messages are sent for
	// extraction; shorter transcripts are skipped.
	extractTailLen = 4

	// extractMaxTokens bounds the extraction response.
	extractMaxTokens = 500
)

// ExtractionOutcome reports what one extraction pass did. Extraction is
// best-effort background enrichment: failures skip the pass (with a reason
// recorded here) instead of surfacing an error to the turn.
type ExtractionOutcome struct {
	Applied    int    // candidate facts accepted into the profile
	Dropped    int    // candidates rejected as duplicates of known facts
	SkipReason string // non-empty when the whole pass was abandoned
}

// Skipped reports whether the pass was abandoned before applying anything.
func (o ExtractionOutcome) Skipped() bool {
	return o.SkipReason != ""
}

// Extractor harvests candidate facts from recent dialogue: it sends the
// transcript tail to the text-generation capability, parses the structured
// response, and applies each candidate through the store's mutators, which
// silently drop anything already known. A malformed response abandons the
// entire pass — no partial application.
//
// The extractor keeps no state between invocations; applying the same
// excerpt twice is a no-op thanks to duplicate suppression.
type Extractor struct {
	store *Store
	gen   llm.TextGenerator
}

// NewExtractor creates an extractor feeding the given store.
func NewExtractor(store *Store, gen llm.TextGenerator) *Extractor {
	return &Extractor{store: store, gen: gen}
}

// Extract runs one extraction pass for the character over the transcript.
func (e *Extractor) Extract(ctx context.Context, character string, transcript []types.Message) ExtractionOutcome {
	if len(transcript) < extractTailLen {
		return ExtractionOutcome{SkipReason: "transcript too short"}
	}

	tail := transcript[len(transcript)-extractTailLen:]
	lines := make([]string, 0, len(tail))
	for _, m := range tail {
		lines = append(lines, m.Role+": "+m.Content)
	}

	raw, err := e.gen.Complete(ctx, llm.ExtractionPrompt(strings.Join(lines, "\n")), extractMaxTokens)
	if err != nil {
		return ExtractionOutcome{SkipReason: fmt.Sprintf("completion failed: %v", err)}
	}

	parsed, err := llm.ParseExtractionResponse(raw)
	if err != nil {
		return ExtractionOutcome{SkipReason: fmt.Sprintf("unparseable response: %v", err)}
	}

	var outcome ExtractionOutcome
	apply := func(inserted bool) {
		if inserted {
			outcome.Applied++
		} else {
			outcome.Dropped++
		}
	}

	if c := parsed.Common; c != nil {
		for _, key := range sortedKeys(c.BasicInfo) {
			e.store.SetBasicInfo(ctx, key, c.BasicInfo[key])
			outcome.Applied++
		}
		for _, item := range c.Likes {
			apply(e.store.AddPreference(ctx, item, types.PreferenceLikes))
		}
		for _, item := range c.Dislikes {
			apply(e.store.AddPreference(ctx, item, types.PreferenceDislikes))
		}
	}

	if cs := parsed.CharacterSpecific; cs != nil {
		for _, topic := range cs.Topics {
			apply(e.store.AddCharacterMemory(ctx, character, types.MemoryTopics, topic))
		}
		for _, event := range cs.Events {
			apply(e.store.AddCharacterMemory(ctx, character, types.MemoryEvents, event))
		}
		for _, note := range cs.Notes {
			apply(e.store.AddCharacterMemory(ctx, character, types.MemoryNotes, note))
		}
	}

	return outcome
}
