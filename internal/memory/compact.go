package memory

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/memoria-chat/memoria/internal/llm"
	"github.com/memoria-chat/memoria/pkg/types"
)

const (
	// compactMinEntries: lists at or below this size are left alone.
	compactMinEntries = 10

	// compactMaxEntries: after re-dedup, lists above this size get their
	// oldest entries folded into a summary.
	compactMaxEntries = 50

	// compactKeepRecent: how many newest entries survive a summarization
	// pass verbatim.
	compactKeepRecent = 20

	// summaryMaxTokens bounds the generated synthesis.
	summaryMaxTokens = 300
)

// CompactionResult aggregates what one compaction pass did across all three
// lists of a character's bucket.
type CompactionResult struct {
	DuplicatesRemoved int // exact duplicates dropped by the re-dedup pass
	EntriesSummarized int // entries folded into synthetic summary entries
}

// Compactor keeps character buckets bounded: each list is periodically
// re-deduplicated, and when a list has grown past compactMaxEntries its
// oldest entries are replaced with a single LLM-generated synthesis.
// Compaction never fails the caller — if the text-generation call errors,
// the folded entries are replaced with a counted placeholder instead.
type Compactor struct {
	store *Store
	gen   llm.TextGenerator
	dedup Deduper
}

// NewCompactor creates a compactor over the given store. gen may be nil, in
// which case summarization always takes the placeholder path.
func NewCompactor(store *Store, gen llm.TextGenerator) *Compactor {
	return &Compactor{store: store, gen: gen}
}

// Compact runs one pass over the character's bucket, handling topics,
// events, and notes independently, and persists the profile once at the
// end if anything changed. A character with no bucket is a no-op.
func (c *Compactor) Compact(ctx context.Context, character string) CompactionResult {
	var result CompactionResult

	bucket, ok := c.store.profile.Characters[character]
	if !ok {
		return result
	}

	changed := false
	for _, kind := range types.MemoryKinds {
		list := bucket.List(kind)
		if len(list) <= compactMinEntries {
			continue
		}

		deduped, removed := c.dedup.DedupeExact(list)

		summarized := 0
		if len(deduped) > compactMaxEntries {
			split := len(deduped) - compactKeepRecent
			oldest, newest := deduped[:split], deduped[split:]

			summary := c.summarize(ctx, kind, oldest)
			deduped = append([]string{summary}, newest...)
			summarized = len(oldest)
		}

		result.DuplicatesRemoved += removed
		result.EntriesSummarized += summarized

		if removed > 0 || summarized > 0 {
			bucket.SetList(kind, deduped)
			changed = true
		}
	}

	if changed {
		c.store.persist(ctx)
		log.Printf("memory: compacted %q bucket: %d duplicates removed, %d entries summarized",
			character, result.DuplicatesRemoved, result.EntriesSummarized)
	}
	return result
}

// summarize folds old entries into one synthetic entry. On any generation
// failure it falls back to a counted placeholder so compaction still
// shrinks the list.
func (c *Compactor) summarize(ctx context.Context, kind types.MemoryKind, entries []string) string {
	if c.gen != nil {
		text, err := c.gen.Complete(ctx, llm.MemorySummarizationPrompt(kind, entries), summaryMaxTokens)
		if err == nil && strings.TrimSpace(text) != "" {
			return "[summary] " + strings.TrimSpace(text)
		}
		if err != nil {
			log.Printf("memory: summarization failed, using placeholder: %v", err)
		}
	}
	return fmt.Sprintf("%d %s entries (details omitted)", len(entries), kind)
}
