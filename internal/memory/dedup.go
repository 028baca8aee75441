package memory

import (
	"regexp"
	"strings"
)

// dateStampRe matches the "YYYY/MM/DD: " prefix stored on event entries.
var dateStampRe = regexp.MustCompile(`^\d{4}/\d{2}/\d{2}: `)

// Deduper decides whether a candidate memory entry is new enough to store.
//
// Two comparison modes exist. Exact matching (case-insensitive equality
// after stripping the event date stamp) guards the preference sets and
// compaction's re-dedup pass. Near matching additionally treats one string
// containing the other as a duplicate, which suppresses both "repeated
// verbatim" and "repeated with more detail" entries in character buckets.
//
// The substring rule is coarse: a very short entry matches almost anything.
// It matches the behavior of profiles already in production; a
// distance-based rule would go here, since callers never compare strings
// themselves.
type Deduper struct{}

// normalize lower-cases an entry and strips any event date stamp so that
// comparisons see only the content.
func (Deduper) normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(dateStampRe.ReplaceAllString(s, "")))
}

// IsExactDuplicate reports whether candidate equals any existing entry,
// case-insensitively and ignoring event date stamps.
func (d Deduper) IsExactDuplicate(candidate string, existing []string) bool {
	c := d.normalize(candidate)
	for _, e := range existing {
		if c == d.normalize(e) {
			return true
		}
	}
	return false
}

// IsDuplicate reports whether candidate is a near duplicate of any existing
// entry: after normalization, either string being a substring of the other
// counts as a duplicate.
func (d Deduper) IsDuplicate(candidate string, existing []string) bool {
	c := d.normalize(candidate)
	for _, raw := range existing {
		e := d.normalize(raw)
		if strings.Contains(e, c) || strings.Contains(c, e) {
			return true
		}
	}
	return false
}

// DedupeExact removes exact duplicates from entries, preserving first
// occurrence order. It returns the deduplicated list and the number of
// entries removed.
func (d Deduper) DedupeExact(entries []string) ([]string, int) {
	seen := make(map[string]bool, len(entries))
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		key := d.normalize(e)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out, len(entries) - len(out)
}
