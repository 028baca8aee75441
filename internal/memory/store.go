// Package memory implements the durable user-memory model shared across
// chat characters: a common profile (basic info and preferences) plus
// per-character topic/event/note buckets, with duplicate suppression on
// insert, LLM-backed compaction to bound bucket growth, LLM-backed fact
// extraction from conversation excerpts, and context assembly for prompts.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/memoria-chat/memoria/internal/storage"
	"github.com/memoria-chat/memoria/pkg/types"
)

// ErrIndexOutOfRange is returned by positional deletes when the index does
// not name an existing entry, or the character has no bucket.
var ErrIndexOutOfRange = errors.New("memory: index out of range")

// eventStampLayout is the date-stamp prefix format for event entries.
const eventStampLayout = "2006/01/02"

// Store is the sole authority over the profile document's shape and
// mutation. It holds the profile in memory for the session lifetime and
// writes the full document through to the document store after every
// mutating call. Construct one per user session, not process-wide; it
// assumes a single logical writer per user.
type Store struct {
	userID  string
	docs    storage.DocumentStore
	profile *types.Profile
	dedup   Deduper
	now     func() time.Time
}

// NewStore loads the user's profile from the document store and returns a
// store bound to it. A missing or unreachable backend yields an empty
// profile rather than an error.
func NewStore(ctx context.Context, docs storage.DocumentStore, userID string) *Store {
	return &Store{
		userID:  userID,
		docs:    docs,
		profile: docs.LoadProfile(ctx, userID),
		now:     time.Now,
	}
}

// Profile exposes the in-memory profile for read-only display.
func (s *Store) Profile() *types.Profile {
	return s.profile
}

func (s *Store) persist(ctx context.Context) {
	s.docs.SaveProfile(ctx, s.userID, s.profile)
}

// SetBasicInfo upserts one basic-info entry. Conflicting labels are
// overwritten silently (last write wins).
func (s *Store) SetBasicInfo(ctx context.Context, key, value string) {
	s.profile.Common.BasicInfo[key] = value
	s.persist(ctx)
}

// DeleteBasicInfo removes a basic-info entry, reporting whether it existed.
func (s *Store) DeleteBasicInfo(ctx context.Context, key string) bool {
	if _, ok := s.profile.Common.BasicInfo[key]; !ok {
		return false
	}
	delete(s.profile.Common.BasicInfo, key)
	s.persist(ctx)
	return true
}

// AddPreference appends item to the likes or dislikes set, reporting whether
// it was inserted. Membership is case-insensitive; the first-inserted casing
// is the one kept.
func (s *Store) AddPreference(ctx context.Context, item string, kind types.PreferenceKind) bool {
	list := s.profile.Common.Preferences.List(kind)
	if s.dedup.IsExactDuplicate(item, list) {
		return false
	}
	s.profile.Common.Preferences.SetList(kind, append(list, item))
	s.persist(ctx)
	return true
}

// DeletePreference removes item from the given set by exact match,
// reporting whether it was found.
func (s *Store) DeletePreference(ctx context.Context, item string, kind types.PreferenceKind) bool {
	list := s.profile.Common.Preferences.List(kind)
	for i, existing := range list {
		if existing == item {
			s.profile.Common.Preferences.SetList(kind, append(list[:i:i], list[i+1:]...))
			s.persist(ctx)
			return true
		}
	}
	return false
}

// AddCharacterMemory appends content to the character's topics, events, or
// notes list, reporting whether it was inserted. Event entries are stamped
// with the current date before storage. Near duplicates of existing entries
// are dropped; a character's bucket is only created once an entry is
// actually accepted.
func (s *Store) AddCharacterMemory(ctx context.Context, character string, kind types.MemoryKind, content string) bool {
	bucket, ok := s.profile.Characters[character]
	if !ok {
		bucket = types.NewCharacterMemory()
	}

	if s.dedup.IsDuplicate(content, bucket.List(kind)) {
		return false
	}

	entry := content
	if kind == types.MemoryEvents {
		entry = s.now().Format(eventStampLayout) + ": " + content
	}

	bucket.SetList(kind, append(bucket.List(kind), entry))
	s.profile.Characters[character] = bucket
	s.persist(ctx)
	return true
}

// DeleteCharacterMemory removes the entry at index from the character's
// list of the given kind. It returns ErrIndexOutOfRange when the character
// has no bucket or the index does not name an entry.
func (s *Store) DeleteCharacterMemory(ctx context.Context, character string, kind types.MemoryKind, index int) error {
	bucket, ok := s.profile.Characters[character]
	if !ok {
		return fmt.Errorf("%w: character %q has no memories", ErrIndexOutOfRange, character)
	}
	list := bucket.List(kind)
	if index < 0 || index >= len(list) {
		return fmt.Errorf("%w: %d of %d %s entries", ErrIndexOutOfRange, index, len(list), kind)
	}
	bucket.SetList(kind, append(list[:index:index], list[index+1:]...))
	s.persist(ctx)
	return nil
}

// DeleteAllCharacterMemory removes the character's entire bucket, reporting
// whether it existed.
func (s *Store) DeleteAllCharacterMemory(ctx context.Context, character string) bool {
	if _, ok := s.profile.Characters[character]; !ok {
		return false
	}
	delete(s.profile.Characters, character)
	s.persist(ctx)
	return true
}

// Section identifies a common-profile field for Summarize.
type Section string

const (
	SectionBasicInfo Section = "basic_info"
	SectionLikes     Section = "likes"
	SectionDislikes  Section = "dislikes"
)

// Summarize renders one common-profile section as display lines: one
// "label: value" line per basic-info entry, or a single comma-joined line
// for a preference set. Empty sections yield no lines. All entries are
// always listed — the common profile never truncates.
func (s *Store) Summarize(section Section) []string {
	switch section {
	case SectionBasicInfo:
		info := s.profile.Common.BasicInfo
		lines := make([]string, 0, len(info))
		for _, key := range sortedKeys(info) {
			lines = append(lines, key+": "+info[key])
		}
		return lines
	case SectionLikes:
		return joinedLine(s.profile.Common.Preferences.Likes)
	case SectionDislikes:
		return joinedLine(s.profile.Common.Preferences.Dislikes)
	default:
		panic("memory: unknown profile section " + string(section))
	}
}

func joinedLine(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	return []string{strings.Join(items, ", ")}
}

// CommonSummary renders the full common profile as a headed text block.
// ok is false when there is nothing to show.
func (s *Store) CommonSummary() (string, bool) {
	var sections []string

	if lines := s.Summarize(SectionBasicInfo); len(lines) > 0 {
		sections = append(sections, "[Basic info]\n- "+strings.Join(lines, "\n- "))
	}
	if lines := s.Summarize(SectionLikes); len(lines) > 0 {
		sections = append(sections, "[Likes]\n- "+lines[0])
	}
	if lines := s.Summarize(SectionDislikes); len(lines) > 0 {
		sections = append(sections, "[Dislikes]\n- "+lines[0])
	}

	if len(sections) == 0 {
		return "", false
	}
	return strings.Join(sections, "\n\n"), true
}

// characterEventWindow is how many recent events a character summary shows.
const characterEventWindow = 5

// CharacterSummary renders the character's bucket as a headed text block:
// all topics, the last five events (oldest first within that tail), and all
// notes. ok is false when the character has no bucket or every list is
// empty.
func (s *Store) CharacterSummary(character string) (string, bool) {
	bucket, exists := s.profile.Characters[character]
	if !exists || bucket.Empty() {
		return "", false
	}

	var sections []string

	if len(bucket.Topics) > 0 {
		sections = append(sections, "[Topics]\n- "+strings.Join(bucket.Topics, "\n- "))
	}
	if len(bucket.Events) > 0 {
		events := bucket.Events
		if len(events) > characterEventWindow {
			events = events[len(events)-characterEventWindow:]
		}
		sections = append(sections, "[Recent events]\n- "+strings.Join(events, "\n- "))
	}
	if len(bucket.Notes) > 0 {
		sections = append(sections, "[Notes]\n- "+strings.Join(bucket.Notes, "\n- "))
	}

	return strings.Join(sections, "\n\n"), true
}

// sortedKeys returns map keys in sorted order. Basic info does not track
// insertion order, so sorting keeps summaries stable between renders.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
