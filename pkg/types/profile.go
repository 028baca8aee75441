// Package types defines the shared domain types for memoria: the durable
// user profile (common facts plus per-character memory buckets) and the
// conversation message shape exchanged with the completion capability.
package types

import "time"

// Profile is the durable per-user memory document. One profile exists per
// user, shared by every character persona. The common section holds facts
// that apply regardless of which character the user talks to; character
// buckets hold each persona's private memories.
type Profile struct {
	Common      CommonProfile               `json:"common_profile"`
	Characters  map[string]*CharacterMemory `json:"character_memories"`
	LastUpdated *time.Time                  `json:"last_updated,omitempty"`
}

// NewProfile returns an empty profile with all containers initialised.
func NewProfile() *Profile {
	return &Profile{
		Common: CommonProfile{
			BasicInfo:   map[string]string{},
			Preferences: Preferences{Likes: []string{}, Dislikes: []string{}},
		},
		Characters: map[string]*CharacterMemory{},
	}
}

// Normalize fills in nil containers on a profile decoded from storage so
// callers never have to nil-check maps or slices.
func (p *Profile) Normalize() {
	if p.Common.BasicInfo == nil {
		p.Common.BasicInfo = map[string]string{}
	}
	if p.Common.Preferences.Likes == nil {
		p.Common.Preferences.Likes = []string{}
	}
	if p.Common.Preferences.Dislikes == nil {
		p.Common.Preferences.Dislikes = []string{}
	}
	if p.Characters == nil {
		p.Characters = map[string]*CharacterMemory{}
	}
}

// CommonProfile holds facts shared across all character personas.
type CommonProfile struct {
	BasicInfo   map[string]string `json:"basic_info"`
	Preferences Preferences       `json:"preferences"`
}

// Preferences holds the user's likes and dislikes. Membership is
// case-insensitive; insertion order is preserved for display.
type Preferences struct {
	Likes    []string `json:"likes"`
	Dislikes []string `json:"dislikes"`
}

// List returns the preference list for the given kind.
func (p *Preferences) List(kind PreferenceKind) []string {
	switch kind {
	case PreferenceLikes:
		return p.Likes
	case PreferenceDislikes:
		return p.Dislikes
	default:
		panic("types: unknown preference kind " + string(kind))
	}
}

// SetList replaces the preference list for the given kind.
func (p *Preferences) SetList(kind PreferenceKind, items []string) {
	switch kind {
	case PreferenceLikes:
		p.Likes = items
	case PreferenceDislikes:
		p.Dislikes = items
	default:
		panic("types: unknown preference kind " + string(kind))
	}
}

// CharacterMemory is one character's private memory bucket: three
// append-mostly ordered lists of string entries. Event entries carry a
// "YYYY/MM/DD: " date stamp prefix; topics and notes store raw content.
type CharacterMemory struct {
	Topics []string `json:"topics"`
	Events []string `json:"events"`
	Notes  []string `json:"notes"`
}

// NewCharacterMemory returns an empty bucket with all lists initialised.
func NewCharacterMemory() *CharacterMemory {
	return &CharacterMemory{Topics: []string{}, Events: []string{}, Notes: []string{}}
}

// List returns the entry list for the given memory kind.
func (m *CharacterMemory) List(kind MemoryKind) []string {
	switch kind {
	case MemoryTopics:
		return m.Topics
	case MemoryEvents:
		return m.Events
	case MemoryNotes:
		return m.Notes
	default:
		panic("types: unknown memory kind " + string(kind))
	}
}

// SetList replaces the entry list for the given memory kind.
func (m *CharacterMemory) SetList(kind MemoryKind, entries []string) {
	switch kind {
	case MemoryTopics:
		m.Topics = entries
	case MemoryEvents:
		m.Events = entries
	case MemoryNotes:
		m.Notes = entries
	default:
		panic("types: unknown memory kind " + string(kind))
	}
}

// Empty reports whether all three lists hold no entries.
func (m *CharacterMemory) Empty() bool {
	return len(m.Topics) == 0 && len(m.Events) == 0 && len(m.Notes) == 0
}
