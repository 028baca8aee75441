package types

// MemoryKind identifies one of the three lists in a character memory bucket.
type MemoryKind string

const (
	MemoryTopics MemoryKind = "topics"
	MemoryEvents MemoryKind = "events"
	MemoryNotes  MemoryKind = "notes"
)

// MemoryKinds lists all valid memory kinds in display order.
var MemoryKinds = []MemoryKind{MemoryTopics, MemoryEvents, MemoryNotes}

// IsValidMemoryKind reports whether kind names one of the three bucket lists.
func IsValidMemoryKind(kind string) bool {
	switch MemoryKind(kind) {
	case MemoryTopics, MemoryEvents, MemoryNotes:
		return true
	}
	return false
}

// PreferenceKind identifies one of the two preference sets.
type PreferenceKind string

const (
	PreferenceLikes    PreferenceKind = "likes"
	PreferenceDislikes PreferenceKind = "dislikes"
)

// IsValidPreferenceKind reports whether kind names a preference set.
func IsValidPreferenceKind(kind string) bool {
	switch PreferenceKind(kind) {
	case PreferenceLikes, PreferenceDislikes:
		return true
	}
	return false
}
