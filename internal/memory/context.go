package memory

import "strings"

// Default turn cadences: fact extraction runs every 5th accepted message,
// compaction every 50th.
const (
	DefaultExtractionInterval = 5
	DefaultCompactionInterval = 50
)

// contextDirective closes every assembled memory block. It keeps the model
// from reciting stored facts back at the user.
const contextDirective = "Never recite this information wholesale or ask the user to confirm it. " +
	"Use it implicitly, as things you naturally remember from past conversations."

// Assembler renders the store's current state into a bounded context block
// for a character's system instruction, and decides when a turn should
// trigger extraction or compaction.
type Assembler struct {
	store *Store
}

// NewAssembler creates an assembler over the given store.
func NewAssembler(store *Store) *Assembler {
	return &Assembler{store: store}
}

// BuildContext concatenates the common-profile summary and the character's
// memory summary into one text block ready to embed in a system
// instruction. ok is false when both are empty — callers must then omit the
// memory block from the prompt entirely rather than injecting a placeholder.
func (a *Assembler) BuildContext(character string) (string, bool) {
	common, haveCommon := a.store.CommonSummary()
	chars, haveChars := a.store.CharacterSummary(character)
	if !haveCommon && !haveChars {
		return "", false
	}

	var b strings.Builder
	b.WriteString("What you know about the user from past conversations:\n\n")
	if haveCommon {
		b.WriteString(common)
		b.WriteString("\n")
	}
	if haveChars {
		if haveCommon {
			b.WriteString("\n")
		}
		b.WriteString("Your own memories with this user:\n\n")
		b.WriteString(chars)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(contextDirective)
	return b.String(), true
}

// ShouldExtract reports whether a turn ending with messageCount accepted
// messages should trigger fact extraction. interval <= 0 uses the default.
func ShouldExtract(messageCount, interval int) bool {
	if interval <= 0 {
		interval = DefaultExtractionInterval
	}
	return messageCount > 0 && messageCount%interval == 0
}

// ShouldCompact reports whether a turn ending with messageCount accepted
// messages should trigger bucket compaction. interval <= 0 uses the default.
func ShouldCompact(messageCount, interval int) bool {
	if interval <= 0 {
		interval = DefaultCompactionInterval
	}
	return messageCount > 0 && messageCount%interval == 0
}
