// Package chat orchestrates a conversation turn: it windows the transcript,
// assembles the character's system instruction with the user's memory block,
// calls the completion capability, and on success persists the transcript
// and runs the memory-layer cadence (extraction every Nth message,
// compaction every Nth message).
package chat

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/memoria-chat/memoria/internal/character"
	"github.com/memoria-chat/memoria/internal/config"
	"github.com/memoria-chat/memoria/internal/llm"
	"github.com/memoria-chat/memoria/internal/memory"
	"github.com/memoria-chat/memoria/internal/storage"
	"github.com/memoria-chat/memoria/pkg/types"
)

// UserID derives the opaque user identity from a passphrase. Anyone with
// the same passphrase sees the same profile; the storage layer never sees
// the passphrase itself.
func UserID(passphrase string) string {
	sum := sha256.Sum256([]byte(passphrase))
	return hex.EncodeToString(sum[:])
}

// Session is one user's conversation with one character. It owns the
// in-memory transcript for its lifetime; the design assumes a single active
// session per user identity, so saves are plain full-document overwrites.
type Session struct {
	ID        string
	userID    string
	char      character.Character
	docs      storage.DocumentStore
	gen       llm.TextGenerator
	assembler *memory.Assembler
	extractor *memory.Extractor
	compactor *memory.Compactor
	cfg       config.ChatConfig
	messages  []types.Message
}

// NewSession loads the stored transcript for (user, character) and binds
// the memory layer to it.
func NewSession(ctx context.Context, docs storage.DocumentStore, gen llm.TextGenerator, mem *memory.Store, char character.Character, userID string, cfg config.ChatConfig) *Session {
	return &Session{
		ID:        uuid.NewString(),
		userID:    userID,
		char:      char,
		docs:      docs,
		gen:       gen,
		assembler: memory.NewAssembler(mem),
		extractor: memory.NewExtractor(mem, gen),
		compactor: memory.NewCompactor(mem, gen),
		cfg:       cfg,
		messages:  docs.LoadConversation(ctx, userID, char.Name),
	}
}

// Messages returns the current in-memory transcript.
func (s *Session) Messages() []types.Message {
	return s.messages
}

// Character returns the persona this session talks to.
func (s *Session) Character() character.Character {
	return s.char
}

// Send handles one user turn. The user message is committed to the
// in-memory transcript optimistically; the assistant reply is appended and
// the transcript persisted only after a successful completion, so a failed
// turn leaves no assistant message and no memory mutation. After a
// successful turn the memory cadence runs synchronously: extraction every
// ExtractionInterval accepted messages, compaction every
// CompactionInterval.
func (s *Session) Send(ctx context.Context, text string) (string, error) {
	s.messages = append(s.messages, types.Message{Role: types.RoleUser, Content: text})

	reply, err := s.gen.Chat(ctx, s.systemPrompt(), s.window(), s.maxTokens())
	if err != nil {
		return "", fmt.Errorf("chat: completion failed: %w", err)
	}

	s.messages = append(s.messages, types.Message{Role: types.RoleAssistant, Content: reply})
	s.docs.SaveConversation(ctx, s.userID, s.char.Name, s.messages)

	n := len(s.messages)
	if memory.ShouldExtract(n, s.cfg.ExtractionInterval) {
		if outcome := s.extractor.Extract(ctx, s.char.Name, s.messages); outcome.Skipped() {
			log.Printf("chat: extraction skipped: %s", outcome.SkipReason)
		} else {
			log.Printf("chat: extraction applied %d facts, dropped %d duplicates", outcome.Applied, outcome.Dropped)
		}
	}
	if memory.ShouldCompact(n, s.cfg.CompactionInterval) {
		s.compactor.Compact(ctx, s.char.Name)
	}

	return reply, nil
}

// Reset deletes the stored transcript and clears the in-memory one,
// reporting whether the delete succeeded.
func (s *Session) Reset(ctx context.Context) bool {
	ok := s.docs.DeleteConversation(ctx, s.userID, s.char.Name)
	if ok {
		s.messages = nil
	}
	return ok
}

// systemPrompt combines the persona's base prompt with the assembled memory
// block. An empty memory block is omitted entirely — no placeholder section
// is ever injected.
func (s *Session) systemPrompt() string {
	base := s.char.SystemPrompt
	block, ok := s.assembler.BuildContext(s.char.Name)
	if !ok {
		return base
	}
	return base + "\n\n" + block
}

// window returns the transcript tail sent to the completion capability.
func (s *Session) window() []types.Message {
	limit := s.cfg.HistoryWindow
	if limit <= 0 {
		limit = 20
	}
	if len(s.messages) <= limit {
		return s.messages
	}
	return s.messages[len(s.messages)-limit:]
}

func (s *Session) maxTokens() int {
	if s.cfg.ChatMaxTokens > 0 {
		return s.cfg.ChatMaxTokens
	}
	return 1000
}
