// Package storage defines the document-store boundary for memoria.
//
// The backend is treated as a key-value document store: one profile document
// per user, one transcript document per (user, character). Adapters degrade
// on transport failure instead of propagating errors — reads return a safe
// empty default and writes report false — so the memory layer keeps working
// with empty state when the backend is unreachable. Failures are logged for
// operability only.
package storage

import (
	"context"

	"github.com/memoria-chat/memoria/pkg/types"
)

// DocumentStore is the persistence boundary consumed by the memory layer
// and the chat session.
type DocumentStore interface {
	// LoadProfile returns the user's profile document. If none exists, a
	// freshly-initialised empty profile is persisted and returned. On
	// transport failure it returns an empty profile without persisting.
	LoadProfile(ctx context.Context, userID string) *types.Profile

	// SaveProfile upserts the full profile document and stamps
	// LastUpdated. Reports whether the write succeeded.
	SaveProfile(ctx context.Context, userID string, profile *types.Profile) bool

	// LoadConversation returns the transcript for (user, character), or an
	// empty slice if none exists or the backend is unreachable.
	LoadConversation(ctx context.Context, userID, character string) []types.Message

	// SaveConversation upserts the full transcript document.
	SaveConversation(ctx context.Context, userID, character string, messages []types.Message) bool

	// DeleteConversation removes the transcript for (user, character).
	DeleteConversation(ctx context.Context, userID, character string) bool

	// ConversationCount returns the total number of messages across all of
	// the user's characters, or 0 on failure.
	ConversationCount(ctx context.Context, userID string) int

	// Close releases backend resources.
	Close() error
}
