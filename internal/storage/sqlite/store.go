// Package sqlite provides a SQLite-backed document store for profiles and
// conversation transcripts.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/memoria-chat/memoria/internal/storage"
	"github.com/memoria-chat/memoria/pkg/types"
)

// Schema holds the document tables: one profile row per user, one transcript
// row per (user, character). Both store their document as a JSON blob —
// writes are always full-document upserts.
const Schema = `
CREATE TABLE IF NOT EXISTS user_profiles (
	user_id      TEXT PRIMARY KEY,
	profile_data TEXT NOT NULL,
	updated_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS conversations (
	user_id        TEXT NOT NULL,
	character_name TEXT NOT NULL,
	messages       TEXT NOT NULL,
	updated_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (user_id, character_name)
);
`

// DocumentStore implements storage.DocumentStore using SQLite.
type DocumentStore struct {
	db *sql.DB
}

// NewDocumentStore opens a SQLite database at the given DSN (":memory:" for
// tests), enables WAL mode, and creates the schema.
func NewDocumentStore(dsn string) (*DocumentStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open database: %w", err)
	}

	// A single connection avoids table-lock churn; the store has one
	// logical writer per user anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to configure database: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to create schema: %w", err)
	}

	return &DocumentStore{db: db}, nil
}

// LoadProfile loads and migrates the user's profile document. A missing row
// initialises an empty profile and persists it immediately; any backend or
// decode failure degrades to an empty in-memory profile.
func (s *DocumentStore) LoadProfile(ctx context.Context, userID string) *types.Profile {
	var raw string
	err := s.db.QueryRowContext(ctx,
		"SELECT profile_data FROM user_profiles WHERE user_id = ?", userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		p := types.NewProfile()
		s.SaveProfile(ctx, userID, p)
		return p
	}
	if err != nil {
		log.Printf("sqlite: failed to load profile: %v", err)
		return types.NewProfile()
	}

	p, err := storage.Migrate([]byte(raw))
	if err != nil {
		log.Printf("sqlite: failed to migrate profile: %v", err)
		return types.NewProfile()
	}
	return p
}

// SaveProfile upserts the full profile document, stamping LastUpdated.
func (s *DocumentStore) SaveProfile(ctx context.Context, userID string, profile *types.Profile) bool {
	now := time.Now().UTC()
	profile.LastUpdated = &now

	data, err := json.Marshal(profile)
	if err != nil {
		log.Printf("sqlite: failed to encode profile: %v", err)
		return false
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO user_profiles (user_id, profile_data, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET
			profile_data = excluded.profile_data,
			updated_at = CURRENT_TIMESTAMP
	`, userID, string(data))
	if err != nil {
		log.Printf("sqlite: failed to save profile: %v", err)
		return false
	}
	return true
}

// LoadConversation returns the stored transcript for (user, character), or
// an empty slice when none exists or the backend fails.
func (s *DocumentStore) LoadConversation(ctx context.Context, userID, character string) []types.Message {
	var raw string
	err := s.db.QueryRowContext(ctx,
		"SELECT messages FROM conversations WHERE user_id = ? AND character_name = ?",
		userID, character).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return []types.Message{}
	}
	if err != nil {
		log.Printf("sqlite: failed to load conversation: %v", err)
		return []types.Message{}
	}

	var messages []types.Message
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		log.Printf("sqlite: failed to decode conversation: %v", err)
		return []types.Message{}
	}
	return messages
}

// SaveConversation upserts the full transcript document.
func (s *DocumentStore) SaveConversation(ctx context.Context, userID, character string, messages []types.Message) bool {
	data, err := json.Marshal(messages)
	if err != nil {
		log.Printf("sqlite: failed to encode conversation: %v", err)
		return false
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO conversations (user_id, character_name, messages, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id, character_name) DO UPDATE SET
			messages = excluded.messages,
			updated_at = CURRENT_TIMESTAMP
	`, userID, character, string(data))
	if err != nil {
		log.Printf("sqlite: failed to save conversation: %v", err)
		return false
	}
	return true
}

// DeleteConversation removes the transcript for (user, character).
func (s *DocumentStore) DeleteConversation(ctx context.Context, userID, character string) bool {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM conversations WHERE user_id = ? AND character_name = ?",
		userID, character)
	if err != nil {
		log.Printf("sqlite: failed to delete conversation: %v", err)
		return false
	}
	return true
}

// ConversationCount sums message counts across all of the user's characters.
func (s *DocumentStore) ConversationCount(ctx context.Context, userID string) int {
	rows, err := s.db.QueryContext(ctx,
		"SELECT messages FROM conversations WHERE user_id = ?", userID)
	if err != nil {
		log.Printf("sqlite: failed to count conversations: %v", err)
		return 0
	}
	defer rows.Close()

	total := 0
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			continue
		}
		var messages []types.Message
		if err := json.Unmarshal([]byte(raw), &messages); err != nil {
			continue
		}
		total += len(messages)
	}
	return total
}

// Close releases the underlying database handle.
func (s *DocumentStore) Close() error {
	return s.db.Close()
}

// Compile-time assertion.
var _ storage.DocumentStore = (*DocumentStore)(nil)
