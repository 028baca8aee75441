package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memoria-chat/memoria/pkg/types"
)

func newTestStore(t *testing.T) *DocumentStore {
	t.Helper()
	store, err := NewDocumentStore(filepath.Join(t.TempDir(), "memoria.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLoadProfileInitialisesMissingRow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p := store.LoadProfile(ctx, "user-1")
	require.NotNil(t, p)
	assert.Empty(t, p.Common.BasicInfo)

	// The empty profile is persisted on first load, so a second load sees a
	// stored document rather than ErrNoRows.
	var count int
	err := store.db.QueryRow("SELECT COUNT(*) FROM user_profiles WHERE user_id = ?", "user-1").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestProfileRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p := types.NewProfile()
	p.Common.BasicInfo["name"] = "Alex"
	p.Common.Preferences.Likes = append(p.Common.Preferences.Likes, "coffee")
	p.Characters["Aria"] = &types.CharacterMemory{
		Topics: []string{"gardening"},
		Events: []string{"2026/08/30: visited a garden"},
		Notes:  []string{},
	}
	require.True(t, store.SaveProfile(ctx, "user-1", p))
	assert.NotNil(t, p.LastUpdated, "save stamps the document")

	loaded := store.LoadProfile(ctx, "user-1")
	assert.Equal(t, "Alex", loaded.Common.BasicInfo["name"])
	assert.Equal(t, []string{"coffee"}, loaded.Common.Preferences.Likes)
	require.Contains(t, loaded.Characters, "Aria")
	assert.Equal(t, []string{"2026/08/30: visited a garden"}, loaded.Characters["Aria"].Events)
}

func TestSaveProfileOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p := types.NewProfile()
	p.Common.BasicInfo["name"] = "Alex"
	store.SaveProfile(ctx, "user-1", p)

	p.Common.BasicInfo["name"] = "Alexandra"
	store.SaveProfile(ctx, "user-1", p)

	loaded := store.LoadProfile(ctx, "user-1")
	assert.Equal(t, "Alexandra", loaded.Common.BasicInfo["name"])
}

func TestLoadProfileMigratesLegacyDocument(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	legacy := `{"basic_info": {"name": "Alex"}, "preferences": {"likes": ["tea"]}}`
	_, err := store.db.Exec(
		"INSERT INTO user_profiles (user_id, profile_data) VALUES (?, ?)", "user-1", legacy)
	require.NoError(t, err)

	p := store.LoadProfile(ctx, "user-1")
	assert.Equal(t, "Alex", p.Common.BasicInfo["name"])
	assert.Equal(t, []string{"tea"}, p.Common.Preferences.Likes)
	assert.Empty(t, p.Characters)
}

func TestConversationRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	assert.Empty(t, store.LoadConversation(ctx, "user-1", "Aria"))

	msgs := []types.Message{
		{Role: types.RoleUser, Content: "hello"},
		{Role: types.RoleAssistant, Content: "hi there"},
	}
	require.True(t, store.SaveConversation(ctx, "user-1", "Aria", msgs))
	assert.Equal(t, msgs, store.LoadConversation(ctx, "user-1", "Aria"))

	assert.Empty(t, store.LoadConversation(ctx, "user-1", "Ren"),
		"transcripts are scoped per character")
}

func TestDeleteConversation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.SaveConversation(ctx, "user-1", "Aria", []types.Message{
		{Role: types.RoleUser, Content: "hello"},
	})
	require.True(t, store.DeleteConversation(ctx, "user-1", "Aria"))
	assert.Empty(t, store.LoadConversation(ctx, "user-1", "Aria"))

	assert.True(t, store.DeleteConversation(ctx, "user-1", "Aria"),
		"deleting an absent transcript is not an error")
}

func TestConversationCount(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	assert.Zero(t, store.ConversationCount(ctx, "user-1"))

	store.SaveConversation(ctx, "user-1", "Aria", []types.Message{
		{Role: types.RoleUser, Content: "a"},
		{Role: types.RoleAssistant, Content: "b"},
	})
	store.SaveConversation(ctx, "user-1", "Ren", []types.Message{
		{Role: types.RoleUser, Content: "c"},
	})
	store.SaveConversation(ctx, "user-2", "Aria", []types.Message{
		{Role: types.RoleUser, Content: "d"},
	})

	assert.Equal(t, 3, store.ConversationCount(ctx, "user-1"))
	assert.Equal(t, 1, store.ConversationCount(ctx, "user-2"))
}
