package memory

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memoria-chat/memoria/pkg/types"
)

// fakeDocs is an in-memory DocumentStore that records save calls.
type fakeDocs struct {
	profile       *types.Profile
	profileSaves  int
	conversations map[string][]types.Message
}

func newFakeDocs() *fakeDocs {
	return &fakeDocs{conversations: map[string][]types.Message{}}
}

func (f *fakeDocs) LoadProfile(ctx context.Context, userID string) *types.Profile {
	if f.profile == nil {
		f.profile = types.NewProfile()
	}
	return f.profile
}

func (f *fakeDocs) SaveProfile(ctx context.Context, userID string, p *types.Profile) bool {
	f.profile = p
	f.profileSaves++
	return true
}

func (f *fakeDocs) LoadConversation(ctx context.Context, userID, character string) []types.Message {
	return f.conversations[character]
}

func (f *fakeDocs) SaveConversation(ctx context.Context, userID, character string, messages []types.Message) bool {
	f.conversations[character] = append([]types.Message(nil), messages...)
	return true
}

func (f *fakeDocs) DeleteConversation(ctx context.Context, userID, character string) bool {
	delete(f.conversations, character)
	return true
}

func (f *fakeDocs) ConversationCount(ctx context.Context, userID string) int {
	total := 0
	for _, msgs := range f.conversations {
		total += len(msgs)
	}
	return total
}

func (f *fakeDocs) Close() error { return nil }

func newTestStore(t *testing.T) (*Store, *fakeDocs) {
	t.Helper()
	docs := newFakeDocs()
	return NewStore(context.Background(), docs, "user-1"), docs
}

func TestAddPreferenceCaseInsensitiveIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.True(t, store.AddPreference(ctx, "Coffee", types.PreferenceLikes))
	assert.False(t, store.AddPreference(ctx, "coffee", types.PreferenceLikes))

	likes := store.Profile().Common.Preferences.Likes
	require.Len(t, likes, 1)
	assert.Equal(t, "Coffee", likes[0], "first-inserted casing is kept")
}

func TestDeletePreferenceExactMatch(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	store.AddPreference(ctx, "natto", types.PreferenceDislikes)

	assert.False(t, store.DeletePreference(ctx, "cilantro", types.PreferenceDislikes))
	assert.True(t, store.DeletePreference(ctx, "natto", types.PreferenceDislikes))
	assert.Empty(t, store.Profile().Common.Preferences.Dislikes)
}

func TestSetBasicInfoLastWriteWins(t *testing.T) {
	store, docs := newTestStore(t)
	ctx := context.Background()

	store.SetBasicInfo(ctx, "name", "Alex")
	store.SetBasicInfo(ctx, "name", "Alexandra")

	assert.Equal(t, "Alexandra", store.Profile().Common.BasicInfo["name"])
	assert.Equal(t, 2, docs.profileSaves, "every mutation writes through")
}

func TestDeleteBasicInfoReportsNotFound(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	assert.False(t, store.DeleteBasicInfo(ctx, "name"))
	store.SetBasicInfo(ctx, "name", "Alex")
	assert.True(t, store.DeleteBasicInfo(ctx, "name"))
}

func TestAddCharacterMemoryNearDuplicateRejected(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.True(t, store.AddCharacterMemory(ctx, "Aria", types.MemoryNotes, "Likes jazz music"))
	assert.False(t, store.AddCharacterMemory(ctx, "Aria", types.MemoryNotes, "likes jazz"))
	assert.Len(t, store.Profile().Characters["Aria"].Notes, 1)
}

func TestAddCharacterMemoryStampsEvents(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	store.now = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }

	require.True(t, store.AddCharacterMemory(ctx, "Aria", types.MemoryEvents, "Went to a concert"))

	events := store.Profile().Characters["Aria"].Events
	require.Len(t, events, 1)
	assert.Equal(t, "2026/08/30: Went to a concert", events[0])
	assert.Regexp(t, regexp.MustCompile(`^\d{4}/\d{2}/\d{2}: `), events[0])
}

func TestAddCharacterMemoryRejectedInsertDoesNotPersist(t *testing.T) {
	store, docs := newTestStore(t)
	ctx := context.Background()

	store.AddCharacterMemory(ctx, "Aria", types.MemoryNotes, "likes jazz music")
	saves := docs.profileSaves

	assert.False(t, store.AddCharacterMemory(ctx, "Aria", types.MemoryNotes, "likes jazz"))
	assert.Equal(t, saves, docs.profileSaves, "rejected insert must not write through")
}

func TestDeleteCharacterMemoryByIndex(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	store.AddCharacterMemory(ctx, "Aria", types.MemoryTopics, "cooking")
	store.AddCharacterMemory(ctx, "Aria", types.MemoryTopics, "travel plans")

	require.NoError(t, store.DeleteCharacterMemory(ctx, "Aria", types.MemoryTopics, 0))
	topics := store.Profile().Characters["Aria"].Topics
	require.Len(t, topics, 1)
	assert.Equal(t, "travel plans", topics[0])

	err := store.DeleteCharacterMemory(ctx, "Aria", types.MemoryTopics, 5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	err = store.DeleteCharacterMemory(ctx, "Nobody", types.MemoryTopics, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestDeleteAllCharacterMemoryRemovesBucketKey(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	store.AddCharacterMemory(ctx, "Aria", types.MemoryNotes, "likes jazz")

	assert.True(t, store.DeleteAllCharacterMemory(ctx, "Aria"))
	_, exists := store.Profile().Characters["Aria"]
	assert.False(t, exists)

	assert.False(t, store.DeleteAllCharacterMemory(ctx, "Aria"))
}

func TestSummarizeSections(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	assert.Empty(t, store.Summarize(SectionBasicInfo))
	assert.Empty(t, store.Summarize(SectionLikes))

	store.SetBasicInfo(ctx, "name", "Alex")
	store.SetBasicInfo(ctx, "occupation", "engineer")
	store.AddPreference(ctx, "coffee", types.PreferenceLikes)
	store.AddPreference(ctx, "jazz", types.PreferenceLikes)

	assert.Equal(t, []string{"name: Alex", "occupation: engineer"}, store.Summarize(SectionBasicInfo))
	assert.Equal(t, []string{"coffee, jazz"}, store.Summarize(SectionLikes))
}

func TestCharacterSummaryShowsLastFiveEventsOldestFirst(t *testing.T) {
	store, _ := newTestStore(t)

	bucket := types.NewCharacterMemory()
	for _, e := range []string{"e1", "e2", "e3", "e4", "e5", "e6", "e7"} {
		bucket.Events = append(bucket.Events, "2026/01/01: "+e)
	}
	store.Profile().Characters["Aria"] = bucket

	summary, ok := store.CharacterSummary("Aria")
	require.True(t, ok)
	assert.NotContains(t, summary, "e2")
	assert.Contains(t, summary, "e3")
	assert.Contains(t, summary, "e7")
	assert.Less(t, strings.Index(summary, "e3"), strings.Index(summary, "e7"), "events render oldest first")
}

func TestCharacterSummaryEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	_, ok := store.CharacterSummary("Aria")
	assert.False(t, ok, "no bucket yields no summary")

	store.Profile().Characters["Aria"] = types.NewCharacterMemory()
	_, ok = store.CharacterSummary("Aria")
	assert.False(t, ok, "empty bucket yields no summary")
}
