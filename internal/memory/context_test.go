package memory

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memoria-chat/memoria/pkg/types"
)

func TestBuildContextEmptyProfile(t *testing.T) {
	store, _ := newTestStore(t)

	_, ok := NewAssembler(store).BuildContext("Aria")
	assert.False(t, ok, "a brand-new user yields no memory block")
}

func TestBuildContextCommonOnly(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	store.SetBasicInfo(ctx, "name", "Alex")
	store.AddPreference(ctx, "coffee", types.PreferenceLikes)

	block, ok := NewAssembler(store).BuildContext("Aria")
	require.True(t, ok)

	assert.Contains(t, block, "What you know about the user from past conversations:")
	assert.Contains(t, block, "[Basic info]\n- name: Alex")
	assert.Contains(t, block, "[Likes]\n- coffee")
	assert.NotContains(t, block, "Your own memories with this user:")
	assert.True(t, strings.HasSuffix(block, contextDirective))
}

func TestBuildContextCharacterOnly(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	store.AddCharacterMemory(ctx, "Aria", types.MemoryTopics, "gardening")

	block, ok := NewAssembler(store).BuildContext("Aria")
	require.True(t, ok)

	assert.Contains(t, block, "Your own memories with this user:")
	assert.Contains(t, block, "[Topics]\n- gardening")
	assert.NotContains(t, block, "[Basic info]")
}

func TestBuildContextScopedToCharacter(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	store.AddCharacterMemory(ctx, "Aria", types.MemoryNotes, "prefers short answers")

	block, ok := NewAssembler(store).BuildContext("Aria")
	require.True(t, ok)
	assert.Contains(t, block, "prefers short answers")

	_, ok = NewAssembler(store).BuildContext("Ren")
	assert.False(t, ok, "another character must not see Aria's memories")
}

func TestShouldExtract(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		interval int
		want     bool
	}{
		{"zero messages", 0, 5, false},
		{"below interval", 4, 5, false},
		{"on interval", 5, 5, true},
		{"on multiple", 10, 5, true},
		{"default interval", 5, 0, true},
		{"default interval off-cycle", 7, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldExtract(tt.count, tt.interval))
		})
	}
}

func TestShouldCompact(t *testing.T) {
	assert.False(t, ShouldCompact(0, 50))
	assert.False(t, ShouldCompact(49, 50))
	assert.True(t, ShouldCompact(50, 50))
	assert.True(t, ShouldCompact(100, 0), "zero interval falls back to the default")
}
