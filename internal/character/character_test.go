package character

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCharactersFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "characters.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	reg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, []string{"Aria", "Ren", "Yuki"}, reg.Names())
	aria, ok := reg.Get("Aria")
	require.True(t, ok)
	assert.NotEmpty(t, aria.SystemPrompt)
}

func TestLoadFromYAML(t *testing.T) {
	path := writeCharactersFile(t, `
characters:
  - name: Mira
    emoji: "🔭"
    description: A stargazer
    system_prompt: You are Mira, a stargazer.
  - name: Taro
    emoji: "🍙"
    description: A cook
    system_prompt: You are Taro, a cook.
`)

	reg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Mira", "Taro"}, reg.Names())
	mira, ok := reg.Get("Mira")
	require.True(t, ok)
	assert.Equal(t, "A stargazer", mira.Description)
	assert.Equal(t, "You are Mira, a stargazer.", mira.SystemPrompt)
}

func TestLoadRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no characters", "characters: []"},
		{"unnamed character", "characters:\n  - description: nameless"},
		{"not yaml", "{{{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeCharactersFile(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestRegistryDuplicateNamesLastWins(t *testing.T) {
	reg := NewRegistry([]Character{
		{Name: "Mira", Description: "first"},
		{Name: "Mira", Description: "second"},
	})

	assert.Equal(t, []string{"Mira"}, reg.Names())
	mira, _ := reg.Get("Mira")
	assert.Equal(t, "second", mira.Description)
}

func TestRegistryAllPreservesOrder(t *testing.T) {
	reg := NewRegistry([]Character{{Name: "B"}, {Name: "A"}, {Name: "C"}})

	all := reg.All()
	require.Len(t, all, 3)
	assert.Equal(t, "B", all[0].Name)
	assert.Equal(t, "A", all[1].Name)
	assert.Equal(t, "C", all[2].Name)
}

func TestRegistryGetUnknown(t *testing.T) {
	reg := NewRegistry(Defaults())
	_, ok := reg.Get("Nobody")
	assert.False(t, ok)
}
