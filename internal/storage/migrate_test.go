package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateEmptyDocument(t *testing.T) {
	for _, raw := range [][]byte{nil, []byte(""), []byte("   \n")} {
		p, err := Migrate(raw)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Empty(t, p.Common.BasicInfo)
		assert.Empty(t, p.Characters)
	}
}

func TestMigrateCurrentShapePassthrough(t *testing.T) {
	raw := []byte(`{
		"common_profile": {
			"basic_info": {"name": "Alex"},
			"preferences": {"likes": ["coffee"], "dislikes": []}
		},
		"character_memories": {
			"Aria": {"topics": ["gardening"], "events": [], "notes": []}
		}
	}`)

	p, err := Migrate(raw)
	require.NoError(t, err)

	assert.Equal(t, "Alex", p.Common.BasicInfo["name"])
	assert.Equal(t, []string{"coffee"}, p.Common.Preferences.Likes)
	require.Contains(t, p.Characters, "Aria")
	assert.Equal(t, []string{"gardening"}, p.Characters["Aria"].Topics)
}

func TestMigrateNormalizesSparseCurrentShape(t *testing.T) {
	p, err := Migrate([]byte(`{"common_profile": {}}`))
	require.NoError(t, err)

	assert.NotNil(t, p.Common.BasicInfo, "maps are usable after decode")
	assert.NotNil(t, p.Characters)
}

func TestMigrateLegacyFlatShape(t *testing.T) {
	raw := []byte(`{
		"basic_info": {"name": "Alex", "occupation": "engineer"},
		"preferences": {"likes": ["tea"], "dislikes": ["natto"]},
		"important_events": [{"content": "moved to Tokyo", "timestamp": "2024-01-01"}],
		"notes": [{"content": "prefers short answers", "timestamp": "2024-02-02"}]
	}`)

	p, err := Migrate(raw)
	require.NoError(t, err)

	assert.Equal(t, "Alex", p.Common.BasicInfo["name"])
	assert.Equal(t, "engineer", p.Common.BasicInfo["occupation"])
	assert.Equal(t, []string{"tea"}, p.Common.Preferences.Likes)
	assert.Equal(t, []string{"natto"}, p.Common.Preferences.Dislikes)
	assert.Empty(t, p.Characters, "legacy events and notes are discarded, not rehomed")
}

func TestMigrateLegacyEmptyObject(t *testing.T) {
	p, err := Migrate([]byte(`{}`))
	require.NoError(t, err)
	assert.NotNil(t, p.Common.BasicInfo)
	assert.Empty(t, p.Common.Preferences.Likes)
}

func TestMigrateMalformedJSON(t *testing.T) {
	_, err := Migrate([]byte(`{"basic_info":`))
	assert.Error(t, err)
}
