package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMissions(t *testing.T) {
	missions := DefaultMissions()
	require.Len(t, missions, 3)

	topics := make([]string, 0, len(missions))
	for _, m := range missions {
		topics = append(topics, m.Topic)
		assert.NotEmpty(t, m.Name)
		assert.NotEmpty(t, m.Prompt)
		assert.NotEmpty(t, m.Schema)
	}
	assert.Equal(t, []string{"hiring_velocity", "dev_velocity", "pricing_model"}, topics)
}

func TestMissionFullPrompt(t *testing.T) {
	mission := Mission{
		SearchQuery: "{name} careers page",
		Prompt:      "Count the open roles.",
	}
	assert.Equal(t,
		"Acme Corp careers page. Count the open roles.",
		mission.FullPrompt("Acme Corp"))
}

func TestLoadMissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missions.toml")
	content := `
[[mission]]
name = "talent_scout"
topic = "hiring_velocity"
search_query = "{name} careers"
prompt = "Count open roles."

[mission.schema]
type = "object"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	missions, err := LoadMissions(path)
	require.NoError(t, err)
	require.Len(t, missions, 1)
	assert.Equal(t, "talent_scout", missions[0].Name)
	assert.Equal(t, "hiring_velocity", missions[0].Topic)
	assert.Equal(t, "object", missions[0].Schema["type"])
}

func TestLoadMissionsValidation(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadMissions(filepath.Join(t.TempDir(), "nope.toml"))
		assert.Error(t, err)
	})

	t.Run("empty roster", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missions.toml")
		require.NoError(t, os.WriteFile(path, []byte(""), 0o644))
		_, err := LoadMissions(path)
		assert.Error(t, err)
	})

	t.Run("missing topic", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missions.toml")
		content := `
[[mission]]
name = "talent_scout"
prompt = "Count open roles."
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		_, err := LoadMissions(path)
		assert.Error(t, err)
	})
}
