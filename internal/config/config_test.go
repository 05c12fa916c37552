package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bascule/internal/scene"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", s.Log.Level)
	assert.True(t, s.Log.Pretty)
	assert.Equal(t, 1280, s.Window.Width)
	assert.Equal(t, 720, s.Window.Height)
	assert.Equal(t, "Bascule", s.Window.Title)
	assert.True(t, s.Audio.Enabled)
	assert.Equal(t, 1.0, s.Audio.Volume)
	assert.False(t, s.Telemetry.Enabled)

	assert.Equal(t, scene.DefaultTuning(), s.Tuning())
}

func TestLoad_WithJSONFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := writeFile(t, "bascule.json", `{
		"log": { "level": "debug", "pretty": false },
		"scene": { "openHold": 20, "seed": 7 }
	}`)

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", s.Log.Level)
	assert.False(t, s.Log.Pretty)

	tn := s.Tuning()
	assert.Equal(t, 20.0, tn.OpenHold)
	assert.Equal(t, uint64(7), tn.Seed)
	assert.Equal(t, scene.DefaultTuning().LiftSpeed, tn.LiftSpeed)
}

func TestLoad_WithYAMLFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := writeFile(t, "bascule.yaml", "window:\n  width: 640\n  height: 480\naudio:\n  enabled: false\n")

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 640, s.Window.Width)
	assert.Equal(t, 480, s.Window.Height)
	assert.False(t, s.Audio.Enabled)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("BASCULE_SCENE_LIFTSPEED", "0.5")
	t.Setenv("BASCULE_LOG_LEVEL", "warn")

	path := writeFile(t, "bascule.json", `{ "scene": { "liftSpeed": 0.2 }, "log": { "level": "debug" } }`)

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.5, s.Tuning().LiftSpeed)
	assert.Equal(t, "warn", s.Log.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	_, err := Load("/nonexistent/path/bascule.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"zero lift speed", `{ "scene": { "liftSpeed": 0 } }`, "scene.liftSpeed"},
		{"negative hold", `{ "scene": { "openHold": -1 } }`, "scene.openHold"},
		{"loud audio", `{ "audio": { "volume": 2 } }`, "audio.volume"},
		{"empty window", `{ "window": { "width": 0 } }`, "window size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(viper.Reset)

			_, err := Load(writeFile(t, "bascule.json", tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
