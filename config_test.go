package helio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, float32(0.001), cfg.Scene.BodySpinRate)
	assert.Equal(t, float32(0.0002), cfg.Scene.StarFieldSpinRate)
	assert.Equal(t, DefaultShootingStarCount, cfg.Scene.ShootingStarCount)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "helio.yaml")
	content := []byte(`
window:
  width: 1920
  title: Custom
scene:
  seed: 99
  star_count: 500
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 1920, cfg.Window.Width)
	assert.Equal(t, "Custom", cfg.Window.Title)
	assert.Equal(t, int64(99), cfg.Scene.Seed)
	assert.Equal(t, 500, cfg.Scene.StarCount)
	// Untouched keys keep their defaults.
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, float32(0.001), cfg.Scene.BodySpinRate)
}

func TestLoadConfig_MissingExplicitFileIsAnError(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_MalformedYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "helio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window: ["), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
