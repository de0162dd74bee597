package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atelier.toml")
	content := `
name = "My Editor"
start_width = 1920
start_height = 1080

[assets]
root_dir = "content"
history_size = 8
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "My Editor", cfg.Name)
	assert.Equal(t, uint32(1920), cfg.StartWidth)
	assert.Equal(t, uint32(1080), cfg.StartHeight)
	assert.Equal(t, "content", cfg.Assets.RootDir)
	assert.Equal(t, 8, cfg.Assets.HistorySize)

	// Untouched fields keep their defaults.
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 64, cfg.Assets.RequestQueueSize)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("name = [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
