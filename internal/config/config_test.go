package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, "stories.json", cfg.Board.StoriesFile)
	assert.False(t, cfg.Board.SplitColumns)
	assert.Equal(t, "http://localhost:3000/", cfg.Board.BaseURL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Log.File)
	assert.Contains(t, cfg.Address.StateFile, filepath.Join(".local", "state", "storyboard"))
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[board]
stories_file = "/tmp/project.json"
split_columns = true
base_url = "https://board.example.com/projects/99"

[address]
state_file = "/tmp/address"

[log]
level = "debug"
file = "/tmp/storyboard.log"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/project.json", cfg.Board.StoriesFile)
	assert.True(t, cfg.Board.SplitColumns)
	assert.Equal(t, "https://board.example.com/projects/99", cfg.Board.BaseURL)
	assert.Equal(t, "/tmp/address", cfg.Address.StateFile)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/storyboard.log", cfg.Log.File)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("STORYBOARD_LOG_LEVEL", "warn")
	t.Setenv("STORYBOARD_BOARD_SPLIT_COLUMNS", "true")

	cfg, err := load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Board.SplitColumns)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[board\nsplit_columns = "), 0o600))

	_, err := load(path)
	assert.Error(t, err)
}

func TestPath(t *testing.T) {
	t.Setenv("STORYBOARD_CONFIG", "/etc/storyboard.toml")
	assert.Equal(t, "/etc/storyboard.toml", Path())

	t.Setenv("STORYBOARD_CONFIG", "")
	t.Setenv("HOME", "/home/tester")
	assert.Equal(t, filepath.Join("/home/tester", ".config", "storyboard", "config.toml"), Path())
}
