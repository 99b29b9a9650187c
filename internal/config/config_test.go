package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := New(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultSheetRange, cfg.SheetRange)
	assert.Empty(t, cfg.FeedURL)
	assert.Equal(t, filepath.Join(dir, "settings.yaml"), cfg.SettingsPath())
	assert.Equal(t, filepath.Join(dir, "token.json"), cfg.TokenPath())
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", AppName), DefaultConfigDir())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("TASKBOARD_FEED_URL", "https://example.com/tasks.csv")
	t.Setenv("TASKBOARD_TIMEOUT", "3s")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/tasks.csv", cfg.FeedURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, DefaultSheetRange, cfg.SheetRange)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TASKBOARD_SHEET_RANGE=Tasks!A1:L200\n"), 0600))
	t.Cleanup(func() { os.Unsetenv("TASKBOARD_SHEET_RANGE") })

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "Tasks!A1:L200", cfg.SheetRange)
}

func TestLoad_EnvironmentBeatsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TASKBOARD_FEED_URL=https://from-file\n"), 0600))
	t.Setenv("TASKBOARD_FEED_URL", "https://from-env")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://from-env", cfg.FeedURL)
}

func TestLoad_LogFormat(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, LogFormatText, cfg.LogFormat)

	t.Setenv("TASKBOARD_LOG_FORMAT", "JSON")
	cfg, err = Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, LogFormatJSON, cfg.LogFormat)

	t.Setenv("TASKBOARD_LOG_FORMAT", "xml")
	_, err = Load(t.TempDir())
	assert.Error(t, err)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("TASKBOARD_TIMEOUT", "0s")

	_, err := Load(t.TempDir())
	assert.Error(t, err)
}

func TestTokenHelpers(t *testing.T) {
	cfg, err := New(t.TempDir())
	require.NoError(t, err)
	assert.False(t, cfg.HasToken())

	require.NoError(t, os.WriteFile(cfg.TokenPath(), []byte("{}"), 0600))
	assert.True(t, cfg.HasToken())

	require.NoError(t, cfg.RemoveToken())
	assert.False(t, cfg.HasToken())
}
