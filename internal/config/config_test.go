package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/taskdash/internal/models"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.True(t, cfg.SeedEnabled())
	_, pinned := cfg.TodayOverride()
	assert.False(t, pinned)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
theme: gruvbox
log_level: debug
log_file: /tmp/taskdash.log
today: 2025-08-20
seed: false
recent_limit: 3
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ThemeGruvbox, cfg.Theme)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/taskdash.log", cfg.LogFile)
	assert.Equal(t, 3, cfg.RecentLimit)
	assert.False(t, cfg.SeedEnabled())

	day, ok := cfg.TodayOverride()
	require.True(t, ok)
	assert.Equal(t, models.MustParseDate("2025-08-20"), day)
}

func TestParse_EmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("log_level: warn\n"))
	require.NoError(t, err)
	assert.Equal(t, ThemeTokyoNight, cfg.Theme)
	assert.Equal(t, 5, cfg.RecentLimit)
	assert.True(t, cfg.SeedEnabled())
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "themes: gruvbox\n"},
		{"unknown theme", "theme: solarized\n"},
		{"bad level", "log_level: loud\n"},
		{"bad today", "today: 20/08/2025\n"},
		{"negative limit", "recent_limit: -1\n"},
		{"malformed", "theme: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestDefaultPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "taskdash", "config.yaml"), path)
}

func TestDefaultPath_Home(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/dana")
	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/dana", ".config", "taskdash", "config.yaml"), path)
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"":      slog.LevelInfo,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}
