//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/sounds",
			expected: filepath.Join(home, "sounds"),
		},
		{
			name:     "tilde with nested path",
			input:    "~/sounds/nature/rain.mp3",
			expected: filepath.Join(home, "sounds", "nature", "rain.mp3"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/usr/share/sounds/rain.mp3",
			expected: "/usr/share/sounds/rain.mp3",
		},
		{
			name:     "relative path unchanged",
			input:    "sounds/rain.mp3",
			expected: "sounds/rain.mp3",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) != 2 {
		t.Fatalf("getConfigPaths() returned %d paths, want 2", len(paths))
	}

	// Last path should be local config.toml
	if paths[1] != "config.toml" {
		t.Errorf("last config path = %q, want %q", paths[1], "config.toml")
	}

	expectedFirst := filepath.Join(xdg.ConfigHome, "ambience", "config.toml")
	if paths[0] != expectedFirst {
		t.Errorf("first config path = %q, want %q", paths[0], expectedFirst)
	}
}

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "en"},
		{"fr", "fr"},
		{"es", "es"},
		{"ca", "ca"},
		{"FR", "fr"},
		{"fr-CA", "fr"},
		{"es_MX", "es"},
		{" ca ", "ca"},
		{"de", "en"},
		{"", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeLanguage(tt.input); got != tt.expected {
				t.Errorf("NormalizeLanguage(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFrom_ParsesAllSections(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "config.toml", `
icons = "nerd"

[session]
tracks = ["/sounds/rain.mp3", "/sounds/waves.flac"]
duration_seconds = 1800
language_code = "fr-FR"
loop = true

[playback]
advance = "stop_at_end"
elapsed_interval_ms = 500

[volume]
ceiling = 0.5
initial = 0.3

[log]
level = "debug"
pretty = true

[mpris]
enabled = false

[notifications]
enabled = false

[state]
restore = false
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"/sounds/rain.mp3", "/sounds/waves.flac"}, cfg.Session.Tracks)
	assert.Equal(t, 1800, cfg.Session.DurationSeconds)
	assert.Equal(t, "fr", cfg.Session.LanguageCode)
	assert.True(t, cfg.Session.Loop)
	assert.True(t, cfg.HasDefaultSession())

	pb := cfg.GetPlaybackConfig()
	assert.Equal(t, "stop_at_end", pb.Advance)
	assert.Equal(t, 500*time.Millisecond, pb.ElapsedInterval())
	assert.Equal(t, time.Second, pb.StatusInterval())

	vol := cfg.GetVolumeConfig()
	assert.InDelta(t, 0.5, vol.Ceiling, 1e-9)
	assert.InDelta(t, 0.3, vol.Initial, 1e-9)
	assert.Equal(t, 200*time.Millisecond, vol.CheckInterval())

	lc := cfg.GetLogConfig()
	assert.Equal(t, "debug", lc.Level)
	assert.True(t, lc.Pretty)

	assert.Equal(t, "nerd", cfg.Icons)
	assert.False(t, cfg.MPRISEnabled())
	assert.False(t, cfg.NotificationsEnabled())
	assert.False(t, cfg.RestoreSession())
}

func TestLoadFrom_LastFileWins(t *testing.T) {
	dir := t.TempDir()
	global := writeConfig(t, dir, "global.toml", `
[session]
duration_seconds = 600
language_code = "es"
`)
	local := writeConfig(t, dir, "local.toml", `
[session]
duration_seconds = 900
`)

	cfg, err := LoadFrom(global, local)
	require.NoError(t, err)

	assert.Equal(t, 900, cfg.Session.DurationSeconds)
	assert.Equal(t, "es", cfg.Session.LanguageCode)
}

func TestLoadFrom_MissingFilesSkipped(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.False(t, cfg.HasDefaultSession())
	assert.Equal(t, "en", cfg.Session.LanguageCode)
	assert.True(t, cfg.MPRISEnabled())
	assert.True(t, cfg.NotificationsEnabled())
	assert.True(t, cfg.RestoreSession())
}

func TestLoadWithOverride(t *testing.T) {
	t.Run("missing file is an error", func(t *testing.T) {
		_, err := LoadWithOverride(filepath.Join(t.TempDir(), "nope.toml"))
		require.Error(t, err)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("override is read last", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "override.toml", `
[session]
tracks = ["/sounds/brook.flac"]
duration_seconds = 900
`)
		cfg, err := LoadWithOverride(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"/sounds/brook.flac"}, cfg.Session.Tracks)
		assert.Equal(t, 900, cfg.Session.DurationSeconds)
	})
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "bad.toml", "[session\ntracks = ")

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestLoadFrom_ExpandsTrackPaths(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}
	path := writeConfig(t, t.TempDir(), "config.toml", `
[session]
tracks = ["~/sounds/rain.mp3"]
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(home, "sounds", "rain.mp3")}, cfg.Session.Tracks)
}

func TestGetPlaybackConfig_Defaults(t *testing.T) {
	cfg := &Config{}
	pb := cfg.GetPlaybackConfig()

	assert.Equal(t, "wrap", pb.Advance)
	assert.Equal(t, time.Second, pb.ElapsedInterval())
	assert.Equal(t, time.Second, pb.StatusInterval())
}

func TestGetPlaybackConfig_UnknownAdvance(t *testing.T) {
	cfg := &Config{Playback: PlaybackConfig{Advance: "shuffle"}}
	assert.Equal(t, "wrap", cfg.GetPlaybackConfig().Advance)
}

func TestGetVolumeConfig(t *testing.T) {
	tests := []struct {
		name        string
		input       VolumeConfig
		wantCeiling float64
		wantInitial float64
		wantCheck   time.Duration
	}{
		{
			name:        "defaults",
			input:       VolumeConfig{},
			wantCeiling: 0.6,
			wantInitial: 0.5,
			wantCheck:   200 * time.Millisecond,
		},
		{
			name:        "ceiling above one falls back",
			input:       VolumeConfig{Ceiling: 1.5, Initial: 0.2},
			wantCeiling: 0.6,
			wantInitial: 0.2,
			wantCheck:   200 * time.Millisecond,
		},
		{
			name:        "initial capped at ceiling",
			input:       VolumeConfig{Ceiling: 0.4, Initial: 0.9, CheckIntervalMS: 100},
			wantCeiling: 0.4,
			wantInitial: 0.4,
			wantCheck:   100 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Volume: tt.input}
			got := cfg.GetVolumeConfig()
			assert.InDelta(t, tt.wantCeiling, got.Ceiling, 1e-9)
			assert.InDelta(t, tt.wantInitial, got.Initial, 1e-9)
			assert.Equal(t, tt.wantCheck, got.CheckInterval())
		})
	}
}

func TestGetLogConfig_Defaults(t *testing.T) {
	cfg := &Config{Log: LogConfig{Level: "verbose"}}
	lc := cfg.GetLogConfig()

	assert.Equal(t, "info", lc.Level)
	assert.Equal(t, filepath.Join(xdg.StateHome, "ambience", "ambience.log"), lc.File)
}
