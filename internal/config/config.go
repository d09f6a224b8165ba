package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/lo"
)

const appName = "ambience"

// Supported language codes. Anything else falls back to DefaultLanguage.
var supportedLanguages = []string{"ca", "es", "en", "fr"}

const DefaultLanguage = "en"

type Config struct {
	// Default playlist used when no tracks are given on the command line
	Session SessionConfig `koanf:"session"`

	Playback PlaybackConfig `koanf:"playback"`
	Volume   VolumeConfig   `koanf:"volume"`
	Log      LogConfig      `koanf:"log"`

	Icons string `koanf:"icons"` // "nerd", "unicode", or "none"

	// Desktop media key integration (linux only)
	MPRIS MPRISConfig `koanf:"mpris"`

	// Desktop notifications when a session ends on its own (linux only)
	Notifications NotificationsConfig `koanf:"notifications"`

	// Session store
	State StateConfig `koanf:"state"`
}

// SessionConfig describes the default session.
type SessionConfig struct {
	Tracks          []string `koanf:"tracks"`
	DurationSeconds int      `koanf:"duration_seconds"` // 0 = no session length
	LanguageCode    string   `koanf:"language_code"`
	Loop            bool     `koanf:"loop"`
}

// PlaybackConfig holds controller timing and advance settings.
type PlaybackConfig struct {
	Advance           string `koanf:"advance"`             // "wrap" or "stop_at_end" (default: "wrap")
	ElapsedIntervalMS int    `koanf:"elapsed_interval_ms"` // default: 1000
	StatusIntervalMS  int    `koanf:"status_interval_ms"`  // default: 1000
}

// VolumeConfig holds the output level guard settings.
type VolumeConfig struct {
	Ceiling         float64 `koanf:"ceiling"`           // 0.0-1.0 (default: 0.6)
	CheckIntervalMS int     `koanf:"check_interval_ms"` // default: 200
	Initial         float64 `koanf:"initial"`           // 0.0-1.0 (default: 0.5)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `koanf:"level"` // debug, info, warn, error (default: info)
	Pretty bool   `koanf:"pretty"`
	File   string `koanf:"file"` // default: $XDG_STATE_HOME/ambience/ambience.log
}

// MPRISConfig holds the media key bridge settings.
type MPRISConfig struct {
	Enabled *bool `koanf:"enabled"` // default: true
}

// NotificationsConfig holds desktop notification settings.
type NotificationsConfig struct {
	Enabled *bool `koanf:"enabled"` // default: true
}

// StateConfig holds session store settings.
type StateConfig struct {
	Restore *bool  `koanf:"restore"` // reload the last playlist (default: true)
	Path    string `koanf:"path"`    // default: $XDG_DATA_HOME/ambience/state.db
}

// Load reads the configuration files in order of priority (last wins).
func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadWithOverride reads the default files and then path, which must exist.
func LoadWithOverride(path string) (*Config, error) {
	path = expandPath(path)
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return LoadFrom(append(getConfigPaths(), path)...)
}

// LoadFrom reads the given TOML files, skipping those that do not exist.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	// Expand ~ in track paths
	cfg.Session.Tracks = lo.Map(cfg.Session.Tracks, func(p string, _ int) string {
		return expandPath(p)
	})
	cfg.Session.LanguageCode = NormalizeLanguage(cfg.Session.LanguageCode)

	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}
	if cfg.State.Path != "" {
		cfg.State.Path = expandPath(cfg.State.Path)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/ambience/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// ExpandPaths expands ~ in each path.
func ExpandPaths(paths []string) []string {
	return lo.Map(paths, func(p string, _ int) string { return expandPath(p) })
}

// NormalizeLanguage maps a language code or locale to a supported language.
// Region suffixes are dropped ("fr-CA" -> "fr"); unknown codes become "en".
func NormalizeLanguage(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "-_"); i >= 0 {
		code = code[:i]
	}
	if lo.Contains(supportedLanguages, code) {
		return code
	}
	return DefaultLanguage
}

// GetPlaybackConfig returns the playback configuration with defaults applied.
func (c *Config) GetPlaybackConfig() PlaybackConfig {
	cfg := c.Playback

	if cfg.Advance != "stop_at_end" {
		cfg.Advance = "wrap"
	}
	if cfg.ElapsedIntervalMS <= 0 {
		cfg.ElapsedIntervalMS = 1000
	}
	if cfg.StatusIntervalMS <= 0 {
		cfg.StatusIntervalMS = 1000
	}

	return cfg
}

// ElapsedInterval returns the elapsed ticker period.
func (p PlaybackConfig) ElapsedInterval() time.Duration {
	return time.Duration(p.ElapsedIntervalMS) * time.Millisecond
}

// StatusInterval returns the status ticker period.
func (p PlaybackConfig) StatusInterval() time.Duration {
	return time.Duration(p.StatusIntervalMS) * time.Millisecond
}

// GetVolumeConfig returns the volume configuration with defaults applied.
func (c *Config) GetVolumeConfig() VolumeConfig {
	cfg := c.Volume

	if cfg.Ceiling <= 0 || cfg.Ceiling > 1 {
		cfg.Ceiling = 0.6
	}
	if cfg.CheckIntervalMS <= 0 {
		cfg.CheckIntervalMS = 200
	}
	if cfg.Initial <= 0 || cfg.Initial > 1 {
		cfg.Initial = 0.5
	}
	cfg.Initial = min(cfg.Initial, cfg.Ceiling)

	return cfg
}

// CheckInterval returns the volume guard period.
func (v VolumeConfig) CheckInterval() time.Duration {
	return time.Duration(v.CheckIntervalMS) * time.Millisecond
}

// GetLogConfig returns the log configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log

	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "error":
		cfg.Level = strings.ToLower(cfg.Level)
	default:
		cfg.Level = "info"
	}
	if cfg.File == "" {
		cfg.File = filepath.Join(xdg.StateHome, appName, appName+".log")
	}

	return cfg
}

// MPRISEnabled returns true unless the bridge is explicitly disabled.
func (c *Config) MPRISEnabled() bool {
	return c.MPRIS.Enabled == nil || *c.MPRIS.Enabled
}

// NotificationsEnabled returns true unless notifications are explicitly disabled.
func (c *Config) NotificationsEnabled() bool {
	return c.Notifications.Enabled == nil || *c.Notifications.Enabled
}

// RestoreSession returns true unless session restore is explicitly disabled.
func (c *Config) RestoreSession() bool {
	return c.State.Restore == nil || *c.State.Restore
}

// HasDefaultSession returns true if a default playlist is configured.
func (c *Config) HasDefaultSession() bool {
	return len(c.Session.Tracks) > 0
}
