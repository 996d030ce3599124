// Package models contains shared data structures used across the application.
package models

// GeneralConfig holds startup and language preferences.
type GeneralConfig struct {
	RunOnStartup             bool     `yaml:"run_on_startup"`
	MinimizedWindowOnStartup bool     `yaml:"minimized_window_on_startup"`
	Language                 Language `yaml:"language"`
}

// RefreshConfig holds the tray refresh interval and its allowed range, in seconds.
type RefreshConfig struct {
	DefaultRefreshSeconds uint64 `yaml:"default_refresh_seconds"`
	MinRefreshSeconds     uint64 `yaml:"min_refresh_seconds"`
	MaxRefreshSeconds     uint64 `yaml:"max_refresh_seconds"`
}

// TimingConfig holds loop timing parameters, in milliseconds.
type TimingConfig struct {
	TrayErrorRetryDelayMs uint64 `yaml:"tray_error_retry_delay_ms"`
	UIRepaintIntervalMs   uint64 `yaml:"ui_repaint_interval_ms"`
}

// WindowConfig holds the settings panel geometry, in terminal cells.
type WindowConfig struct {
	SettingsWidth  int `yaml:"settings_width"`
	SettingsHeight int `yaml:"settings_height"`
}

// Config represents the application configuration.
// This corresponds to ~/.resmon/config.yaml.
type Config struct {
	Version        int           `yaml:"version"`
	AppName        string        `yaml:"app_name"`
	ActiveMonitors MonitorSet    `yaml:"active_monitors"`
	General        GeneralConfig `yaml:"general"`
	Refresh        RefreshConfig `yaml:"refresh"`
	Timing         TimingConfig  `yaml:"timing"`
	Window         WindowConfig  `yaml:"window"`
}

// NewConfig creates a config with default values.
func NewConfig() *Config {
	return &Config{
		Version:        1,
		AppName:        "resmon",
		ActiveMonitors: MonitorSet{CPUUsage, RAMUsage},
		General: GeneralConfig{
			RunOnStartup:             false,
			MinimizedWindowOnStartup: false,
			Language:                 English,
		},
		Refresh: RefreshConfig{
			DefaultRefreshSeconds: 2,
			MinRefreshSeconds:     1,
			MaxRefreshSeconds:     60,
		},
		Timing: TimingConfig{
			TrayErrorRetryDelayMs: 50,
			UIRepaintIntervalMs:   100,
		},
		Window: WindowConfig{
			SettingsWidth:  52,
			SettingsHeight: 16,
		},
	}
}

// Clone returns a deep copy of the config.
func (c Config) Clone() Config {
	c.ActiveMonitors = c.ActiveMonitors.Clone()
	return c
}

// Normalize clamps the refresh range so that
// 1 <= min <= default <= max holds. Out-of-range values are never rejected.
func (c *Config) Normalize() {
	r := &c.Refresh
	if r.MinRefreshSeconds < 1 {
		r.MinRefreshSeconds = 1
	}
	if r.MaxRefreshSeconds < r.MinRefreshSeconds {
		r.MaxRefreshSeconds = r.MinRefreshSeconds
	}
	r.DefaultRefreshSeconds = ClampRefresh(r.DefaultRefreshSeconds, r.MinRefreshSeconds, r.MaxRefreshSeconds)

	if !c.General.Language.Valid() {
		c.General.Language = English
	}
	c.ActiveMonitors = c.ActiveMonitors.Canonical()
}

// ClampRefresh clamps secs into [lo, hi].
func ClampRefresh(secs, lo, hi uint64) uint64 {
	if secs < lo {
		return lo
	}
	if secs > hi {
		return hi
	}
	return secs
}
