package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/watchfire-io/resmon/internal/models"
)

// EnvPrefix prefixes every environment override, e.g. RESMON_LANGUAGE.
const EnvPrefix = "RESMON"

// envOverrides holds optional values taken from the environment.
// Nil fields were not set and leave the file value untouched. Names are
// derived from the field names (split_words) so unprefixed variables such as
// LANGUAGE are never consulted.
type envOverrides struct {
	RunOnStartup          *bool    `split_words:"true"`
	MinimizedOnStartup    *bool    `split_words:"true"`
	Language              *string  `split_words:"true"`
	RefreshDefaultSeconds *uint64  `split_words:"true"`
	RefreshMinSeconds     *uint64  `split_words:"true"`
	RefreshMaxSeconds     *uint64  `split_words:"true"`
	TrayRetryDelayMs      *uint64  `split_words:"true"`
	UiRepaintIntervalMs   *uint64  `split_words:"true"`
	ActiveMonitors        []string `split_words:"true"`
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// Variables already set win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if !FileExists(path) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays RESMON_* environment variables onto cfg.
func ApplyEnv(cfg *models.Config) error {
	var o envOverrides
	if err := envconfig.Process(EnvPrefix, &o); err != nil {
		return err
	}

	if o.RunOnStartup != nil {
		cfg.General.RunOnStartup = *o.RunOnStartup
	}
	if o.MinimizedOnStartup != nil {
		cfg.General.MinimizedWindowOnStartup = *o.MinimizedOnStartup
	}
	if o.Language != nil {
		lang := models.Language(*o.Language)
		if !lang.Valid() {
			return fmt.Errorf("unsupported language %q", *o.Language)
		}
		cfg.General.Language = lang
	}
	if o.RefreshDefaultSeconds != nil {
		cfg.Refresh.DefaultRefreshSeconds = *o.RefreshDefaultSeconds
	}
	if o.RefreshMinSeconds != nil {
		cfg.Refresh.MinRefreshSeconds = *o.RefreshMinSeconds
	}
	if o.RefreshMaxSeconds != nil {
		cfg.Refresh.MaxRefreshSeconds = *o.RefreshMaxSeconds
	}
	if o.TrayRetryDelayMs != nil {
		cfg.Timing.TrayErrorRetryDelayMs = *o.TrayRetryDelayMs
	}
	if o.UiRepaintIntervalMs != nil {
		cfg.Timing.UIRepaintIntervalMs = *o.UiRepaintIntervalMs
	}
	if o.ActiveMonitors != nil {
		set := models.MonitorSet{}
		for _, name := range o.ActiveMonitors {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			kind, err := models.ParseMonitorKind(name)
			if err != nil {
				return err
			}
			set = append(set, kind)
		}
		cfg.ActiveMonitors = set.Canonical()
	}
	return nil
}
