package app

import (
	"github.com/watchfire-io/resmon/internal/i18n"
	"github.com/watchfire-io/resmon/internal/models"
	"github.com/watchfire-io/resmon/internal/monitor"
	"github.com/watchfire-io/resmon/internal/tray"
)

// Sampler produces one fresh reading per active monitor kind.
type Sampler interface {
	Sample(cfg models.Config) []monitor.Reading
}

// Tray is a constructed tray icon and menu.
type Tray interface {
	Update(active models.MonitorSet, catalog *i18n.Catalog, readings []monitor.Reading) error
	Close()
}

// TrayFactory builds a tray for catalog. The returned channel delivers menu
// clicks and ids maps their identifiers to actions.
type TrayFactory func(catalog *i18n.Catalog) (Tray, <-chan tray.MenuEvent, tray.IDMap, error)

// SettingsResult reports what a settings render changed.
type SettingsResult struct {
	CloseRequested   bool
	LanguageChanged  bool
	AutostartChanged bool
}

// SettingsRenderer draws the settings surface and applies user edits to store.
type SettingsRenderer interface {
	Render(store *ConfigStore, catalog *i18n.Catalog) SettingsResult
}

// ConfigPersister saves the config on exit.
type ConfigPersister interface {
	Save(cfg models.Config) error
}

// Autostarter toggles launching at login.
type Autostarter interface {
	Enable() error
	Disable() error
}

// Host is the window and event loop the coordinator runs in.
// RequestRepaint may be called from any goroutine and must not block.
type Host interface {
	RequestRepaint()
	ShowWindow()
	MinimizeWindow()
}

// CatalogLoader loads the message catalog for a language.
type CatalogLoader func(lang models.Language) (*i18n.Catalog, error)

type noopHost struct{}

func (noopHost) RequestRepaint() {}
func (noopHost) ShowWindow()     {}
func (noopHost) MinimizeWindow() {}
