// Package app coordinates the foreground loop with the background goroutine
// that watches the tray menu.
package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"github.com/watchfire-io/resmon/internal/i18n"
	"github.com/watchfire-io/resmon/internal/models"
)

// maxRepaintInterval caps the delay between foreground ticks.
const maxRepaintInterval = 100 * time.Millisecond

// Deps are the collaborators of a Coordinator. Sampler and TrayFactory are
// required; the rest fall back to no-ops.
type Deps struct {
	Sampler     Sampler
	TrayFactory TrayFactory
	Settings    SettingsRenderer
	Persister   ConfigPersister
	Autostart   Autostarter
	Host        Host
	LoadCatalog CatalogLoader
	Log         logr.Logger
	Now         func() time.Time
}

// Coordinator owns the shared config, the tray and the background goroutine.
// Tick is the per-frame entry point of the foreground loop.
type Coordinator struct {
	mu sync.Mutex

	store   *ConfigStore
	catalog *i18n.Catalog
	deps    Deps
	log     logr.Logger

	tray      Tray
	worker    *worker
	queue     *commandQueue
	shutdown  chan struct{}
	signalled bool
	scheduler *RefreshScheduler

	shuttingDown bool
	cleaned      bool
}

// New creates a coordinator for cfg. Run-on-startup and minimized-on-startup
// are applied immediately; the tray and background goroutine start on the
// first Tick.
func New(cfg models.Config, catalog *i18n.Catalog, deps Deps) *Coordinator {
	if deps.Host == nil {
		deps.Host = noopHost{}
	}
	if deps.LoadCatalog == nil {
		deps.LoadCatalog = i18n.Load
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	c := &Coordinator{
		store:     NewConfigStore(cfg),
		catalog:   catalog,
		deps:      deps,
		log:       deps.Log,
		scheduler: NewRefreshScheduler(time.Time{}),
	}

	c.applyAutostart(cfg.General.RunOnStartup)
	if cfg.General.MinimizedWindowOnStartup {
		deps.Host.MinimizeWindow()
	}
	return c
}

// Store returns the shared config store.
func (c *Coordinator) Store() *ConfigStore {
	return c.store
}

// Catalog returns the catalog of the current language.
func (c *Coordinator) Catalog() *i18n.Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.catalog
}

// Tick runs one frame: tray bring-up, command handling, the scheduled icon
// refresh and the settings render. It returns true when the host should close.
func (c *Coordinator) Tick() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.startBackground(); err != nil {
		c.log.Error(err, "Failed to start tray")
		c.initiateShutdown()
		return true
	}
	if c.shuttingDown {
		return true
	}

	closeRequested := false
	if c.queue != nil {
		for _, cmd := range c.queue.Drain() {
			switch cmd {
			case CommandShowSettings:
				c.deps.Host.ShowWindow()
			case CommandQuit:
				c.log.Info("Quit requested from tray")
				c.initiateShutdown()
				closeRequested = true
			}
		}
	}
	if closeRequested {
		return true
	}

	snapshot := c.store.Snapshot()
	now := c.deps.Now()
	interval := time.Duration(snapshot.Refresh.DefaultRefreshSeconds) * time.Second
	if c.tray != nil && c.scheduler.IsDue(now, interval) {
		readings := c.deps.Sampler.Sample(snapshot)
		if err := c.tray.Update(snapshot.ActiveMonitors, c.catalog, readings); err != nil {
			c.log.Error(err, "Failed to update tray")
		}
		c.scheduler.Reset(now)
	}

	var res SettingsResult
	if c.deps.Settings != nil {
		res = c.deps.Settings.Render(c.store, c.catalog)
	}

	if res.LanguageChanged {
		c.changeLanguage(c.store.Snapshot().General.Language)
	}
	if res.AutostartChanged {
		c.applyAutostart(c.store.Snapshot().General.RunOnStartup)
	}
	if res.CloseRequested {
		c.log.Info("Close requested from settings")
		c.initiateShutdown()
		return true
	}
	return false
}

// ReplaceConfig swaps in a config loaded from outside the process, applying
// the same effects a settings edit would.
func (c *Coordinator) ReplaceConfig(cfg models.Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.shuttingDown {
		return
	}

	cfg.Normalize()
	prev := c.store.Snapshot()
	c.store.Replace(cfg)

	if cfg.General.Language != prev.General.Language {
		c.changeLanguage(cfg.General.Language)
	}
	if cfg.General.RunOnStartup != prev.General.RunOnStartup {
		c.applyAutostart(cfg.General.RunOnStartup)
	}
	c.deps.Host.RequestRepaint()
}

// InitiateShutdown marks the coordinator as shutting down and signals the
// background goroutine. Calling it more than once is safe.
func (c *Coordinator) InitiateShutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initiateShutdown()
}

// ShutdownBackgroundThread signals the background goroutine, waits for it to
// exit and releases the command queue. It is safe when no goroutine was ever
// started and safe to repeat.
func (c *Coordinator) ShutdownBackgroundThread() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initiateShutdown()
	c.joinBackground()
}

// CleanupAndExit saves the config, stops the background goroutine and closes
// the tray. Only the first call has any effect.
func (c *Coordinator) CleanupAndExit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cleaned {
		return
	}
	c.cleaned = true

	if c.store.Poisoned() {
		c.log.Error(ErrStorePoisoned, "Not saving config")
	} else if c.deps.Persister != nil {
		if err := c.deps.Persister.Save(c.store.Snapshot()); err != nil {
			c.log.Error(err, "Failed to save config")
		}
	}

	c.initiateShutdown()
	c.joinBackground()
	c.closeTray()
}

// RepaintInterval is the delay the host should wait before the next Tick.
func (c *Coordinator) RepaintInterval() time.Duration {
	d := time.Duration(c.store.Snapshot().Timing.UIRepaintIntervalMs) * time.Millisecond
	if d <= 0 || d > maxRepaintInterval {
		return maxRepaintInterval
	}
	return d
}

// ShuttingDown reports whether shutdown has been initiated.
func (c *Coordinator) ShuttingDown() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shuttingDown
}

// startBackground builds the tray and spawns the background goroutine if
// neither exists and shutdown has not begun.
func (c *Coordinator) startBackground() error {
	if c.worker != nil || c.shuttingDown {
		return nil
	}

	t, events, ids, err := c.deps.TrayFactory(c.catalog)
	if err != nil {
		return err
	}
	if events == nil {
		panic("app: tray factory returned no event source")
	}

	c.tray = t
	c.queue = newCommandQueue()
	c.shutdown = make(chan struct{})
	c.signalled = false

	b := &eventBridge{
		events:   events,
		ids:      ids,
		queue:    c.queue,
		store:    c.store,
		host:     c.deps.Host,
		shutdown: c.shutdown,
		log:      c.log.WithName("events"),
	}
	c.worker = spawn(b.run)
	c.log.V(1).Info("Background goroutine started")
	return nil
}

func (c *Coordinator) initiateShutdown() {
	if c.shuttingDown {
		return
	}
	c.shuttingDown = true
	c.signal()
}

// signal closes the shutdown channel of the current goroutine at most once.
func (c *Coordinator) signal() {
	if c.shutdown != nil && !c.signalled {
		close(c.shutdown)
		c.signalled = true
	}
}

func (c *Coordinator) joinBackground() {
	c.signal()
	if c.worker != nil {
		if p := c.worker.join(); p != nil {
			c.log.Error(fmt.Errorf("panic: %v", p), "Background goroutine panicked")
		}
		c.worker = nil
		c.log.V(1).Info("Background goroutine stopped")
	}
	if c.queue != nil {
		c.queue.Close()
		c.queue = nil
	}
	c.shutdown = nil
}

func (c *Coordinator) closeTray() {
	if c.tray != nil {
		c.tray.Close()
		c.tray = nil
	}
}

// changeLanguage reloads the catalog and tears down the tray so the next
// Tick rebuilds it with the new titles.
func (c *Coordinator) changeLanguage(lang models.Language) {
	catalog, err := c.deps.LoadCatalog(lang)
	if err != nil {
		c.log.Error(err, "Failed to load catalog", "language", lang)
	} else {
		c.catalog = catalog
	}

	c.joinBackground()
	c.closeTray()
	c.scheduler = NewRefreshScheduler(time.Time{})
	c.deps.Host.RequestRepaint()
}

func (c *Coordinator) applyAutostart(enabled bool) {
	if c.deps.Autostart == nil {
		return
	}
	var err error
	if enabled {
		err = c.deps.Autostart.Enable()
	} else {
		err = c.deps.Autostart.Disable()
	}
	if err != nil {
		c.log.Error(err, "Failed to update autostart", "enabled", enabled)
	}
}
