package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/watchfire-io/resmon/internal/app"
	"github.com/watchfire-io/resmon/internal/autostart"
	"github.com/watchfire-io/resmon/internal/buildinfo"
	"github.com/watchfire-io/resmon/internal/config"
	"github.com/watchfire-io/resmon/internal/i18n"
	"github.com/watchfire-io/resmon/internal/models"
	"github.com/watchfire-io/resmon/internal/monitor"
	"github.com/watchfire-io/resmon/internal/tray"
	"github.com/watchfire-io/resmon/internal/ui"
)

type runOptions struct {
	configPath string
	minimized  bool
	headless   bool
	verbose    int
}

func interactive(opts runOptions) bool {
	return !opts.headless &&
		term.IsTerminal(int(os.Stdin.Fd())) &&
		term.IsTerminal(int(os.Stdout.Fd()))
}

func openStore(opts runOptions) (*config.Store, error) {
	if opts.configPath != "" {
		return config.NewStore(opts.configPath), nil
	}
	return config.DefaultStore()
}

// buildTray adapts tray.Build to the coordinator's factory signature.
func buildTray(catalog *i18n.Catalog) (app.Tray, <-chan tray.MenuEvent, tray.IDMap, error) {
	m, events, ids, err := tray.Build(catalog)
	if err != nil {
		return nil, nil, nil, err
	}
	return m, events, ids, nil
}

func run(ctx context.Context, opts runOptions) error {
	// Ensure global directory exists
	if err := config.EnsureGlobalDir(); err != nil {
		return fmt.Errorf("failed to create global directory: %w", err)
	}
	dir, err := config.GlobalDir()
	if err != nil {
		return err
	}
	if err := config.LoadEnvFile(filepath.Join(dir, config.EnvFileName)); err != nil {
		return err
	}

	tui := interactive(opts)
	logger, logCloser, err := newLogger(tui, opts.verbose)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	store, err := openStore(opts)
	if err != nil {
		return err
	}
	cfg, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", store.Path(), err)
	}

	// Check if another monitor is already running
	instancePath, err := config.GlobalInstanceFile()
	if err != nil {
		return err
	}
	if err := config.AcquireInstance(instancePath, models.NewInstanceInfo(os.Getpid(), buildinfo.Version)); err != nil {
		if errors.Is(err, config.ErrAlreadyRunning) {
			fmt.Fprintln(os.Stderr, styleWarning.Render("resmon is already running"))
		}
		return err
	}
	defer func() {
		if err := config.RemoveInstanceInfo(instancePath); err != nil {
			logger.Error(err, "Failed to remove instance info")
		}
	}()

	catalog, err := i18n.Load(cfg.General.Language)
	if err != nil {
		return err
	}

	var (
		panel    *ui.SettingsPanel
		host     *ui.Host
		headless *ui.HeadlessHost
		deps     = app.Deps{
			Sampler:     monitor.NewSystemSampler(logger.WithName("monitor")),
			TrayFactory: buildTray,
			Persister:   store,
			Log:         logger.WithName("coordinator"),
		}
	)
	if launcher, err := autostart.New(cfg.AppName, catalog.Message("name")); err != nil {
		logger.Error(err, "Autostart unavailable")
	} else {
		deps.Autostart = launcher
	}
	if tui {
		panel = ui.NewSettingsPanel()
		host = ui.NewHost()
		deps.Settings = panel
		deps.Host = host
	} else {
		headless = ui.NewHeadlessHost(logger.WithName("host"))
		deps.Host = headless
	}

	coord := app.New(*cfg, catalog, deps)
	defer coord.CleanupAndExit()
	if opts.minimized {
		deps.Host.MinimizeWindow()
	}

	hostOpts := ui.Options{
		Reload: store.Load,
		Log:    logger.WithName("reload"),
	}
	watcher, err := config.NewWatcher(store.Path(), logger.WithName("watcher"))
	if err == nil {
		err = watcher.Start()
	}
	if err != nil {
		logger.Error(err, "Config changes will not be picked up until restart")
	} else {
		hostOpts.Changes = watcher.Changes()
		defer watcher.Stop()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var g errgroup.Group
	// The tray must own the main goroutine; the host runs beside it.
	tray.Run(func() {
		g.Go(func() error {
			defer tray.Quit()
			defer stop()
			logger.Info("Started", "version", buildinfo.Version, "pid", os.Getpid(), "interactive", tui)
			if tui {
				return ui.Run(ctx, coord, panel, host, hostOpts)
			}
			return headless.Run(ctx, coord, hostOpts)
		})
	}, func() {
		logger.V(1).Info("Tray exited")
	})

	err = g.Wait()
	logger.Info("Stopped")
	return err
}
