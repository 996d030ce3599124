package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchfire-io/resmon/internal/app"
	"github.com/watchfire-io/resmon/internal/i18n"
	"github.com/watchfire-io/resmon/internal/models"
	"github.com/watchfire-io/resmon/internal/monitor"
	"github.com/watchfire-io/resmon/internal/tray"
)

type stubTray struct{}

func (stubTray) Update(models.MonitorSet, *i18n.Catalog, []monitor.Reading) error { return nil }
func (stubTray) Close()                                                          {}

type stubSampler struct{}

func (stubSampler) Sample(models.Config) []monitor.Reading { return nil }

func stubFactory(*i18n.Catalog) (app.Tray, <-chan tray.MenuEvent, tray.IDMap, error) {
	return stubTray{}, make(chan tray.MenuEvent), tray.IDMap{}, nil
}

func newCoordinator(t *testing.T, host app.Host, settings app.SettingsRenderer, factory app.TrayFactory) *app.Coordinator {
	t.Helper()
	coord := app.New(*models.NewConfig(), i18n.MustLoad(models.English), app.Deps{
		Sampler:     stubSampler{},
		TrayFactory: factory,
		Settings:    settings,
		Host:        host,
		Log:         logr.Discard(),
	})
	t.Cleanup(coord.CleanupAndExit)
	return coord
}

func TestHostVisibility(t *testing.T) {
	h := NewHost()
	assert.True(t, h.Visible())
	h.MinimizeWindow()
	assert.False(t, h.Visible())
	h.ShowWindow()
	assert.True(t, h.Visible())

	// Without a program, repaint requests are dropped without blocking.
	h.RequestRepaint()
	h.RequestRepaint()
}

func TestModelQuitKey(t *testing.T) {
	host := NewHost()
	panel := NewSettingsPanel()
	coord := newCoordinator(t, host, panel, stubFactory)
	m := NewModel(coord, panel, host, Options{Log: logr.Discard()})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, coord.ShuttingDown())
}

func TestModelTickAndHide(t *testing.T) {
	host := NewHost()
	panel := NewSettingsPanel()
	coord := newCoordinator(t, host, panel, stubFactory)
	var m tea.Model = NewModel(coord, panel, host, Options{Log: logr.Discard()})

	m, cmd := m.Update(tickMsg(time.Now()))
	require.NotNil(t, cmd, "tick reschedules itself")
	assert.Contains(t, m.View(), "Settings")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, host.Visible())
	assert.Contains(t, m.View(), "ctrl+q")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	assert.True(t, host.Visible())

	// A repaint does not start a second tick chain.
	_, cmd = m.Update(repaintMsg{})
	assert.Nil(t, cmd)
}

func TestModelQuitsWhenTrayFails(t *testing.T) {
	host := NewHost()
	panel := NewSettingsPanel()
	failing := func(*i18n.Catalog) (app.Tray, <-chan tray.MenuEvent, tray.IDMap, error) {
		return nil, nil, nil, errors.New("no tray")
	}
	coord := newCoordinator(t, host, panel, failing)
	m := NewModel(coord, panel, host, Options{Log: logr.Discard()})

	_, cmd := m.Update(tickMsg(time.Now()))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelReloadsConfig(t *testing.T) {
	host := NewHost()
	panel := NewSettingsPanel()
	coord := newCoordinator(t, host, panel, stubFactory)
	reloaded := models.NewConfig()
	reloaded.Refresh.DefaultRefreshSeconds = 30
	opts := Options{
		Reload: func() (*models.Config, error) { return reloaded, nil },
		Log:    logr.Discard(),
	}
	m := NewModel(coord, panel, host, opts)

	m.Update(configChangedMsg{})
	assert.Equal(t, uint64(30), coord.Store().Snapshot().Refresh.DefaultRefreshSeconds)
}

func TestHeadlessRunStopsOnCancel(t *testing.T) {
	host := NewHeadlessHost(logr.Discard())
	coord := newCoordinator(t, host, nil, stubFactory)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- host.Run(ctx, coord, Options{}) }()

	time.Sleep(50 * time.Millisecond)
	host.RequestRepaint()
	host.RequestRepaint()
	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("headless host did not stop")
	}
	assert.True(t, coord.ShuttingDown())
}

func TestHeadlessRunStopsWhenTrayFails(t *testing.T) {
	host := NewHeadlessHost(logr.Discard())
	failing := func(*i18n.Catalog) (app.Tray, <-chan tray.MenuEvent, tray.IDMap, error) {
		return nil, nil, nil, errors.New("no tray")
	}
	coord := newCoordinator(t, host, nil, failing)

	require.NoError(t, host.Run(context.Background(), coord, Options{}))
	assert.True(t, coord.ShuttingDown())
}
