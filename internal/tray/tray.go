// Package tray implements the notification area icon and its menu.
package tray

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/getlantern/systray"

	"github.com/watchfire-io/resmon/internal/i18n"
	"github.com/watchfire-io/resmon/internal/icon"
	"github.com/watchfire-io/resmon/internal/models"
	"github.com/watchfire-io/resmon/internal/monitor"
)

// ErrClosed is returned when updating a menu after Close.
var ErrClosed = errors.New("tray menu closed")

// readyTimeout bounds how long Build waits for the platform tray.
const readyTimeout = 5 * time.Second

var (
	readyOnce sync.Once
	readyCh   = make(chan struct{})

	// Native items are allocated once; systray cannot remove them, so every
	// Menu reuses them with fresh identifiers.
	allocOnce    sync.Once
	readingItems map[models.MonitorKind]*systray.MenuItem
	settingsItem *systray.MenuItem
	quitItem     *systray.MenuItem

	// Only one Menu owns the native items at a time.
	ownerMu sync.Mutex
)

// Run starts the platform tray. This blocks the calling goroutine (must be main).
// onReady is called once the tray can accept icons and menu items.
// onExit is called when the tray exits.
func Run(onReady, onExit func()) {
	systray.Run(func() {
		readyOnce.Do(func() { close(readyCh) })
		if onReady != nil {
			onReady()
		}
	}, onExit)
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}

func allocate() {
	readingItems = make(map[models.MonitorKind]*systray.MenuItem)
	for _, kind := range models.AllMonitorKinds() {
		item := systray.AddMenuItem("", "")
		item.Disable()
		item.Hide()
		readingItems[kind] = item
	}
	systray.AddSeparator()
	settingsItem = systray.AddMenuItem("", "")
	quitItem = systray.AddMenuItem("", "")
}

// Menu is one construction of the tray menu. Clicks on its Settings and Quit
// entries are delivered on the events channel returned by Build until Close.
type Menu struct {
	mu     sync.Mutex
	closed bool

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// Build constructs the menu with titles from catalog and returns it together
// with its event stream and the identifier map of its interactive entries.
// Build waits for Run to report the tray ready.
func Build(catalog *i18n.Catalog) (*Menu, <-chan MenuEvent, IDMap, error) {
	select {
	case <-readyCh:
	case <-time.After(readyTimeout):
		return nil, nil, nil, fmt.Errorf("tray not ready after %s", readyTimeout)
	}
	if !ownerMu.TryLock() {
		return nil, nil, nil, errors.New("tray menu already built")
	}

	allocOnce.Do(allocate)

	settingsID, quitID := NewMenuID(), NewMenuID()
	ids := IDMap{
		settingsID: ActionSettings,
		quitID:     ActionQuit,
	}

	settingsItem.SetTitle(catalog.Message("tray-settings-item"))
	quitItem.SetTitle(catalog.Message("tray-shutdown-item"))
	settingsItem.Show()
	quitItem.Show()
	systray.SetTooltip(catalog.Message("name"))

	m := &Menu{done: make(chan struct{})}
	events := make(chan MenuEvent, 8)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer close(events)
		forward(m.done, events,
			source{id: settingsID, clicked: settingsItem.ClickedCh},
			source{id: quitID, clicked: quitItem.ClickedCh},
		)
	}()

	return m, events, ids, nil
}

// Update redraws the icon, tooltip and reading rows for the active monitors.
func (m *Menu) Update(active models.MonitorSet, catalog *i18n.Catalog, readings []monitor.Reading) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}

	shown := activeReadings(active, readings)
	png, err := icon.Render(iconCells(catalog, shown))
	if err != nil {
		return err
	}
	systray.SetIcon(png)
	systray.SetTooltip(formatTooltip(catalog, shown))

	for _, kind := range models.AllMonitorKinds() {
		readingItems[kind].Hide()
	}
	for _, r := range shown {
		item := readingItems[r.Kind]
		item.SetTitle(formatReading(catalog, r))
		item.Show()
	}
	return nil
}

// Close stops event delivery, closes the event channel and hides the menu.
// Calling Close more than once is safe.
func (m *Menu) Close() {
	m.closeOnce.Do(func() {
		m.mu.Lock()
		m.closed = true
		m.mu.Unlock()

		close(m.done)
		m.wg.Wait()

		for _, item := range readingItems {
			item.Hide()
		}
		settingsItem.Hide()
		quitItem.Hide()
		ownerMu.Unlock()
	})
}

type source struct {
	id      MenuID
	clicked <-chan struct{}
}

// forward delivers clicks as menu events until done is closed.
// A click arriving while out is full is dropped.
func forward(done <-chan struct{}, out chan<- MenuEvent, settings, quit source) {
	for {
		var ev MenuEvent
		select {
		case <-done:
			return
		case <-settings.clicked:
			ev.ID = settings.id
		case <-quit.clicked:
			ev.ID = quit.id
		}
		select {
		case out <- ev:
		case <-done:
			return
		default:
		}
	}
}
