package app

import (
	"errors"
	"time"

	"github.com/go-logr/logr"

	"github.com/watchfire-io/resmon/internal/tray"
)

const (
	// maxPollDelay bounds the wait between shutdown checks so a join never
	// waits for the configured retry delay.
	maxPollDelay = 50 * time.Millisecond
	minPollDelay = time.Millisecond
)

var errEventsClosed = errors.New("menu event source closed")

// eventBridge runs on the background goroutine. It translates menu clicks
// into commands for the foreground loop.
type eventBridge struct {
	events   <-chan tray.MenuEvent
	ids      tray.IDMap
	queue    *commandQueue
	store    *ConfigStore
	host     Host
	shutdown <-chan struct{}
	log      logr.Logger
}

func commandFor(a tray.Action) (Command, bool) {
	switch a {
	case tray.ActionSettings:
		return CommandShowSettings, true
	case tray.ActionQuit:
		return CommandQuit, true
	default:
		return 0, false
	}
}

func pollDelay(configured time.Duration) time.Duration {
	return min(max(configured, minPollDelay), maxPollDelay)
}

// run loops until the shutdown signal is closed or a quit is forwarded.
func (b *eventBridge) run() {
	events := b.events
	for {
		select {
		case <-b.shutdown:
			return
		default:
		}

		timer := time.NewTimer(pollDelay(b.store.RetryDelay()))
		select {
		case <-b.shutdown:
			timer.Stop()
			return
		case ev, ok := <-events:
			timer.Stop()
			if !ok {
				b.log.Error(errEventsClosed, "Menu events will no longer be delivered")
				events = nil
				continue
			}
			if b.dispatch(ev) {
				return
			}
		case <-timer.C:
		}
	}
}

// dispatch forwards the command for ev and reports whether it was a quit.
func (b *eventBridge) dispatch(ev tray.MenuEvent) bool {
	action, ok := b.ids.Lookup(ev.ID)
	if !ok {
		b.log.V(1).Info("Ignoring unknown menu id", "id", ev.ID)
		return false
	}
	cmd, ok := commandFor(action)
	if !ok {
		return false
	}

	if err := b.queue.Push(cmd); err != nil {
		b.log.Error(err, "Failed to forward menu command", "command", cmd)
	} else {
		b.host.RequestRepaint()
	}
	return cmd == CommandQuit
}
