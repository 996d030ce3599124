package ui

import (
	"context"
	"time"

	"github.com/go-logr/logr"

	"github.com/watchfire-io/resmon/internal/app"
)

// HeadlessHost drives the coordinator without a terminal. Only the tray is
// visible; settings requests are logged.
type HeadlessHost struct {
	wake chan struct{}
	log  logr.Logger
}

// NewHeadlessHost creates a headless host.
func NewHeadlessHost(log logr.Logger) *HeadlessHost {
	return &HeadlessHost{
		wake: make(chan struct{}, 1),
		log:  log,
	}
}

// RequestRepaint wakes the loop early. It never blocks.
func (h *HeadlessHost) RequestRepaint() {
	select {
	case h.wake <- struct{}{}:
	default:
	}
}

func (h *HeadlessHost) ShowWindow() {
	h.log.Info("Settings are only available from an interactive terminal")
}

func (h *HeadlessHost) MinimizeWindow() {}

// Run ticks the coordinator until it asks to close or ctx is cancelled.
// Cancellation counts as a host-requested close.
func (h *HeadlessHost) Run(ctx context.Context, coord *app.Coordinator, opts Options) error {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			coord.InitiateShutdown()
			return nil
		case <-h.wake:
		case <-opts.Changes:
			opts.reload(coord)
		case <-timer.C:
			timer.Reset(coord.RepaintInterval())
		}
		if coord.Tick() {
			return nil
		}
	}
}
