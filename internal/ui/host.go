package ui

import (
	"sync/atomic"
)

// Host is the terminal window the settings panel lives in. Hiding it keeps the
// program running with only the tray visible.
type Host struct {
	program programRef
	hidden  atomic.Bool
	pending atomic.Bool
}

// NewHost creates a visible host.
func NewHost() *Host {
	return &Host{}
}

// RequestRepaint asks the program for an early tick. It never blocks, and
// requests made while one is in flight are coalesced.
func (h *Host) RequestRepaint() {
	if !h.pending.CompareAndSwap(false, true) {
		return
	}
	go func() {
		h.program.Send(repaintMsg{})
		h.pending.Store(false)
	}()
}

// ShowWindow shows the settings panel.
func (h *Host) ShowWindow() {
	h.hidden.Store(false)
}

// MinimizeWindow hides the settings panel.
func (h *Host) MinimizeWindow() {
	h.hidden.Store(true)
}

// Visible reports whether the settings panel is shown.
func (h *Host) Visible() bool {
	return !h.hidden.Load()
}
