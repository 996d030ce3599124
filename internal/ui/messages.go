package ui

import "time"

// tickMsg drives the coordinator at the repaint interval.
type tickMsg time.Time

// repaintMsg is sent from other goroutines to request an early tick.
type repaintMsg struct{}

// configChangedMsg reports an edit of the config file.
type configChangedMsg struct{}
