// Package autostart registers the application to launch at login.
package autostart

import (
	"fmt"
	"os"

	goautostart "github.com/emersion/go-autostart"
)

// Launcher toggles the login entry for one executable.
type Launcher struct {
	app *goautostart.App
}

// New creates a launcher for the running executable under appName.
func New(appName, displayName string) (*Launcher, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable: %w", err)
	}
	return NewWithExec(appName, displayName, exe, "--minimized"), nil
}

// NewWithExec creates a launcher for an explicit command line.
func NewWithExec(appName, displayName string, exec ...string) *Launcher {
	return &Launcher{app: &goautostart.App{
		Name:        appName,
		DisplayName: displayName,
		Exec:        exec,
	}}
}

// Enabled reports whether the login entry exists.
func (l *Launcher) Enabled() bool {
	return l.app.IsEnabled()
}

// Enable creates the login entry. Enabling twice is not an error.
func (l *Launcher) Enable() error {
	if l.app.IsEnabled() {
		return nil
	}
	if err := l.app.Enable(); err != nil {
		return fmt.Errorf("failed to enable autostart for %s: %w", l.app.Name, err)
	}
	return nil
}

// Disable removes the login entry. Disabling a missing entry is not an error.
func (l *Launcher) Disable() error {
	if !l.app.IsEnabled() {
		return nil
	}
	if err := l.app.Disable(); err != nil {
		return fmt.Errorf("failed to disable autostart for %s: %w", l.app.Name, err)
	}
	return nil
}
