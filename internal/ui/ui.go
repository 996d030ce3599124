// Package ui implements the hosts the coordinator runs in: an interactive
// settings panel on the terminal and a headless loop for the tray alone.
package ui

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"

	"github.com/watchfire-io/resmon/internal/app"
	"github.com/watchfire-io/resmon/internal/models"
)

// programRef is a shared reference to the tea.Program for goroutine sends.
// It's set after tea.NewProgram but before p.Run().
type programRef struct {
	mu sync.Mutex
	p  *tea.Program
}

func (r *programRef) Set(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = p
}

// Send delivers msg to the program and reports whether one was set.
func (r *programRef) Send(msg tea.Msg) bool {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p == nil {
		return false
	}
	p.Send(msg)
	return true
}

// Clear nils out the program reference, preventing post-exit sends.
func (r *programRef) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = nil
}

// Options configure both hosts.
type Options struct {
	// Changes signals that the config file was edited outside the process.
	Changes <-chan struct{}
	// Reload reads the config file again after a change.
	Reload func() (*models.Config, error)
	Log    logr.Logger
}

func (o Options) reload(coord *app.Coordinator) {
	if o.Reload == nil {
		return
	}
	cfg, err := o.Reload()
	if err != nil {
		o.Log.Error(err, "Ignoring edited config")
		return
	}
	o.Log.Info("Config reloaded")
	coord.ReplaceConfig(*cfg)
}

// Run shows the settings panel on the terminal until the coordinator asks to
// close or ctx is cancelled. Cancellation counts as a host-requested close.
func Run(ctx context.Context, coord *app.Coordinator, panel *SettingsPanel, host *Host, opts Options) error {
	model := NewModel(coord, panel, host, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	// Store program reference for goroutine sends
	host.program.Set(p)
	defer host.program.Clear()

	done := make(chan struct{})
	defer close(done)
	if opts.Changes != nil {
		go func() {
			for {
				select {
				case <-done:
					return
				case <-opts.Changes:
					host.program.Send(configChangedMsg{})
				}
			}
		}()
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		coord.InitiateShutdown()
		return nil
	}
	return err
}
