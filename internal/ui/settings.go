package ui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/watchfire-io/resmon/internal/app"
	"github.com/watchfire-io/resmon/internal/i18n"
	"github.com/watchfire-io/resmon/internal/models"
)

const (
	labelWidth  = 24
	sliderWidth = 12
)

type fieldKind int

const (
	fieldRefresh fieldKind = iota
	fieldLanguage
	fieldRunOnStartup
	fieldMinimized
	fieldMonitor
	fieldShutdown
)

// field is one row of the settings panel.
type field struct {
	kind    fieldKind
	monitor models.MonitorKind
}

func settingsFields() []field {
	fields := []field{
		{kind: fieldRefresh},
		{kind: fieldLanguage},
		{kind: fieldRunOnStartup},
		{kind: fieldMinimized},
	}
	for _, k := range models.AllMonitorKinds() {
		fields = append(fields, field{kind: fieldMonitor, monitor: k})
	}
	return append(fields, field{kind: fieldShutdown})
}

// edit is a queued change to one field. A zero delta activates the field.
type edit struct {
	field field
	delta int
}

// SettingsPanel is the settings surface. Key presses queue edits that are
// applied to the shared config on the next Render.
type SettingsPanel struct {
	mu      sync.Mutex
	fields  []field
	cursor  int
	pending []edit
	view    string
}

// NewSettingsPanel creates a panel with the cursor on the first field.
func NewSettingsPanel() *SettingsPanel {
	return &SettingsPanel{fields: settingsFields()}
}

// MoveUp moves cursor up.
func (p *SettingsPanel) MoveUp() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cursor > 0 {
		p.cursor--
	}
}

// MoveDown moves cursor down.
func (p *SettingsPanel) MoveDown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cursor < len(p.fields)-1 {
		p.cursor++
	}
}

// Adjust queues a step of delta on the selected field. Toggles flip
// regardless of direction; the shutdown button ignores it.
func (p *SettingsPanel) Adjust(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = append(p.pending, edit{field: p.fields[p.cursor], delta: delta})
}

// Activate queues a press of the selected field.
func (p *SettingsPanel) Activate() {
	p.Adjust(0)
}

// HandleKey applies a key press and reports whether the panel used it.
func (p *SettingsPanel) HandleKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, settingsKeys.Up):
		p.MoveUp()
	case key.Matches(msg, settingsKeys.Down):
		p.MoveDown()
	case key.Matches(msg, settingsKeys.Left):
		p.Adjust(-1)
	case key.Matches(msg, settingsKeys.Right):
		p.Adjust(1)
	case key.Matches(msg, settingsKeys.Toggle):
		p.Activate()
	default:
		return false
	}
	return true
}

// Render applies queued edits to store and redraws the panel.
func (p *SettingsPanel) Render(store *app.ConfigStore, catalog *i18n.Catalog) app.SettingsResult {
	p.mu.Lock()
	edits := p.pending
	p.pending = nil
	p.mu.Unlock()

	var res app.SettingsResult
	if len(edits) > 0 {
		store.Update(func(cfg *models.Config) {
			for _, e := range edits {
				applyEdit(cfg, e, &res)
			}
			cfg.Normalize()
		})
	}

	view := p.render(store.Snapshot(), catalog)
	p.mu.Lock()
	p.view = view
	p.mu.Unlock()
	return res
}

// View returns the panel as drawn by the last Render.
func (p *SettingsPanel) View() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view
}

func applyEdit(cfg *models.Config, e edit, res *app.SettingsResult) {
	switch e.field.kind {
	case fieldRefresh:
		r := &cfg.Refresh
		next := r.DefaultRefreshSeconds
		switch {
		case e.delta < 0 && next > 0:
			next--
		case e.delta > 0:
			next++
		}
		r.DefaultRefreshSeconds = models.ClampRefresh(next, r.MinRefreshSeconds, r.MaxRefreshSeconds)

	case fieldLanguage:
		langs := models.SupportedLanguages()
		i := 0
		for j, l := range langs {
			if l == cfg.General.Language {
				i = j
			}
		}
		step := e.delta
		if step == 0 {
			step = 1
		}
		next := langs[((i+step)%len(langs)+len(langs))%len(langs)]
		if next != cfg.General.Language {
			cfg.General.Language = next
			res.LanguageChanged = true
		}

	case fieldRunOnStartup:
		cfg.General.RunOnStartup = !cfg.General.RunOnStartup
		res.AutostartChanged = true

	case fieldMinimized:
		cfg.General.MinimizedWindowOnStartup = !cfg.General.MinimizedWindowOnStartup

	case fieldMonitor:
		if cfg.ActiveMonitors.Contains(e.field.monitor) {
			cfg.ActiveMonitors = cfg.ActiveMonitors.Without(e.field.monitor)
		} else {
			cfg.ActiveMonitors = cfg.ActiveMonitors.With(e.field.monitor)
		}

	case fieldShutdown:
		if e.delta == 0 {
			res.CloseRequested = true
		}
	}
}

func (p *SettingsPanel) render(cfg models.Config, catalog *i18n.Catalog) string {
	p.mu.Lock()
	cursor := p.cursor
	p.mu.Unlock()

	width := max(cfg.Window.SettingsWidth, labelWidth+sliderWidth)
	lines := []string{titleStyle.Render(catalog.Message("settings-title"))}
	for i, f := range p.fields {
		line := renderField(cfg, catalog, f)
		if i == cursor {
			line = settingsCursorStyle.Width(width).Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, hintStyle.Render(ansi.Truncate(catalog.Message("settings-hint"), width, "…")))

	return panelStyle.Render(strings.Join(lines, "\n"))
}

func renderField(cfg models.Config, catalog *i18n.Catalog, f field) string {
	label := func(key string) string {
		return settingsLabelStyle.Render(ansi.Truncate(catalog.Message(key)+":", labelWidth-1, "…"))
	}

	switch f.kind {
	case fieldRefresh:
		r := cfg.Refresh
		return label("refresh-time-label") + " " +
			settingsSliderStyle.Render(slider(r.DefaultRefreshSeconds, r.MinRefreshSeconds, r.MaxRefreshSeconds)) + " " +
			settingsValueStyle.Render(fmt.Sprintf("%ds", r.DefaultRefreshSeconds))
	case fieldLanguage:
		return label("language-label") + " " + settingsValueStyle.Render("◂ "+cfg.General.Language.Name()+" ▸")
	case fieldRunOnStartup:
		return label("run-on-startup-label") + " " + toggle(cfg.General.RunOnStartup)
	case fieldMinimized:
		return label("minimized-on-startup-label") + " " + toggle(cfg.General.MinimizedWindowOnStartup)
	case fieldMonitor:
		text := catalog.Message("monitor-label-prefix") + " " + catalog.Message(f.monitor.LabelKey()) + ":"
		return settingsLabelStyle.Render(ansi.Truncate(text, labelWidth-1, "…")) + " " + toggle(cfg.ActiveMonitors.Contains(f.monitor))
	case fieldShutdown:
		return lipgloss.NewStyle().MarginTop(1).Render(shutdownButtonStyle.Render("[ " + catalog.Message("shutdown-button-label") + " ]"))
	default:
		return ""
	}
}

func toggle(on bool) string {
	if on {
		return settingsToggleOn.Render("[ON]")
	}
	return settingsToggleOff.Render("[OFF]")
}

// slider draws value's position in [lo, hi] as a bar of sliderWidth cells.
func slider(value, lo, hi uint64) string {
	filled := sliderWidth
	if hi > lo {
		filled = int((value - min(value, lo)) * uint64(sliderWidth) / (hi - lo))
	}
	filled = min(max(filled, 0), sliderWidth)
	return strings.Repeat("━", filled) + strings.Repeat("─", sliderWidth-filled)
}
