package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/watchfire-io/resmon/internal/app"
)

// Model is the root Bubbletea model. Every message ends in a coordinator Tick.
type Model struct {
	coord *app.Coordinator
	panel *SettingsPanel
	host  *Host
	opts  Options

	width  int
	height int
}

// NewModel creates the root model.
func NewModel(coord *app.Coordinator, panel *SettingsPanel, host *Host, opts Options) Model {
	return Model{
		coord: coord,
		panel: panel,
		host:  host,
		opts:  opts,
	}
}

func tickAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the tick loop immediately.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		return tickMsg(time.Now())
	}
}

// Update processes messages and returns an updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, globalKeys.Quit) {
			m.coord.InitiateShutdown()
			return m, tea.Quit
		}
		m.handleKey(msg)
		return m, m.step(nil)

	case tickMsg:
		return m, m.step(tickAfter(m.coord.RepaintInterval()))

	case repaintMsg:
		return m, m.step(nil)

	case configChangedMsg:
		m.opts.reload(m.coord)
		return m, m.step(nil)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	if !m.host.Visible() {
		if key.Matches(msg, globalKeys.Show) {
			m.host.ShowWindow()
		}
		return
	}
	if key.Matches(msg, settingsKeys.Hide) {
		m.host.MinimizeWindow()
		return
	}
	m.panel.HandleKey(msg)
}

// step runs one coordinator tick and returns next, or tea.Quit when the
// coordinator asks to close.
func (m *Model) step(next tea.Cmd) tea.Cmd {
	if m.coord.Tick() {
		return tea.Quit
	}
	return next
}

// View renders the settings panel, or a one-line hint while hidden.
func (m Model) View() string {
	if m.coord.ShuttingDown() {
		return ""
	}
	if !m.host.Visible() {
		return hintStyle.Render(m.coord.Catalog().Message("minimized-hint"))
	}
	return m.panel.View()
}
