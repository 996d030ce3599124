package app

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"github.com/watchfire-io/resmon/internal/i18n"
	"github.com/watchfire-io/resmon/internal/models"
	"github.com/watchfire-io/resmon/internal/monitor"
	"github.com/watchfire-io/resmon/internal/tray"
)

const (
	settingsID tray.MenuID = "settings-id"
	quitID     tray.MenuID = "quit-id"
)

// captureSink records log messages; errors are prefixed with "ERROR:".
type captureSink struct {
	mu   sync.Mutex
	msgs []string
}

func (s *captureSink) Init(logr.RuntimeInfo) {}
func (s *captureSink) Enabled(int) bool      { return true }
func (s *captureSink) Info(level int, msg string, kvs ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
}
func (s *captureSink) Error(err error, msg string, kvs ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, "ERROR:"+msg)
}
func (s *captureSink) WithValues(...any) logr.LogSink { return s }
func (s *captureSink) WithName(string) logr.LogSink   { return s }
func (s *captureSink) Logger() logr.Logger            { return logr.New(s) }

func (s *captureSink) has(msg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.msgs, msg)
}

type fakeTray struct {
	mu      sync.Mutex
	updates []monitor.Reading
	nUpdate int
	nClose  int
	err     error
}

func (t *fakeTray) Update(active models.MonitorSet, catalog *i18n.Catalog, readings []monitor.Reading) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nUpdate++
	t.updates = readings
	return t.err
}

func (t *fakeTray) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nClose++
}

func (t *fakeTray) counts() (updates, closes int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.nUpdate, t.nClose
}

// fakeTrays is a TrayFactory that records every tray it builds.
type fakeTrays struct {
	mu       sync.Mutex
	err      error
	trays    []*fakeTray
	events   []chan tray.MenuEvent
	catalogs []*i18n.Catalog
}

func (f *fakeTrays) build(catalog *i18n.Catalog) (Tray, <-chan tray.MenuEvent, tray.IDMap, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, nil, nil, f.err
	}
	t := &fakeTray{}
	ch := make(chan tray.MenuEvent, 8)
	f.trays = append(f.trays, t)
	f.events = append(f.events, ch)
	f.catalogs = append(f.catalogs, catalog)
	return t, ch, tray.IDMap{settingsID: tray.ActionSettings, quitID: tray.ActionQuit}, nil
}

func (f *fakeTrays) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.trays)
}

func (f *fakeTrays) last() (*fakeTray, chan tray.MenuEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := len(f.trays)
	return f.trays[n-1], f.events[n-1]
}

type fakeHost struct {
	mu          sync.Mutex
	repaints    int
	shows       int
	minimizes   int
	panicOnPing bool
}

func (h *fakeHost) RequestRepaint() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.panicOnPing {
		panic("repaint exploded")
	}
	h.repaints++
}

func (h *fakeHost) ShowWindow() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.shows++
}

func (h *fakeHost) MinimizeWindow() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.minimizes++
}

type hostCalls struct {
	repaints, shows, minimizes int
}

func (h *fakeHost) calls() hostCalls {
	h.mu.Lock()
	defer h.mu.Unlock()
	return hostCalls{repaints: h.repaints, shows: h.shows, minimizes: h.minimizes}
}

type fakeSampler struct {
	calls int
}

func (s *fakeSampler) Sample(cfg models.Config) []monitor.Reading {
	s.calls++
	var out []monitor.Reading
	for _, k := range cfg.ActiveMonitors {
		out = append(out, monitor.Reading{Kind: k, Value: float64(10 * (int(k) + 1))})
	}
	return out
}

// fakeSettings returns queued results, applying each edit to the store first.
type fakeSettings struct {
	steps []settingsStep
	calls int
}

type settingsStep struct {
	edit   func(*models.Config)
	result SettingsResult
}

func (s *fakeSettings) Render(store *ConfigStore, catalog *i18n.Catalog) SettingsResult {
	s.calls++
	if len(s.steps) == 0 {
		return SettingsResult{}
	}
	step := s.steps[0]
	s.steps = s.steps[1:]
	if step.edit != nil {
		store.Update(step.edit)
	}
	return step.result
}

type fakePersister struct {
	saved []models.Config
	err   error
}

func (p *fakePersister) Save(cfg models.Config) error {
	p.saved = append(p.saved, cfg)
	return p.err
}

type fakeAutostart struct {
	enables, disables int
	err               error
}

func (a *fakeAutostart) Enable() error {
	a.enables++
	return a.err
}

func (a *fakeAutostart) Disable() error {
	a.disables++
	return a.err
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

var errBoom = errors.New("boom")
