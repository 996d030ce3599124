package app

import (
	"errors"
	"sync"
	"time"

	"github.com/watchfire-io/resmon/internal/models"
)

// ErrStorePoisoned is the panic value raised when the store is used after a
// mutation panicked while holding its lock.
var ErrStorePoisoned = errors.New("config store poisoned by a panic during update")

// ConfigStore is the config shared by the foreground loop and the background
// goroutine. The lock is never held across sleeps, I/O or channel operations.
type ConfigStore struct {
	mu       sync.Mutex
	cfg      models.Config
	poisoned bool
}

// NewConfigStore creates a store holding a copy of cfg.
func NewConfigStore(cfg models.Config) *ConfigStore {
	return &ConfigStore{cfg: cfg.Clone()}
}

func (s *ConfigStore) lock() {
	s.mu.Lock()
	if s.poisoned {
		s.mu.Unlock()
		panic(ErrStorePoisoned)
	}
}

// Snapshot returns an independent copy of the current config.
func (s *ConfigStore) Snapshot() models.Config {
	s.lock()
	defer s.mu.Unlock()
	return s.cfg.Clone()
}

// Update runs fn with exclusive access to the config. If fn panics the store
// is poisoned and every later access panics with ErrStorePoisoned.
func (s *ConfigStore) Update(fn func(cfg *models.Config)) {
	s.lock()
	defer s.mu.Unlock()

	completed := false
	defer func() {
		if !completed {
			s.poisoned = true
		}
	}()
	fn(&s.cfg)
	completed = true
}

// Replace swaps in a copy of cfg.
func (s *ConfigStore) Replace(cfg models.Config) {
	s.Update(func(c *models.Config) { *c = cfg.Clone() })
}

// RetryDelay returns the configured delay between menu event polls.
func (s *ConfigStore) RetryDelay() time.Duration {
	s.lock()
	defer s.mu.Unlock()
	return time.Duration(s.cfg.Timing.TrayErrorRetryDelayMs) * time.Millisecond
}

// Poisoned reports whether an update panicked.
func (s *ConfigStore) Poisoned() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.poisoned
}
