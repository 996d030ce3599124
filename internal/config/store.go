package config

import (
	"fmt"

	"github.com/watchfire-io/resmon/internal/models"
)

// Store loads and persists the application config at an explicit path.
type Store struct {
	path string
}

// NewStore creates a store for the config file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultStore creates a store for ~/.resmon/config.yaml.
func DefaultStore() (*Store, error) {
	path, err := GlobalConfigFile()
	if err != nil {
		return nil, err
	}
	return NewStore(path), nil
}

// Path returns the config file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the config file, applies RESMON_* environment overrides and
// normalizes the result. A missing file yields the defaults.
func (s *Store) Load() (*models.Config, error) {
	cfg, err := LoadYAMLOrDefault(s.path, models.NewConfig)
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Save writes cfg to the config file.
func (s *Store) Save(cfg models.Config) error {
	return SaveYAML(s.path, &cfg)
}
