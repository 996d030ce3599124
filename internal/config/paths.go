// Package config handles configuration loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"
)

const (
	// GlobalDirName is the name of the global resmon directory.
	GlobalDirName = ".resmon"
)

// File names
const (
	ConfigFileName   = "config.yaml"
	InstanceFileName = "instance.yaml"
	LogFileName      = "resmon.log"
	EnvFileName      = ".env"
)

// GlobalDir returns the path to the global resmon directory (~/.resmon/).
func GlobalDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, GlobalDirName), nil
}

// GlobalConfigFile returns the path to the config.yaml file.
func GlobalConfigFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// GlobalInstanceFile returns the path to the instance.yaml file.
func GlobalInstanceFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, InstanceFileName), nil
}

// GlobalLogFile returns the path to the log file used while the TUI owns the terminal.
func GlobalLogFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, LogFileName), nil
}

// EnsureGlobalDir creates the global resmon directory if it doesn't exist.
func EnsureGlobalDir() error {
	dir, err := GlobalDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}
