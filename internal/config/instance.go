package config

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/watchfire-io/resmon/internal/models"
)

// ErrAlreadyRunning is returned when another monitor process holds the instance file.
var ErrAlreadyRunning = errors.New("resmon is already running")

// LoadInstanceInfo loads the instance info at path.
// Returns nil if the file doesn't exist.
func LoadInstanceInfo(path string) (*models.InstanceInfo, error) {
	if !FileExists(path) {
		return nil, nil
	}

	var info models.InstanceInfo
	if err := LoadYAML(path, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// RemoveInstanceInfo removes the instance file.
func RemoveInstanceInfo(path string) error {
	if !FileExists(path) {
		return nil
	}
	return os.Remove(path)
}

// IsInstanceRunning checks whether the process recorded at path is still alive.
// A stale file is removed.
func IsInstanceRunning(path string) (bool, *models.InstanceInfo, error) {
	info, err := LoadInstanceInfo(path)
	if err != nil {
		return false, nil, err
	}
	if info == nil {
		return false, nil, nil
	}

	process, err := os.FindProcess(info.PID)
	if err != nil {
		// On Unix, FindProcess always succeeds
		return false, info, nil
	}

	// Send signal 0 to check if process exists
	if err := process.Signal(syscall.Signal(0)); err != nil {
		_ = RemoveInstanceInfo(path)
		return false, info, nil
	}

	return true, info, nil
}

// AcquireInstance records info at path, failing with ErrAlreadyRunning when a
// live process already owns it.
func AcquireInstance(path string, info *models.InstanceInfo) error {
	running, existing, err := IsInstanceRunning(path)
	if err != nil {
		return fmt.Errorf("failed to check instance status: %w", err)
	}
	if running {
		return fmt.Errorf("%w (PID %d)", ErrAlreadyRunning, existing.PID)
	}
	return SaveYAML(path, info)
}
