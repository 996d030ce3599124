package models

import "time"

// InstanceInfo describes the running monitor process.
// This corresponds to ~/.resmon/instance.yaml.
type InstanceInfo struct {
	Version   int       `yaml:"version"`
	PID       int       `yaml:"pid"`
	AppVer    string    `yaml:"app_version"`
	StartedAt time.Time `yaml:"started_at"`
}

// NewInstanceInfo creates instance info for the current process.
func NewInstanceInfo(pid int, appVersion string) *InstanceInfo {
	return &InstanceInfo{
		Version:   1,
		PID:       pid,
		AppVer:    appVersion,
		StartedAt: time.Now().UTC(),
	}
}
