// Package monitor samples system resource usage.
package monitor

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/watchfire-io/resmon/internal/models"
)

// Reading is one sampled value for a monitor kind.
type Reading struct {
	Kind  models.MonitorKind
	Value float64
}

// Probe reads the current value of one resource.
type Probe func() (float64, error)

// CPUPercent returns total CPU usage since the previous call.
func CPUPercent() (float64, error) {
	pcts, err := cpu.Percent(0, false)
	if err != nil {
		return 0, err
	}
	if len(pcts) == 0 {
		return 0, errors.New("no cpu statistics")
	}
	return pcts[0], nil
}

// RAMPercent returns the share of physical memory in use.
func RAMPercent() (float64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vm.UsedPercent, nil
}

// SystemSampler samples the active monitors of a config.
type SystemSampler struct {
	probes map[models.MonitorKind]Probe
	log    logr.Logger
}

// NewSystemSampler creates a sampler backed by gopsutil.
func NewSystemSampler(log logr.Logger) *SystemSampler {
	return NewSampler(log, map[models.MonitorKind]Probe{
		models.CPUUsage: CPUPercent,
		models.RAMUsage: RAMPercent,
	})
}

// NewSampler creates a sampler with explicit probes.
func NewSampler(log logr.Logger, probes map[models.MonitorKind]Probe) *SystemSampler {
	return &SystemSampler{probes: probes, log: log}
}

// Sample returns one fresh reading per active kind in display order.
// Kinds whose probe fails are logged and left out.
func (s *SystemSampler) Sample(cfg models.Config) []Reading {
	readings, err := s.sample(cfg.ActiveMonitors)
	if err != nil {
		s.log.Error(err, "Sampling failed")
	}
	return readings
}

func (s *SystemSampler) sample(active models.MonitorSet) ([]Reading, error) {
	var (
		readings []Reading
		errs     []error
	)
	for _, kind := range active.Canonical() {
		probe, ok := s.probes[kind]
		if !ok {
			errs = append(errs, fmt.Errorf("%s: no probe", kind))
			continue
		}
		v, err := probe()
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", kind, err))
			continue
		}
		readings = append(readings, Reading{Kind: kind, Value: v})
	}
	return readings, errors.Join(errs...)
}
