package models

import (
	"fmt"
	"slices"
)

// MonitorKind identifies a sampled system resource.
type MonitorKind int

// Monitor kinds, in display order.
const (
	CPUUsage MonitorKind = iota
	RAMUsage
)

// AllMonitorKinds returns every monitor kind in display order.
func AllMonitorKinds() []MonitorKind {
	return []MonitorKind{CPUUsage, RAMUsage}
}

// String returns the YAML name of the kind.
func (k MonitorKind) String() string {
	switch k {
	case CPUUsage:
		return "cpu_usage"
	case RAMUsage:
		return "ram_usage"
	default:
		return fmt.Sprintf("monitor(%d)", int(k))
	}
}

// LabelKey is the message key of the short label drawn on the icon.
func (k MonitorKind) LabelKey() string {
	switch k {
	case CPUUsage:
		return "icon-label-cpu-usage"
	case RAMUsage:
		return "icon-label-ram-usage"
	default:
		return ""
	}
}

// TooltipKey is the message key of the tray tooltip.
func (k MonitorKind) TooltipKey() string {
	switch k {
	case CPUUsage:
		return "tray-tooltip-cpu-usage"
	case RAMUsage:
		return "tray-tooltip-ram-usage"
	default:
		return ""
	}
}

// Unit is the suffix printed after a reading.
func (k MonitorKind) Unit() string {
	switch k {
	case CPUUsage, RAMUsage:
		return "%"
	default:
		return ""
	}
}

// ParseMonitorKind parses the YAML name of a kind.
func ParseMonitorKind(s string) (MonitorKind, error) {
	for _, k := range AllMonitorKinds() {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown monitor kind %q", s)
}

// MarshalYAML encodes the kind by name.
func (k MonitorKind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// UnmarshalYAML decodes the kind from its name.
func (k *MonitorKind) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseMonitorKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MonitorSet is the set of active monitor kinds.
type MonitorSet []MonitorKind

// Contains reports whether k is in the set.
func (s MonitorSet) Contains(k MonitorKind) bool {
	return slices.Contains(s, k)
}

// With returns a copy of the set including k.
func (s MonitorSet) With(k MonitorKind) MonitorSet {
	if s.Contains(k) {
		return s.Clone()
	}
	return append(s.Clone(), k).Canonical()
}

// Without returns a copy of the set excluding k.
func (s MonitorSet) Without(k MonitorKind) MonitorSet {
	out := make(MonitorSet, 0, len(s))
	for _, v := range s {
		if v != k {
			out = append(out, v)
		}
	}
	return out
}

// Clone returns an independent copy.
func (s MonitorSet) Clone() MonitorSet {
	if s == nil {
		return nil
	}
	return slices.Clone(s)
}

// Canonical returns the set sorted in display order with duplicates removed.
func (s MonitorSet) Canonical() MonitorSet {
	out := make(MonitorSet, 0, len(s))
	for _, k := range AllMonitorKinds() {
		if s.Contains(k) {
			out = append(out, k)
		}
	}
	return out
}
