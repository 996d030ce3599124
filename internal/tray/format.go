package tray

import (
	"fmt"
	"strings"

	"github.com/watchfire-io/resmon/internal/i18n"
	"github.com/watchfire-io/resmon/internal/icon"
	"github.com/watchfire-io/resmon/internal/models"
	"github.com/watchfire-io/resmon/internal/monitor"
)

// activeReadings keeps the readings of active kinds, in display order.
func activeReadings(active models.MonitorSet, readings []monitor.Reading) []monitor.Reading {
	var out []monitor.Reading
	for _, kind := range active.Canonical() {
		for _, r := range readings {
			if r.Kind == kind {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

func iconCells(catalog *i18n.Catalog, readings []monitor.Reading) []icon.Cell {
	cells := make([]icon.Cell, 0, len(readings))
	for _, r := range readings {
		cells = append(cells, icon.Cell{
			Label: catalog.Message(r.Kind.LabelKey()),
			Value: r.Value,
			Unit:  r.Kind.Unit(),
		})
	}
	return cells
}

func formatReading(catalog *i18n.Catalog, r monitor.Reading) string {
	return fmt.Sprintf("%s: %.0f%s", catalog.Message(r.Kind.TooltipKey()), r.Value, r.Kind.Unit())
}

func formatTooltip(catalog *i18n.Catalog, readings []monitor.Reading) string {
	lines := []string{catalog.Message("name")}
	for _, r := range readings {
		lines = append(lines, formatReading(catalog, r))
	}
	return strings.Join(lines, "\n")
}
