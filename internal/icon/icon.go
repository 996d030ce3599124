// Package icon rasterizes monitor readings into the tray icon.
package icon

import (
	"bytes"
	"fmt"
	"image/color"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"
)

// CellSize is the edge length in pixels of one monitor cell.
const CellSize = 32

var (
	colorBackdrop = color.RGBA{R: 24, G: 24, B: 27, A: 255}
	colorLow      = color.RGBA{R: 34, G: 160, B: 80, A: 255}
	colorMid      = color.RGBA{R: 220, G: 160, B: 20, A: 255}
	colorHigh     = color.RGBA{R: 210, G: 50, B: 40, A: 255}
	colorText     = color.RGBA{R: 240, G: 240, B: 240, A: 255}
)

// Cell is one labelled value drawn side by side with the others.
type Cell struct {
	Label string
	Value float64
	Unit  string
}

// Text returns the value as drawn in the cell, e.g. "42%".
func (c Cell) Text() string {
	return fmt.Sprintf("%.0f%s", c.Value, c.Unit)
}

// Render draws cells into a PNG of CellSize*len(cells) by CellSize pixels.
// An empty strip renders a single blank cell so the tray always has an icon.
func Render(cells []Cell) ([]byte, error) {
	n := len(cells)
	if n == 0 {
		n = 1
	}

	dc := gg.NewContext(CellSize*n, CellSize)
	dc.SetColor(colorBackdrop)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	for i, c := range cells {
		drawCell(dc, float64(i*CellSize), c)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode icon: %w", err)
	}
	return buf.Bytes(), nil
}

func drawCell(dc *gg.Context, x float64, c Cell) {
	// Usage bar along the bottom edge.
	frac := clamp01(c.Value / 100)
	dc.SetColor(levelColor(frac))
	dc.DrawRectangle(x+1, CellSize-5, (CellSize-2)*frac, 4)
	dc.Fill()

	dc.SetColor(colorText)
	dc.DrawStringAnchored(c.Label, x+CellSize/2, 8, 0.5, 0.5)
	dc.DrawStringAnchored(c.Text(), x+CellSize/2, 19, 0.5, 0.5)
}

func levelColor(frac float64) color.Color {
	switch {
	case frac >= 0.85:
		return colorHigh
	case frac >= 0.6:
		return colorMid
	default:
		return colorLow
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
