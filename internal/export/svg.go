// Package export writes canvases and metric series as standalone SVG.
package export

import (
	"fmt"
	"slices"
	"strings"

	"github.com/san-kum/swarmform/internal/viz"
)

const (
	background = "#0a0a0a"
	defaultDot = "#f0fff0"
	markColor  = "#555555"
)

// braille bit for the dot at column dx, row dy of a cell
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func header(sb *strings.Builder, width, height float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}

// CanvasToSVG draws every lit braille dot as a circle of side scale, grouped
// by the color of its cell.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	groups := make(map[string][]string)
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			bits := canvas.Grid[row][col] - 0x2800
			if bits <= 0 {
				continue
			}
			fill := canvas.CellHex(row, col)
			if fill == "" {
				fill = defaultDot
			}
			for dy, line := range dotBits {
				for dx, bit := range line {
					if bits&bit == 0 {
						continue
					}
					cx := (float64(col*2+dx) + 0.5) * scale
					cy := (float64(row*4+dy) + 0.5) * scale
					groups[fill] = append(groups[fill], fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>`, cx, cy, scale*0.4))
				}
			}
		}
	}

	var sb strings.Builder
	header(&sb, float64(canvas.Width*2)*scale, float64(canvas.Height*4)*scale)

	fills := make([]string, 0, len(groups))
	for fill := range groups {
		fills = append(fills, fill)
	}
	slices.Sort(fills)
	for _, fill := range fills {
		fmt.Fprintf(&sb, "<g fill=%q>\n", fill)
		for _, dot := range groups[fill] {
			sb.WriteString(dot)
			sb.WriteByte('\n')
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG draws values against their sample index as one path, with a
// dashed vertical line at each index in marks.
func SeriesToSVG(values []float64, marks []int, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	lo, hi := slices.Min(values), slices.Max(values)
	span := hi - lo
	if span == 0 {
		span = 1
	}
	// 10% headroom above and below
	lo -= span * 0.1
	span *= 1.2

	w, h := float64(width), float64(height)
	xAt := func(i int) float64 { return float64(i) / float64(len(values)-1) * w }

	var sb strings.Builder
	header(&sb, w, h)

	for _, m := range marks {
		if m < 0 || m >= len(values) {
			continue
		}
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="0" x2="%.1f" y2="%d" stroke="%s" stroke-dasharray="4 4"/>`+"\n",
			xAt(m), xAt(m), height, markColor)
	}

	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="`, strokeColor)
	for i, v := range values {
		cmd := " L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&sb, "%s%.1f,%.1f", cmd, xAt(i), h-(v-lo)/span*h)
	}
	sb.WriteString("\"/>\n</svg>")
	return sb.String()
}
