package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/swarmform/internal/shape"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// tint accumulates the linear colors of every dot that landed in a cell.
type tint struct {
	r, g, b float64
	n       int
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
	tints         [][]tint
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the grid if the size changed. Contents are cleared.
func (c *Canvas) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w == c.Width && h == c.Height {
		c.Clear()
		return
	}
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	c.tints = make([][]tint, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.tints[i] = make([]tint, w)
	}
	c.Clear()
}

// SubSize is the canvas size in braille dots.
func (c *Canvas) SubSize() (int, int) { return c.Width * 2, c.Height * 4 }

// Set lights the dot at (x, y) in sub-pixel coordinates.
func (c *Canvas) Set(x, y int) {
	c.set(x, y)
}

// Plot lights a dot and mixes col into the cell's color.
func (c *Canvas) Plot(x, y int, col shape.Color) {
	row, cell, ok := c.set(x, y)
	if !ok {
		return
	}
	t := &c.tints[row][cell]
	t.r += col.R
	t.g += col.G
	t.b += col.B
	t.n++
}

func (c *Canvas) set(x, y int) (int, int, bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	return row, col, true
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.tints[i][j] = tint{}
		}
	}
}

// Lit counts cells with at least one dot set.
func (c *Canvas) Lit() int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != blank {
				n++
			}
		}
	}
	return n
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Colored renders the grid with each cell in the average color of its dots.
// Runs of equal color share one style.
func (c *Canvas) Colored() string {
	var b strings.Builder
	for i, row := range c.Grid {
		start, hex := 0, cellHex(c.tints[i][0])
		for j := 1; j <= len(row); j++ {
			next := ""
			if j < len(row) {
				next = cellHex(c.tints[i][j])
				if next == hex {
					continue
				}
			}
			run := string(row[start:j])
			if hex == "" {
				b.WriteString(run)
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(run))
			}
			start, hex = j, next
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// CellHex is the sRGB hex color of a cell, or "" if nothing colored it.
func (c *Canvas) CellHex(row, col int) string {
	return cellHex(c.tints[row][col])
}

func cellHex(t tint) string {
	if t.n == 0 {
		return ""
	}
	n := float64(t.n)
	return colorful.LinearRgb(t.r/n, t.g/n, t.b/n).Clamped().Hex()
}
