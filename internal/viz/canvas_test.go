package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/swarmform/internal/shape"
)

func TestCanvasSet(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		want rune
	}{
		{"top left", 0, 0, 0x2801},
		{"top right", 1, 0, 0x2808},
		{"bottom left", 0, 3, 0x2840},
		{"bottom right", 1, 3, 0x2880},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(2, 2)
			c.Set(tt.x, tt.y)
			if c.Grid[0][0] != tt.want {
				t.Errorf("got %U, want %U", c.Grid[0][0], tt.want)
			}
		})
	}
}

func TestCanvasOutOfBounds(t *testing.T) {
	c := NewCanvas(2, 2)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 8}} {
		c.Set(p[0], p[1])
	}
	if c.Lit() != 0 {
		t.Errorf("expected no lit cells, got %d", c.Lit())
	}
}

func TestCanvasClearAndResize(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Plot(0, 0, shape.Color{R: 1})
	c.Plot(7, 7, shape.Color{G: 1})
	if c.Lit() != 2 {
		t.Fatalf("expected 2 lit cells, got %d", c.Lit())
	}
	c.Clear()
	if c.Lit() != 0 {
		t.Errorf("expected clear canvas, got %d lit", c.Lit())
	}

	c.Plot(0, 0, shape.Color{R: 1})
	c.Resize(6, 3)
	if c.Width != 6 || c.Height != 3 || len(c.Grid) != 3 || len(c.Grid[0]) != 6 {
		t.Errorf("unexpected size %dx%d", c.Width, c.Height)
	}
	if c.Lit() != 0 {
		t.Error("resize should clear")
	}
	if w, h := c.SubSize(); w != 12 || h != 12 {
		t.Errorf("expected 12x12 dots, got %dx%d", w, h)
	}
}

func TestCellHex(t *testing.T) {
	if cellHex(tint{}) != "" {
		t.Error("empty cell should have no color")
	}
	got := cellHex(tint{r: 2, n: 2})
	if got != "#ff0000" {
		t.Errorf("expected #ff0000, got %s", got)
	}
}

func TestCanvasColored(t *testing.T) {
	c := NewCanvas(3, 2)
	c.Plot(0, 0, shape.Color{R: 1})
	c.Plot(2, 0, shape.Color{R: 1})
	c.Plot(4, 4, shape.Color{B: 1})

	out := c.Colored()
	if got := strings.Count(out, "\n"); got != 2 {
		t.Errorf("expected 2 lines, got %d", got)
	}
	for _, r := range []rune{0x2801} {
		if !strings.ContainsRune(out, r) {
			t.Errorf("missing %U in output", r)
		}
	}
}
