package shape

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Category tags which palette entry a particle was assigned.
type Category uint8

const (
	Base Category = iota
	Accent
)

func (c Category) String() string {
	if c == Accent {
		return "accent"
	}
	return "base"
}

// Color is a linear-light RGB triple. Components are not gamma encoded.
type Color struct {
	R, G, B  float64
	Category Category
}

// SRGB re-encodes the linear color for display surfaces that expect sRGB.
func (c Color) SRGB() colorful.Color {
	return colorful.LinearRgb(c.R, c.G, c.B).Clamped()
}

const (
	DefaultBaseHex   = "#0b6623"
	DefaultAccentHex = "#ffd700"
)

type Palette struct {
	Base   Color
	Accent Color
}

func DefaultPalette() Palette {
	p, err := ParsePalette(DefaultBaseHex, DefaultAccentHex)
	if err != nil {
		panic(err)
	}
	return p
}

// ParsePalette reads two sRGB hex colors and linearizes them.
func ParsePalette(baseHex, accentHex string) (Palette, error) {
	base, err := linearFromHex(baseHex, Base)
	if err != nil {
		return Palette{}, fmt.Errorf("base color: %w", err)
	}
	accent, err := linearFromHex(accentHex, Accent)
	if err != nil {
		return Palette{}, fmt.Errorf("accent color: %w", err)
	}
	return Palette{Base: base, Accent: accent}, nil
}

func linearFromHex(hex string, cat Category) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, err
	}
	r, g, b := c.LinearRgb()
	return Color{R: r, G: g, B: b, Category: cat}, nil
}
