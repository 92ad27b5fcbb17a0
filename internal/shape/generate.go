package shape

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	SpiralTurns      = 10
	SpiralHalfHeight = 5.0
	SpiralTaper      = 0.4

	ShellInner = 15.0
	ShellOuter = 25.0

	// AccentThreshold: a uniform draw above it selects the accent color.
	AccentThreshold = 0.8
)

// Set holds the static per-particle data produced once at initialization.
type Set struct {
	Formed    []mgl64.Vec3
	Scattered []mgl64.Vec3
	Colors    []Color
}

func (s Set) Len() int { return len(s.Formed) }

// Generate samples count particles. For each particle the draws happen in a
// fixed order (formed, scattered, color) so a seed pins the whole set.
func Generate(count int, rng *rand.Rand, palette Palette) Set {
	set := Set{
		Formed:    make([]mgl64.Vec3, count),
		Scattered: make([]mgl64.Vec3, count),
		Colors:    make([]Color, count),
	}
	for i := 0; i < count; i++ {
		set.Formed[i] = Formed(rng)
		set.Scattered[i] = Scattered(rng)
		set.Colors[i] = Pick(rng, palette)
	}
	return set
}

// Formed samples one point of the conical spiral. The radius shrinks
// linearly with height and carries a uniform radial jitter.
func Formed(rng *rand.Rand) mgl64.Vec3 {
	theta := rng.Float64() * SpiralTurns * 2 * math.Pi
	y := uniform(rng, -SpiralHalfHeight, SpiralHalfHeight)
	radius := (SpiralHalfHeight - y) * SpiralTaper * rng.Float64()
	return mgl64.Vec3{radius * math.Cos(theta), y, radius * math.Sin(theta)}
}

// Scattered samples one point of the spherical shell. The polar angle comes
// from inverse-CDF sampling, naive angle sampling would cluster at the poles.
func Scattered(rng *rand.Rand) mgl64.Vec3 {
	r := uniform(rng, ShellInner, ShellOuter)
	phi := math.Acos(2*rng.Float64() - 1)
	theta := rng.Float64() * 2 * math.Pi
	sinPhi := math.Sin(phi)
	return mgl64.Vec3{
		r * sinPhi * math.Cos(theta),
		r * sinPhi * math.Sin(theta),
		r * math.Cos(phi),
	}
}

func Pick(rng *rand.Rand, palette Palette) Color {
	if rng.Float64() > AccentThreshold {
		return palette.Accent
	}
	return palette.Base
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}
