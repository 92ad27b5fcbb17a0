package viz

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	near       = 0.1
	maxPitch   = 1.45
	viewExtent = 30.0
)

// Camera orbits the origin and projects world points onto a dot grid.
type Camera struct {
	Yaw, Pitch float64
	Distance   float64
	Zoom       float64
}

func NewCamera() *Camera {
	return &Camera{Pitch: 0.25, Distance: 60, Zoom: 1}
}

func (c *Camera) Orbit(dYaw, dPitch float64) {
	c.Yaw = math.Mod(c.Yaw+dYaw, 2*math.Pi)
	c.Pitch = math.Max(-maxPitch, math.Min(maxPitch, c.Pitch+dPitch))
}

func (c *Camera) Rotation() mgl64.Mat3 {
	return mgl64.Rotate3DX(c.Pitch).Mul3(mgl64.Rotate3DY(c.Yaw))
}

// Project converts world coordinates to dot coordinates on an sw x sh grid.
// Returns x, y, depth, and visibility.
func (c *Camera) Project(p mgl64.Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.Rotation().Mul3x1(p).Mul(c.Zoom)
	if rot.Z() >= c.Distance-near {
		return 0, 0, 0, false
	}
	scale := c.Distance / (c.Distance - rot.Z())
	pScale := float64(min(sw, sh)) / (2 * viewExtent)
	// braille dots are twice as tall as they are wide
	sx := int(math.Round(rot.X()*scale*pScale*2)) + sw/2
	sy := int(math.Round(-rot.Y()*scale*pScale)) + sh/2
	return sx, sy, rot.Z(), sx >= 0 && sx < sw && sy >= 0 && sy < sh
}
