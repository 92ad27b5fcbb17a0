package gui

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/swarmform/internal/particle"
)

func vec3(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X()), float32(v.Y()), float32(v.Z()))
}

// axisAngle converts a unit quaternion to the axis and angle in degrees that
// DrawModelEx expects. Near-identity rotations use the X axis.
func axisAngle(w float64, v mgl64.Vec3) (rl.Vector3, float32) {
	w = math.Max(-1, math.Min(1, w))
	s := math.Sqrt(1 - w*w)
	if s < 1e-6 {
		return rl.NewVector3(1, 0, 0), 0
	}
	angle := 2 * math.Acos(w) * 180 / math.Pi
	return vec3(v.Mul(1 / s)), float32(angle)
}

func tint(t particle.Transform) rl.Color {
	r, g, b := t.Color.SRGB().RGB255()
	return rl.NewColor(r, g, b, 255)
}
