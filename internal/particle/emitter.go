package particle

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/swarmform/internal/shape"
)

// Transform is what a renderer needs to place one particle instance.
type Transform struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Scale       float64
	Color       shape.Color
}

// Frame is a consistent post-tick view of the whole swarm.
type Frame struct {
	Tick       uint64
	State      State
	Transforms []Transform
}

// Sink consumes frames. Implementations must not retain Transforms past the
// call; the slice is reused for the next frame.
type Sink interface {
	Render(frame Frame) error
}

// Emitter maps the store to transforms. Scale is global and depends only on
// the current state.
type Emitter struct {
	FormedScale    float64
	ScatteredScale float64
}

func (e Emitter) Scale(state State) float64 {
	if state == Scattered {
		return e.ScatteredScale
	}
	return e.FormedScale
}

// Emit fills dst (grown if needed) with one transform per particle.
func (e Emitter) Emit(s *Store, state State, dst []Transform) []Transform {
	n := s.Len()
	if cap(dst) < n {
		dst = make([]Transform, n)
	}
	dst = dst[:n]
	scale := e.Scale(state)
	for i := 0; i < n; i++ {
		dst[i] = Transform{
			Position:    s.pos[i],
			Orientation: s.orient[i],
			Scale:       scale,
			Color:       s.colors[i],
		}
	}
	return dst
}
