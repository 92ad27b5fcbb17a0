package viz

import "github.com/san-kum/swarmform/internal/particle"

// Scene is a particle.Sink that rasterizes frames onto a braille canvas.
type Scene struct {
	Canvas *Canvas
	Camera *Camera

	Tick    uint64
	State   particle.State
	Visible int
}

func NewScene(w, h int) *Scene {
	return &Scene{Canvas: NewCanvas(w, h), Camera: NewCamera()}
}

func (s *Scene) Render(frame particle.Frame) error {
	s.Canvas.Clear()
	sw, sh := s.Canvas.SubSize()
	s.Visible = 0
	for _, t := range frame.Transforms {
		x, y, _, ok := s.Camera.Project(t.Position, sw, sh)
		if !ok {
			continue
		}
		// instances larger than a dot at the current zoom get a 2x2 block
		if t.Scale*s.Camera.Zoom >= 2 {
			s.Canvas.Plot(x+1, y, t.Color)
			s.Canvas.Plot(x, y+1, t.Color)
			s.Canvas.Plot(x+1, y+1, t.Color)
		}
		s.Canvas.Plot(x, y, t.Color)
		s.Visible++
	}
	s.Tick, s.State = frame.Tick, frame.State
	return nil
}
