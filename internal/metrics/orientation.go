package metrics

import (
	"math"

	"github.com/san-kum/swarmform/internal/particle"
)

// OrientationDrift tracks the worst ||q| - 1| seen since the last Reset.
type OrientationDrift struct {
	name     string
	maxDrift float64
}

func NewOrientationDrift() *OrientationDrift {
	return &OrientationDrift{name: "orientation_drift"}
}

func (o *OrientationDrift) Name() string { return o.name }

func (o *OrientationDrift) Observe(v particle.View) {
	each(v, func(p particle.Particle) {
		o.maxDrift = math.Max(o.maxDrift, math.Abs(p.Orientation.Len()-1))
	})
}

func (o *OrientationDrift) Value() float64 { return o.maxDrift }
func (o *OrientationDrift) Reset()         { o.maxDrift = 0 }
