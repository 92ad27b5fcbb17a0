// Package metrics summarizes a particle swarm after each tick. Metrics read
// the store through particle.View and never mutate it.
package metrics

import "github.com/san-kum/swarmform/internal/particle"

type Metric interface {
	Name() string
	Observe(v particle.View)
	Value() float64
	Reset()
}

// Defaults returns the metrics recorded for every headless run, in column
// order.
func Defaults() []Metric {
	return []Metric{
		NewKineticEnergy(),
		NewTargetDistance(),
		NewSpin(),
		NewSettled(DefaultSettleRadius),
		NewOrientationDrift(),
	}
}

// each visits every particle of v, skipping indices that fail to read.
func each(v particle.View, fn func(p particle.Particle)) int {
	n := 0
	for i := 0; i < v.Len(); i++ {
		p, err := v.Particle(i)
		if err != nil {
			continue
		}
		fn(p)
		n++
	}
	return n
}
