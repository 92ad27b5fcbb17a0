// Package particle implements the morphing swarm physics engine.
//
// The engine owns a structure-of-arrays particle buffer and advances it one
// tick at a time with a spring-damper model:
//
//   - [Store]: per-particle kinematics plus static formed/scattered targets
//   - [Transition]: the Formed/Scattered state machine and explosion impulse
//   - [Integrator]: the per-tick position and orientation update
//   - [Emitter]: turns a post-tick store into rigid [Transform]s for a [Sink]
//   - [Engine]: the single owner of the store, serializing Step and Toggle
//
// # Example
//
//	eng, err := particle.New(particle.DefaultParams(), rand.New(rand.NewPCG(1, 2)))
//	if err != nil {
//	    return err
//	}
//	eng.Toggle()
//	for range 600 {
//	    if err := eng.Step(); err != nil {
//	        return err
//	    }
//	}
//	frame := eng.Snapshot(nil)
//
// # Thread Safety
//
// Engine methods are safe for concurrent use; Step and Toggle are mutually
// exclusive writers and Snapshot never observes a partially applied tick.
// Store, Transition and Integrator are not synchronized on their own.
package particle
