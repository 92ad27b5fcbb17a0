package particle_test

import (
	"math"
	"math/rand/v2"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/swarmform/internal/particle"
)

func particles(e *particle.Engine) []particle.Particle {
	var out []particle.Particle
	e.Inspect(func(v particle.View) {
		for i := 0; i < v.Len(); i++ {
			p, err := v.Particle(i)
			Expect(err).NotTo(HaveOccurred())
			out = append(out, p)
		}
	})
	return out
}

var _ = Describe("Engine", func() {
	var eng *particle.Engine

	BeforeEach(func() {
		p := particle.DefaultParams()
		p.Count = 3
		var err error
		eng, err = particle.New(p, rand.New(rand.NewPCG(7, 11)))
		Expect(err).NotTo(HaveOccurred())
	})

	It("starts formed, at rest, on the formed coordinates", func() {
		Expect(eng.State()).To(Equal(particle.Formed))
		for _, p := range particles(eng) {
			Expect(p.Position).To(Equal(p.Formed))
			Expect(p.Target).To(Equal(p.Formed))
			Expect(p.Velocity.Len()).To(BeZero())
			Expect(p.Orientation.Len()).To(BeNumerically("~", 1, 1e-12))
		}
	})

	When("toggled into the scattered state", func() {
		var before []particle.Particle

		BeforeEach(func() {
			before = particles(eng)
			state, err := eng.Toggle()
			Expect(err).NotTo(HaveOccurred())
			Expect(state).To(Equal(particle.Scattered))
		})

		It("targets every scattered coordinate and speeds every particle up", func() {
			for i, p := range particles(eng) {
				Expect(p.Target).To(Equal(p.Scattered))
				Expect(p.Velocity.Len()).To(BeNumerically(">", before[i].Velocity.Len()))
			}
		})

		It("reseeds spin within the impulse range", func() {
			for _, p := range particles(eng) {
				for axis := 0; axis < 3; axis++ {
					Expect(math.Abs(p.AngularVelocity[axis])).To(BeNumerically("<=", particle.DefaultSpinImpulse))
				}
			}
		})

		It("emits transforms at the scattered scale", func() {
			frame := eng.Snapshot(nil)
			Expect(frame.Transforms).To(HaveLen(3))
			for _, tr := range frame.Transforms {
				Expect(tr.Scale).To(Equal(particle.DefaultScatteredScale))
			}
		})

		It("returns targets but not velocities when toggled back", func() {
			mid := particles(eng)
			_, err := eng.Toggle()
			Expect(err).NotTo(HaveOccurred())
			for i, p := range particles(eng) {
				Expect(p.Target).To(Equal(p.Formed))
				Expect(p.Velocity).To(Equal(mid[i].Velocity))
			}
		})

		It("settles onto the shell", func() {
			for range 800 {
				Expect(eng.Step()).To(Succeed())
			}
			for _, p := range particles(eng) {
				Expect(p.Position.Sub(p.Scattered).Len()).To(BeNumerically("<", 1e-6))
				Expect(p.Position.Len()).To(BeNumerically(">=", 15-1e-6))
				Expect(p.Position.Len()).To(BeNumerically("<=", 25+1e-6))
			}
		})
	})

	It("rejects a non-positive particle count", func() {
		p := particle.DefaultParams()
		p.Count = 0
		_, err := particle.New(p, rand.New(rand.NewPCG(1, 1)))
		Expect(err).To(MatchError(particle.ErrInvalidParams))
	})
})
