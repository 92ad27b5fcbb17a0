// Package shape generates the two static target arrangements a particle
// swarm relaxes toward, plus the per-particle color assignment.
//
//   - [Formed]: a conical spiral, wide at the base and narrowing toward the top
//   - [Scattered]: a thick spherical shell with uniform area density
//   - [Palette]: base and accent colors, stored as linear-light RGB
//
// All sampling goes through an injected *rand.Rand so that distributions are
// reproducible for a given seed:
//
//	rng := rand.New(rand.NewPCG(seed, seed))
//	set := shape.Generate(3000, rng, shape.DefaultPalette())
package shape
