package particle

import (
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func newEngine(t *testing.T, count int, seed uint64) *Engine {
	t.Helper()
	p := DefaultParams()
	p.Count = count
	e, err := New(p, newRNG(seed))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

func randomVec(rng *rand.Rand, scale float64) mgl64.Vec3 {
	return mgl64.Vec3{
		(2*rng.Float64() - 1) * scale,
		(2*rng.Float64() - 1) * scale,
		(2*rng.Float64() - 1) * scale,
	}
}

func vecClose(a, b mgl64.Vec3, tol float64) bool {
	return a.Sub(b).Len() <= tol
}
