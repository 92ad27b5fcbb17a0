package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of the first half of the DFT of data
// after removing its mean. Bin i corresponds to i/len(data) cycles per tick.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}

	spec := fft.FFTReal(centered)
	ps := make([]float64, len(spec)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// DominantPeriod returns the period in ticks of the strongest non-DC bin and
// its magnitude. A flat series yields (0, 0).
func DominantPeriod(data []float64) (float64, float64) {
	ps := PowerSpectrum(data)
	best, idx := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > best {
			best, idx = ps[i], i
		}
	}
	if idx == 0 || best < 1e-12 {
		return 0, 0
	}
	return float64(len(data)) / float64(idx), best
}

// Response describes the linear recurrence
//
//	v' = d·(v + k·(target − p)),  p' = p + v'
//
// per axis. Its eigenvalues have modulus sqrt(d).
type Response struct {
	Underdamped bool
	// Period in ticks of the oscillation, zero when not underdamped.
	Period float64
	// Decay is the per-tick factor applied to the slowest mode.
	Decay float64
}

func SpringResponse(stiffness, damping float64) Response {
	trace := 1 - damping*stiffness + damping
	disc := trace*trace - 4*damping
	if disc >= 0 {
		// real eigenvalues, the larger one dominates
		return Response{Decay: (trace + math.Sqrt(disc)) / 2}
	}
	r := math.Sqrt(damping)
	theta := math.Acos(trace / (2 * r))
	return Response{Underdamped: true, Period: 2 * math.Pi / theta, Decay: r}
}
