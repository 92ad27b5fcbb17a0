package analysis

import (
	"math"
	"testing"
)

// recurrence generates the displacement of one axis released from rest.
func recurrence(stiffness, damping float64, n int) []float64 {
	p, v := 1.0, 0.0
	out := make([]float64, n)
	for i := range out {
		v = damping * (v + stiffness*(0-p))
		p += v
		out[i] = p
	}
	return out
}

func TestSpringResponse(t *testing.T) {
	tests := []struct {
		name        string
		k, d        float64
		underdamped bool
		period      float64
	}{
		{"defaults", 0.08, 0.92, true, 22.87},
		{"light damping", 0.08, 0.99, true, 22.20},
		{"stiff overdamped", 0.9, 0.05, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := SpringResponse(tt.k, tt.d)
			if r.Underdamped != tt.underdamped {
				t.Fatalf("underdamped = %v, want %v", r.Underdamped, tt.underdamped)
			}
			if math.Abs(r.Period-tt.period) > 0.05 {
				t.Errorf("period = %.3f, want %.2f", r.Period, tt.period)
			}
			if r.Decay <= 0 || r.Decay >= 1 {
				t.Errorf("decay %f should be in (0, 1)", r.Decay)
			}
		})
	}
}

func TestSpringResponseMatchesRecurrence(t *testing.T) {
	r := SpringResponse(0.08, 0.92)
	series := recurrence(0.08, 0.92, 200)

	peak := func(from, to int) float64 {
		m := 0.0
		for _, v := range series[from:to] {
			m = math.Max(m, math.Abs(v))
		}
		return m
	}

	// the envelope shrinks by Decay^Period every period
	p := int(math.Round(r.Period))
	ratio := peak(40+p, 40+2*p) / peak(40, 40+p)
	want := math.Pow(r.Decay, float64(p))
	if math.Abs(ratio-want)/want > 0.1 {
		t.Errorf("envelope ratio %f, predicted %f", ratio, want)
	}
}

func TestDominantPeriod(t *testing.T) {
	series := recurrence(0.08, 0.99, 512)
	want := SpringResponse(0.08, 0.99).Period

	got, mag := DominantPeriod(series)
	if mag <= 0 {
		t.Fatal("expected a peak")
	}
	if math.Abs(got-want)/want > 0.05 {
		t.Errorf("dominant period %.2f, predicted %.2f", got, want)
	}
}

func TestDominantPeriod_Flat(t *testing.T) {
	got, mag := DominantPeriod([]float64{3, 3, 3, 3, 3, 3, 3, 3})
	if got != 0 || mag != 0 {
		t.Errorf("flat series gave period %f magnitude %f", got, mag)
	}
	if PowerSpectrum([]float64{1}) != nil {
		t.Error("expected nil spectrum for a single sample")
	}
}

func TestSettleTime(t *testing.T) {
	series := []float64{0, 0.2, 0.96, 0.9, 0.97, 0.99, 1}
	tests := []struct {
		name      string
		from      int
		threshold float64
		want      int
		ok        bool
	}{
		{"dip resets", 0, 0.95, 4, true},
		{"from offset", 2, 0.95, 2, true},
		{"never", 0, 1.5, 0, false},
		{"out of range", 9, 0.5, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SettleTime(series, tt.from, tt.threshold)
			if got != tt.want || ok != tt.ok {
				t.Errorf("got (%d, %v), want (%d, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}
