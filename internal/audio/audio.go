// Package audio plays short cues when the swarm changes shape. Audio is
// optional: without a working output device every call is a no-op.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/san-kum/swarmform/internal/particle"
)

const (
	sampleRate = beep.SampleRate(48000)

	scatterDuration = 400 * time.Millisecond
	formDuration    = 300 * time.Millisecond
)

type Cues struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

func NewCues(volume float64) *Cues {
	return &Cues{mixer: &beep.Mixer{}, volume: volume}
}

// Initialize opens the speaker. A second call is a no-op.
func (c *Cues) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// OnTransition has the shape of particle.Engine.OnTransition callbacks.
func (c *Cues) OnTransition(state particle.State) {
	if state == particle.Scattered {
		c.play(scatterDuration, NewSweep(sampleRate, 660, 110, 6, c.volume))
	} else {
		c.play(formDuration, NewSweep(sampleRate, 220, 440, 10, c.volume*0.6))
	}
}

func (c *Cues) play(d time.Duration, s beep.Streamer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Add(beep.Take(sampleRate.N(d), s))
	speaker.Unlock()
}

func (c *Cues) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Clear()
	c.initialized = false
}

// Sweep is a sine glide from one frequency to another under an exponential
// decay envelope.
type Sweep struct {
	sr       beep.SampleRate
	from, to float64
	decay    float64
	volume   float64
	phase    float64
	pos      int
}

func NewSweep(sr beep.SampleRate, from, to, decay, volume float64) *Sweep {
	return &Sweep{sr: sr, from: from, to: to, decay: decay, volume: volume}
}

func (s *Sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(s.pos) / float64(s.sr)
		// glide in log space so the pitch change sounds even
		freq := s.from * math.Pow(s.to/s.from, math.Min(1, t/0.35))
		s.phase += 2 * math.Pi * freq / float64(s.sr)
		if s.phase > 2*math.Pi {
			s.phase -= 2 * math.Pi
		}

		attack := math.Min(1, t/0.005)
		sample := s.volume * attack * math.Exp(-t*s.decay) * math.Sin(s.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		s.pos++
	}
	return len(samples), true
}

func (s *Sweep) Err() error {
	return nil
}
