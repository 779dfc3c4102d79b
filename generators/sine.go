package generators

import (
	"math"

	"github.com/faiface/beep"
	"github.com/pkg/errors"
)

type sineGenerator struct {
	sr   float64
	freq float64
	s    int
}

// SineTone creates a streamer which will produce an infinite sine wave with the given frequency.
// The time of every sample is computed from its index, so two streamers built with the same
// arguments produce identical samples.
func SineTone(sr beep.SampleRate, freq float64) (beep.Streamer, error) {
	g, err := newSine(sr, freq)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func newSine(sr beep.SampleRate, freq float64) (*sineGenerator, error) {
	if sr <= 0 {
		return nil, errors.Errorf("sine tone generator: invalid sample rate %d", sr)
	}
	if freq < 0 || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return nil, errors.Errorf("sine tone generator: invalid frequency %v", freq)
	}

	return &sineGenerator{sr: float64(sr), freq: freq}, nil
}

// at returns the value of sample s.
func (g *sineGenerator) at(s int) float64 {
	t := float64(s) / g.sr
	return math.Sin(2 * math.Pi * g.freq * t)
}

func (g *sineGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		v := g.at(g.s)
		samples[i][0] = v
		samples[i][1] = v
		g.s++
	}

	return len(samples), true
}

func (*sineGenerator) Err() error {
	return nil
}
