package generators

import (
	"github.com/faiface/beep"
)

type dualGenerator struct {
	low  *sineGenerator
	high *sineGenerator
	s    int
}

// DualTone creates a streamer which will produce an infinite dual-tone signal, the average
// of two unit sine waves. The result never leaves [-1, 1].
func DualTone(sr beep.SampleRate, low, high float64) (beep.Streamer, error) {
	lo, err := newSine(sr, low)
	if err != nil {
		return nil, err
	}
	hi, err := newSine(sr, high)
	if err != nil {
		return nil, err
	}

	return &dualGenerator{low: lo, high: hi}, nil
}

func (g *dualGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		v := (g.low.at(g.s) + g.high.at(g.s)) / 2
		samples[i][0] = v
		samples[i][1] = v
		g.s++
	}

	return len(samples), true
}

func (*dualGenerator) Err() error {
	return nil
}
