package dtmf

import (
	"math"
	"time"

	"github.com/Alextopher/dtmfgen/generators"
	"github.com/faiface/beep"
)

// Buffer is a mono sequence of signed 16-bit PCM samples.
type Buffer []int16

// Duration is the play time of the buffer at rate.
func (b Buffer) Duration(rate int) time.Duration {
	if rate <= 0 {
		return 0
	}
	return seconds(float64(len(b)) / float64(rate))
}

// Streamer plays the buffer back as a beep.Streamer. Every float it yields is the centre of the
// quantisation step of its sample, so an encoder that truncates x*MaxAmplitude recovers the
// stored integer exactly. The encoder only spans [-MaxAmplitude, MaxAmplitude], so math.MinInt16
// plays back as -MaxAmplitude.
func (b Buffer) Streamer() beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= len(b) {
			return 0, false
		}
		for i := range samples {
			if pos >= len(b) {
				break
			}
			v := stepCentre(b[pos])
			samples[i][0] = v
			samples[i][1] = v
			pos++
			n++
		}
		return n, true
	})
}

func stepCentre(q int16) float64 {
	if q < -MaxAmplitude {
		q = -MaxAmplitude
	}
	switch {
	case q > 0:
		return (float64(q) + 0.5) / MaxAmplitude
	case q < 0:
		return (float64(q) - 0.5) / MaxAmplitude
	}
	return 0
}

// Render builds the sample buffer for seq. The sequence is normalized first. Every keypad symbol
// yields a tone segment; a silence gap follows it unless the symbol sits at the last position of
// the normalized sequence. Characters that are not keypad symbols yield nothing but still count
// as positions, so an unknown trailing character keeps the gap after the last tone.
func Render(seq string, p Params) (Buffer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	symbols := []rune(Normalize(seq))
	toneN, silenceN := p.toneSamples(), p.silenceSamples()
	sr := beep.SampleRate(p.SampleRate)

	var (
		segments []beep.Streamer
		total    int
	)
	for i, symbol := range symbols {
		pair, ok := Lookup(symbol)
		if !ok {
			continue
		}

		tone, err := generators.DualTone(sr, pair.Low, pair.High)
		if err != nil {
			return nil, err
		}
		segments = append(segments, beep.Take(toneN, tone))
		total += toneN

		if i < len(symbols)-1 {
			segments = append(segments, beep.Silence(silenceN))
			total += silenceN
		}
	}

	return quantize(beep.Seq(segments...), total, p.Amplitude), nil
}

// quantize drains s into a buffer, scaling each unit sample by amplitude and truncating toward zero.
func quantize(s beep.Streamer, sizeHint, amplitude int) Buffer {
	out := make(Buffer, 0, sizeHint)
	amp := float64(amplitude)
	samples := make([][2]float64, 512)
	for {
		n, ok := s.Stream(samples)
		for _, sample := range samples[:n] {
			out = append(out, int16(clamp(amp*sample[0], amp)))
		}
		if !ok {
			break
		}
	}
	return out
}

func clamp(v, limit float64) float64 {
	return math.Max(-limit, math.Min(limit, v))
}
