package dtmf

import (
	"math"
	"time"

	"github.com/pkg/errors"
)

const (
	DefaultToneDuration    = 0.2
	DefaultSilenceDuration = 0.1
	DefaultSampleRate      = 44100

	// MaxAmplitude is the largest positive value of a 16-bit PCM sample.
	MaxAmplitude = math.MaxInt16
)

// ErrInvalidParams is returned for parameters no waveform can be built from.
var ErrInvalidParams = errors.New("invalid synthesis parameters")

// Params are the timing and level settings of one generation.
type Params struct {
	ToneDuration    float64 // seconds
	SilenceDuration float64 // seconds
	SampleRate      int     // Hz
	Amplitude       int     // sample ceiling, 1..MaxAmplitude
}

// DefaultParams returns 0.2 s tones, 0.1 s gaps at 44100 Hz and full-scale amplitude.
func DefaultParams() Params {
	return Params{
		ToneDuration:    DefaultToneDuration,
		SilenceDuration: DefaultSilenceDuration,
		SampleRate:      DefaultSampleRate,
		Amplitude:       MaxAmplitude,
	}
}

// Validate reports whether p can be rendered. Zero durations are legal and produce empty segments.
func (p Params) Validate() error {
	if err := validDuration("tone duration", p.ToneDuration); err != nil {
		return err
	}
	if err := validDuration("silence duration", p.SilenceDuration); err != nil {
		return err
	}
	if p.SampleRate <= 0 {
		return errors.Wrapf(ErrInvalidParams, "sample rate %d", p.SampleRate)
	}
	if p.Amplitude < 1 || p.Amplitude > MaxAmplitude {
		return errors.Wrapf(ErrInvalidParams, "amplitude %d outside 1..%d", p.Amplitude, MaxAmplitude)
	}
	return nil
}

func validDuration(name string, d float64) error {
	if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return errors.Wrapf(ErrInvalidParams, "%s %v", name, d)
	}
	return nil
}

// SampleCount is the number of samples covering seconds at rate, rounded to the nearest sample.
func SampleCount(seconds float64, rate int) int {
	return int(math.Round(seconds * float64(rate)))
}

func (p Params) toneSamples() int {
	return SampleCount(p.ToneDuration, p.SampleRate)
}

func (p Params) silenceSamples() int {
	return SampleCount(p.SilenceDuration, p.SampleRate)
}

// seconds converts a duration in seconds to a time.Duration.
func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
