package dtmf

import (
	"io"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
)

const (
	// wavHeaderSize is the size of the canonical RIFF/WAVE header: RIFF, fmt and data chunk headers.
	wavHeaderSize = 44

	bytesPerSample = 2
)

// Format is the container format of every file this package writes: mono, 16-bit signed PCM.
func Format(rate int) beep.Format {
	return beep.Format{
		SampleRate:  beep.SampleRate(rate),
		NumChannels: 1,
		Precision:   bytesPerSample,
	}
}

// EncodedSize is the byte size of b once encoded.
func EncodedSize(b Buffer) int64 {
	return wavHeaderSize + int64(len(b))*bytesPerSample
}

// Encode writes b to w as an uncompressed WAV file at rate. The header lengths are patched once the
// samples are written, which is why w has to seek.
//
// Samples are written exactly except math.MinInt16, which is stored as -MaxAmplitude. Render never
// produces it.
func Encode(w io.WriteSeeker, b Buffer, rate int) error {
	if rate <= 0 {
		return errors.Wrapf(ErrInvalidParams, "sample rate %d", rate)
	}
	if err := wav.Encode(w, b.Streamer(), Format(rate)); err != nil {
		return errors.Wrap(err, "encode wav")
	}
	return nil
}
