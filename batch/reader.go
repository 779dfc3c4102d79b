// Package batch reads DTMF job lists and runs them through the synthesizer.
//
// A list is a text file with one job per line:
//
//	filename, sequence, tone_duration, silence_duration
//
// Blank lines and lines starting with # are ignored. Fields are trimmed and anything after the
// fourth field is ignored, so a sequence in a list cannot contain commas.
package batch

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const minFields = 4

var (
	ErrTooFewFields = errors.New("too few fields")
	ErrBadDuration  = errors.New("invalid duration")
)

// Job is one line of a list file.
type Job struct {
	Line            int
	Path            string
	Sequence        string
	ToneDuration    float64
	SilenceDuration float64
}

// LineError is returned by Reader.Read for a line that could not be parsed. Reading can continue
// after it.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Reader reads jobs from a list.
type Reader struct {
	s    *bufio.Scanner
	line int
}

func NewReader(r io.Reader) *Reader {
	return &Reader{s: bufio.NewScanner(r)}
}

// Read returns the next job. It returns a *LineError for a malformed line and io.EOF once the
// input is exhausted.
func (r *Reader) Read() (Job, error) {
	for r.s.Scan() {
		r.line++
		text := strings.TrimSpace(r.s.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		return parseLine(r.line, text)
	}
	if err := r.s.Err(); err != nil {
		return Job{}, errors.Wrap(err, "read list")
	}
	return Job{}, io.EOF
}

func parseLine(line int, text string) (Job, error) {
	parts := strings.Split(text, ",")
	if len(parts) < minFields {
		return Job{}, &LineError{Line: line, Text: text, Err: ErrTooFewFields}
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	tone, err := parseDuration(parts[2])
	if err != nil {
		return Job{}, &LineError{Line: line, Text: text, Err: err}
	}
	silence, err := parseDuration(parts[3])
	if err != nil {
		return Job{}, &LineError{Line: line, Text: text, Err: err}
	}

	// Fields past the fourth are ignored.
	return Job{
		Line:            line,
		Path:            parts[0],
		Sequence:        parts[1],
		ToneDuration:    tone,
		SilenceDuration: silence,
	}, nil
}

func parseDuration(field string) (float64, error) {
	v, err := strconv.ParseFloat(field, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Wrapf(ErrBadDuration, "%q", field)
	}
	return v, nil
}
