package dtmf

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// IOError reports a failure to persist a generated file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Result describes one call to Synthesize.
type Result struct {
	Path     string
	Sequence string // normalized
	Params   Params
	Samples  int
	Elapsed  time.Duration // wall-clock time from start of rendering to the file being closed
	Size     int64         // bytes on disk
	Skipped  bool          // the file existed and overwrite was off; nothing was written
}

// String is the human readable report of a generation.
func (r *Result) String() string {
	if r.Skipped {
		return fmt.Sprintf("Skipping '%s': File exists and --overwrite is off.", r.Path)
	}
	return fmt.Sprintf("File: %s, Params: [DTMF, %s, tone: %ss, silence: %ss], GenTime: %.4fs, Size: %.2f KB",
		r.Path, r.Sequence, formatSeconds(r.Params.ToneDuration), formatSeconds(r.Params.SilenceDuration),
		r.Elapsed.Seconds(), float64(r.Size)/1024)
}

// formatSeconds prints the shortest exact decimal, keeping ".0" on whole numbers (1 -> "1.0").
func formatSeconds(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

// Synthesize renders seq and writes it to path as a WAV file.
//
// If path already exists and overwrite is false, nothing is written and the returned Result has
// Skipped set; this is not an error. Write failures are returned as *IOError and the partial file
// is removed.
func Synthesize(path, seq string, p Params, overwrite bool) (*Result, error) {
	res := &Result{Path: path, Sequence: Normalize(seq), Params: p}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			res.Skipped = true
			return res, nil
		}
	}

	start := time.Now()

	buf, err := Render(seq, p)
	if err != nil {
		return nil, err
	}
	res.Samples = len(buf)

	if err := writeFile(path, buf, p.SampleRate); err != nil {
		return nil, err
	}

	fi, err := os.Stat(path)
	if err != nil {
		return nil, &IOError{Op: "stat", Path: path, Err: err}
	}
	res.Size = fi.Size()
	res.Elapsed = time.Since(start)

	return res, nil
}

func writeFile(path string, buf Buffer, rate int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &IOError{Op: "close", Path: path, Err: cerr}
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	if err := Encode(f, buf, rate); err != nil {
		return &IOError{Op: "write", Path: path, Err: errors.Cause(err)}
	}
	return nil
}
