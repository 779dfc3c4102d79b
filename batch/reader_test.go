package batch

import (
	"io"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestReader(t *testing.T) {
	input := `# dial list
dial1.wav, 12345, 0.2, 0.1

  dial2.wav ,060123456,0.5,0.2
   # indented comment
bad.wav, 123
nan.wav, 123, fast, 0.1
neg.wav, 123, 0.2, -0.1
extra.wav, 123, 0.2, 0.1, note
split.wav, 1,2,3, 0.25, 0.05
`

	r := NewReader(strings.NewReader(input))

	job, err := r.Read()
	if err != nil {
		t.Fatal(err)
	}
	want := Job{Line: 2, Path: "dial1.wav", Sequence: "12345", ToneDuration: 0.2, SilenceDuration: 0.1}
	if job != want {
		t.Errorf("expected %+v, got %+v", want, job)
	}

	job, err = r.Read()
	if err != nil {
		t.Fatal(err)
	}
	want = Job{Line: 4, Path: "dial2.wav", Sequence: "060123456", ToneDuration: 0.5, SilenceDuration: 0.2}
	if job != want {
		t.Errorf("expected %+v, got %+v", want, job)
	}

	expectLineError(t, r, 6, ErrTooFewFields)
	expectLineError(t, r, 7, ErrBadDuration)
	expectLineError(t, r, 8, ErrBadDuration)

	job, err = r.Read()
	if err != nil {
		t.Fatal(err)
	}
	want = Job{Line: 9, Path: "extra.wav", Sequence: "123", ToneDuration: 0.2, SilenceDuration: 0.1}
	if job != want {
		t.Errorf("expected %+v, got %+v", want, job)
	}

	// only the first four fields count, even when the sequence was written with commas
	job, err = r.Read()
	if err != nil {
		t.Fatal(err)
	}
	want = Job{Line: 10, Path: "split.wav", Sequence: "1", ToneDuration: 2, SilenceDuration: 3}
	if job != want {
		t.Errorf("expected %+v, got %+v", want, job)
	}

	if _, err := r.Read(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func expectLineError(t *testing.T, r *Reader, line int, target error) {
	t.Helper()

	_, err := r.Read()
	var le *LineError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LineError, got %v", err)
	}
	if le.Line != line {
		t.Errorf("expected line %d, got %d", line, le.Line)
	}
	if !errors.Is(err, target) {
		t.Errorf("line %d: expected %v, got %v", line, target, err)
	}
}

func TestReaderEmpty(t *testing.T) {
	r := NewReader(strings.NewReader("\n\n# nothing here\n"))
	if _, err := r.Read(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestReaderWindowsLineEndings(t *testing.T) {
	r := NewReader(strings.NewReader("a.wav, 1, 0.2, 0.1\r\nb.wav, 2, 0.2, 0.1\r\n"))
	for _, path := range []string{"a.wav", "b.wav"} {
		job, err := r.Read()
		if err != nil {
			t.Fatal(err)
		}
		if job.Path != path || job.SilenceDuration != 0.1 {
			t.Errorf("unexpected job %+v", job)
		}
	}
}

func TestLineErrorMessage(t *testing.T) {
	err := &LineError{Line: 3, Text: "x.wav, 1", Err: ErrTooFewFields}
	if got := err.Error(); got != `line 3: too few fields: "x.wav, 1"` {
		t.Errorf("unexpected message %q", got)
	}
}
