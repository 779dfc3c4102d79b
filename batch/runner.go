package batch

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Alextopher/dtmfgen/dtmf"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/iter"
	"go.uber.org/zap"
)

// ErrListNotFound is returned by Runner.Run when the list file does not exist.
var ErrListNotFound = errors.New("list file not found")

// Summary counts the outcome of every line of a list.
type Summary struct {
	Generated int
	Skipped   int
	Failed    int
	Malformed int
}

// Runner generates every job of a list file. Per-line problems are reported to Out and counted;
// they never stop the run.
type Runner struct {
	SampleRate int
	Amplitude  int
	Overwrite  bool

	// Workers is the number of jobs rendered at once. Values below 2 run the list sequentially.
	Workers int

	Out    io.Writer
	Logger *zap.Logger
}

type entry struct {
	job Job
	bad *LineError
}

type outcome struct {
	res *dtmf.Result
	err error

	// cancelled marks an entry that was never run because the context ended first.
	cancelled bool
}

// Run processes the list at path. Only a missing or unreadable list, or a cancelled context,
// is returned as an error.
func (r *Runner) Run(ctx context.Context, path string) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Summary{}, errors.Wrap(ErrListNotFound, path)
		}
		return Summary{}, errors.Wrap(err, "open list")
	}
	defer f.Close()

	entries, err := readEntries(f)
	if err != nil {
		return Summary{}, err
	}

	logger := r.logger().With(zap.String("run_id", uuid.NewString()), zap.String("list", path))
	logger.Debug("list loaded", zap.Int("lines", len(entries)), zap.Int("workers", r.Workers))

	var sum Summary
	if r.Workers > 1 && !sharesPath(entries) {
		err = r.runConcurrent(ctx, entries, logger, &sum)
	} else {
		err = r.runSequential(ctx, entries, logger, &sum)
	}

	logger.Info("list done",
		zap.Int("generated", sum.Generated),
		zap.Int("skipped", sum.Skipped),
		zap.Int("failed", sum.Failed),
		zap.Int("malformed", sum.Malformed),
	)
	return sum, err
}

func (r *Runner) runSequential(ctx context.Context, entries []entry, logger *zap.Logger, sum *Summary) error {
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.report(e, r.execute(e), logger, sum)
	}
	return nil
}

// runConcurrent renders jobs on a bounded set of goroutines and reports them in list order once
// all have finished.
func (r *Runner) runConcurrent(ctx context.Context, entries []entry, logger *zap.Logger, sum *Summary) error {
	mapper := iter.Mapper[entry, outcome]{MaxGoroutines: r.Workers}
	outcomes := mapper.Map(entries, func(e *entry) outcome {
		if ctx.Err() != nil {
			return outcome{cancelled: true}
		}
		return r.execute(*e)
	})

	for i, e := range entries {
		r.report(e, outcomes[i], logger, sum)
	}
	return ctx.Err()
}

func (r *Runner) execute(e entry) outcome {
	if e.bad != nil {
		return outcome{}
	}
	p := dtmf.Params{
		ToneDuration:    e.job.ToneDuration,
		SilenceDuration: e.job.SilenceDuration,
		SampleRate:      r.SampleRate,
		Amplitude:       r.Amplitude,
	}
	res, err := dtmf.Synthesize(e.job.Path, e.job.Sequence, p, r.Overwrite)
	return outcome{res: res, err: err}
}

func (r *Runner) report(e entry, o outcome, logger *zap.Logger, sum *Summary) {
	if o.cancelled {
		return
	}
	out := r.out()

	switch {
	case e.bad != nil:
		sum.Malformed++
		if errors.Is(e.bad, ErrTooFewFields) {
			fmt.Fprintf(out, "Skipping invalid line: %s\n", e.bad.Text)
		} else {
			fmt.Fprintf(out, "Error parsing line: %s\n", e.bad.Text)
		}
		logger.Warn("malformed line", zap.Int("line", e.bad.Line), zap.Error(e.bad.Err))

	case o.err != nil:
		sum.Failed++
		fmt.Fprintf(out, "Error generating %s: %v\n", e.job.Path, o.err)
		logger.Error("generation failed", zap.Int("line", e.job.Line), zap.String("path", e.job.Path), zap.Error(o.err))

	case o.res.Skipped:
		sum.Skipped++
		fmt.Fprintln(out, o.res)
		logger.Debug("file exists, skipped", zap.Int("line", e.job.Line), zap.String("path", e.job.Path))

	default:
		sum.Generated++
		fmt.Fprintln(out, o.res)
		logger.Debug("generated",
			zap.Int("line", e.job.Line),
			zap.String("path", o.res.Path),
			zap.Int("samples", o.res.Samples),
			zap.Duration("elapsed", o.res.Elapsed),
			zap.Int64("size", o.res.Size),
		)
	}
}

func readEntries(rd io.Reader) ([]entry, error) {
	var (
		entries []entry
		r       = NewReader(rd)
	)
	for {
		job, err := r.Read()
		if err == io.EOF {
			return entries, nil
		}
		var le *LineError
		switch {
		case errors.As(err, &le):
			entries = append(entries, entry{bad: le})
		case err != nil:
			return nil, err
		default:
			entries = append(entries, entry{job: job})
		}
	}
}

// sharesPath reports whether two jobs write the same file. Such lists run sequentially so the
// outcome matches a top to bottom read.
func sharesPath(entries []entry) bool {
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.bad != nil {
			continue
		}
		if seen[e.job.Path] {
			return true
		}
		seen[e.job.Path] = true
	}
	return false
}

func (r *Runner) out() io.Writer {
	if r.Out == nil {
		return io.Discard
	}
	return r.Out
}

func (r *Runner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}
