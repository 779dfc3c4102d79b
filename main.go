package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Alextopher/dtmfgen/batch"
	"github.com/Alextopher/dtmfgen/config"
	"github.com/Alextopher/dtmfgen/dtmf"
	"github.com/Alextopher/dtmfgen/logging"
	"github.com/dimiro1/banner"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const version = "1.1.0"

const usage = "Usage: dtmfgen -d SEQUENCE [-o OUTPUT] [-t TONE_DUR] [-s SILENCE_DUR] [--list FILE] [--overwrite]"

const bannerTemplate = `{{ .Title "DTMFGEN" "" 0 }}
`

const description = `
DTMF (Touch-Tone) WAV Generator
------------------------------------------------
Generates telephony dialing tones for digits 0-9, *, #, and A-D.

Batch processing with --list:
  The input file should be a CSV-formatted text file:
  filename, NUMBER, tone_duration, silence_duration
  Example: dial1.wav, 12345, 0.2, 0.1

Manual usage examples:
  1. Generate tones for 123 (default durations):
     dtmfgen -d 1,2,3 -o dialed.wav

  2. Custom timing and overwrite:
     dtmfgen -d 060123456 -t 0.5 -s 0.2 --overwrite

Options:
`

// ErrNoWork is reported when neither a sequence nor a list file was given.
var ErrNoWork = errors.New("no sequence or list given")

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := config.NewFlagSet("dtmfgen")
	fs.SetOutput(stderr)

	cfg, err := config.Load(fs, args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintln(stderr, usage)
		return 2
	}

	switch {
	case cfg.Help:
		banner.Init(stdout, true, false, bytes.NewBufferString(bannerTemplate))
		fmt.Fprintf(stdout, "DTMF Generator v%s\n", version)
		fmt.Fprint(stdout, description)
		fmt.Fprint(stdout, fs.FlagUsages())
		return 0
	case cfg.ShortHelp:
		fmt.Fprintf(stdout, "DTMF Generator v%s\n", version)
		fmt.Fprintln(stdout, usage)
		return 0
	case cfg.Version:
		fmt.Fprintln(stdout, version)
		return 0
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case cfg.List != "":
		return runList(ctx, cfg, stdout, logging.Component(logger, "batch"))
	case cfg.Dial != "":
		return runSingle(cfg, stdin, stdout, logging.Component(logger, "dial"))
	default:
		fmt.Fprintln(stdout, "Error: You must provide -d/--dial sequence or a --list file.")
		fmt.Fprintln(stdout, usage)
		logger.Debug("nothing to do", zap.Error(ErrNoWork))
		return 2
	}
}

func runList(ctx context.Context, cfg *config.Config, stdout io.Writer, logger *zap.Logger) int {
	r := &batch.Runner{
		SampleRate: cfg.Freq,
		Amplitude:  cfg.Amplitude,
		Overwrite:  cfg.Overwrite,
		Workers:    cfg.Jobs,
		Out:        stdout,
		Logger:     logger,
	}

	if _, err := r.Run(ctx, cfg.List); err != nil {
		if errors.Is(err, batch.ErrListNotFound) {
			fmt.Fprintf(stdout, "Error: List file '%s' not found.\n", cfg.List)
			return 1
		}
		if errors.Is(err, context.Canceled) {
			logger.Warn("interrupted")
			return 130
		}
		logger.Error("list failed", zap.Error(err))
		return 1
	}
	return 0
}

func runSingle(cfg *config.Config, stdin io.Reader, stdout io.Writer, logger *zap.Logger) int {
	if !cfg.Overwrite {
		if _, err := os.Stat(cfg.Output); err == nil && !confirm(stdin, stdout, cfg.Output) {
			fmt.Fprintln(stdout, "Operation cancelled.")
			return 0
		}
	}

	res, err := dtmf.Synthesize(cfg.Output, cfg.Dial, cfg.Params(), true)
	if err != nil {
		fmt.Fprintf(stdout, "Error generating %s: %v\n", cfg.Output, err)
		logger.Error("generation failed", zap.String("path", cfg.Output), zap.Error(err))
		return 1
	}

	fmt.Fprintln(stdout, res.String())
	logger.Debug("generated",
		zap.String("path", res.Path),
		zap.Int("samples", res.Samples),
		zap.Duration("elapsed", res.Elapsed))
	return 0
}

// confirm asks before replacing path. Only "y" (any case) accepts.
func confirm(stdin io.Reader, stdout io.Writer, path string) bool {
	fmt.Fprintf(stdout, "File '%s' already exists. Overwrite? [y/N]: ", path)

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(stdout)
		return false
	}
	return strings.ToLower(strings.TrimSpace(line)) == "y"
}
