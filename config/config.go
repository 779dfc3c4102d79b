// Package config merges command-line flags, DTMFGEN_* environment variables and an optional
// config file into the settings of one run.
//
// Precedence: flags > env vars > config file > defaults.
package config

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/Alextopher/dtmfgen/dtmf"
	"github.com/Alextopher/dtmfgen/logging"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// envPrefix is the prefix for all environment variables.
const envPrefix = "DTMFGEN"

// defaults
const (
	defaultOutput    = "dialed.wav"
	defaultJobs      = 1
	defaultLogLevel  = "info"
	defaultLogFormat = logging.FormatText
)

// Config holds every caller-facing parameter.
type Config struct {
	Dial      string  `mapstructure:"dial"`
	Output    string  `mapstructure:"output"`
	Tone      float64 `mapstructure:"tone"`    // seconds
	Silence   float64 `mapstructure:"silence"` // seconds
	Freq      int     `mapstructure:"freq"`    // sample rate, Hz
	Amplitude int     `mapstructure:"amplitude"`
	Overwrite bool    `mapstructure:"overwrite"`
	List      string  `mapstructure:"list"`
	Jobs      int     `mapstructure:"jobs"`
	LogLevel  string  `mapstructure:"log-level"`
	LogFormat string  `mapstructure:"log-format"`

	ConfigFile string `mapstructure:"config"`
	ShortHelp  bool   `mapstructure:"short-help"`
	Help       bool   `mapstructure:"help"`
	Version    bool   `mapstructure:"version"`
}

// NewFlagSet declares every flag with its default.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false

	fs.StringP("dial", "d", "", "sequence to dial (e.g. 1,2,3 or 060123456)")
	fs.StringP("output", "o", defaultOutput, "output filename")
	fs.StringP("tone", "t", formatSeconds(dtmf.DefaultToneDuration), "tone duration in seconds, or a duration such as 200ms")
	fs.StringP("silence", "s", formatSeconds(dtmf.DefaultSilenceDuration), "silence duration in seconds, or a duration such as 100ms")
	fs.IntP("freq", "f", dtmf.DefaultSampleRate, "sampling rate in Hz")
	fs.IntP("amplitude", "a", dtmf.MaxAmplitude, "peak sample value (1-32767)")
	fs.Bool("overwrite", false, "overwrite existing files without prompting")
	fs.StringP("list", "l", "", "path to a list file for batch generation")
	fs.IntP("jobs", "j", defaultJobs, "number of list entries generated at once")
	fs.String("config", "", "path to a config file (yaml, toml or json)")
	fs.String("log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	fs.String("log-format", defaultLogFormat, "log output format (text, json)")
	fs.BoolP("short-help", "h", false, "show short help")
	fs.Bool("help", false, "show full documentation")
	fs.BoolP("version", "v", false, "show version")

	return fs
}

// Load parses args into fs and resolves the final configuration.
func Load(fs *pflag.FlagSet, args []string) (*Config, error) {
	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(err, "parsing flags")
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, errors.Wrap(err, "binding flags")
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "read config")
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.DecodeHookFuncType(secondsHook))); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// Validate checks values that cannot be used for any run.
func (c *Config) Validate() error {
	if c.Jobs < 1 {
		return errors.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	switch strings.ToLower(c.LogFormat) {
	case logging.FormatText, logging.FormatJSON:
	default:
		return errors.Errorf("unknown log format %q", c.LogFormat)
	}
	return c.Params().Validate()
}

// Params are the synthesis parameters for single-sequence mode. List entries carry their own
// durations.
func (c *Config) Params() dtmf.Params {
	return dtmf.Params{
		ToneDuration:    c.Tone,
		SilenceDuration: c.Silence,
		SampleRate:      c.Freq,
		Amplitude:       c.Amplitude,
	}
}

// ParseSeconds accepts a plain number of seconds ("0.2") or a Go duration ("200ms").
func ParseSeconds(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.Errorf("invalid duration %q", s)
	}
	return d.Seconds(), nil
}

func secondsHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Float64 {
		return data, nil
	}
	return ParseSeconds(reflect.ValueOf(data).String())
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'g', -1, 64)
}
