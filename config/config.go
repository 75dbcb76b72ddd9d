// Package config loads cpiplot settings from defaults, an optional .env file,
// the environment and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/sartorproj/cpiplot/chart"
	"github.com/sartorproj/cpiplot/source"
	"github.com/sartorproj/cpiplot/timeseries"
)

const (
	envPrefix      = "CPIPLOT_"
	defaultEnvFile = ".env"
)

// Config holds every runtime setting.
type Config struct {
	URL         string
	UserAgent   string
	Timeout     time.Duration
	Retries     int
	SeriesID    string
	Granularity timeseries.Granularity
	LabelLayout string
	Renderer    string
	Output      string // empty opens a window
	Width       int
	Height      int
	LogLevel    slog.Level
	EnvFile     string
}

// Default returns the out-of-the-box settings: one
// untimed request to the BLS file, every series averaged, month-name labels.
func Default() Config {
	return Config{
		URL:         source.DefaultURL,
		UserAgent:   source.DefaultUserAgent,
		Granularity: timeseries.GranularityYear,
		LabelLayout: timeseries.DefaultLabelLayout,
		Renderer:    chart.RendererGonum,
		Width:       chart.DefaultSize.Width,
		Height:      chart.DefaultSize.Height,
		LogLevel:    slog.LevelInfo,
		EnvFile:     defaultEnvFile,
	}
}

// Load builds a Config from args (without the program name). The env file
// named by -env, CPIPLOT_ENV_FILE or .env is read first; variables already
// set in the process environment win over it.
func Load(args []string) (Config, error) {
	cfg := Default()

	envFile := envFileFromArgs(args)
	if envFile == "" {
		envFile = os.Getenv(envPrefix + "ENV_FILE")
	}
	if envFile == "" {
		envFile = defaultEnvFile
	}
	cfg.EnvFile = envFile
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
	}

	if err := applyEnv(&cfg, os.Getenv); err != nil {
		return Config{}, err
	}
	if err := applyFlags(&cfg, args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	get := func(key string) (string, bool) {
		v := strings.TrimSpace(getenv(envPrefix + key))
		return v, v != ""
	}

	if v, ok := get("URL"); ok {
		cfg.URL = v
	}
	if v, ok := get("USER_AGENT"); ok {
		cfg.UserAgent = v
	}
	if v, ok := get("TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sTIMEOUT: %w", envPrefix, err)
		}
		cfg.Timeout = d
	}
	if v, ok := get("RETRIES"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sRETRIES: %w", envPrefix, err)
		}
		cfg.Retries = n
	}
	if v, ok := get("SERIES_ID"); ok {
		cfg.SeriesID = v
	}
	if v, ok := get("GRANULARITY"); ok {
		g, err := timeseries.ParseGranularity(v)
		if err != nil {
			return fmt.Errorf("%sGRANULARITY: %w", envPrefix, err)
		}
		cfg.Granularity = g
	}
	if v, ok := get("LABEL_LAYOUT"); ok {
		cfg.LabelLayout = v
	}
	if v, ok := get("RENDERER"); ok {
		cfg.Renderer = v
	}
	if v, ok := get("OUTPUT"); ok {
		cfg.Output = v
	}
	if v, ok := get("WIDTH"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sWIDTH: %w", envPrefix, err)
		}
		cfg.Width = n
	}
	if v, ok := get("HEIGHT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sHEIGHT: %w", envPrefix, err)
		}
		cfg.Height = n
	}
	if v, ok := get("LOG_LEVEL"); ok {
		level, err := ParseLogLevel(v)
		if err != nil {
			return fmt.Errorf("%sLOG_LEVEL: %w", envPrefix, err)
		}
		cfg.LogLevel = level
	}
	return nil
}

func newFlagSet(cfg *Config, granularity, logLevel *string) *flag.FlagSet {
	flags := flag.NewFlagSet("cpiplot", flag.ContinueOnError)
	flags.StringVar(&cfg.URL, "url", cfg.URL, "time series document to fetch")
	flags.StringVar(&cfg.UserAgent, "user-agent", cfg.UserAgent, "User-Agent header sent with the request")
	flags.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "request timeout (0 = none)")
	flags.IntVar(&cfg.Retries, "retries", cfg.Retries, "retries after a failed request")
	flags.StringVar(&cfg.SeriesID, "series", cfg.SeriesID, "keep only rows of this series_id (empty = all)")
	flags.StringVar(granularity, "granularity", string(cfg.Granularity), "date derivation: year or period")
	flags.StringVar(&cfg.LabelLayout, "labels", cfg.LabelLayout, "Go time layout for x labels")
	flags.StringVar(&cfg.Renderer, "renderer", cfg.Renderer, "chart renderer: gonum or gochart")
	flags.StringVar(&cfg.Output, "o", cfg.Output, "write the chart to this .png or .svg file instead of opening a window")
	flags.IntVar(&cfg.Width, "width", cfg.Width, "chart width in pixels")
	flags.IntVar(&cfg.Height, "height", cfg.Height, "chart height in pixels")
	flags.StringVar(logLevel, "log-level", cfg.LogLevel.String(), "debug, info, warn or error")
	flags.StringVar(&cfg.EnvFile, "env", cfg.EnvFile, "env file to load")
	return flags
}

func applyFlags(cfg *Config, args []string) error {
	granularity := string(cfg.Granularity)
	logLevel := cfg.LogLevel.String()
	flags := newFlagSet(cfg, &granularity, &logLevel)
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", flags.Args())
	}

	g, err := timeseries.ParseGranularity(granularity)
	if err != nil {
		return fmt.Errorf("-granularity: %w", err)
	}
	cfg.Granularity = g

	level, err := ParseLogLevel(logLevel)
	if err != nil {
		return fmt.Errorf("-log-level: %w", err)
	}
	cfg.LogLevel = level
	return nil
}

// envFileFromArgs finds -env before full flag parsing, which needs the env
// file already applied.
func envFileFromArgs(args []string) string {
	for i, a := range args {
		switch {
		case a == "-env" || a == "--env":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(a, "-env="):
			return strings.TrimPrefix(a, "-env=")
		case strings.HasPrefix(a, "--env="):
			return strings.TrimPrefix(a, "--env=")
		}
	}
	return ""
}

// Validate checks settings that flag and env parsing cannot.
func (c Config) Validate() error {
	if strings.TrimSpace(c.URL) == "" {
		return errors.New("url is required")
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must be >= 0, got %d", c.Retries)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %s", c.Timeout)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("chart size must be positive, got %dx%d", c.Width, c.Height)
	}
	if _, err := chart.NewRenderer(c.Renderer); err != nil {
		return err
	}
	if _, err := timeseries.ParseGranularity(string(c.Granularity)); err != nil {
		return err
	}
	if c.Output != "" {
		if _, err := chart.FormatFromPath(c.Output); err != nil {
			return fmt.Errorf("output %s: %w", c.Output, err)
		}
	}
	return nil
}

// ParseLogLevel parses a slog level name.
func ParseLogLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unsupported level %q", raw)
	}
}
