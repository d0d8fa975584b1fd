package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	json "github.com/goccy/go-json"
)

const (
	// Default values
	defaultSubject     = "spark.heads"
	defaultDialTimeout = 5 * time.Second
	defaultLogLevel    = "info"
)

// Config holds the CLI configuration. Every field can come from the JSON
// file given with -config; flags set on the command line win.
type Config struct {
	In          string   `json:"in"`          // Manifest source, "-" for stdin
	Out         string   `json:"out"`         // Output file, "-" for stdout
	Dial        string   `json:"dial"`        // TCP address to write heads to
	NATSURL     string   `json:"nats"`        // NATS server to publish heads to
	Subject     string   `json:"subject"`     // NATS subject
	Pipe        bool     `json:"pipe"`        // Keep going past invalid manifests
	Atomic      bool     `json:"atomic"`      // Buffer each head, forward only when valid
	RequestID   bool     `json:"requestId"`   // Add X-Request-Id to every message
	MetricsAddr string   `json:"metricsAddr"` // Serve /metrics here while running
	LogLevel    string   `json:"logLevel"`    // debug, info, warn or error
	DialTimeout Duration `json:"dialTimeout"` // For -dial and -nats
}

// Duration is a time.Duration written as a string ("5s") in JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return d.Set(s)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d Duration) String() string { return time.Duration(d).String() }

// Set implements flag.Value.
func (d *Duration) Set(s string) error {
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Config errors
var (
	errTwoDestinations = errors.New("only one of -out, -dial and -nats may be used")
	errNoSubject       = errors.New("-nats needs a -subject")
	errBadTimeout      = errors.New("-dial-timeout must be positive")
)

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		In:          "-",
		Out:         "-",
		Subject:     defaultSubject,
		Atomic:      true,
		LogLevel:    defaultLogLevel,
		DialTimeout: Duration(defaultDialTimeout),
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	destinations := 0
	if c.Out != "-" && c.Out != "" {
		destinations++
	}
	if c.Dial != "" {
		destinations++
	}
	if c.NATSURL != "" {
		destinations++
	}
	if destinations > 1 {
		return errTwoDestinations
	}
	if c.NATSURL != "" && c.Subject == "" {
		return errNoSubject
	}
	if c.DialTimeout <= 0 {
		return errBadTimeout
	}
	if _, err := c.level(); err != nil {
		return err
	}
	return nil
}

func (c *Config) level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

func bindFlags(fs *flag.FlagSet, c *Config) {
	fs.StringVar(&c.In, "in", c.In, "Manifest file to read (- for stdin)")
	fs.StringVar(&c.Out, "out", c.Out, "File to write heads to (- for stdout)")
	fs.StringVar(&c.Dial, "dial", c.Dial, "TCP address to write heads to")
	fs.StringVar(&c.NATSURL, "nats", c.NATSURL, "NATS server URL to publish heads to")
	fs.StringVar(&c.Subject, "subject", c.Subject, "NATS subject")
	fs.BoolVar(&c.Pipe, "pipe", c.Pipe, "Read newline-delimited manifests and skip invalid ones")
	fs.BoolVar(&c.Atomic, "atomic", c.Atomic, "Buffer each head and forward it only when valid")
	fs.BoolVar(&c.RequestID, "request-id", c.RequestID, "Add an X-Request-Id header to every message")
	fs.StringVar(&c.MetricsAddr, "metrics-addr", c.MetricsAddr, "Serve Prometheus metrics on this address")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level (debug, info, warn, error)")
	fs.Var(&c.DialTimeout, "dial-timeout", "Timeout for -dial and -nats (e.g. 5s)")
}

// parseFlags builds the configuration from defaults, the optional -config
// file and the command line, in that order.
func parseFlags(args []string, stderr io.Writer) (*Config, error) {
	cfg := DefaultConfig()

	fs := flag.NewFlagSet("spark", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var configPath string
	fs.StringVar(&configPath, "config", "", "JSON config file")
	bindFlags(fs, cfg)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if configPath != "" {
		file, err := loadConfig(configPath)
		if err != nil {
			return nil, err
		}

		// Replay the flags given on the command line over the file.
		over := flag.NewFlagSet("spark", flag.ContinueOnError)
		over.SetOutput(io.Discard)
		bindFlags(over, file)
		var replayErr error
		fs.Visit(func(f *flag.Flag) {
			if f.Name == "config" || replayErr != nil {
				return
			}
			replayErr = over.Set(f.Name, f.Value.String())
		})
		if replayErr != nil {
			return nil, replayErr
		}
		cfg = file
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
