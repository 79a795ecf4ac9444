package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config holds the full runtime configuration of the monitor.
type Config struct {
	// Positional arguments.
	TagKey   string        // tag key assigned to monitored instances
	Region   string        // AWS region to monitor
	Bucket   string        // S3 bucket name to store console logs
	Interval time.Duration // pause between polling cycles

	// Sink flags.
	WriteFiles bool // -f: mirror novel console logs to local files
	PrintLogs  bool // -p: mirror novel console logs to standard output
	Quiet      bool // -q: suppress informational logging

	// Hardening options, all optional. Zero values preserve the
	// original behavior (no per-call timeout, no status server).
	APITimeout time.Duration // per-call timeout for AWS API requests, 0 = none
	ListenAddr string        // status server listen address, "" = disabled
	LogLevel   string        // "debug" | "info" | "warn" | "error"
	PrettyLog  bool          // true => zap dev (color), false => zap prod (JSON)

	ShutdownTimeout time.Duration // grace period for status server shutdown
}

// settingsFile is the schema of the optional --config YAML file. It may only
// carry the non-positional options; explicit flags take precedence over it.
type settingsFile struct {
	Listen          string `yaml:"listen"`
	LogLevel        string `yaml:"log_level"`
	PrettyLog       *bool  `yaml:"pretty_log"`
	APITimeout      string `yaml:"api_timeout"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// Parse builds a Config from command line arguments (without the program
// name). It returns pflag.ErrHelp when -h/--help was requested.
func Parse(args []string) (*Config, error) {
	cfg := &Config{
		LogLevel:        "info",
		PrettyLog:       true,
		ShutdownTimeout: 5 * time.Second,
	}

	fs := pflag.NewFlagSet("consolemon", pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr,
			"usage: consolemon [flags] <tag> <region> <bucket> <interval-seconds>\n\n"+
				"Polls EC2 instances carrying the given tag key, fetches their serial\n"+
				"console output and archives any changed output to the S3 bucket.\n\n"+
				"flags:\n%s", fs.FlagUsages())
	}

	fs.BoolVarP(&cfg.WriteFiles, "file", "f", false, "write console logs to local files")
	fs.BoolVarP(&cfg.PrintLogs, "print", "p", false, "print console logs to standard output")
	fs.BoolVarP(&cfg.Quiet, "quiet", "q", false, "do not show informational logging")
	fs.DurationVar(&cfg.APITimeout, "api-timeout", 0, "timeout per AWS API call (0 = none)")
	fs.StringVar(&cfg.ListenAddr, "listen", "", "status server listen address (empty = disabled)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.BoolVar(&cfg.PrettyLog, "pretty-log", cfg.PrettyLog, "colored console logging instead of JSON")
	settingsPath := fs.String("config", "", "optional YAML file with the non-positional options")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *settingsPath != "" {
		if err := applySettingsFile(cfg, fs, *settingsPath); err != nil {
			return nil, err
		}
	}

	rest := fs.Args()
	if len(rest) != 4 {
		fs.Usage()
		return nil, fmt.Errorf("expected 4 positional arguments (tag region bucket interval), got %d", len(rest))
	}

	cfg.TagKey = rest[0]
	cfg.Region = rest[1]
	cfg.Bucket = rest[2]

	seconds, err := strconv.Atoi(rest[3])
	if err != nil {
		return nil, fmt.Errorf("invalid interval %q: %w", rest[3], err)
	}
	if seconds <= 0 {
		return nil, fmt.Errorf("interval must be positive, got %d", seconds)
	}
	cfg.Interval = time.Duration(seconds) * time.Second

	if cfg.TagKey == "" || cfg.Region == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("tag, region and bucket must not be empty")
	}
	if lvl := cfg.LogLevel; lvl != "debug" && lvl != "info" && lvl != "warn" && lvl != "error" {
		return nil, fmt.Errorf("invalid log level %q", lvl)
	}
	if cfg.APITimeout < 0 {
		return nil, fmt.Errorf("api-timeout must not be negative")
	}

	return cfg, nil
}

// EffectiveLogLevel folds the quiet flag into the configured level: quiet
// suppresses informational lines while keeping warnings and errors.
func (c *Config) EffectiveLogLevel() string {
	if c.Quiet && (c.LogLevel == "debug" || c.LogLevel == "info") {
		return "warn"
	}
	return c.LogLevel
}

// applySettingsFile loads the YAML settings file and applies its values as
// defaults. A flag set explicitly on the command line wins over the file.
func applySettingsFile(cfg *Config, fs *pflag.FlagSet, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read settings file: %w", err)
	}

	var file settingsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("cannot parse settings file %s: %w", path, err)
	}

	if file.Listen != "" && !fs.Changed("listen") {
		cfg.ListenAddr = file.Listen
	}
	if file.LogLevel != "" && !fs.Changed("log-level") {
		cfg.LogLevel = file.LogLevel
	}
	if file.PrettyLog != nil && !fs.Changed("pretty-log") {
		cfg.PrettyLog = *file.PrettyLog
	}
	if file.APITimeout != "" && !fs.Changed("api-timeout") {
		d, err := time.ParseDuration(file.APITimeout)
		if err != nil {
			return fmt.Errorf("invalid api_timeout in settings file: %w", err)
		}
		cfg.APITimeout = d
	}
	if file.ShutdownTimeout != "" {
		d, err := time.ParseDuration(file.ShutdownTimeout)
		if err != nil {
			return fmt.Errorf("invalid shutdown_timeout in settings file: %w", err)
		}
		cfg.ShutdownTimeout = d
	}

	return nil
}
