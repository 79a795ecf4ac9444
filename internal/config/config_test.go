package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParsePositionalArguments(t *testing.T) {
	cfg, err := Parse([]string{"monitored", "eu-west-1", "my-bucket", "60"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.TagKey != "monitored" {
		t.Errorf("TagKey = %q, want %q", cfg.TagKey, "monitored")
	}
	if cfg.Region != "eu-west-1" {
		t.Errorf("Region = %q, want %q", cfg.Region, "eu-west-1")
	}
	if cfg.Bucket != "my-bucket" {
		t.Errorf("Bucket = %q, want %q", cfg.Bucket, "my-bucket")
	}
	if cfg.Interval != 60*time.Second {
		t.Errorf("Interval = %v, want 60s", cfg.Interval)
	}
	if cfg.WriteFiles || cfg.PrintLogs || cfg.Quiet {
		t.Error("sink flags should default to false")
	}
	if cfg.APITimeout != 0 {
		t.Errorf("APITimeout = %v, want 0 (no timeout by default)", cfg.APITimeout)
	}
	if cfg.ListenAddr != "" {
		t.Errorf("ListenAddr = %q, want disabled by default", cfg.ListenAddr)
	}
}

func TestParseFlags(t *testing.T) {
	cfg, err := Parse([]string{
		"-f", "-p", "-q",
		"--api-timeout", "10s",
		"--listen", ":8080",
		"monitored", "eu-west-1", "my-bucket", "30",
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if !cfg.WriteFiles || !cfg.PrintLogs || !cfg.Quiet {
		t.Errorf("flags = file:%v print:%v quiet:%v, want all true",
			cfg.WriteFiles, cfg.PrintLogs, cfg.Quiet)
	}
	if cfg.APITimeout != 10*time.Second {
		t.Errorf("APITimeout = %v, want 10s", cfg.APITimeout)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{
			name: "missing positional arguments",
			args: []string{"monitored", "eu-west-1"},
		},
		{
			name: "too many positional arguments",
			args: []string{"monitored", "eu-west-1", "my-bucket", "60", "extra"},
		},
		{
			name: "non-numeric interval",
			args: []string{"monitored", "eu-west-1", "my-bucket", "soon"},
		},
		{
			name: "zero interval",
			args: []string{"monitored", "eu-west-1", "my-bucket", "0"},
		},
		{
			name: "negative interval",
			args: []string{"monitored", "eu-west-1", "my-bucket", "-5"},
		},
		{
			name: "invalid log level",
			args: []string{"--log-level", "loud", "monitored", "eu-west-1", "my-bucket", "60"},
		},
		{
			name: "unknown flag",
			args: []string{"--frobnicate", "monitored", "eu-west-1", "my-bucket", "60"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.args); err == nil {
				t.Errorf("Parse(%v) succeeded, want error", tt.args)
			}
		})
	}
}

func TestEffectiveLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		quiet bool
		want  string
	}{
		{name: "default", level: "info", quiet: false, want: "info"},
		{name: "quiet raises info to warn", level: "info", quiet: true, want: "warn"},
		{name: "quiet raises debug to warn", level: "debug", quiet: true, want: "warn"},
		{name: "quiet keeps error", level: "error", quiet: true, want: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.level, Quiet: tt.quiet}
			if got := cfg.EffectiveLogLevel(); got != tt.want {
				t.Errorf("EffectiveLogLevel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSettingsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	content := "listen: \":9090\"\nlog_level: debug\npretty_log: false\napi_timeout: 15s\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write settings file: %v", err)
	}

	cfg, err := Parse([]string{"--config", path, "monitored", "eu-west-1", "my-bucket", "60"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.ListenAddr != ":9090" {
		t.Errorf("ListenAddr = %q, want :9090 from settings file", cfg.ListenAddr)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug from settings file", cfg.LogLevel)
	}
	if cfg.PrettyLog {
		t.Error("PrettyLog = true, want false from settings file")
	}
	if cfg.APITimeout != 15*time.Second {
		t.Errorf("APITimeout = %v, want 15s from settings file", cfg.APITimeout)
	}
}

func TestFlagsOverrideSettingsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	if err := os.WriteFile(path, []byte("listen: \":9090\"\n"), 0o644); err != nil {
		t.Fatalf("failed to write settings file: %v", err)
	}

	cfg, err := Parse([]string{
		"--config", path, "--listen", ":8080",
		"monitored", "eu-west-1", "my-bucket", "60",
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, explicit flag must win over settings file", cfg.ListenAddr)
	}
}

func TestSettingsFileErrors(t *testing.T) {
	dir := t.TempDir()
	badYAML := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(badYAML, []byte("listen: [unclosed"), 0o644); err != nil {
		t.Fatalf("failed to write settings file: %v", err)
	}

	tests := []struct {
		name string
		path string
	}{
		{name: "missing file", path: filepath.Join(dir, "nope.yaml")},
		{name: "malformed yaml", path: badYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]string{"--config", tt.path, "monitored", "eu-west-1", "my-bucket", "60"})
			if err == nil {
				t.Error("Parse succeeded with a broken settings file, want error")
			}
		})
	}
}
