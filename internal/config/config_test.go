package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func summaryFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("summary", pflag.ContinueOnError)
	flags.String("in", "", "")
	flags.String("out", "logs.csv", "")
	flags.String("events-out", "", "")
	flags.Bool("track-transfers", true, "")
	flags.StringSlice("burn-account", []string{"0x00000"}, "")
	flags.String("log-level", "info", "")
	return flags
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", summaryFlags(), []string{"node.log"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Input != "node.log" || cfg.Out != "logs.csv" {
		t.Fatalf("paths mismatch: %+v", cfg)
	}
	if !cfg.TrackTransfers {
		t.Fatalf("transfers should be tracked by default")
	}
	if !reflect.DeepEqual(cfg.BurnAccounts, []string{"0x00000"}) {
		t.Fatalf("burn accounts mismatch: %v", cfg.BurnAccounts)
	}
	if cfg.BatchSize != 1000 || cfg.RetryBackoff != 500*time.Millisecond {
		t.Fatalf("defaults mismatch: %+v", cfg)
	}
}

func TestLoadPositionalOutput(t *testing.T) {
	cfg, err := Load("", summaryFlags(), []string{"node.log", "out/summary.csv"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Out != "out/summary.csv" {
		t.Fatalf("out mismatch: %s", cfg.Out)
	}
}

func TestLoadTooManyArgs(t *testing.T) {
	if _, err := Load("", summaryFlags(), []string{"a", "b", "c"}); err == nil {
		t.Fatalf("expected error for extra arguments")
	}
}

func TestLoadFlagOverridesEnv(t *testing.T) {
	t.Setenv("REWARDS_LOG_LEVEL", "debug")
	t.Setenv("REWARDS_BURN_ACCOUNT", "0x0, 0x00000")

	flags := summaryFlags()
	if err := flags.Parse([]string{"--log-level=warn", "--track-transfers=false"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load("", flags, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("flag should win over env: %s", cfg.LogLevel)
	}
	if cfg.TrackTransfers {
		t.Fatalf("track-transfers flag ignored")
	}
	if !reflect.DeepEqual(cfg.BurnAccounts, []string{"0x0", "0x00000"}) {
		t.Fatalf("env burn accounts mismatch: %v", cfg.BurnAccounts)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rewards.yaml")
	content := "in: from-file.log\nbatch-size: 50\nburn-account:\n  - 0xdead\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadEvents(path, nil, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Input != "from-file.log" || cfg.BatchSize != 50 {
		t.Fatalf("config file ignored: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.BurnAccounts, []string{"0xdead"}) {
		t.Fatalf("burn accounts mismatch: %v", cfg.BurnAccounts)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "node.log")
	if err := os.WriteFile(input, nil, 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	if err := (Common{Input: input, Out: "logs.csv"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (Common{Out: "logs.csv"}).Validate(); err == nil {
		t.Fatalf("expected error for missing input")
	}
	if err := (Common{Input: filepath.Join(dir, "nope.log"), Out: "logs.csv"}).Validate(); err == nil {
		t.Fatalf("expected error for absent input")
	}
	if err := (Common{Input: dir, Out: "logs.csv"}).Validate(); err == nil {
		t.Fatalf("expected error for directory input")
	}
}

func TestLoadDotEnvMissingIsFine(t *testing.T) {
	if err := loadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("REWARDS_DOTENV_PROBE=yes\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("REWARDS_DOTENV_PROBE") })

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if os.Getenv("REWARDS_DOTENV_PROBE") != "yes" {
		t.Fatalf(".env value not loaded")
	}
}
