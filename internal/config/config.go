package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix     = "REWARDS"
	defaultOutput = "logs.csv"
	defaultBurn   = "0x00000"
)

// Common holds settings shared by every command.
type Common struct {
	Input        string
	Out          string
	Rejects      string
	MetricsFile  string
	PGDSN        string
	BatchSize    int
	MaxRetries   int
	RetryBackoff time.Duration
	BurnAccounts []string
	LogLevel     string
}

// Config holds configuration for the summary command.
type Config struct {
	Common
	EventsOut      string
	TrackTransfers bool
}

// Load merges config file, environment variables, flags and positional
// arguments ([input] [output]) into Config.
func Load(cfgFile string, flags *pflag.FlagSet, args []string) (Config, error) {
	v, err := newViper(cfgFile, flags, args, func(v *viper.Viper) {
		v.SetDefault("track-transfers", true)
	})
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Common:         loadCommon(v),
		EventsOut:      v.GetString("events-out"),
		TrackTransfers: v.GetBool("track-transfers"),
	}
	return cfg, nil
}

func newViper(cfgFile string, flags *pflag.FlagSet, args []string, defaults func(v *viper.Viper)) (*viper.Viper, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("out", defaultOutput)
	v.SetDefault("batch-size", 1000)
	v.SetDefault("max-retries", 3)
	v.SetDefault("retry-backoff", 500*time.Millisecond)
	v.SetDefault("burn-account", []string{defaultBurn})
	v.SetDefault("log-level", "info")
	if defaults != nil {
		defaults(v)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if len(args) > 2 {
		return nil, fmt.Errorf("expected at most 2 arguments, got %d", len(args))
	}
	if len(args) > 0 && args[0] != "" {
		v.Set("in", args[0])
	}
	if len(args) > 1 && args[1] != "" {
		v.Set("out", args[1])
	}

	return v, nil
}

func loadCommon(v *viper.Viper) Common {
	return Common{
		Input:        v.GetString("in"),
		Out:          v.GetString("out"),
		Rejects:      v.GetString("rejects"),
		MetricsFile:  v.GetString("metrics-file"),
		PGDSN:        v.GetString("pg-dsn"),
		BatchSize:    v.GetInt("batch-size"),
		MaxRetries:   v.GetInt("max-retries"),
		RetryBackoff: v.GetDuration("retry-backoff"),
		BurnAccounts: getStringSlice(v, "burn-account"),
		LogLevel:     v.GetString("log-level"),
	}
}

// Validate checks the input path is set and exists.
func (c Common) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("input log file is required")
	}
	info, err := os.Stat(c.Input)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("input log file %s not found", c.Input)
		}
		return fmt.Errorf("stat input: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("input log file %s is a directory", c.Input)
	}
	if c.Out == "" {
		return fmt.Errorf("output path is required")
	}
	return nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

func getStringSlice(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case []string:
		return cleanStrings(typed)
	case string:
		return splitAndClean(typed)
	case []interface{}:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return cleanStrings(items)
	default:
		return nil
	}
}

func splitAndClean(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	return cleanStrings(parts)
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
