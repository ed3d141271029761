package config

import "github.com/spf13/pflag"

// EventsConfig holds configuration for the events command.
type EventsConfig struct {
	Common
}

// LoadEvents merges config file, environment variables, flags and
// positional arguments into EventsConfig.
func LoadEvents(cfgFile string, flags *pflag.FlagSet, args []string) (EventsConfig, error) {
	v, err := newViper(cfgFile, flags, args, nil)
	if err != nil {
		return EventsConfig{}, err
	}
	return EventsConfig{Common: loadCommon(v)}, nil
}
