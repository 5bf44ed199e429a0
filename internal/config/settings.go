package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"gtasksync/internal/sink"
)

// EnvPrefix prefixes environment overrides, e.g. GTASKSYNC_POLL_INTERVAL.
const EnvPrefix = "GTASKSYNC"

// DefaultPollInterval is how often watch refreshes the list.
const DefaultPollInterval = 15 * time.Minute

// Sink kinds.
const (
	SinkNone = "none"
	SinkFile = "file"
	SinkHASS = "hass"
)

// ErrInvalidSettings is wrapped by every settings validation error.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings is the content of config.yaml.
type Settings struct {
	// List is the task list used when --list is not given. Empty means the
	// account's default list.
	List string `mapstructure:"list"`

	// Timezone names the IANA zone that defines "today". Empty means local.
	Timezone string `mapstructure:"timezone"`

	PollInterval time.Duration `mapstructure:"poll_interval"`

	// MetricsAddr is where watch serves /metrics; empty disables it.
	MetricsAddr string `mapstructure:"metrics_addr"`

	// EntryID prefixes the unique ID of every list.
	EntryID string `mapstructure:"entry_id"`

	Sinks SinkSettings `mapstructure:"sinks"`
}

// SinkSettings selects where summaries are published.
type SinkSettings struct {
	Kind string       `mapstructure:"kind"`
	Dir  string       `mapstructure:"dir"`
	HASS HASSSettings `mapstructure:"hass"`
}

// HASSSettings configures the Home Assistant sink.
type HASSSettings struct {
	URL      string            `mapstructure:"url"`
	Token    string            `mapstructure:"token"`
	Entities map[string]string `mapstructure:"entities"`
}

// Load reads the settings file at path, applies GTASKSYNC_* environment
// overrides and validates the result. A missing file yields the defaults.
func Load(path string) (Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("read %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return Settings{}, err
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("list", "")
	v.SetDefault("timezone", "")
	v.SetDefault("poll_interval", DefaultPollInterval)
	v.SetDefault("metrics_addr", "")
	v.SetDefault("entry_id", AppName)
	v.SetDefault("sinks.kind", SinkNone)
	v.SetDefault("sinks.dir", "")
	v.SetDefault("sinks.hass.url", "")
	v.SetDefault("sinks.hass.token", "")
	for name, entity := range sink.DefaultEntities {
		v.SetDefault("sinks.hass.entities."+name, entity)
	}
}

// Validate checks the settings for values no command can work with.
func (s Settings) Validate() error {
	if s.PollInterval <= 0 {
		return fmt.Errorf("%w: poll_interval must be positive, got %s", ErrInvalidSettings, s.PollInterval)
	}
	if _, err := s.Location(); err != nil {
		return fmt.Errorf("%w: timezone: %v", ErrInvalidSettings, err)
	}
	switch s.Sinks.Kind {
	case SinkNone, "":
	case SinkFile:
		if s.Sinks.Dir == "" {
			return fmt.Errorf("%w: sinks.dir is required for the file sink", ErrInvalidSettings)
		}
	case SinkHASS:
		if s.Sinks.HASS.URL == "" || s.Sinks.HASS.Token == "" {
			return fmt.Errorf("%w: sinks.hass.url and sinks.hass.token are required", ErrInvalidSettings)
		}
	default:
		return fmt.Errorf("%w: unknown sinks.kind %q", ErrInvalidSettings, s.Sinks.Kind)
	}
	return nil
}

// Location returns the zone that defines the local calendar day.
func (s Settings) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(s.Timezone)
}

// Sink builds the configured summary sink.
func (s Settings) Sink() (sink.Sink, error) {
	switch s.Sinks.Kind {
	case SinkFile:
		return sink.File{Dir: s.Sinks.Dir}, nil
	case SinkHASS:
		return sink.NewHomeAssistant(s.Sinks.HASS.URL, s.Sinks.HASS.Token, s.Sinks.HASS.Entities, nil)
	default:
		return sink.Nop{}, nil
	}
}
