// Package config loads the settings of a service emitting counters.
//
// Values are layered, each taking precedence over the ones below it:
//
//	flags (only those explicitly given)
//	environment (process environment, then .env files)
//	config files (JSON with // comments, YAML or TOML)
//	defaults
//
// All keys are flat and lower case, like "statsd_host". The environment
// variable for a key is the upper cased key with the optional prefix:
// STATSD_HOST or COUNTERS_STATSD_HOST. The flag for a key uses dashes:
// --statsd-host.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
)

// ErrInvalid is wrapped by all validation errors.
var ErrInvalid = errors.New("invalid configuration")

// The label prefixes every metric name, so it can't hold the statsd separators.
const reservedLabel = ":|@#\n"

// Statsd configures the statsd sink.
// An empty Host disables metric emission.
type Statsd struct {
	Host          string        `mapstructure:"statsd_host"`
	Port          int           `mapstructure:"statsd_port"`
	Label         string        `mapstructure:"statsd_label"`
	BufferSize    int           `mapstructure:"statsd_buffer_size"`
	QueueCapacity int           `mapstructure:"statsd_queue_capacity"`
	FlushInterval time.Duration `mapstructure:"statsd_flush_interval"`
}

// Settings is the full configuration.
type Settings struct {
	Statsd   `mapstructure:",squash"`
	LogLevel string `mapstructure:"log_level"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"statsd_host":           "",
		"statsd_port":           8125,
		"statsd_label":          "",
		"statsd_buffer_size":    512,
		"statsd_queue_capacity": 1024,
		"statsd_flush_interval": "100ms",
		"log_level":             "info",
	}
}

// Default returns the settings used when nothing is configured.
func Default() Settings {
	s, err := decode(defaults())
	if err != nil {
		panic(err) // the defaults are constant
	}
	return s
}

// Validate checks the settings for values which can't work.
func (s Settings) Validate() error {
	if s.Host != "" && (s.Port <= 0 || s.Port > 65535) {
		return fmt.Errorf("%w: statsd_port %d out of range for statsd_host %s", ErrInvalid, s.Port, s.Host)
	}
	if strings.ContainsAny(s.Label, reservedLabel) {
		return fmt.Errorf("%w: statsd_label %q contains one of %q", ErrInvalid, s.Label, reservedLabel)
	}
	if s.BufferSize < 0 {
		return fmt.Errorf("%w: negative statsd_buffer_size", ErrInvalid)
	}
	if s.QueueCapacity < 0 {
		return fmt.Errorf("%w: negative statsd_queue_capacity", ErrInvalid)
	}
	if s.FlushInterval < 0 {
		return fmt.Errorf("%w: negative statsd_flush_interval", ErrInvalid)
	}
	if _, err := zapcore.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %s", ErrInvalid, err)
	}
	return nil
}
