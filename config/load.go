package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/subosito/gotenv"
)

// Loader assembles Settings from its sources.
type Loader struct {
	envPrefix string
	files     []string
	envFiles  []string
	flags     *pflag.FlagSet
	lookupEnv func(string) (string, bool)
}

// Option configures a Loader.
type Option func(*Loader)

// File adds a config file. Later files take precedence over earlier ones.
// An empty name is ignored.
func File(name string) Option {
	return func(l *Loader) {
		if name != "" {
			l.files = append(l.files, name)
		}
	}
}

// EnvFile adds a .env file read as if its variables were in the environment.
// The real environment takes precedence. The process environment is not modified.
func EnvFile(name string) Option {
	return func(l *Loader) {
		if name != "" {
			l.envFiles = append(l.envFiles, name)
		}
	}
}

// EnvPrefix makes key "statsd_host" read from PFX_STATSD_HOST.
func EnvPrefix(pfx string) Option {
	return func(l *Loader) {
		l.envPrefix = pfx
	}
}

// Flags makes explicitly given flags of fs override all other sources.
// See RegisterFlags.
func Flags(fs *pflag.FlagSet) Option {
	return func(l *Loader) {
		l.flags = fs
	}
}

// LookupEnv replaces os.LookupEnv.
func LookupEnv(f func(string) (string, bool)) Option {
	return func(l *Loader) {
		l.lookupEnv = f
	}
}

// NewLoader returns a Loader for the given sources.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{lookupEnv: os.LookupEnv}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Load is NewLoader(opts...).Load()
func Load(opts ...Option) (Settings, error) {
	return NewLoader(opts...).Load()
}

// Load merges all sources and returns validated Settings.
func (l *Loader) Load() (Settings, error) {
	known := defaults()
	values := defaults()

	for _, name := range l.files {
		fv, err := readFile(name)
		if err != nil {
			return Settings{}, err
		}
		for k, v := range fv {
			values[k] = v
		}
	}

	dotenv, err := l.readEnvFiles()
	if err != nil {
		return Settings{}, err
	}
	for key := range known {
		name := l.envName(key)
		if v, ok := l.lookupEnv(name); ok && v != "" {
			values[key] = v
		} else if v, ok := dotenv[name]; ok && v != "" {
			values[key] = v
		}
	}

	if l.flags != nil {
		l.flags.Visit(func(f *pflag.Flag) {
			key := flagKey(f.Name)
			if _, ok := known[key]; ok {
				values[key] = f.Value.String()
			}
		})
	}

	s, err := decode(values)
	if err != nil {
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (l *Loader) envName(key string) string {
	if l.envPrefix != "" {
		return strings.ToUpper(l.envPrefix + "_" + key)
	}
	return strings.ToUpper(key)
}

func (l *Loader) readEnvFiles() (gotenv.Env, error) {
	env := gotenv.Env{}
	for _, name := range l.envFiles {
		f, err := os.Open(name)
		if err != nil {
			return nil, &ParseError{File: name, Err: err}
		}
		parsed, err := gotenv.StrictParse(f)
		f.Close()
		if err != nil {
			return nil, &ParseError{File: name, Err: err}
		}
		for k, v := range parsed {
			env[k] = v
		}
	}
	return env, nil
}

func decode(values map[string]interface{}) (s Settings, err error) {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &s,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return s, err
	}
	if err = dec.Decode(values); err != nil {
		return Settings{}, fmt.Errorf("%w: %s", ErrInvalid, err)
	}
	return s, nil
}
