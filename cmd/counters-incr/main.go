// Command counters-incr increments statsd counters from the command line.
//
//	counters-incr --statsd-host 127.0.0.1 --tag method=GET req.count
//
// Settings are read from flags, COUNTERS_* environment variables, an
// optional .env file and an optional config file, in that order of precedence.
package main

import (
	"fmt"
	"os"

	"github.com/One-com/gone/counters"
	"github.com/One-com/gone/counters/config"
	"github.com/One-com/gone/counters/sink/statsd"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	fs := pflag.NewFlagSet("counters-incr", pflag.ExitOnError)
	cfgFile := fs.String("config", "", "config file (.json, .yaml or .toml)")
	envFile := fs.String("env-file", "", "file with environment variables")
	tags := fs.StringToString("tag", nil, "tag as key=value, can be repeated")
	count := fs.Int("count", 1, "number of increments of each counter")
	config.RegisterFlags(fs)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] counter...\n", fs.Name())
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])

	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}

	settings, err := config.Load(
		config.File(*cfgFile),
		config.EnvFile(*envFile),
		config.EnvPrefix("COUNTERS"),
		config.Flags(fs))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := newLogger(settings.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	zap.ReplaceGlobals(logger)

	code := run(logger, settings, counters.Tags(*tags), *count, fs.Args())
	_ = logger.Sync()
	os.Exit(code)
}

func run(logger *zap.Logger, settings config.Settings, tags counters.Tags, count int, names []string) int {
	sink, err := statsd.Build(settings.Statsd, statsd.Logger(logger))
	if err != nil {
		logger.Error("creating metric sink", zap.Error(err))
		return 1
	}
	if settings.Host == "" {
		logger.Warn("no statsd_host configured, metrics are discarded")
	}

	client := counters.NewClient(sink, counters.WithErrorHandler(counters.LogErrors(logger)))
	for _, name := range names {
		for i := 0; i < count; i++ {
			client.IncrWithTags(name, tags)
		}
	}

	if err := sink.Close(); err != nil {
		logger.Error("flushing metrics", zap.Error(err))
		return 1
	}
	if s, ok := sink.(*statsd.Sink); ok {
		st := s.Stats()
		logger.Debug("metrics sent",
			zap.Uint64("events", st.Submitted),
			zap.Uint64("dropped", st.Dropped),
			zap.Uint64("packets", st.Packets))
	}
	return 0
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
