package config

import (
	"strings"

	"github.com/spf13/pflag"
)

// RegisterFlags adds a flag for every setting to fs. Give fs to Flags() after
// parsing it. The flag defaults are only shown in the usage, they never
// override other sources.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String(flagName("statsd_host"), d.Host, "statsd collector host, empty disables metrics")
	fs.Int(flagName("statsd_port"), d.Port, "statsd collector UDP port")
	fs.String(flagName("statsd_label"), d.Label, "prefix for all metric names")
	fs.Int(flagName("statsd_buffer_size"), d.BufferSize, "max datagram size")
	fs.Int(flagName("statsd_queue_capacity"), d.QueueCapacity, "max events waiting to be sent")
	fs.Duration(flagName("statsd_flush_interval"), d.FlushInterval, "how often partial datagrams are sent")
	fs.String(flagName("log_level"), d.LogLevel, "log level (debug, info, warn, error)")
}

func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

func flagKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
