package statsd

import (
	"github.com/One-com/gone/counters"
	"github.com/One-com/gone/counters/config"
)

// Build is the sink factory used at process startup.
// Without a configured host it returns a counters.NopSink and opens no socket.
// Otherwise it returns a *Sink sending to host:port, with the label as metric
// name prefix. Zero sizes in cfg mean the package defaults; a zero flush
// interval sends whenever the queue runs empty.
// opts are applied after the settings from cfg.
func Build(cfg config.Statsd, opts ...Option) (counters.Sink, error) {
	if cfg.Host == "" {
		return counters.NopSink{}, nil
	}

	base := []Option{
		Peer(cfg.Host, cfg.Port),
		Prefix(cfg.Label),
		FlushInterval(cfg.FlushInterval),
	}
	if cfg.BufferSize > 0 {
		base = append(base, Buffer(cfg.BufferSize))
	}
	if cfg.QueueCapacity > 0 {
		base = append(base, QueueCapacity(cfg.QueueCapacity))
	}

	sink, err := New(append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	return sink, nil
}
