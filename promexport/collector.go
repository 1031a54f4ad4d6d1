// Package promexport exposes the delivery statistics of a statsd sink as
// Prometheus metrics, so lost counter events are visible to whoever scrapes
// the service.
package promexport

import (
	"github.com/One-com/gone/counters"
	"github.com/One-com/gone/counters/sink/statsd"
	prom "github.com/prometheus/client_golang/prometheus"
)

// StatsSource is implemented by *statsd.Sink.
type StatsSource interface {
	Stats() statsd.Stats
}

// Collector is a prometheus.Collector reading a StatsSource at scrape time.
type Collector struct {
	src StatsSource

	submitted  *prom.Desc
	dropped    *prom.Desc
	packets    *prom.Desc
	bytes      *prom.Desc
	sendErrors *prom.Desc
}

var _ prom.Collector = (*Collector)(nil)

// NewCollector returns a Collector for src with metric names in namespace.
func NewCollector(namespace string, src StatsSource) *Collector {
	desc := func(name, help string) *prom.Desc {
		return prom.NewDesc(prom.BuildFQName(namespace, "statsd", name), help, nil, nil)
	}
	return &Collector{
		src:        src,
		submitted:  desc("events_submitted_total", "Counter events accepted into the dispatch queue"),
		dropped:    desc("events_dropped_total", "Counter events dropped before being queued"),
		packets:    desc("packets_sent_total", "Datagrams sent to the collector"),
		bytes:      desc("bytes_sent_total", "Payload bytes sent to the collector"),
		sendErrors: desc("send_errors_total", "Failed datagram writes"),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prom.Desc) {
	ch <- c.submitted
	ch <- c.dropped
	ch <- c.packets
	ch <- c.bytes
	ch <- c.sendErrors
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prom.Metric) {
	st := c.src.Stats()
	ch <- prom.MustNewConstMetric(c.submitted, prom.CounterValue, float64(st.Submitted))
	ch <- prom.MustNewConstMetric(c.dropped, prom.CounterValue, float64(st.Dropped))
	ch <- prom.MustNewConstMetric(c.packets, prom.CounterValue, float64(st.Packets))
	ch <- prom.MustNewConstMetric(c.bytes, prom.CounterValue, float64(st.Bytes))
	ch <- prom.MustNewConstMetric(c.sendErrors, prom.CounterValue, float64(st.SendErrors))
}

// Register registers a Collector for sink with reg if sink is a *statsd.Sink.
// Other sinks (like counters.NopSink) have nothing to report and are ignored.
func Register(reg prom.Registerer, namespace string, sink counters.Sink) error {
	src, ok := sink.(StatsSource)
	if !ok {
		return nil
	}
	return reg.Register(NewCollector(namespace, src))
}
