package statsd

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/One-com/gone/counters"
	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

const (
	// DefaultBufferSize is the default max UDP datagram size.
	// 1432 should be safe for most nets, but some collectors expect 512.
	DefaultBufferSize = 512
	// DefaultQueueCapacity is the default number of events waiting to be sent.
	DefaultQueueCapacity = 1024
	// DefaultFlushInterval is how often a partially filled datagram is sent.
	DefaultFlushInterval = 100 * time.Millisecond
)

// Option configures a Sink given to New.
type Option func(*options) error

type options struct {
	host     string
	port     int
	out      io.Writer
	prefix   string
	max      int
	capacity int
	interval time.Duration
	errh     counters.ErrorHandler
	clock    clock.Clock
	listen   func(network, address string) (net.PacketConn, error)
}

// Buffer sets the max size of the datagrams sent.
func Buffer(size int) Option {
	return Option(func(o *options) error {
		if size <= 0 {
			return errors.New("buffer size must be positive")
		}
		o.max = size
		return nil
	})
}

// Prefix is prepended with "prefix." to all metric names.
// It may not contain any of the characters reserved in metric names.
func Prefix(pfx string) Option {
	return Option(func(o *options) error {
		if strings.ContainsAny(pfx, reservedName) {
			return fmt.Errorf("prefix %q: %w", pfx, ErrInvalidMetric)
		}
		if pfx != "" {
			o.prefix = pfx + "."
		}
		return nil
	})
}

// Peer is the address of the statsd UDP server.
// The address is resolved and the local socket bound by New.
func Peer(host string, port int) Option {
	return Option(func(o *options) error {
		o.host = host
		o.port = port
		return nil
	})
}

// Output sets a general io.Writer as output instead of a UDP socket.
// Every Write is one datagram.
func Output(w io.Writer) Option {
	return Option(func(o *options) error {
		o.out = w
		return nil
	})
}

// QueueCapacity bounds the number of events waiting for the worker.
// Events submitted to a full queue are dropped.
func QueueCapacity(n int) Option {
	return Option(func(o *options) error {
		if n <= 0 {
			return errors.New("queue capacity must be positive")
		}
		o.capacity = n
		return nil
	})
}

// FlushInterval sets how often a partially filled datagram is sent.
// Zero or less sends whenever the queue runs empty.
func FlushInterval(d time.Duration) Option {
	return Option(func(o *options) error {
		o.interval = d
		return nil
	})
}

// ErrorHandler sets the handler for failures in the sink worker.
func ErrorHandler(h counters.ErrorHandler) Option {
	return Option(func(o *options) error {
		if h != nil {
			o.errh = h
		}
		return nil
	})
}

// Logger makes the sink log worker failures to l.
func Logger(l *zap.Logger) Option {
	return ErrorHandler(counters.LogErrors(l))
}

// Clock sets the clock driving the flush interval.
func Clock(c clock.Clock) Option {
	return Option(func(o *options) error {
		o.clock = c
		return nil
	})
}

// ListenPacket replaces net.ListenPacket for binding the local socket.
func ListenPacket(f func(network, address string) (net.PacketConn, error)) Option {
	return Option(func(o *options) error {
		o.listen = f
		return nil
	})
}
