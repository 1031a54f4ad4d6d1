// Package statsd is the networked counters.Sink. It sends counter events to a
// statsd collector over UDP in the DogStatsD tagged line format.
//
// Submit encodes the event on the caller's goroutine and hands the line to a
// bounded queue without blocking. A single worker goroutine per Sink packs
// lines into datagrams and is the only one writing to the socket.
package statsd

import (
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/One-com/gone/counters"
	"github.com/benbjohnson/clock"
	"go.uber.org/multierr"
)

// Sink sends counter events to a statsd server.
type Sink struct {
	prefix string
	errh   counters.ErrorHandler

	queue  chan []byte
	done   chan struct{} // closed by Close
	exited chan struct{} // closed by the worker

	// mu orders Submit's check-then-send against Close, so nothing is
	// queued once the worker has started draining.
	mu        sync.RWMutex
	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error

	// owned by the worker
	pb       *packetBuffer
	drainErr error

	conn io.Closer // nil unless we opened the socket

	stats stats
}

var _ counters.Sink = (*Sink)(nil)

// New creates a Sink and starts its worker.
// Give it a Peer to send to a UDP statsd server. Without a Peer or Output it
// writes to os.Stdout.
// Errors resolving the peer or binding the local socket are returned as
// *counters.ConfigError.
func New(opts ...Option) (*Sink, error) {
	o := options{
		out:      os.Stdout,
		max:      DefaultBufferSize,
		capacity: DefaultQueueCapacity,
		interval: DefaultFlushInterval,
		errh:     counters.DefaultErrorHandler,
		clock:    clock.New(),
		listen:   net.ListenPacket,
	}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, &counters.ConfigError{Op: "validate", Err: err}
		}
	}

	s := &Sink{
		prefix: o.prefix,
		errh:   o.errh,
		queue:  make(chan []byte, o.capacity),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}

	out := o.out
	if o.host != "" {
		w, err := dialPeer(o)
		if err != nil {
			return nil, err
		}
		out = w
		s.conn = w.conn
	}
	s.pb = newPacketBuffer(out, o.max)

	go s.run(o.clock, o.interval)
	return s, nil
}

// dialPeer binds an ephemeral local UDP socket for sending to the peer.
func dialPeer(o options) (*packetWriter, error) {
	if o.port <= 0 || o.port > 65535 {
		return nil, &counters.ConfigError{Op: "validate", Err: fmt.Errorf("invalid port %d for host %s", o.port, o.host)}
	}
	addr, err := net.ResolveUDPAddr("udp", net.JoinHostPort(o.host, strconv.Itoa(o.port)))
	if err != nil {
		return nil, &counters.ConfigError{Op: "resolve", Err: err}
	}
	conn, err := o.listen("udp", "0.0.0.0:0")
	if err != nil {
		return nil, &counters.ConfigError{Op: "bind", Err: err}
	}
	return &packetWriter{conn: conn, addr: addr}, nil
}

// packetWriter sends each Write as a datagram to addr.
type packetWriter struct {
	conn net.PacketConn
	addr net.Addr
}

func (w *packetWriter) Write(p []byte) (int, error) {
	return w.conn.WriteTo(p, w.addr)
}

// Submit queues ev for sending. It never blocks: if the queue is full the
// event is dropped and ErrQueueFull returned.
func (s *Sink) Submit(ev counters.Event) error {
	if s.closed.Load() {
		s.stats.dropped.Add(1)
		return fmt.Errorf("statsd: dropping %s: %w", ev.Name, ErrClosed)
	}

	line, err := appendEvent(make([]byte, 0, 64), s.prefix, ev)
	if err != nil {
		s.stats.dropped.Add(1)
		return fmt.Errorf("statsd: dropping %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed.Load() {
		s.stats.dropped.Add(1)
		return fmt.Errorf("statsd: dropping %s: %w", ev.Name, ErrClosed)
	}
	select {
	case s.queue <- line:
		s.stats.submitted.Add(1)
		return nil
	default:
		s.stats.dropped.Add(1)
		return fmt.Errorf("statsd: dropping %s: %w", ev.Name, ErrQueueFull)
	}
}

// Close stops accepting events, sends what's queued and closes the socket.
// Calling it again returns the same result.
func (s *Sink) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed.Store(true)
		s.mu.Unlock()
		close(s.done)
		<-s.exited
		s.closeErr = s.drainErr
		if s.conn != nil {
			s.closeErr = multierr.Append(s.closeErr, s.conn.Close())
		}
	})
	return s.closeErr
}
