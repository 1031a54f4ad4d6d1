package statsd

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
)

// run is the worker. It drains the queue into the packet buffer and sends
// datagrams when they are full, at every flush interval and on Close.
func (s *Sink) run(clk clock.Clock, interval time.Duration) {
	defer close(s.exited)

	var tick <-chan time.Time
	if interval > 0 {
		ticker := clk.Ticker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case line := <-s.queue:
			s.write(line)
			if tick == nil && len(s.queue) == 0 {
				s.flush()
			}
		case <-tick:
			s.flush()
		case <-s.done:
			s.drain()
			return
		}
	}
}

// drain sends whatever is left after Close.
func (s *Sink) drain() {
	for {
		select {
		case line := <-s.queue:
			s.write(line)
		default:
			s.drainErr = s.flush()
			return
		}
	}
}

func (s *Sink) write(line []byte) {
	n, err := s.pb.add(line)
	s.sent(n, err)
}

func (s *Sink) flush() error {
	n, err := s.pb.flush(0)
	return s.sent(n, err)
}

// sent does the book keeping of a datagram write.
func (s *Sink) sent(n int, err error) error {
	if err != nil {
		s.stats.sendErrors.Add(1)
		err = fmt.Errorf("statsd: send: %w", err)
		s.errh(err)
		return err
	}
	if n > 0 {
		s.stats.packets.Add(1)
		s.stats.bytes.Add(uint64(n))
	}
	return nil
}
