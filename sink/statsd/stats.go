package statsd

import "sync/atomic"

// Stats are the delivery statistics of a Sink since it was created.
type Stats struct {
	Submitted  uint64 // events accepted into the queue
	Dropped    uint64 // events rejected by Submit
	Packets    uint64 // datagrams sent
	Bytes      uint64 // payload bytes sent
	SendErrors uint64 // failed datagram writes
}

type stats struct {
	submitted  atomic.Uint64
	dropped    atomic.Uint64
	packets    atomic.Uint64
	bytes      atomic.Uint64
	sendErrors atomic.Uint64
}

// Stats returns a snapshot of the delivery statistics.
func (s *Sink) Stats() Stats {
	return Stats{
		Submitted:  s.stats.submitted.Load(),
		Dropped:    s.stats.dropped.Load(),
		Packets:    s.stats.packets.Load(),
		Bytes:      s.stats.bytes.Load(),
		SendErrors: s.stats.sendErrors.Load(),
	}
}
