package counters

// Sink is the destination of counter events.
// Submit must be safe for concurrent use and must never block on network I/O.
// An error from Submit means the event was dropped.
type Sink interface {
	Submit(ev Event) error
	// Close releases the resources of the Sink, delivering what it can first.
	Close() error
}

// NopSink throws away all events. It's the sink used when no collector is
// configured.
type NopSink struct{}

func (NopSink) Submit(Event) error {
	return nil
}

func (NopSink) Close() error {
	return nil
}
