package statsd

import "errors"

var (
	// ErrQueueFull is reported when the dispatch queue has no room for an event.
	ErrQueueFull = errors.New("dispatch queue full")
	// ErrClosed is reported for events submitted after Close.
	ErrClosed = errors.New("sink closed")
	// ErrInvalidMetric is reported for names or tags which can't be expressed
	// in the statsd line protocol.
	ErrInvalidMetric = errors.New("invalid metric")
)
