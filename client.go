package counters

// Client increments counters on a shared Sink.
//
// The zero Client has no sink and drops everything, which is what you get
// when a component was never handed a real client. Clients are values: copy
// them freely, they don't own the Sink.
type Client struct {
	sink    Sink
	errh    ErrorHandler
	version string
}

// Option configures a Client.
type Option func(*Client)

// WithErrorHandler sets the handler told about dropped events.
// Default is DefaultErrorHandler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(c *Client) {
		if h != nil {
			c.errh = h
		}
	}
}

// WithVersion overrides the value of the injected version tag.
func WithVersion(v string) Option {
	return func(c *Client) {
		c.version = v
	}
}

// NewClient returns a client emitting to sink. A nil sink gives a client
// which drops everything.
func NewClient(sink Sink, opts ...Option) Client {
	c := Client{
		sink:    sink,
		errh:    DefaultErrorHandler,
		version: BuildVersion(),
	}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// Discard returns a client backed by a NopSink.
func Discard() Client {
	return NewClient(NopSink{})
}

// Incr increments the counter label by one.
func (c Client) Incr(label string) {
	c.IncrWithTags(label, nil)
}

// IncrWithTags increments the counter label by one, tagged with tags and the
// version tag. It never blocks on the network and never fails: errors go to
// the error handler and the event is lost.
func (c Client) IncrWithTags(label string, tags Tags) {
	if c.sink == nil {
		return
	}

	ev := Event{
		Name:  label,
		Tags:  MergeTags(tags, Tag{Key: VersionTag, Value: c.version}),
		Delta: 1,
	}

	if err := c.sink.Submit(ev); err != nil {
		errh := c.errh
		if errh == nil {
			errh = DefaultErrorHandler
		}
		errh(err)
	}
}
