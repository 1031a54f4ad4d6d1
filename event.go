package counters

// Event is a single counter increment on its way to a Sink.
type Event struct {
	Name  string
	Tags  []Tag
	Delta int64
}
