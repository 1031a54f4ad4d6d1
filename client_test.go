package counters_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/One-com/gone/counters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu     sync.Mutex
	events []counters.Event
	err    error
}

func (r *recordingSink) Submit(ev counters.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, ev)
	return nil
}

func (r *recordingSink) Close() error { return nil }

func (r *recordingSink) recorded() []counters.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]counters.Event(nil), r.events...)
}

func TestZeroClientDrops(t *testing.T) {
	var c counters.Client
	assert.NotPanics(t, func() {
		c.Incr("req.count")
		c.IncrWithTags("req.count", counters.Tags{"method": "GET"})
	})

	c = counters.NewClient(nil)
	assert.NotPanics(t, func() { c.Incr("req.count") })
}

func TestDiscard(t *testing.T) {
	c := counters.Discard()
	assert.NotPanics(t, func() {
		c.Incr("req.count")
		c.IncrWithTags("req.count", counters.Tags{"method": "GET"})
	})
	assert.NoError(t, counters.NopSink{}.Submit(counters.Event{Name: "x"}))
	assert.NoError(t, counters.NopSink{}.Close())
}

func TestIncrAddsVersionTag(t *testing.T) {
	sink := &recordingSink{}
	c := counters.NewClient(sink, counters.WithVersion("1.2.3"))

	c.IncrWithTags("req.count", counters.Tags{"method": "GET", "status": "200"})

	events := sink.recorded()
	require.Len(t, events, 1)
	ev := events[0]
	assert.Equal(t, "req.count", ev.Name)
	assert.Equal(t, int64(1), ev.Delta)
	assert.ElementsMatch(t, []counters.Tag{
		{Key: "method", Value: "GET"},
		{Key: "status", Value: "200"},
		{Key: "version", Value: "1.2.3"},
	}, ev.Tags)
	assert.Equal(t, counters.Tag{Key: "version", Value: "1.2.3"}, ev.Tags[len(ev.Tags)-1])
}

func TestIncrWithoutTags(t *testing.T) {
	sink := &recordingSink{}
	c := counters.NewClient(sink, counters.WithVersion("1.2.3"))

	c.Incr("req.count")

	events := sink.recorded()
	require.Len(t, events, 1)
	assert.Equal(t, []counters.Tag{{Key: "version", Value: "1.2.3"}}, events[0].Tags)
}

func TestCallerVersionTagIsKept(t *testing.T) {
	sink := &recordingSink{}
	c := counters.NewClient(sink, counters.WithVersion("1.2.3"))

	c.IncrWithTags("req.count", counters.Tags{"version": "mine"})

	events := sink.recorded()
	require.Len(t, events, 1)
	assert.Equal(t, []counters.Tag{
		{Key: "version", Value: "mine"},
		{Key: "version", Value: "1.2.3"},
	}, events[0].Tags)
}

func TestSubmitErrorGoesToHandler(t *testing.T) {
	boom := errors.New("boom")
	var got []error
	c := counters.NewClient(&recordingSink{err: boom}, counters.WithErrorHandler(func(err error) {
		got = append(got, err)
	}))

	assert.NotPanics(t, func() { c.Incr("req.count") })
	require.Len(t, got, 1)
	assert.ErrorIs(t, got[0], boom)
}

func TestNilErrorHandlerKeepsDefault(t *testing.T) {
	c := counters.NewClient(&recordingSink{err: errors.New("boom")}, counters.WithErrorHandler(nil))
	assert.NotPanics(t, func() { c.Incr("req.count") })
}

func TestConcurrentIncr(t *testing.T) {
	const workers, per = 8, 1000

	sink := &recordingSink{}
	c := counters.NewClient(sink)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < per; j++ {
				c.IncrWithTags("req.count", counters.Tags{"worker": "x"})
			}
		}()
	}
	wg.Wait()

	assert.Len(t, sink.recorded(), workers*per)
}
