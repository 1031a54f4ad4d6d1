package statsd

import (
	"testing"

	"github.com/One-com/gone/counters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendEvent(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		ev     counters.Event
		want   string
	}{
		{
			name: "plain",
			ev:   counters.Event{Name: "req.count", Delta: 1},
			want: "req.count:1|c",
		},
		{
			name:   "prefix",
			prefix: "web.",
			ev:     counters.Event{Name: "req.count", Delta: 1},
			want:   "web.req.count:1|c",
		},
		{
			name: "tags",
			ev: counters.Event{Name: "req.count", Delta: 1, Tags: []counters.Tag{
				{Key: "method", Value: "GET"},
				{Key: "version", Value: "1.0.0"},
			}},
			want: "req.count:1|c|#method:GET,version:1.0.0",
		},
		{
			name: "duplicate keys are kept",
			ev: counters.Event{Name: "x", Delta: 1, Tags: []counters.Tag{
				{Key: "version", Value: "a"},
				{Key: "version", Value: "b"},
			}},
			want: "x:1|c|#version:a,version:b",
		},
		{
			name: "colon in value",
			ev:   counters.Event{Name: "x", Delta: 1, Tags: []counters.Tag{{Key: "url", Value: "http://a"}}},
			want: "x:1|c|#url:http://a",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := appendEvent(nil, tt.prefix, tt.ev)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(line))
		})
	}
}

func TestAppendEventInvalid(t *testing.T) {
	tests := []counters.Event{
		{Name: "", Delta: 1},
		{Name: "a:b", Delta: 1},
		{Name: "a|b", Delta: 1},
		{Name: "a\nb", Delta: 1},
		{Name: "a", Delta: 1, Tags: []counters.Tag{{Key: "", Value: "x"}}},
		{Name: "a", Delta: 1, Tags: []counters.Tag{{Key: "k:k", Value: "x"}}},
		{Name: "a", Delta: 1, Tags: []counters.Tag{{Key: "k", Value: "x,y"}}},
		{Name: "a", Delta: 1, Tags: []counters.Tag{{Key: "k", Value: "x|y"}}},
	}
	for _, ev := range tests {
		_, err := appendEvent(nil, "", ev)
		assert.ErrorIs(t, err, ErrInvalidMetric, "event %+v", ev)
	}
}
