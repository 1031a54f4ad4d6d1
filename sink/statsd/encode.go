package statsd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/One-com/gone/counters"
)

const (
	reservedName     = ":|@#\n"
	reservedTagKey   = ":,|#\n"
	reservedTagValue = ",|#\n"
)

// appendEvent appends the statsd line for ev to buf:
//
//	<prefix><name>:<delta>|c|#k1:v1,k2:v2
func appendEvent(buf []byte, prefix string, ev counters.Event) ([]byte, error) {
	if ev.Name == "" || strings.ContainsAny(ev.Name, reservedName) {
		return buf, fmt.Errorf("name %q: %w", ev.Name, ErrInvalidMetric)
	}
	for _, t := range ev.Tags {
		if t.Key == "" || strings.ContainsAny(t.Key, reservedTagKey) || strings.ContainsAny(t.Value, reservedTagValue) {
			return buf, fmt.Errorf("%s: tag %q=%q: %w", ev.Name, t.Key, t.Value, ErrInvalidMetric)
		}
	}

	buf = append(buf, prefix...)
	buf = append(buf, ev.Name...)
	buf = append(buf, ':')
	buf = strconv.AppendInt(buf, ev.Delta, 10)
	buf = append(buf, "|c"...)
	// sample rate not supported
	for i, t := range ev.Tags {
		if i == 0 {
			buf = append(buf, "|#"...)
		} else {
			buf = append(buf, ',')
		}
		buf = append(buf, t.Key...)
		buf = append(buf, ':')
		buf = append(buf, t.Value...)
	}
	return buf, nil
}
