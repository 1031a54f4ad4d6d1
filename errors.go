package counters

import (
	"fmt"

	"go.uber.org/zap"
)

// ConfigError is returned when a Sink can't be constructed. It signals a
// broken deployment (bad collector address, no sockets available, ...) and
// it's up to the caller whether to abort startup.
type ConfigError struct {
	Op  string // "validate", "resolve" or "bind"
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("metric sink %s: %s", e.Op, e.Err.Error())
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ErrorHandler is told about every runtime failure to emit a metric.
// It's called from the emitting goroutine or from the sink worker, so it must
// be safe for concurrent use and must not block.
type ErrorHandler func(err error)

// LogErrors returns an ErrorHandler logging at warn level to logger.
// A nil logger means the global zap logger at the time of each error.
func LogErrors(logger *zap.Logger) ErrorHandler {
	return func(err error) {
		l := logger
		if l == nil {
			l = zap.L()
		}
		l.Sugar().Warnw("metric error", "error", err)
	}
}

// DefaultErrorHandler logs to the global zap logger, which discards
// everything until the application calls zap.ReplaceGlobals.
var DefaultErrorHandler = LogErrors(nil)
