package chain

import (
	"log/slog"
	"time"
)

type options struct {
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures an Executor.
type Option func(*options)

// WithTimeout bounds every run with a deadline. Zero disables it, which is
// the default: a step that never advances then blocks Run until the caller's
// context ends.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithLogger sets the logger used for run and step events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func defaultOptions() options {
	return options{
		logger: slog.New(slog.DiscardHandler),
	}
}
