package shim

import (
	"time"

	"codeberg.org/mutker/errbridge/internal/domain"
)

// Outcome describes one completed shim invocation.
type Outcome struct {
	Operation string
	Mode      Mode
	Failed    bool
	Value     any
	Domain    domain.ID
	Case      string
	Started   time.Time
	Duration  time.Duration
}

// Observer receives the outcome of every call made with WithObserver.
// Observers must not retain or release carriers; they only see names.
type Observer interface {
	Observe(outcome Outcome)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(outcome Outcome)

func (f ObserverFunc) Observe(outcome Outcome) {
	f(outcome)
}

// Option configures a single Call or Throwing invocation.
type Option func(*options)

type options struct {
	observer Observer
}

// WithObserver reports the call's outcome to o.
func WithObserver(o Observer) Option {
	return func(opts *options) {
		opts.observer = o
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
