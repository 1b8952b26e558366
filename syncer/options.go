package syncer

import (
	"log/slog"
	"time"
)

// syncerOptions holds optional configuration of a Syncer.
type syncerOptions struct {
	logger *slog.Logger
	clock  func() time.Time
}

// Option is a functional option for configuring the Syncer.
type Option func(*syncerOptions)

// WithLogger configures the syncer with a custom logger.
// If logger is nil, logging will be disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *syncerOptions) {
		opts.logger = logger
	}
}

// WithClock sets the time source used for commit signatures.
// If clock is nil, time.Now is used.
func WithClock(clock func() time.Time) Option {
	return func(opts *syncerOptions) {
		opts.clock = clock
	}
}

func defaultOptions() *syncerOptions {
	return &syncerOptions{
		logger: nil, // No default logger
		clock:  time.Now,
	}
}

func applyOptions(opts *syncerOptions, options []Option) {
	for _, option := range options {
		option(opts)
	}
	if opts.clock == nil {
		opts.clock = time.Now
	}
}
