package runner

import (
	"log/slog"

	"github.com/aretw0/wayfinder/pkg/ports"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithLookuper configures what answers the queries.
func WithLookuper(l ports.Lookuper) Option {
	return func(r *Runner) {
		r.Lookuper = l
	}
}

// WithMaxQuerySize overrides the query size limit (see SanitizeQuery).
func WithMaxQuerySize(n int) Option {
	return func(r *Runner) {
		r.MaxQuerySize = n
	}
}
