package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/wayfinder/pkg/ports"
)

// ErrNoLookuper is returned by Run when no Lookuper was configured.
var ErrNoLookuper = errors.New("runner: no lookuper configured")

// Runner answers queries read from an IOHandler until the stream ends.
type Runner struct {
	Handler  IOHandler
	Lookuper ports.Lookuper
	Logger   *slog.Logger

	// MaxQuerySize caps a query in bytes. Zero means the environment default.
	MaxQuerySize int
}

// NewRunner creates a Runner with a text handler on Stdin/Stdout.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	}
	if r.Logger == nil {
		r.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

// Run executes the loop until EOF (nil error) or context cancellation.
// Per-query failures are reported to the handler and do not stop the loop;
// only handler IO errors do.
func (r *Runner) Run(ctx context.Context) error {
	if r.Lookuper == nil {
		return ErrNoLookuper
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, err := r.Handler.Input(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				r.Logger.Debug("input closed")
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		answer := r.answer(ctx, raw)
		if err := r.Handler.Output(ctx, answer); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
	}
}

func (r *Runner) answer(ctx context.Context, raw string) Answer {
	query, err := SanitizeQuery(raw, r.MaxQuerySize)
	if err != nil {
		r.Logger.Warn("query rejected", "error", err)
		return Answer{Query: raw, Error: err.Error()}
	}

	result, err := r.Lookuper.Lookup(ctx, query)
	if err != nil {
		r.Logger.Error("lookup failed", "query", query, "error", err)
		return Answer{Query: query, Error: err.Error()}
	}
	return Answer{Query: query, Result: result}
}
