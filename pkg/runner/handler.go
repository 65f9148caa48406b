package runner

import (
	"context"
)

// Answer is what the runner hands to an IOHandler for each query.
type Answer struct {
	Query  string `json:"query"`
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// IOHandler defines the strategy for talking to the caller.
// This allows switching between Text (terminal) and JSON (structured) modes.
type IOHandler interface {
	// Input reads the next query. io.EOF ends the loop.
	Input(ctx context.Context) (string, error)

	// Output presents the answer to one query.
	Output(ctx context.Context, answer Answer) error

	// SystemOutput presents a meta-message (status, warnings).
	// This is distinct from answers.
	SystemOutput(ctx context.Context, msg string) error
}

// ContentRenderer transforms an answer before it is written.
// This allows TUI rendering (markdown to ANSI) without coupling this package.
type ContentRenderer func(string) (string, error)
