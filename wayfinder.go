package wayfinder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/wayfinder/internal/runtime"
	"github.com/aretw0/wayfinder/pkg/adapters/file"
	loamAdapter "github.com/aretw0/wayfinder/pkg/adapters/loam"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
)

// Engine is the high-level entry point for the Wayfinder library.
// It wraps the internal runtime and binds it to one parameter source.
type Engine struct {
	runtime        *runtime.Engine
	source         ports.ParameterSource
	hooks          domain.LookupHooks
	logger         *slog.Logger
	item           int
	continueOnFail bool
	Name           string
}

var _ ports.Lookuper = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithSource injects a custom ParameterSource, bypassing file and directory loading.
func WithSource(src ports.ParameterSource) Option {
	return func(e *Engine) {
		e.source = src
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LookupHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithName labels logs and events. It defaults to the base name of the flow path.
func WithName(name string) Option {
	return func(e *Engine) {
		e.Name = name
	}
}

// WithItemIndex selects the batch item served by Lookup, Report and Preview.
func WithItemIndex(i int) Option {
	return func(e *Engine) {
		e.item = i
	}
}

// WithContinueOnFail makes Execute record failing items instead of aborting.
func WithContinueOnFail(continueOnFail bool) Option {
	return func(e *Engine) {
		e.continueOnFail = continueOnFail
	}
}

// New initializes a new Wayfinder Engine.
// By default the flow is read from path: a directory is loaded as markdown
// steps through Loam, a file as a YAML/JSON flow document.
// If WithSource is provided, path can be empty and is only used as a label.
func New(path string, opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.Name == "" && path != "" {
		base := filepath.Base(path)
		eng.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	if eng.source == nil {
		src, err := Open(context.Background(), path)
		if err != nil {
			return nil, err
		}
		eng.source = src
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("flow", eng.Name)
	}

	eng.runtime = runtime.NewEngine(eng.source,
		runtime.WithLogger(eng.logger),
		runtime.WithLookupHooks(eng.hooks),
		runtime.WithName(eng.Name),
	)
	return eng, nil
}

// Open picks the parameter source for path: Loam for a directory, the flow
// document reader for a file.
func Open(ctx context.Context, path string) (ports.ParameterSource, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required when no custom source is provided")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	if info.IsDir() {
		return loamAdapter.Open(ctx, path)
	}
	return file.Open(path)
}

// Lookup resolves a step ID for the selected item and returns the
// agent-readable answer: the step payload, or a diagnostic listing every ID.
func (e *Engine) Lookup(ctx context.Context, query string) (string, error) {
	return e.runtime.Lookup(ctx, e.item, query)
}

// Resolve returns the structured resolution of query together with the flow
// it was resolved against.
func (e *Engine) Resolve(ctx context.Context, query string) (domain.Resolution, *domain.FlowConfiguration, error) {
	return e.runtime.Resolve(ctx, e.item, query)
}

// Report summarizes the flow of the selected item.
func (e *Engine) Report(ctx context.Context) (*domain.Report, error) {
	return e.runtime.Report(ctx, e.item)
}

// Configuration returns the normalized flow of the selected item.
func (e *Engine) Configuration(ctx context.Context) (*domain.FlowConfiguration, error) {
	return e.runtime.Configuration(ctx, e.item)
}

// Preview resolves the testStepId parameter of the selected item.
func (e *Engine) Preview(ctx context.Context) (*domain.Preview, error) {
	return e.runtime.Preview(ctx, e.item)
}

// Mode returns the output mode of the selected item.
func (e *Engine) Mode(ctx context.Context) (domain.OutputMode, error) {
	return e.runtime.Mode(ctx, e.item)
}

// Execute runs every item of the source: aiTool items yield a report, test
// items a preview. Sources that do not count items hold a single one.
func (e *Engine) Execute(ctx context.Context) ([]domain.ItemResult, error) {
	items := 1
	if counter, ok := e.source.(ports.ItemCounter); ok {
		n, err := counter.Items(ctx)
		if err != nil {
			return nil, fmt.Errorf("count items: %w: %w", domain.ErrSourceUnavailable, err)
		}
		items = n
	}
	return e.runtime.Execute(ctx, items, e.continueOnFail)
}

// Tool returns the descriptor agents use to call Lookup.
func (e *Engine) Tool() domain.Tool {
	return domain.LookupTool()
}

// Source returns the parameter source the engine reads from.
func (e *Engine) Source() ports.ParameterSource {
	return e.source
}

// Lookup resolves query against an already normalized flow. It performs no
// IO and is safe to call concurrently on the same configuration.
func Lookup(query string, cfg *domain.FlowConfiguration) string {
	return runtime.Lookup(query, cfg)
}

// Normalize builds the FlowConfiguration of one item from src.
func Normalize(ctx context.Context, src ports.ParameterSource, itemIndex int) (*domain.FlowConfiguration, error) {
	return runtime.Normalize(ctx, src, itemIndex)
}
