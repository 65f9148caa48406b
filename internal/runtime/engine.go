package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/aretw0/wayfinder/pkg/template"
)

// Engine answers step lookups from a parameter source.
// It keeps no state between calls: every call normalizes a fresh
// FlowConfiguration, so an Engine can serve concurrent requests.
type Engine struct {
	source ports.ParameterSource
	logger *slog.Logger
	hooks  domain.LookupHooks
	name   string
	now    func() time.Time
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLookupHooks registers observability hooks.
func WithLookupHooks(hooks domain.LookupHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithName labels events emitted by this engine.
func WithName(name string) EngineOption {
	return func(e *Engine) {
		e.name = name
	}
}

// NewEngine creates a new engine reading from source.
func NewEngine(source ports.ParameterSource, opts ...EngineOption) *Engine {
	e := &Engine{
		source: source,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Configuration normalizes the flow parameters of one item.
func (e *Engine) Configuration(ctx context.Context, itemIndex int) (*domain.FlowConfiguration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg, err := Normalize(ctx, e.source, itemIndex)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("flow normalized", "item", itemIndex, "steps", len(cfg.Steps))
	return cfg, nil
}

// Resolve normalizes the flow of one item and resolves query against it.
func (e *Engine) Resolve(ctx context.Context, itemIndex int, query string) (domain.Resolution, *domain.FlowConfiguration, error) {
	start := e.now()
	cfg, err := e.Configuration(ctx, itemIndex)
	if err != nil {
		return domain.Resolution{}, nil, err
	}

	res := Resolve(query, cfg.Steps)

	stepID := ""
	if res.Step != nil {
		stepID = res.Step.ID
	}
	e.logger.Debug("step resolved",
		"query", res.Query,
		"match", res.Kind,
		"step_id", stepID,
		"score", res.Score,
	)

	if e.hooks.OnResolve != nil {
		e.hooks.OnResolve(ctx, &domain.ResolveEvent{
			EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventResolve, Flow: e.name},
			Query:     res.Query,
			StepID:    stepID,
			Kind:      res.Kind,
			Score:     res.Score,
			Steps:     len(cfg.Steps),
			Duration:  e.now().Sub(start),
		})
	}
	return res, cfg, nil
}

// Lookup resolves query for one item and returns the agent-readable answer.
func (e *Engine) Lookup(ctx context.Context, itemIndex int, query string) (string, error) {
	res, cfg, err := e.Resolve(ctx, itemIndex, query)
	if err != nil {
		return "", err
	}
	return Format(res, cfg), nil
}

// Report summarizes the flow of one item.
func (e *Engine) Report(ctx context.Context, itemIndex int) (*domain.Report, error) {
	cfg, err := e.Configuration(ctx, itemIndex)
	if err != nil {
		return nil, err
	}
	if e.hooks.OnReport != nil {
		e.hooks.OnReport(ctx, &domain.ReportEvent{
			EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventReport, Flow: e.name},
			Steps:     len(cfg.Steps),
		})
	}
	return BuildReport(cfg), nil
}

// Preview answers test mode: it resolves the testStepId parameter of one item
// and returns what an agent would receive.
func (e *Engine) Preview(ctx context.Context, itemIndex int) (*domain.Preview, error) {
	rawID, err := e.source.Get(ctx, domain.ParamTestStepID, itemIndex, "")
	if err != nil {
		return nil, fmt.Errorf("reading %q for item %d: %w: %w", domain.ParamTestStepID, itemIndex, domain.ErrSourceUnavailable, err)
	}
	testID := template.ToText(rawID)

	res, cfg, err := e.Resolve(ctx, itemIndex, testID)
	if err != nil {
		return nil, err
	}
	return BuildPreview(res, cfg, testID), nil
}

// Mode reads the output mode of one item. A missing mode means ModeAITool.
func (e *Engine) Mode(ctx context.Context, itemIndex int) (domain.OutputMode, error) {
	raw, err := e.source.Get(ctx, domain.ParamOutputMode, itemIndex, string(domain.ModeAITool))
	if err != nil {
		return "", fmt.Errorf("reading %q for item %d: %w: %w", domain.ParamOutputMode, itemIndex, domain.ErrSourceUnavailable, err)
	}
	mode := domain.OutputMode(template.ToText(raw))
	switch mode {
	case "":
		return domain.ModeAITool, nil
	case domain.ModeAITool, domain.ModeTest:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidMode, mode)
	}
}

// Execute runs the engine over items in batch: aiTool items produce a Report,
// test items a Preview. When continueOnFail is set, a failing item is recorded
// with its error and the batch goes on; otherwise the first error aborts.
func (e *Engine) Execute(ctx context.Context, items int, continueOnFail bool) ([]domain.ItemResult, error) {
	results := make([]domain.ItemResult, 0, items)
	for i := 0; i < items; i++ {
		result, err := e.executeItem(ctx, i)
		if err != nil {
			if !continueOnFail {
				return results, fmt.Errorf("item %d: %w", i, err)
			}
			e.logger.Warn("item failed, continuing", "item", i, "error", err)
			result = domain.ItemResult{Item: i, Error: err.Error()}
		}
		results = append(results, result)
	}
	return results, nil
}

func (e *Engine) executeItem(ctx context.Context, itemIndex int) (domain.ItemResult, error) {
	mode, err := e.Mode(ctx, itemIndex)
	if err != nil {
		return domain.ItemResult{}, err
	}
	if mode == domain.ModeTest {
		preview, err := e.Preview(ctx, itemIndex)
		if err != nil {
			return domain.ItemResult{}, err
		}
		return domain.ItemResult{Item: itemIndex, Preview: preview}, nil
	}
	report, err := e.Report(ctx, itemIndex)
	if err != nil {
		return domain.ItemResult{}, err
	}
	return domain.ItemResult{Item: itemIndex, Report: report}, nil
}
