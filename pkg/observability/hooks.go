package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// LogHooks logs every lookup event at Info.
func LogHooks(logger *slog.Logger) domain.LookupHooks {
	return domain.LookupHooks{
		OnResolve: func(ctx context.Context, e *domain.ResolveEvent) {
			logger.InfoContext(ctx, "lookup",
				"flow", e.Flow,
				"query", e.Query,
				"match", e.Kind,
				"step_id", e.StepID,
				"score", e.Score,
				"duration", e.Duration,
			)
		},
		OnReport: func(ctx context.Context, e *domain.ReportEvent) {
			logger.InfoContext(ctx, "report", "flow", e.Flow, "steps", e.Steps)
		},
	}
}

// Compose merges hooks so each event reaches every non-nil handler in order.
func Compose(hooks ...domain.LookupHooks) domain.LookupHooks {
	var resolve []func(context.Context, *domain.ResolveEvent)
	var report []func(context.Context, *domain.ReportEvent)
	for _, h := range hooks {
		if h.OnResolve != nil {
			resolve = append(resolve, h.OnResolve)
		}
		if h.OnReport != nil {
			report = append(report, h.OnReport)
		}
	}

	var out domain.LookupHooks
	if len(resolve) > 0 {
		out.OnResolve = func(ctx context.Context, e *domain.ResolveEvent) {
			for _, fn := range resolve {
				fn(ctx, e)
			}
		}
	}
	if len(report) > 0 {
		out.OnReport = func(ctx context.Context, e *domain.ReportEvent) {
			for _, fn := range report {
				fn(ctx, e)
			}
		}
	}
	return out
}
