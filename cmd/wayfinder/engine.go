package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/internal/config"
	"github.com/aretw0/wayfinder/pkg/adapters/file"
	loamAdapter "github.com/aretw0/wayfinder/pkg/adapters/loam"
	redisAdapter "github.com/aretw0/wayfinder/pkg/adapters/redis"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
)

// openSource builds the parameter source selected by settings.
func openSource(ctx context.Context) (ports.ParameterSource, error) {
	path := settings.Flow.Path
	switch settings.Flow.Source {
	case config.SourceRedis:
		src := redisAdapter.New(settings.Redis.Addr, settings.Redis.Password, settings.Redis.DB,
			redisAdapter.WithPrefix(settings.Redis.Prefix))
		if err := src.Ping(ctx); err != nil {
			return nil, fmt.Errorf("redis %s: %w", settings.Redis.Addr, err)
		}
		return src, nil
	case config.SourceLoam:
		if path == "" {
			return nil, fmt.Errorf("--flow is required for the loam source")
		}
		return loamAdapter.Open(ctx, path)
	case config.SourceFile:
		if path == "" {
			return nil, fmt.Errorf("--flow is required for the file source")
		}
		return file.Open(path)
	default:
		if path == "" {
			return nil, fmt.Errorf("no flow given: pass --flow or set flow.path")
		}
		return wayfinder.Open(ctx, path)
	}
}

// openEngine builds the engine for the current settings.
func openEngine(ctx context.Context, opts ...wayfinder.Option) (*wayfinder.Engine, error) {
	src, err := openSource(ctx)
	if err != nil {
		return nil, err
	}
	base := []wayfinder.Option{
		wayfinder.WithSource(src),
		wayfinder.WithLogger(logger),
		wayfinder.WithItemIndex(settings.Flow.Item),
	}
	if settings.Flow.Name != "" {
		base = append(base, wayfinder.WithName(settings.Flow.Name))
	}
	eng, err := wayfinder.New(settings.Flow.Path, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("init engine: %w", err)
	}
	logger.Debug("engine ready", "source", settings.Flow.Source, "path", settings.Flow.Path, "item", settings.Flow.Item)
	return eng, nil
}

// flowDocument reads the flow parameters of the selected item back into a
// document shape the schema validator understands.
func flowDocument(ctx context.Context, src ports.ParameterSource) ([]byte, error) {
	names := []string{
		domain.ParamBotName,
		domain.ParamBotTone,
		domain.ParamBotPersonality,
		domain.ParamContextData,
		domain.ParamOutputMode,
		domain.ParamTestStepID,
		domain.ParamSteps,
	}
	doc := make(map[string]any, len(names))
	for _, name := range names {
		v, err := src.Get(ctx, name, settings.Flow.Item, nil)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		if v != nil {
			doc[name] = v
		}
	}
	return json.Marshal(doc)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
