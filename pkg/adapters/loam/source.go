// Package loam reads a flow from a directory of markdown documents through
// the Loam library.
//
// Every document is a step: its frontmatter carries the step fields and its
// body becomes the instructions. One optional document with "kind: flow"
// carries the identity and context parameters.
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/wayfinder/pkg/adapters/memory"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/spf13/cast"
)

// Source implements ports.ParameterSource for a markdown flow directory.
// The directory is read once, when the Source is opened.
type Source struct {
	Dir string
	mem *memory.Source
}

// Open loads the flow directory at dir. Loam runs read-only in strict mode
// (numbers stay json.Number); extra options are appended.
func Open(ctx context.Context, dir string, opts ...loam.Option) (*Source, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	repo, err := loam.Init(absPath, append([]loam.Option{
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	typed := loam.NewTypedRepository[StepMetadata](repo)
	docs, err := typed.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	params := map[string]any{}
	type entry struct {
		order *float64
		id    string
		raw   map[string]any
	}
	var entries []entry

	for _, doc := range docs {
		meta := doc.Data
		if meta.Kind == KindFlow {
			applyFlow(params, meta)
			continue
		}

		id := meta.ID
		if id == "" {
			id = trimExtension(doc.ID)
		}
		instructions := meta.Instructions
		if instructions == "" {
			instructions = strings.TrimSpace(doc.Content)
		}

		raw := map[string]any{
			"stepId":           id,
			"stepName":         meta.Name,
			"stepObjective":    meta.Objective,
			"stepInstructions": instructions,
			"requiredFields":   joinList(meta.RequiredFields),
			"allowedTools":     joinList(meta.AllowedTools),
			"nextStepId":       meta.Next,
			"validationRules":  map[string]any{"rule": rules(meta.ValidationRules)},
			"behaviors":        map[string]any{"scenario": scenarios(meta.Behaviors)},
		}
		var order *float64
		if meta.Order != nil {
			raw["stepOrder"] = meta.Order
			if f, err := cast.ToFloat64E(meta.Order); err == nil {
				order = &f
			}
		}
		entries = append(entries, entry{order: order, id: id, raw: raw})
	}

	// Steps are sorted by order, then ID. Unordered steps go last.
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch {
		case a.order != nil && b.order != nil && *a.order != *b.order:
			return *a.order < *b.order
		case a.order != nil && b.order == nil:
			return true
		case a.order == nil && b.order != nil:
			return false
		}
		return a.id < b.id
	})

	steps := make([]any, len(entries))
	for i, e := range entries {
		steps[i] = e.raw
	}
	params[domain.ParamSteps] = map[string]any{"step": steps}

	return &Source{Dir: absPath, mem: memory.NewSource(params)}, nil
}

func applyFlow(params map[string]any, meta StepMetadata) {
	set := func(name, v string) {
		if v != "" {
			params[name] = v
		}
	}
	set(domain.ParamBotName, meta.BotName)
	set(domain.ParamBotTone, meta.BotTone)
	set(domain.ParamBotPersonality, meta.BotPersonality)
	set(domain.ParamOutputMode, meta.OutputMode)
	set(domain.ParamTestStepID, meta.TestStepID)
	if meta.Context != nil {
		params[domain.ParamContextData] = meta.Context
	}
}

func rules(in []RuleMetadata) []any {
	out := make([]any, len(in))
	for i, r := range in {
		out[i] = map[string]any{
			"field":        r.Field,
			"regexPattern": r.Regex,
			"errorMessage": r.ErrorMessage,
		}
	}
	return out
}

func scenarios(in []BehaviorMetadata) []any {
	out := make([]any, len(in))
	for i, b := range in {
		out[i] = map[string]any{
			"leadType":         b.LeadType,
			"inputExamples":    joinList(b.InputExamples),
			"responseStrategy": b.ResponseStrategy,
			"responseExample":  b.ResponseExample,
		}
	}
	return out
}

// joinList accepts a YAML list or a comma-separated string and returns the
// comma-separated form the normalizer expects.
func joinList(v any) string {
	if v == nil {
		return ""
	}
	if list, err := cast.ToStringSliceE(v); err == nil {
		if _, isString := v.(string); !isString {
			return strings.Join(list, ", ")
		}
	}
	return cast.ToString(v)
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	return filepath.ToSlash(strings.TrimSuffix(id, ext))
}

// Get implements ports.ParameterSource.
func (s *Source) Get(ctx context.Context, name string, itemIndex int, def any) (any, error) {
	return s.mem.Get(ctx, name, itemIndex, def)
}

// Items implements ports.ItemCounter. A directory always holds one item.
func (s *Source) Items(context.Context) (int, error) {
	return 1, nil
}
