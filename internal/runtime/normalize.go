package runtime

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/aretw0/wayfinder/pkg/template"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
)

// RawIdentity holds the identity parameters exactly as the host returned them.
type RawIdentity struct {
	Name        any
	Tone        any
	Personality any
}

// rawStep mirrors one entry of the steps collection as the host stores it.
// Every field is untyped: shape problems are handled field by field.
type rawStep struct {
	StepID           any `mapstructure:"stepId"`
	StepOrder        any `mapstructure:"stepOrder"`
	StepName         any `mapstructure:"stepName"`
	StepObjective    any `mapstructure:"stepObjective"`
	StepInstructions any `mapstructure:"stepInstructions"`
	RequiredFields   any `mapstructure:"requiredFields"`
	ValidationRules  any `mapstructure:"validationRules"`
	AllowedTools     any `mapstructure:"allowedTools"`
	NextStepID       any `mapstructure:"nextStepId"`
	Behaviors        any `mapstructure:"behaviors"`
}

type rawRule struct {
	Field        any `mapstructure:"field"`
	RegexPattern any `mapstructure:"regexPattern"`
	ErrorMessage any `mapstructure:"errorMessage"`
}

type rawScenario struct {
	LeadType         any `mapstructure:"leadType"`
	InputExamples    any `mapstructure:"inputExamples"`
	ResponseStrategy any `mapstructure:"responseStrategy"`
	ResponseExample  any `mapstructure:"responseExample"`
}

// Normalize reads the flow parameters for one item from src and builds its
// FlowConfiguration.
//
// Shape problems never fail: a broken contextData becomes an empty context and
// broken identity parameters fall back to their defaults. The only error is a
// source failure while reading the steps parameter, which the host must see.
func Normalize(ctx context.Context, src ports.ParameterSource, itemIndex int) (*domain.FlowConfiguration, error) {
	rawCtx, err := src.Get(ctx, domain.ParamContextData, itemIndex, map[string]any{})
	if err != nil {
		rawCtx = nil
	}

	identity := RawIdentity{
		Name:        getOr(ctx, src, domain.ParamBotName, itemIndex, domain.DefaultBotName),
		Tone:        getOr(ctx, src, domain.ParamBotTone, itemIndex, ""),
		Personality: getOr(ctx, src, domain.ParamBotPersonality, itemIndex, ""),
	}

	rawSteps, err := src.Get(ctx, domain.ParamSteps, itemIndex, nil)
	if err != nil {
		return nil, fmt.Errorf("reading %q for item %d: %w: %w", domain.ParamSteps, itemIndex, domain.ErrSourceUnavailable, err)
	}

	return NormalizeRaw(identity, rawSteps, ContextMap(rawCtx)), nil
}

func getOr(ctx context.Context, src ports.ParameterSource, name string, itemIndex int, def any) any {
	v, err := src.Get(ctx, name, itemIndex, def)
	if err != nil {
		return def
	}
	return v
}

// NormalizeRaw converts loosely-typed identity and step definitions into the
// canonical FlowConfiguration, rendering every human-facing field with vars.
func NormalizeRaw(identity RawIdentity, rawSteps any, vars map[string]any) *domain.FlowConfiguration {
	cfg := &domain.FlowConfiguration{
		Identity: domain.BotIdentity{
			Name:        template.Render(identity.Name, vars),
			Tone:        template.Render(identity.Tone, vars),
			Personality: template.Render(identity.Personality, vars),
		},
		Steps: []domain.Step{},
	}

	for _, entry := range collection(rawSteps, "step") {
		cfg.Steps = append(cfg.Steps, normalizeStep(entry, vars))
	}
	return cfg
}

func normalizeStep(entry any, vars map[string]any) domain.Step {
	var raw rawStep
	if err := mapstructure.Decode(entry, &raw); err != nil {
		// Entries that are not objects carry no fields: every default applies.
		raw = rawStep{}
	}

	step := domain.Step{
		ID:              strings.ToLower(strings.TrimSpace(template.ToText(raw.StepID))),
		Order:           toOrder(raw.StepOrder),
		Name:            template.Render(raw.StepName, vars),
		Objective:       template.Render(raw.StepObjective, vars),
		Instructions:    template.Render(raw.StepInstructions, vars),
		RequiredFields:  splitList(raw.RequiredFields, nil),
		ValidationRules: []domain.ValidationRule{},
		Behaviors:       []domain.BehaviorScenario{},
		AllowedTools:    splitList(raw.AllowedTools, nil),
		NextStepID:      template.ToText(raw.NextStepID),
	}

	for _, r := range collection(raw.ValidationRules, "rule") {
		var rule rawRule
		if err := mapstructure.Decode(r, &rule); err != nil {
			rule = rawRule{}
		}
		step.ValidationRules = append(step.ValidationRules, domain.ValidationRule{
			Field:        template.ToText(rule.Field),
			Regex:        template.ToText(rule.RegexPattern),
			ErrorMessage: template.Render(rule.ErrorMessage, vars),
		})
	}

	for _, b := range collection(raw.Behaviors, "scenario") {
		var sc rawScenario
		if err := mapstructure.Decode(b, &sc); err != nil {
			sc = rawScenario{}
		}
		step.Behaviors = append(step.Behaviors, domain.BehaviorScenario{
			LeadType:         template.Render(sc.LeadType, vars),
			InputExamples:    splitList(sc.InputExamples, vars),
			ResponseStrategy: template.Render(sc.ResponseStrategy, vars),
			ResponseExample:  template.Render(sc.ResponseExample, vars),
		})
	}

	return step
}

// ContextMap returns raw as a string-keyed map, or an empty map when raw is
// anything else (nil, arrays, scalars, JSON text).
func ContextMap(raw any) map[string]any {
	switch m := raw.(type) {
	case map[string]any:
		if m == nil {
			return map[string]any{}
		}
		return m
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			if key, ok := k.(string); ok {
				out[key] = v
			}
		}
		return out
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out
	}
	return map[string]any{}
}

// collection extracts the entries of a nested collection. Hosts wrap lists as
// {key: [...]}; a bare list is accepted too. Anything else yields no entries.
func collection(raw any, key string) []any {
	if raw == nil {
		return nil
	}
	if m := ContextMap(raw); len(m) > 0 {
		return asList(m[key])
	}
	return asList(raw)
}

func asList(raw any) []any {
	if list, ok := raw.([]any); ok {
		return list
	}
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// splitList splits a comma-separated value, trims every token and drops the
// empty ones. A list value contributes one token per element. Tokens are
// rendered only when vars is non-nil.
func splitList(raw any, vars map[string]any) []string {
	var tokens []string
	if list := asList(raw); list != nil {
		tokens = make([]string, len(list))
		for i, v := range list {
			tokens[i] = template.ToText(v)
		}
	} else {
		tokens = strings.Split(template.ToText(raw), ",")
	}

	out := []string{}
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if vars != nil {
			token = template.Render(token, vars)
		}
		if token != "" {
			out = append(out, token)
		}
	}
	return out
}

// toOrder copies a numeric step order. Missing or non-numeric values yield nil.
func toOrder(raw any) *float64 {
	switch v := raw.(type) {
	case nil, bool:
		return nil
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return nil
	}
	return &f
}
