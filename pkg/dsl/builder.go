package dsl

import (
	"github.com/aretw0/wayfinder/pkg/adapters/memory"
	"github.com/aretw0/wayfinder/pkg/domain"
)

// Builder manages the flow construction.
type Builder struct {
	params map[string]any
	steps  []*StepBuilder
	byID   map[string]*StepBuilder
}

// New creates a new flow builder.
func New() *Builder {
	return &Builder{
		params: make(map[string]any),
		byID:   make(map[string]*StepBuilder),
	}
}

// Bot sets the agent name. It may reference context keys.
func (b *Builder) Bot(name string) *Builder {
	b.params[domain.ParamBotName] = name
	return b
}

// Tone sets the agent tone.
func (b *Builder) Tone(tone string) *Builder {
	b.params[domain.ParamBotTone] = tone
	return b
}

// Personality sets the agent personality.
func (b *Builder) Personality(personality string) *Builder {
	b.params[domain.ParamBotPersonality] = personality
	return b
}

// Context adds a value substituted into {key} placeholders.
func (b *Builder) Context(key string, value any) *Builder {
	ctx, _ := b.params[domain.ParamContextData].(map[string]any)
	if ctx == nil {
		ctx = make(map[string]any)
		b.params[domain.ParamContextData] = ctx
	}
	ctx[key] = value
	return b
}

// Test switches the flow to test mode, previewing stepID.
func (b *Builder) Test(stepID string) *Builder {
	b.params[domain.ParamOutputMode] = string(domain.ModeTest)
	b.params[domain.ParamTestStepID] = stepID
	return b
}

// Add creates a new step in the flow.
// If the step already exists, it returns the existing builder.
func (b *Builder) Add(id string) *StepBuilder {
	if sb, ok := b.byID[id]; ok {
		return sb
	}
	sb := &StepBuilder{raw: map[string]any{"stepId": id}}
	b.byID[id] = sb
	b.steps = append(b.steps, sb)
	return sb
}

// Params returns the raw flow parameters in host format. Steps keep the
// order in which they were added.
func (b *Builder) Params() map[string]any {
	out := make(map[string]any, len(b.params)+1)
	for k, v := range b.params {
		if ctx, ok := v.(map[string]any); ok {
			cp := make(map[string]any, len(ctx))
			for ck, cv := range ctx {
				cp[ck] = cv
			}
			v = cp
		}
		out[k] = v
	}

	steps := make([]any, len(b.steps))
	for i, sb := range b.steps {
		steps[i] = sb.build()
	}
	out[domain.ParamSteps] = map[string]any{"step": steps}
	return out
}

// Build compiles the flow into an in-memory parameter source.
func (b *Builder) Build() *memory.Source {
	return memory.NewSource(b.Params())
}
