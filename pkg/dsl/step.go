package dsl

import "strings"

// StepBuilder provides a fluent API for configuring a step.
type StepBuilder struct {
	raw       map[string]any
	rules     []any
	scenarios []any
}

// Scenario is an expected behavior of the agent for one kind of lead.
type Scenario struct {
	LeadType         string
	InputExamples    []string
	ResponseStrategy string
	ResponseExample  string
}

// Order sets the position of the step in the dialogue.
func (s *StepBuilder) Order(order float64) *StepBuilder {
	s.raw["stepOrder"] = order
	return s
}

// Name sets the human-readable step name.
func (s *StepBuilder) Name(name string) *StepBuilder {
	s.raw["stepName"] = name
	return s
}

// Objective sets what the step must achieve.
func (s *StepBuilder) Objective(objective string) *StepBuilder {
	s.raw["stepObjective"] = objective
	return s
}

// Instructions sets how the agent should act.
func (s *StepBuilder) Instructions(instructions string) *StepBuilder {
	s.raw["stepInstructions"] = instructions
	return s
}

// Require lists the fields the agent must collect.
func (s *StepBuilder) Require(fields ...string) *StepBuilder {
	s.raw["requiredFields"] = strings.Join(fields, ", ")
	return s
}

// Tools lists the tools the agent may call in this step.
func (s *StepBuilder) Tools(tools ...string) *StepBuilder {
	s.raw["allowedTools"] = strings.Join(tools, ", ")
	return s
}

// Rule adds a regex check for a collected field.
func (s *StepBuilder) Rule(field, pattern, message string) *StepBuilder {
	s.rules = append(s.rules, map[string]any{
		"field":        field,
		"regexPattern": pattern,
		"errorMessage": message,
	})
	return s
}

// Scenario adds an expected behavior.
func (s *StepBuilder) Scenario(sc Scenario) *StepBuilder {
	s.scenarios = append(s.scenarios, map[string]any{
		"leadType":         sc.LeadType,
		"inputExamples":    strings.Join(sc.InputExamples, ", "),
		"responseStrategy": sc.ResponseStrategy,
		"responseExample":  sc.ResponseExample,
	})
	return s
}

// Next links the step to the one that follows it.
func (s *StepBuilder) Next(id string) *StepBuilder {
	s.raw["nextStepId"] = id
	return s
}

func (s *StepBuilder) build() map[string]any {
	out := make(map[string]any, len(s.raw)+2)
	for k, v := range s.raw {
		out[k] = v
	}
	if len(s.rules) > 0 {
		out["validationRules"] = map[string]any{"rule": append([]any(nil), s.rules...)}
	}
	if len(s.scenarios) > 0 {
		out["behaviors"] = map[string]any{"scenario": append([]any(nil), s.scenarios...)}
	}
	return out
}
