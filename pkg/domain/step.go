package domain

// BotIdentity describes who the agent is. All fields are rendered with the
// request context before they reach this struct.
type BotIdentity struct {
	Name        string `json:"name" yaml:"name"`
	Tone        string `json:"tone" yaml:"tone"`
	Personality string `json:"personality" yaml:"personality"`
}

// ValidationRule is a technical check the agent must apply to a collected field.
// Regex is kept as the raw pattern string; compiling it is a caller concern.
type ValidationRule struct {
	Field        string `json:"field" yaml:"field"`
	Regex        string `json:"regex" yaml:"regex"`
	ErrorMessage string `json:"error_message" yaml:"error_message"`
}

// BehaviorScenario shows the agent how to answer a given kind of lead.
type BehaviorScenario struct {
	LeadType         string   `json:"lead_type" yaml:"lead_type"`
	InputExamples    []string `json:"input_examples" yaml:"input_examples"`
	ResponseStrategy string   `json:"response_strategy" yaml:"response_strategy"`
	ResponseExample  string   `json:"response_example" yaml:"response_example"`
}

// Step represents one stage of the guided dialogue.
//
// ID is lower-cased and trimmed. Uniqueness is not enforced: when two steps
// share an ID the first one in order wins every exact lookup.
type Step struct {
	ID string `json:"step_id" yaml:"step_id"`

	// Order is nil when the raw value was missing or not numeric.
	Order *float64 `json:"step_order,omitempty" yaml:"step_order,omitempty"`

	Name         string `json:"name" yaml:"name"`
	Objective    string `json:"objective" yaml:"objective"`
	Instructions string `json:"instructions" yaml:"instructions"`

	// RequiredFields and AllowedTools are technical keys and are never rendered.
	RequiredFields  []string           `json:"required_fields" yaml:"required_fields"`
	ValidationRules []ValidationRule   `json:"validation_rules" yaml:"validation_rules"`
	Behaviors       []BehaviorScenario `json:"expected_behaviors" yaml:"expected_behaviors"`
	AllowedTools    []string           `json:"available_tools" yaml:"available_tools"`

	NextStepID string `json:"next_step_id" yaml:"next_step_id"`
}

// FlowConfiguration is the normalized root object for a single request.
// It is read-only once built.
type FlowConfiguration struct {
	Identity BotIdentity `json:"bot_identity" yaml:"bot_identity"`
	Steps    []Step      `json:"steps" yaml:"steps"`
}

// IDs returns every step ID in order, duplicates and empty IDs included.
func (c *FlowConfiguration) IDs() []string {
	if c == nil {
		return []string{}
	}
	ids := make([]string, 0, len(c.Steps))
	for _, s := range c.Steps {
		ids = append(ids, s.ID)
	}
	return ids
}
