package loam

// KindFlow marks the document that carries the flow-level parameters.
const KindFlow = "flow"

// StepMetadata is the frontmatter of a markdown document in a flow directory.
// Step documents use the step keys; the single document with kind "flow"
// uses the flow keys instead.
type StepMetadata struct {
	Kind string `json:"kind" mapstructure:"kind"`

	// Step keys
	ID              string             `json:"id" mapstructure:"id"`
	Order           any                `json:"order" mapstructure:"order"`
	Name            string             `json:"name" mapstructure:"name"`
	Objective       string             `json:"objective" mapstructure:"objective"`
	Instructions    string             `json:"instructions" mapstructure:"instructions"`
	RequiredFields  any                `json:"required_fields" mapstructure:"required_fields"`
	AllowedTools    any                `json:"allowed_tools" mapstructure:"allowed_tools"`
	Next            string             `json:"next" mapstructure:"next"`
	ValidationRules []RuleMetadata     `json:"validation_rules" mapstructure:"validation_rules"`
	Behaviors       []BehaviorMetadata `json:"behaviors" mapstructure:"behaviors"`

	// Flow keys
	BotName        string         `json:"bot_name" mapstructure:"bot_name"`
	BotTone        string         `json:"bot_tone" mapstructure:"bot_tone"`
	BotPersonality string         `json:"bot_personality" mapstructure:"bot_personality"`
	Context        map[string]any `json:"context" mapstructure:"context"`
	OutputMode     string         `json:"output_mode" mapstructure:"output_mode"`
	TestStepID     string         `json:"test_step_id" mapstructure:"test_step_id"`
}

type RuleMetadata struct {
	Field        string `json:"field" mapstructure:"field"`
	Regex        string `json:"regex" mapstructure:"regex"`
	ErrorMessage string `json:"error_message" mapstructure:"error_message"`
}

type BehaviorMetadata struct {
	LeadType         string `json:"lead_type" mapstructure:"lead_type"`
	InputExamples    any    `json:"input_examples" mapstructure:"input_examples"`
	ResponseStrategy string `json:"response_strategy" mapstructure:"response_strategy"`
	ResponseExample  string `json:"response_example" mapstructure:"response_example"`
}
