package schema

// FlowDocument is a flow file as authors write it. Keys match the parameter
// names read by the engine.
type FlowDocument struct {
	BotName        string         `json:"botName,omitempty" yaml:"botName,omitempty" jsonschema_description:"Agent name. May reference {contextData} keys."`
	BotTone        string         `json:"botTone,omitempty" yaml:"botTone,omitempty"`
	BotPersonality string         `json:"botPersonality,omitempty" yaml:"botPersonality,omitempty"`
	ContextData    map[string]any `json:"contextData,omitempty" yaml:"contextData,omitempty" jsonschema_description:"Values substituted into {placeholders}."`
	OutputMode     string         `json:"outputMode,omitempty" yaml:"outputMode,omitempty" jsonschema:"enum=aiTool,enum=test"`
	TestStepID     string         `json:"testStepId,omitempty" yaml:"testStepId,omitempty"`
	Steps          StepCollection `json:"steps" yaml:"steps"`

	// Items holds per-item parameter overrides for batch execution.
	Items []map[string]any `json:"items,omitempty" yaml:"items,omitempty"`
}

// StepCollection wraps the step list the way hosts store it.
type StepCollection struct {
	Step []StepDocument `json:"step" yaml:"step"`
}

// StepDocument is one step entry.
type StepDocument struct {
	StepID           string   `json:"stepId" yaml:"stepId" jsonschema:"minLength=1"`
	StepOrder        *float64 `json:"stepOrder,omitempty" yaml:"stepOrder,omitempty"`
	StepName         string   `json:"stepName,omitempty" yaml:"stepName,omitempty"`
	StepObjective    string   `json:"stepObjective,omitempty" yaml:"stepObjective,omitempty"`
	StepInstructions string   `json:"stepInstructions,omitempty" yaml:"stepInstructions,omitempty"`
	RequiredFields   string   `json:"requiredFields,omitempty" yaml:"requiredFields,omitempty" jsonschema_description:"Comma-separated field keys."`
	AllowedTools     string   `json:"allowedTools,omitempty" yaml:"allowedTools,omitempty" jsonschema_description:"Comma-separated tool names."`
	NextStepID       string   `json:"nextStepId,omitempty" yaml:"nextStepId,omitempty"`

	ValidationRules *RuleCollection     `json:"validationRules,omitempty" yaml:"validationRules,omitempty"`
	Behaviors       *ScenarioCollection `json:"behaviors,omitempty" yaml:"behaviors,omitempty"`
}

// RuleCollection wraps the validation rules of a step.
type RuleCollection struct {
	Rule []RuleDocument `json:"rule" yaml:"rule"`
}

// RuleDocument is a technical check on a collected field.
type RuleDocument struct {
	Field        string `json:"field" yaml:"field"`
	RegexPattern string `json:"regexPattern,omitempty" yaml:"regexPattern,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty" yaml:"errorMessage,omitempty"`
}

// ScenarioCollection wraps the expected behaviors of a step.
type ScenarioCollection struct {
	Scenario []ScenarioDocument `json:"scenario" yaml:"scenario"`
}

// ScenarioDocument shows the agent how to answer one kind of lead.
type ScenarioDocument struct {
	LeadType         string `json:"leadType,omitempty" yaml:"leadType,omitempty"`
	InputExamples    string `json:"inputExamples,omitempty" yaml:"inputExamples,omitempty" jsonschema_description:"Comma-separated sample messages."`
	ResponseStrategy string `json:"responseStrategy,omitempty" yaml:"responseStrategy,omitempty"`
	ResponseExample  string `json:"responseExample,omitempty" yaml:"responseExample,omitempty"`
}
