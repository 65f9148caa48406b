package domain

// Parameter names read from a ports.ParameterSource.
const (
	ParamOutputMode     = "outputMode"
	ParamTestStepID     = "testStepId"
	ParamContextData    = "contextData"
	ParamBotName        = "botName"
	ParamBotTone        = "botTone"
	ParamBotPersonality = "botPersonality"
	ParamSteps          = "steps"
)

// DefaultBotName is used when the botName parameter is absent.
const DefaultBotName = "Bot"

// OutputMode selects how the engine answers a batch execution.
type OutputMode string

const (
	// ModeAITool exposes the flow as an agent tool; batch execution reports a summary.
	ModeAITool OutputMode = "aiTool"
	// ModeTest previews the payload an agent would receive for testStepId.
	ModeTest OutputMode = "test"
)

// ToolName is the name under which the lookup is offered to agents.
const ToolName = "get_step_instructions"

// ToolDescription tells the agent when to call the lookup tool.
const ToolDescription = "CRITICAL: use this tool to get the instructions on HOW to act in the current step of the conversation. Returns a JSON script for the step."

// ToolArgStepID is the single argument of the lookup tool.
const ToolArgStepID = "step_id"
