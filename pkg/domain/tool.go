package domain

// Tool defines metadata about a tool offered to an agent.
// This is used for generating schemas/prompts.
type Tool struct {
	Name        string         `json:"name" yaml:"name" mapstructure:"name"`
	Description string         `json:"description" yaml:"description" mapstructure:"description"`
	Parameters  map[string]any `json:"parameters,omitempty" yaml:"parameters,omitempty" mapstructure:"parameters"`
}

// LookupTool describes the step lookup tool as a JSON-Schema-style function
// declaration, compatible with OpenAI/MCP tool schemas.
func LookupTool() Tool {
	return Tool{
		Name:        ToolName,
		Description: ToolDescription,
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				ToolArgStepID: map[string]any{
					"type":        "string",
					"description": `The unique ID of the step you want to fetch (e.g. "opening").`,
				},
			},
			"required": []string{ToolArgStepID},
		},
	}
}
