package runtime

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/wayfinder/pkg/compact"
	"github.com/aretw0/wayfinder/pkg/domain"
)

// StatusSuccess marks a successful lookup payload.
const StatusSuccess = "success"

// ModeActiveAgent tags payloads served to a live agent.
const ModeActiveAgent = "active_agent"

// stepPayload is the public view of a step sent to agents.
type stepPayload struct {
	StepID          string                    `json:"step_id"`
	StepOrder       *float64                  `json:"step_order"`
	Name            string                    `json:"name"`
	Objective       string                    `json:"objective"`
	Instructions    string                    `json:"instructions"`
	RequiredFields  []string                  `json:"required_fields"`
	ValidationRules []domain.ValidationRule   `json:"validation_rules"`
	Behaviors       []domain.BehaviorScenario `json:"expected_behaviors"`
	AvailableTools  []string                  `json:"available_tools"`
	NextStepID      string                    `json:"next_step_id"`
}

type lookupPayload struct {
	Status      string             `json:"status"`
	Mode        string             `json:"mode,omitempty"`
	BotIdentity domain.BotIdentity `json:"bot_identity"`
	CurrentStep stepPayload        `json:"current_step"`
}

// Lookup resolves query against cfg and returns the agent-readable answer:
// the compacted step payload as indented JSON, or a diagnostic that always
// lists every known step ID.
func Lookup(query string, cfg *domain.FlowConfiguration) string {
	if cfg == nil {
		cfg = &domain.FlowConfiguration{}
	}
	return Format(Resolve(query, cfg.Steps), cfg)
}

// Format renders an existing resolution the same way Lookup does.
func Format(res domain.Resolution, cfg *domain.FlowConfiguration) string {
	if res.Step != nil {
		out, err := Payload(cfg.Identity, *res.Step, ModeActiveAgent)
		if err == nil {
			return out
		}
		// Encoding a tree of strings and numbers cannot fail; keep the caller
		// answered anyway.
		return fmt.Sprintf("Error: could not encode step '%s': %v", res.Step.ID, err)
	}
	return NotFoundMessage(res) + " Available IDs: " + QuoteIDs(cfg.IDs()) + "."
}

// NotFoundMessage explains why a resolution carries no step.
func NotFoundMessage(res domain.Resolution) string {
	switch {
	case res.Kind == domain.MatchEmpty:
		return "Error: " + DiagnosticEmpty + ", provide a valid step ID."
	case res.Diagnostic != "":
		return fmt.Sprintf("Error: step ID '%s' does not exist, %s", res.Query, res.Diagnostic)
	default:
		return fmt.Sprintf("Error: step ID '%s' does not exist in the flow.", res.Query)
	}
}

// QuoteIDs lists ids as a comma-separated list of quoted strings.
func QuoteIDs(ids []string) string {
	if len(ids) == 0 {
		return "(none)"
	}
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = strconv.Quote(id)
	}
	return strings.Join(quoted, ", ")
}

// Payload builds the compacted response for a matched step and encodes it as
// indented JSON. An empty mode is omitted.
func Payload(identity domain.BotIdentity, step domain.Step, mode string) (string, error) {
	tree, err := PayloadTree(identity, step, mode)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tree); err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// PayloadTree returns the compacted response as a generic JSON tree.
func PayloadTree(identity domain.BotIdentity, step domain.Step, mode string) (any, error) {
	payload := lookupPayload{
		Status:      StatusSuccess,
		Mode:        mode,
		BotIdentity: identity,
		CurrentStep: stepPayload{
			StepID:          step.ID,
			StepOrder:       step.Order,
			Name:            step.Name,
			Objective:       step.Objective,
			Instructions:    step.Instructions,
			RequiredFields:  step.RequiredFields,
			ValidationRules: step.ValidationRules,
			Behaviors:       step.Behaviors,
			AvailableTools:  step.AllowedTools,
			NextStepID:      step.NextStepID,
		},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	compacted, ok := compact.Compact(tree)
	if !ok {
		return map[string]any{}, nil
	}
	return compacted, nil
}
