package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

var (
	compiled = sync.OnceValues(compile)
	printer  = message.NewPrinter(language.English)
)

func compile() (*sjsonschema.Schema, error) {
	schemaJSON, err := Generate()
	if err != nil {
		return nil, err
	}
	schemaDoc, err := sjsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}

	c := sjsonschema.NewCompiler()
	if err := c.AddResource("flow-v0.json", schemaDoc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	sch, err := c.Compile("flow-v0.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return sch, nil
}

// ValidateFile reads path and validates it with Validate.
func ValidateFile(path string) (*FlowDocument, []*ValidationError) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []*ValidationError{{
			Phase:    PhaseStructural,
			Message:  err.Error(),
			Severity: SeverityError,
		}}
	}
	return Validate(data)
}

// Validate runs the structural, semantic and domain phases on a YAML or JSON
// flow document. The document is returned when the first two phases pass.
func Validate(data []byte) (*FlowDocument, []*ValidationError) {
	doc, err := decodeGeneric(data)
	if err != nil {
		return nil, []*ValidationError{{
			Phase:    PhaseStructural,
			Message:  err.Error(),
			Severity: SeverityError,
		}}
	}

	if errs := validateSemantic(doc); len(errs) > 0 {
		return nil, errs
	}

	var flow FlowDocument
	if err := json.Unmarshal(doc, &flow); err != nil {
		return nil, []*ValidationError{{
			Phase:    PhaseStructural,
			Message:  err.Error(),
			Severity: SeverityError,
		}}
	}
	return &flow, ValidateDomain(&flow)
}

// decodeGeneric parses YAML into a JSON document. The top level must be a
// mapping with string keys all the way down.
func decodeGeneric(data []byte) ([]byte, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	if _, ok := raw.(map[string]any); !ok {
		return nil, fmt.Errorf("document must be a mapping, got %T", raw)
	}
	out, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("convert document to JSON: %w", err)
	}
	return out, nil
}

func validateSemantic(doc []byte) []*ValidationError {
	sch, err := compiled()
	if err != nil {
		return []*ValidationError{{
			Phase:    PhaseSemantic,
			Message:  err.Error(),
			Severity: SeverityError,
		}}
	}

	inst, err := sjsonschema.UnmarshalJSON(bytes.NewReader(doc))
	if err != nil {
		return []*ValidationError{{
			Phase:    PhaseSemantic,
			Message:  fmt.Sprintf("unmarshal document: %v", err),
			Severity: SeverityError,
		}}
	}

	err = sch.Validate(inst)
	if err == nil {
		return nil
	}
	ve, ok := err.(*sjsonschema.ValidationError)
	if !ok {
		return []*ValidationError{{
			Phase:    PhaseSemantic,
			Message:  err.Error(),
			Severity: SeverityError,
		}}
	}
	var errs []*ValidationError
	for _, cause := range flattenValidationErrors(ve) {
		errs = append(errs, &ValidationError{
			Phase:    PhaseSemantic,
			Path:     strings.Join(cause.InstanceLocation, "/"),
			Message:  cause.ErrorKind.LocalizedString(printer),
			Severity: SeverityError,
		})
	}
	return errs
}

// flattenValidationErrors recursively collects all leaf validation errors.
func flattenValidationErrors(ve *sjsonschema.ValidationError) []*sjsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*sjsonschema.ValidationError{ve}
	}
	var flat []*sjsonschema.ValidationError
	for _, cause := range ve.Causes {
		flat = append(flat, flattenValidationErrors(cause)...)
	}
	return flat
}

// ValidateDomain checks the rules the schema cannot express.
func ValidateDomain(flow *FlowDocument) []*ValidationError {
	var errs []*ValidationError
	warn := func(path, format string, args ...any) {
		errs = append(errs, &ValidationError{
			Phase:    PhaseDomain,
			Path:     path,
			Message:  fmt.Sprintf(format, args...),
			Severity: SeverityWarning,
		})
	}

	steps := flow.Steps.Step
	if len(steps) == 0 {
		warn("steps.step", "flow has no steps")
	}

	seen := make(map[string]int, len(steps))
	for i, s := range steps {
		path := fmt.Sprintf("steps.step[%d]", i)
		id := normalizeID(s.StepID)
		if id == "" {
			errs = append(errs, &ValidationError{
				Phase:    PhaseDomain,
				Path:     path + ".stepId",
				Message:  "step ID is blank",
				Severity: SeverityError,
			})
			continue
		}
		if first, ok := seen[id]; ok {
			warn(path+".stepId", "duplicate step ID %q, steps.step[%d] wins every lookup", id, first)
			continue
		}
		seen[id] = i
	}

	for i, s := range steps {
		path := fmt.Sprintf("steps.step[%d]", i)
		if next := normalizeID(s.NextStepID); next != "" {
			if _, ok := seen[next]; !ok {
				warn(path+".nextStepId", "next step %q does not exist", s.NextStepID)
			}
		}
		if s.ValidationRules == nil {
			continue
		}
		for j, r := range s.ValidationRules.Rule {
			if r.RegexPattern == "" {
				continue
			}
			if _, err := regexp.Compile(r.RegexPattern); err != nil {
				warn(fmt.Sprintf("%s.validationRules.rule[%d].regexPattern", path, j), "pattern does not compile: %v", err)
			}
		}
	}

	if flow.OutputMode == "test" && normalizeID(flow.TestStepID) == "" {
		warn("testStepId", "test mode without testStepId previews nothing")
	}

	return errs
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
