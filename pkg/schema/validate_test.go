package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validFlow = `
botName: "Manu da {empresa}"
contextData:
  empresa: ACME
outputMode: test
testStepId: abertura
steps:
  step:
    - stepId: abertura
      stepOrder: 1
      stepName: Abertura
      requiredFields: nome, email
      nextStepId: vendas
      validationRules:
        rule:
          - field: email
            regexPattern: "^[^@]+@[^@]+$"
            errorMessage: E-mail inválido
    - stepId: vendas
      behaviors:
        scenario:
          - leadType: curioso
            inputExamples: "quanto custa?, tem desconto?"
items:
  - contextData: {empresa: Beta}
`

func findings(errs []*ValidationError, phase, severity string) []*ValidationError {
	var out []*ValidationError
	for _, e := range errs {
		if e.Phase == phase && e.Severity == severity {
			out = append(out, e)
		}
	}
	return out
}

func TestValidate_Valid(t *testing.T) {
	flow, errs := Validate([]byte(validFlow))
	require.Empty(t, errs)
	require.NotNil(t, flow)

	assert.Equal(t, "Manu da {empresa}", flow.BotName)
	require.Len(t, flow.Steps.Step, 2)
	assert.Equal(t, 1.0, *flow.Steps.Step[0].StepOrder)
	assert.Equal(t, "curioso", flow.Steps.Step[1].Behaviors.Scenario[0].LeadType)
	assert.Len(t, flow.Items, 1)
	assert.NoError(t, Err(errs))
}

func TestValidate_JSON(t *testing.T) {
	flow, errs := Validate([]byte(`{"steps": {"step": [{"stepId": "a"}]}}`))
	require.Empty(t, errs)
	assert.Equal(t, "a", flow.Steps.Step[0].StepID)
}

func TestValidate_Structural(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"syntax", "steps: [unclosed"},
		{"scalar", "just text"},
		{"list", "- a\n- b"},
		{"non-string keys", "steps:\n  step:\n    - stepId: a\ncontextData:\n  1: one"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flow, errs := Validate([]byte(tt.doc))
			assert.Nil(t, flow)
			require.Len(t, errs, 1)
			assert.Equal(t, PhaseStructural, errs[0].Phase)
			assert.Equal(t, SeverityError, errs[0].Severity)
		})
	}
}

func TestValidate_Semantic(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		path string
	}{
		{"missing steps", "botName: Manu", ""},
		{"missing stepId", "steps:\n  step:\n    - stepName: X", "steps/step/0"},
		{"empty stepId", "steps:\n  step:\n    - stepId: ''", "steps/step/0/stepId"},
		{"order as text", "steps:\n  step:\n    - stepId: a\n      stepOrder: first", "steps/step/0/stepOrder"},
		{"unknown key", "steps:\n  step:\n    - stepId: a\n      stepNmae: X", "steps/step/0"},
		{"bad mode", "outputMode: chat\nsteps:\n  step: []", "outputMode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flow, errs := Validate([]byte(tt.doc))
			assert.Nil(t, flow)
			semantic := findings(errs, PhaseSemantic, SeverityError)
			require.NotEmpty(t, semantic)

			var paths []string
			for _, e := range semantic {
				paths = append(paths, e.Path)
				assert.NotEmpty(t, e.Message)
			}
			assert.Contains(t, paths, tt.path)
			assert.Error(t, Err(errs))
		})
	}
}

func TestValidateDomain(t *testing.T) {
	doc := `
outputMode: test
steps:
  step:
    - stepId: Abertura
      nextStepId: fechamento
    - stepId: " abertura "
      validationRules:
        rule:
          - field: cpf
            regexPattern: "[0-9"
    - stepId: "   "
`
	flow, errs := Validate([]byte(doc))
	require.NotNil(t, flow)

	warnings := findings(errs, PhaseDomain, SeverityWarning)
	var messages []string
	for _, w := range warnings {
		messages = append(messages, w.Path+": "+w.Message)
	}
	joined := strings.Join(messages, "\n")
	assert.Contains(t, joined, `steps.step[1].stepId: duplicate step ID "abertura"`)
	assert.Contains(t, joined, `steps.step[0].nextStepId: next step "fechamento" does not exist`)
	assert.Contains(t, joined, "steps.step[1].validationRules.rule[0].regexPattern: pattern does not compile")
	assert.Contains(t, joined, "testStepId")

	blank := findings(errs, PhaseDomain, SeverityError)
	require.Len(t, blank, 1)
	assert.Equal(t, "steps.step[2].stepId", blank[0].Path)

	var agg *AggregateError
	require.ErrorAs(t, Err(errs), &agg)
	assert.Len(t, agg.Errors, 1)
}

func TestValidateDomain_NextStepNormalized(t *testing.T) {
	flow := &FlowDocument{Steps: StepCollection{Step: []StepDocument{
		{StepID: "abertura", NextStepID: " VENDAS "},
		{StepID: "vendas"},
	}}}
	assert.Empty(t, ValidateDomain(flow))
}

func TestValidateDomain_NoSteps(t *testing.T) {
	errs := ValidateDomain(&FlowDocument{})
	require.Len(t, errs, 1)
	assert.Equal(t, "flow has no steps", errs[0].Message)
	assert.NoError(t, Err(errs))
}

func TestValidateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flow.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validFlow), 0o644))

	flow, errs := ValidateFile(path)
	assert.Empty(t, errs)
	assert.NotNil(t, flow)

	_, errs = ValidateFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Len(t, errs, 1)
	assert.Equal(t, PhaseStructural, errs[0].Phase)
}

func TestAggregateError(t *testing.T) {
	one := &AggregateError{Errors: []*ValidationError{{Phase: PhaseDomain, Path: "p", Message: "m"}}}
	assert.Equal(t, "[domain] p: m", one.Error())

	two := &AggregateError{Errors: []*ValidationError{
		{Phase: PhaseSemantic, Message: "a"},
		{Phase: PhaseSemantic, Message: "b"},
	}}
	assert.Equal(t, "2 validation errors:\n  1. [semantic] a\n  2. [semantic] b\n", two.Error())
}
