package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/wayfinder/internal/presentation/graph"
	"github.com/aretw0/wayfinder/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		steps    []domain.Step
		overlay  *graph.Overlay
		contains []string
		excludes []string
	}{
		{
			name: "Shapes",
			steps: []domain.Step{
				{ID: "abertura", Name: "Abertura"},
				{ID: "agenda", AllowedTools: []string{"agendar"}},
				{ID: "cadastro", RequiredFields: []string{"nome"}},
				{ID: "fim"},
			},
			contains: []string{
				"abertura((\"abertura <br/> Abertura\"))",
				"agenda[[\"agenda\"]]",
				"cadastro[/\"cadastro\"/]",
				"fim[\"fim\"]",
			},
		},
		{
			name: "Next Step Edges",
			steps: []domain.Step{
				{ID: "a", NextStepID: "B"},
				{ID: "b", NextStepID: "ghost"},
			},
			contains: []string{
				"a --> b",
				"b -.-> missing_ghost(\"ghost ?\")",
			},
		},
		{
			name: "ID Sanitization",
			steps: []domain.Step{
				{ID: "etapa.um"},
				{ID: "etapa-dois", Name: "Say \"hi\""},
			},
			contains: []string{
				"etapa_um((\"etapa.um\"))",
				"etapa_dois[\"etapa-dois <br/> Say 'hi'\"]",
			},
		},
		{
			name: "Duplicates Declared Once",
			steps: []domain.Step{
				{ID: "dup", Name: "First"},
				{ID: "dup", Name: "Second"},
			},
			contains: []string{"First"},
			excludes: []string{"Second"},
		},
		{
			name:     "Overlay",
			steps:    []domain.Step{{ID: "a"}},
			overlay:  &graph.Overlay{Current: "a"},
			contains: []string{"class a current;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(&domain.FlowConfiguration{Steps: tt.steps}, tt.overlay)
			if !strings.HasPrefix(got, "graph TD\n") {
				t.Errorf("missing header:\n%s", got)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("expected output to contain %q\nGot:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("expected output not to contain %q\nGot:\n%s", unwanted, got)
				}
			}
		})
	}
}
