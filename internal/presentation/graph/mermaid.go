package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// Overlay highlights steps on the rendered graph.
type Overlay struct {
	// Current is the step a lookup resolved to.
	Current string
}

// GenerateMermaid produces a Mermaid flowchart of the flow, one node per step
// and one edge per next_step_id.
//
// Shapes:
// - First step: ((Circle))
// - Step with available tools: [[Subroutine]]
// - Step collecting required fields: [/Parallelogram/]
// - Default: [Rectangle]
//
// A next_step_id that names no step is drawn as a dashed edge to a
// "missing" node so broken flows stand out.
func GenerateMermaid(cfg *domain.FlowConfiguration, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	known := make(map[string]bool, len(cfg.Steps))
	for _, s := range cfg.Steps {
		known[s.ID] = true
	}

	declared := make(map[string]bool, len(cfg.Steps))
	for i, step := range cfg.Steps {
		safeID := sanitizeMermaidID(step.ID)
		if safeID == "" || declared[safeID] {
			continue
		}
		declared[safeID] = true

		opener, closer := "[", "]"
		switch {
		case i == 0:
			opener, closer = "((", "))"
		case len(step.AllowedTools) > 0:
			opener, closer = "[[", "]]"
		case len(step.RequiredFields) > 0:
			opener, closer = "[/", "/]"
		}

		label := step.ID
		if step.Name != "" {
			label = fmt.Sprintf("%s <br/> %s", step.ID, step.Name)
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, escapeLabel(label), closer)

		next := strings.ToLower(strings.TrimSpace(step.NextStepID))
		if next == "" {
			continue
		}
		if known[next] {
			fmt.Fprintf(&sb, "    %s --> %s\n", safeID, sanitizeMermaidID(next))
			continue
		}
		missing := "missing_" + sanitizeMermaidID(next)
		fmt.Fprintf(&sb, "    %s -.-> %s(\"%s ?\")\n", safeID, missing, escapeLabel(step.NextStepID))
	}

	if overlay != nil && overlay.Current != "" {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.Current))
	}

	return sb.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	return strings.NewReplacer(
		".", "_",
		"-", "_",
		"/", "_",
		"\\", "_",
		" ", "_",
	).Replace(id)
}
