package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	return r.Render, nil
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// StepMarkdown describes a resolved step for humans.
func StepMarkdown(identity domain.BotIdentity, res domain.Resolution) string {
	var sb strings.Builder
	step := res.Step

	title := step.ID
	if step.Name != "" {
		title = step.Name
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "`%s` · %s", step.ID, res.Kind)
	if res.Kind == domain.MatchFuzzy {
		fmt.Fprintf(&sb, " (query `%s`)", res.Query)
	}
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "**Agent:** %s", identity.Name)
	if identity.Tone != "" {
		fmt.Fprintf(&sb, " · %s", identity.Tone)
	}
	sb.WriteString("\n\n")

	section(&sb, "Objective", step.Objective)
	section(&sb, "Instructions", step.Instructions)
	list(&sb, "Required fields", step.RequiredFields)

	if len(step.ValidationRules) > 0 {
		sb.WriteString("## Validation\n\n")
		for _, r := range step.ValidationRules {
			fmt.Fprintf(&sb, "- `%s` must match `%s`", r.Field, r.Regex)
			if r.ErrorMessage != "" {
				fmt.Fprintf(&sb, ": %s", r.ErrorMessage)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	for _, b := range step.Behaviors {
		fmt.Fprintf(&sb, "## Lead: %s\n\n", b.LeadType)
		list(&sb, "Examples", b.InputExamples)
		section(&sb, "Strategy", b.ResponseStrategy)
		if b.ResponseExample != "" {
			fmt.Fprintf(&sb, "> %s\n\n", b.ResponseExample)
		}
	}

	list(&sb, "Tools", step.AllowedTools)
	if step.NextStepID != "" {
		fmt.Fprintf(&sb, "Next: `%s`\n", step.NextStepID)
	}
	return sb.String()
}

func section(sb *strings.Builder, title, body string) {
	if body == "" {
		return
	}
	fmt.Fprintf(sb, "**%s:** %s\n\n", title, body)
}

func list(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "**%s:**\n\n", title)
	for _, it := range items {
		fmt.Fprintf(sb, "- %s\n", it)
	}
	sb.WriteString("\n")
}
