package runtime

import (
	"fmt"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// BuildReport summarizes cfg for batch mode.
func BuildReport(cfg *domain.FlowConfiguration) *domain.Report {
	return &domain.Report{
		Message:     fmt.Sprintf("Tool '%s' configured successfully.", domain.ToolName),
		BotIdentity: cfg.Identity,
		StepsCount:  len(cfg.Steps),
		StepsIDs:    cfg.IDs(),
	}
}

// BuildPreview turns a resolution into the test-mode answer.
func BuildPreview(res domain.Resolution, cfg *domain.FlowConfiguration, query string) *domain.Preview {
	if res.Step == nil {
		msg := res.Diagnostic
		if msg == "" {
			msg = fmt.Sprintf("step '%s' not found.", query)
		}
		return &domain.Preview{
			Found:        false,
			Message:      msg,
			AvailableIDs: cfg.IDs(),
		}
	}

	tree, err := PayloadTree(cfg.Identity, *res.Step, "")
	if err != nil {
		return &domain.Preview{Found: false, Message: err.Error(), AvailableIDs: cfg.IDs()}
	}
	return &domain.Preview{
		Found:     true,
		MatchType: res.Kind,
		Payload:   tree,
	}
}
