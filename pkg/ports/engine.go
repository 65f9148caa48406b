package ports

import (
	"context"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// Lookuper is the surface transports need to answer agent requests.
type Lookuper interface {
	// Lookup resolves a step ID and returns agent-readable text.
	Lookup(ctx context.Context, query string) (string, error)
	// Report summarizes the configured flow.
	Report(ctx context.Context) (*domain.Report, error)
	// Configuration returns the normalized flow for the current request.
	Configuration(ctx context.Context) (*domain.FlowConfiguration, error)
}
