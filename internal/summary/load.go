package summary

import (
	"context"

	"github.com/abhisek/qrayti/internal/api"
)

// Generator produces summary sections. api.Service satisfies it.
type Generator interface {
	GenerateSummary(ctx context.Context, content string) ([]api.SummarySection, error)
}

// Load runs one generation call and returns the event that settles the
// Loading phase.
func Load(ctx context.Context, gen Generator, content string) Event {
	sections, err := gen.GenerateSummary(ctx, content)
	if err != nil {
		return LoadFailed{Err: err}
	}
	return Loaded{Sections: sections}
}
