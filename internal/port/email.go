package port

import (
	"context"

	"invex/internal/domain"
)

// SummarySender delivers the outcome of a batch run. reportURL may be empty when the
// run was not archived.
type SummarySender interface {
	SendRunSummary(ctx context.Context, summary *domain.RunSummary, reportURL string) error
}
