package port

import (
	"context"

	"github.com/google/uuid"

	"invex/internal/domain"
)

// InvoiceRepository defines the contract for batch run persistence.
// Records and failures are always stored under the run they belong to.
type InvoiceRepository interface {
	SaveRun(ctx context.Context, summary *domain.RunSummary) error
	SaveRecord(ctx context.Context, runID uuid.UUID, rec *domain.InvoiceRecord) error
	SaveFailure(ctx context.Context, runID uuid.UUID, failure *domain.Failure) error
}
