// Package validator runs invoice checks against extracted records and turns failed
// results into flags. Checks never reject a record.
package validator

import (
	"context"

	"invex/internal/domain"
	"invex/internal/validator/invoice"
)

// Validator is the interface for a single built-in check.
type Validator interface {
	Validate(ctx context.Context, rec *domain.InvoiceRecord) []invoice.ValidationResult
	RuleKey() string
	RuleName() string
	RuleType() invoice.RuleType
}
