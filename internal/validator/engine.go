package validator

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"invex/internal/domain"
	"invex/internal/validator/invoice"
)

// Engine runs every registered check against a record.
type Engine struct {
	registry *Registry
}

// NewEngine creates a new validation engine.
func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// Check runs all checks and appends a "rule: message" flag for each failed result, to
// the offending line item or, for record-level results, to the record. It returns the
// number of flags added.
func (e *Engine) Check(ctx context.Context, rec *domain.InvoiceRecord) int {
	flagged := 0
	for _, v := range e.registry.All() {
		for _, r := range v.Validate(ctx, rec) {
			if r.Passed {
				continue
			}
			flag := fmt.Sprintf("%s: %s", v.RuleKey(), r.Message)
			if r.LineIndex != invoice.RecordLevel && r.LineIndex >= 0 && r.LineIndex < len(rec.LineItems) {
				item := &rec.LineItems[r.LineIndex]
				item.Flags = append(item.Flags, flag)
			} else {
				rec.Flags = append(rec.Flags, flag)
			}
			flagged++
		}
	}

	if flagged > 0 {
		logrus.WithFields(logrus.Fields{
			"file":   rec.FileName,
			"issuer": rec.Issuer,
			"flags":  flagged,
		}).Warn("invoice checks flagged record")
	}
	return flagged
}
