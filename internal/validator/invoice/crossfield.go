package invoice

import (
	"context"

	"github.com/shopspring/decimal"

	"invex/internal/domain"
)

var grandTotalTolerance = decimal.RequireFromString("1.00")

// crossFieldValidator checks relationships between different parts of the record.
type crossFieldValidator struct {
	ruleKey  string
	ruleName string
	validate func(*domain.InvoiceRecord) []ValidationResult
}

func (v *crossFieldValidator) RuleKey() string    { return v.ruleKey }
func (v *crossFieldValidator) RuleName() string   { return v.ruleName }
func (v *crossFieldValidator) RuleType() RuleType { return RuleTypeCrossField }

func (v *crossFieldValidator) Validate(_ context.Context, rec *domain.InvoiceRecord) []ValidationResult {
	return v.validate(rec)
}

// CrossFieldValidators returns all cross-field validators.
func CrossFieldValidators() []*crossFieldValidator {
	return []*crossFieldValidator{
		{
			ruleKey: "xf.grand_total", ruleName: "Cross-field: Stated Grand Total",
			validate: func(rec *domain.InvoiceRecord) []ValidationResult {
				stated := rec.Summary.StatedTotal
				if !stated.Valid {
					return nil
				}
				// Round-off lines are common, hence the wider tolerance.
				passed := approxEqual(stated.Decimal, rec.Summary.Total, grandTotalTolerance)
				return []ValidationResult{mathResult(passed, RecordLevel, "summary.stated_total",
					rec.Summary.Total.StringFixed(2), stated.Decimal.StringFixed(2))}
			},
		},
	}
}
