package invoice

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"invex/internal/domain"
)

var lineTolerance = decimal.RequireFromString("0.01")

// mathValidator checks arithmetic relationships between line fields.
type mathValidator struct {
	ruleKey  string
	ruleName string
	validate func(*domain.InvoiceRecord) []ValidationResult
}

func (v *mathValidator) RuleKey() string    { return v.ruleKey }
func (v *mathValidator) RuleName() string   { return v.ruleName }
func (v *mathValidator) RuleType() RuleType { return RuleTypeSumCheck }

func (v *mathValidator) Validate(_ context.Context, rec *domain.InvoiceRecord) []ValidationResult {
	return v.validate(rec)
}

func approxEqual(a, b, tolerance decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}

func mathResult(passed bool, line int, fieldPath, expected, actual string) ValidationResult {
	msg := fmt.Sprintf("%s matches", fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s mismatch (expected %s, got %s)", fieldPath, expected, actual)
	}
	return ValidationResult{
		Passed: passed, FieldPath: fieldPath, LineIndex: line,
		ExpectedValue: expected, ActualValue: actual, Message: msg,
	}
}

func nonZero(n decimal.NullDecimal) bool {
	return n.Valid && !n.Decimal.IsZero()
}

// MathValidators returns the per-line tax invariant checks.
func MathValidators() []*mathValidator {
	return []*mathValidator{
		{
			ruleKey: "tax.total", ruleName: "Tax: Line Total",
			validate: func(rec *domain.InvoiceRecord) []ValidationResult {
				results := make([]ValidationResult, 0, len(rec.LineItems))
				for i := range rec.LineItems {
					item := &rec.LineItems[i]
					if !item.Total.Valid || !item.TaxableAmount.Valid {
						continue
					}
					fp := fmt.Sprintf("line_items[%d].total", i)
					expected := item.TaxableAmount.Decimal.
						Add(zeroIfNull(item.Tax.IGSTAmount)).
						Add(zeroIfNull(item.Tax.CGSTAmount)).
						Add(zeroIfNull(item.Tax.SGSTAmount))
					passed := approxEqual(item.Total.Decimal, expected, lineTolerance)
					results = append(results, mathResult(passed, i, fp, expected.StringFixed(2), item.Total.Decimal.StringFixed(2)))
				}
				return results
			},
		},
		{
			ruleKey: "tax.exclusivity", ruleName: "Tax: IGST or CGST+SGST",
			validate: func(rec *domain.InvoiceRecord) []ValidationResult {
				results := make([]ValidationResult, 0, len(rec.LineItems))
				for i := range rec.LineItems {
					t := &rec.LineItems[i].Tax
					inter := nonZero(t.IGSTAmount)
					intra := nonZero(t.CGSTAmount) && nonZero(t.SGSTAmount)
					fp := fmt.Sprintf("line_items[%d].tax", i)
					r := ValidationResult{
						Passed: inter != intra, FieldPath: fp, LineIndex: i,
						ExpectedValue: "IGST or CGST+SGST",
					}
					switch {
					case inter && intra:
						r.ActualValue = "IGST and CGST+SGST"
						r.Message = fmt.Sprintf("%s charges both IGST and CGST+SGST", fp)
					case !inter && !intra:
						r.ActualValue = "none"
						r.Message = fmt.Sprintf("%s charges neither IGST nor CGST+SGST", fp)
					default:
						r.ActualValue = r.ExpectedValue
						r.Message = fmt.Sprintf("%s tax type is consistent", fp)
					}
					results = append(results, r)
				}
				return results
			},
		},
	}
}

func zeroIfNull(n decimal.NullDecimal) decimal.Decimal {
	if n.Valid {
		return n.Decimal
	}
	return decimal.Zero
}
