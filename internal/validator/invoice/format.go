package invoice

import (
	"context"
	"fmt"
	"regexp"

	"invex/internal/domain"
)

var (
	gstinPattern = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	hsnPattern   = regexp.MustCompile(`^\d{4,8}$`)
)

// formatValidator checks a field against a regex or format rule.
type formatValidator struct {
	ruleKey  string
	ruleName string
	validate func(*domain.InvoiceRecord) []ValidationResult
}

func (v *formatValidator) RuleKey() string    { return v.ruleKey }
func (v *formatValidator) RuleName() string   { return v.ruleName }
func (v *formatValidator) RuleType() RuleType { return RuleTypeRegex }

func (v *formatValidator) Validate(_ context.Context, rec *domain.InvoiceRecord) []ValidationResult {
	return v.validate(rec)
}

func regexCheck(line int, fieldPath, value, pattern string, re *regexp.Regexp) ValidationResult {
	if value == "" {
		return ValidationResult{
			Passed: true, FieldPath: fieldPath, LineIndex: line,
			ExpectedValue: pattern, ActualValue: value,
			Message: fmt.Sprintf("%s is empty, skipping format check", fieldPath),
		}
	}
	passed := re.MatchString(value)
	msg := fmt.Sprintf("%s matches expected format", fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s %q does not match %s", fieldPath, value, pattern)
	}
	return ValidationResult{
		Passed: passed, FieldPath: fieldPath, LineIndex: line,
		ExpectedValue: pattern, ActualValue: value, Message: msg,
	}
}

// FormatValidators returns all format validators.
func FormatValidators() []*formatValidator {
	return []*formatValidator{
		{
			ruleKey: "fmt.vendor_gstin", ruleName: "Format: Vendor GSTIN",
			validate: func(rec *domain.InvoiceRecord) []ValidationResult {
				return []ValidationResult{regexCheck(RecordLevel, "header.vendor_gstin", rec.Header.VendorGSTIN, "15-char GSTIN format", gstinPattern)}
			},
		},
		{
			ruleKey: "fmt.buyer_gstin", ruleName: "Format: Buyer GSTIN",
			validate: func(rec *domain.InvoiceRecord) []ValidationResult {
				return []ValidationResult{regexCheck(RecordLevel, "header.buyer_gstin", rec.Header.BuyerGSTIN, "15-char GSTIN format", gstinPattern)}
			},
		},
		{
			ruleKey: "fmt.hsn", ruleName: "Format: HSN/SAC Code",
			validate: func(rec *domain.InvoiceRecord) []ValidationResult {
				results := make([]ValidationResult, 0, len(rec.LineItems))
				for i := range rec.LineItems {
					fp := fmt.Sprintf("line_items[%d].hsn", i)
					results = append(results, regexCheck(i, fp, rec.LineItems[i].HSN, "4-8 digit HSN/SAC", hsnPattern))
				}
				return results
			},
		},
	}
}
