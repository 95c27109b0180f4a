package invoice

import (
	"context"

	"invex/internal/domain"
)

// BuiltinValidator wraps a validator function and its metadata for the registry.
type BuiltinValidator struct {
	key      string
	name     string
	ruleType RuleType
	fn       func(context.Context, *domain.InvoiceRecord) []ValidationResult
}

func (b *BuiltinValidator) Validate(ctx context.Context, rec *domain.InvoiceRecord) []ValidationResult {
	return b.fn(ctx, rec)
}
func (b *BuiltinValidator) RuleKey() string    { return b.key }
func (b *BuiltinValidator) RuleName() string   { return b.name }
func (b *BuiltinValidator) RuleType() RuleType { return b.ruleType }

// AllBuiltinValidators returns every built-in check, tax invariants first.
func AllBuiltinValidators() []*BuiltinValidator {
	mathVals := MathValidators()
	fmtVals := FormatValidators()
	xfVals := CrossFieldValidators()
	all := make([]*BuiltinValidator, 0, len(mathVals)+len(fmtVals)+len(xfVals))

	for _, v := range mathVals {
		all = append(all, &BuiltinValidator{key: v.RuleKey(), name: v.RuleName(), ruleType: v.RuleType(), fn: v.Validate})
	}
	for _, v := range fmtVals {
		all = append(all, &BuiltinValidator{key: v.RuleKey(), name: v.RuleName(), ruleType: v.RuleType(), fn: v.Validate})
	}
	for _, v := range xfVals {
		all = append(all, &BuiltinValidator{key: v.RuleKey(), name: v.RuleName(), ruleType: v.RuleType(), fn: v.Validate})
	}
	return all
}
