// Package invoice holds the built-in checks run against extracted invoice records.
package invoice

// RecordLevel is the LineIndex of results that concern the whole record.
const RecordLevel = -1

// RuleType groups checks by what they compare.
type RuleType string

const (
	RuleTypeSumCheck   RuleType = "sum_check"
	RuleTypeRegex      RuleType = "regex"
	RuleTypeCrossField RuleType = "cross_field"
)

// ValidationResult is the outcome of one check against one field.
type ValidationResult struct {
	Passed        bool
	FieldPath     string
	LineIndex     int
	ExpectedValue string
	ActualValue   string
	Message       string
}
