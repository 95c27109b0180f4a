package extractor

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	amountStripper = strings.NewReplacer(",", "", "₹", "", "Rs.", "", "INR", "", "%", "")
	// currencyGap joins a currency marker to the number that follows it so a
	// printed amount stays one token.
	currencyGap = regexp.MustCompile(`(₹|Rs\.|INR)\s+`)
	hundred     = decimal.NewFromInt(100)
)

// parseAmount coerces a printed number. "-" and empty tokens are null and ok; tokens
// that are not numbers after stripping separators, currency markers and "%" are null
// and not ok.
func parseAmount(tok string) (decimal.NullDecimal, bool) {
	s := strings.TrimSpace(amountStripper.Replace(tok))
	if s == "" || s == "-" {
		return decimal.NullDecimal{}, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, false
	}
	return decimal.NewNullDecimal(d), true
}

// round2 rounds half away from zero to two decimal places.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// orZero returns the value of n, or zero when n is null.
func orZero(n decimal.NullDecimal) decimal.Decimal {
	if n.Valid {
		return n.Decimal
	}
	return decimal.Zero
}
