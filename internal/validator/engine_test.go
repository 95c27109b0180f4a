package validator_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invex/internal/domain"
	"invex/internal/validator"
)

func n(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func record() *domain.InvoiceRecord {
	return &domain.InvoiceRecord{
		Issuer:   domain.IssuerMogliLab,
		FileName: "m.pdf",
		Header:   domain.InvoiceHeader{VendorGSTIN: "29AAACM1234A1Z5", BuyerGSTIN: "29AABCA9876B1Z2"},
		LineItems: []domain.LineItem{
			{HSN: "38220090", TaxableAmount: n("1000"), Tax: domain.TaxBreakdown{IGSTRate: n("18"), IGSTAmount: n("180")}, Total: n("1180")},
			{HSN: "38220090", TaxableAmount: n("500"), Tax: domain.TaxBreakdown{IGSTRate: n("18"), IGSTAmount: n("90")}, Total: n("590")},
		},
		Summary: domain.TaxSummary{Total: decimal.RequireFromString("1770"), StatedTotal: n("1770")},
	}
}

func TestEngine_Check_CleanRecord(t *testing.T) {
	e := validator.NewEngine(validator.NewBuiltinRegistry())
	rec := record()

	assert.Equal(t, 0, e.Check(context.Background(), rec))
	assert.False(t, rec.Flagged())
}

func TestEngine_Check_FlagsLineAndRecord(t *testing.T) {
	e := validator.NewEngine(validator.NewBuiltinRegistry())
	rec := record()
	rec.LineItems[1].Total = n("600")
	rec.LineItems[1].Tax.CGSTAmount = n("45")
	rec.LineItems[1].Tax.SGSTAmount = n("45")
	rec.Header.BuyerGSTIN = "BAD"

	got := e.Check(context.Background(), rec)

	assert.Equal(t, 3, got)
	assert.True(t, rec.Flagged())
	assert.Empty(t, rec.LineItems[0].Flags)
	require.Len(t, rec.LineItems[1].Flags, 2)
	assert.True(t, strings.HasPrefix(rec.LineItems[1].Flags[0], "tax.total: "))
	assert.True(t, strings.HasPrefix(rec.LineItems[1].Flags[1], "tax.exclusivity: "))
	require.Len(t, rec.Flags, 1)
	assert.True(t, strings.HasPrefix(rec.Flags[0], "fmt.buyer_gstin: "))
}

func TestRegistry_Order(t *testing.T) {
	r := validator.NewBuiltinRegistry()
	keys := make([]string, 0)
	for _, v := range r.All() {
		keys = append(keys, v.RuleKey())
	}
	assert.Equal(t, []string{"tax.total", "tax.exclusivity", "fmt.vendor_gstin", "fmt.buyer_gstin", "fmt.hsn", "xf.grand_total"}, keys)
	assert.NotNil(t, r.Get("fmt.hsn"))
	assert.Nil(t, r.Get("nope"))
}
