package invoice_test

import (
	"github.com/shopspring/decimal"

	"invex/internal/domain"
	"invex/internal/validator/invoice"
)

func n(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

// validRecord returns an intrastate record that passes every check.
// 1 line item: taxable=1000, CGST=9%/90, SGST=9%/90, total=1180.
func validRecord() *domain.InvoiceRecord {
	return &domain.InvoiceRecord{
		Issuer:   domain.IssuerSDI,
		FileName: "valid.pdf",
		Header: domain.InvoiceHeader{
			VendorName:    "SDI Facility Solutions Private Limited",
			VendorGSTIN:   "29ABCDE1234F1Z5",
			BuyerName:     "Buyer Corp",
			BuyerGSTIN:    "29FGHIJ5678K1Z2",
			InvoiceNumber: "INV-001",
		},
		LineItems: []domain.LineItem{
			{
				Description:   "Housekeeping",
				HSN:           "998533",
				TaxableAmount: n("1000"),
				Tax: domain.TaxBreakdown{
					CGSTRate: n("9"), CGSTAmount: n("90"),
					SGSTRate: n("9"), SGSTAmount: n("90"),
				},
				Total: n("1180"),
			},
		},
		Summary: domain.TaxSummary{
			TaxableAmount: decimal.RequireFromString("1000"),
			CGST:          decimal.RequireFromString("90"),
			SGST:          decimal.RequireFromString("90"),
			Total:         decimal.RequireFromString("1180"),
			StatedTotal:   n("1180"),
		},
	}
}

func findValidator(key string) *invoice.BuiltinValidator {
	for _, v := range invoice.AllBuiltinValidators() {
		if v.RuleKey() == key {
			return v
		}
	}
	return nil
}
