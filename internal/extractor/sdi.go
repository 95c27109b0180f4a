package extractor

import (
	"regexp"

	"github.com/shopspring/decimal"

	"invex/internal/domain"
)

// NewSDI returns the extractor for SDI invoices. Rows end with HSN/SAC, Quantity,
// Rate, per, Taxable, the IGST/CGST/SGST rate and amount pairs, and Amount.
func NewSDI(vendorName string) Extractor {
	l := &layout{
		issuer:     domain.IssuerSDI,
		vendorName: vendorName,
		fields: []headerField{
			{name: "invoice_number", labels: []string{"Invoice No", "Inv No"},
				set: func(h *domain.InvoiceHeader, v string) { h.InvoiceNumber = v }},
			{name: "invoice_date", labels: []string{"Dated", "Invoice Date"},
				set: func(h *domain.InvoiceHeader, v string) { h.InvoiceDate = v }},
			{name: "place_of_supply", labels: []string{"Place of Supply"},
				set: func(h *domain.InvoiceHeader, v string) { h.PlaceOfSupply = v }},
		},
		buyerAnchors: []string{"Buyer (Bill to)", "Buyer"},
		gstinLabels:  []string{"GSTIN/UIN", "GSTIN"},
		tableHeader:  regexp.MustCompile(`(?i)^Sl\.?\s?No\.?\s+Description\b.*\bHSN/SAC\b`),
		tail:         12,
		mapRow: func(r *rowReader, t []string) {
			r.item.Quantity = r.number("quantity", t[1])
			r.item.Rate = r.number("rate", t[2])
			r.item.Per = r.text(t[3])
			r.item.TaxableAmount = r.number("taxable_amount", t[4])
			r.taxColumns(t[5:11])
			r.item.Total = r.number("total", t[11])
		},
		taxableBase: func(item *domain.LineItem) (decimal.Decimal, bool) {
			return product(item.Quantity, item.Rate)
		},
	}
	return l.build()
}
