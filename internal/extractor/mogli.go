package extractor

import (
	"regexp"

	"github.com/shopspring/decimal"

	"invex/internal/domain"
)

// NewMogli returns the extractor for Mogli Lab invoices. Rows end with
// HSN, Qty, Unit, Unit Price, Taxable, IGST %, IGST Amt, CGST %, CGST Amt, SGST %,
// SGST Amt and Amount.
func NewMogli(vendorName string) Extractor {
	l := &layout{
		issuer:     domain.IssuerMogliLab,
		vendorName: vendorName,
		fields: []headerField{
			{name: "invoice_number", labels: []string{"Invoice No", "Invoice Number"},
				set: func(h *domain.InvoiceHeader, v string) { h.InvoiceNumber = v }},
			{name: "invoice_date", labels: []string{"Invoice Date", "Dated"},
				set: func(h *domain.InvoiceHeader, v string) { h.InvoiceDate = v }},
			{name: "place_of_supply", labels: []string{"Place of Supply"},
				set: func(h *domain.InvoiceHeader, v string) { h.PlaceOfSupply = v }},
		},
		buyerAnchors: []string{"Bill To", "Billed To"},
		gstinLabels:  []string{"GSTIN/UIN", "GSTIN"},
		tableHeader:  regexp.MustCompile(`(?i)^S\.?\s?No\.?\s+(?:Item\s+)?Description\b.*\bHSN\b`),
		tail:         12,
		mapRow: func(r *rowReader, t []string) {
			r.item.Quantity = r.number("quantity", t[1])
			r.item.Unit = r.text(t[2])
			r.item.UnitPrice = r.number("unit_price", t[3])
			r.item.TaxableAmount = r.number("taxable_amount", t[4])
			r.taxColumns(t[5:11])
			r.item.Total = r.number("total", t[11])
		},
		taxableBase: func(item *domain.LineItem) (decimal.Decimal, bool) {
			return product(item.Quantity, item.UnitPrice)
		},
	}
	return l.build()
}
