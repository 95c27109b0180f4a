package extractor

import (
	"regexp"

	"invex/internal/domain"
)

// NewJLL returns the extractor for JLL invoices. JLL bills services per site, so the
// header also carries site name and service type; rows end with SAC, Qty, Taxable,
// the tax rate and amount pairs, and Amount.
func NewJLL(vendorName string) Extractor {
	l := &layout{
		issuer:     domain.IssuerJLL,
		vendorName: vendorName,
		fields: []headerField{
			{name: "invoice_number", labels: []string{"Invoice Number", "Invoice No"},
				set: func(h *domain.InvoiceHeader, v string) { h.InvoiceNumber = v }},
			{name: "invoice_date", labels: []string{"Invoice Date"},
				set: func(h *domain.InvoiceHeader, v string) { h.InvoiceDate = v }},
			{name: "place_of_supply", labels: []string{"Place of Supply"},
				set: func(h *domain.InvoiceHeader, v string) { h.PlaceOfSupply = v }},
			{name: "site_name", labels: []string{"Site Name"},
				set: func(h *domain.InvoiceHeader, v string) { h.SiteName = v }},
			{name: "service_type", labels: []string{"Service Type", "Nature of Service"},
				set: func(h *domain.InvoiceHeader, v string) { h.ServiceType = v }},
		},
		buyerAnchors: []string{"Customer Name", "Bill To"},
		gstinLabels:  []string{"GSTIN/UIN", "GSTIN"},
		tableHeader:  regexp.MustCompile(`(?i)^Sr\.?\s?No\.?\s+Description\b.*\bSAC\b`),
		tail:         10,
		mapRow: func(r *rowReader, t []string) {
			r.item.Quantity = r.number("quantity", t[1])
			r.item.TaxableAmount = r.number("taxable_amount", t[2])
			r.taxColumns(t[3:9])
			r.item.Total = r.number("total", t[9])
		},
	}
	return l.build()
}
