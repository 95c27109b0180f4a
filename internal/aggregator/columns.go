package aggregator

import (
	"strings"

	"invex/internal/domain"
)

// column produces one cell of a flattened row. Cell values are either strings or
// decimal.NullDecimal; a null decimal is written as an empty cell.
type column struct {
	title string
	value func(rec *domain.InvoiceRecord, item *domain.LineItem) any
}

func text(title string, f func(rec *domain.InvoiceRecord, item *domain.LineItem) string) column {
	return column{title: title, value: func(rec *domain.InvoiceRecord, item *domain.LineItem) any { return f(rec, item) }}
}

func header(title string, f func(h *domain.InvoiceHeader) string) column {
	return text(title, func(rec *domain.InvoiceRecord, _ *domain.LineItem) string { return f(&rec.Header) })
}

func number(title string, f func(item *domain.LineItem) any) column {
	return column{title: title, value: func(_ *domain.InvoiceRecord, item *domain.LineItem) any { return f(item) }}
}

var partyColumns = []column{
	text("File Name", func(rec *domain.InvoiceRecord, _ *domain.LineItem) string { return rec.FileName }),
	header("Vendor Name", func(h *domain.InvoiceHeader) string { return h.VendorName }),
	header("Vendor GSTIN", func(h *domain.InvoiceHeader) string { return h.VendorGSTIN }),
	header("Buyer Name", func(h *domain.InvoiceHeader) string { return h.BuyerName }),
	header("Buyer GSTIN", func(h *domain.InvoiceHeader) string { return h.BuyerGSTIN }),
	header("Invoice No", func(h *domain.InvoiceHeader) string { return h.InvoiceNumber }),
	header("Invoice Date", func(h *domain.InvoiceHeader) string { return h.InvoiceDate }),
	header("Place of Supply", func(h *domain.InvoiceHeader) string { return h.PlaceOfSupply }),
}

var taxColumns = []column{
	number("IGST %", func(i *domain.LineItem) any { return i.Tax.IGSTRate }),
	number("IGST Amount", func(i *domain.LineItem) any { return i.Tax.IGSTAmount }),
	number("CGST %", func(i *domain.LineItem) any { return i.Tax.CGSTRate }),
	number("CGST Amount", func(i *domain.LineItem) any { return i.Tax.CGSTAmount }),
	number("SGST %", func(i *domain.LineItem) any { return i.Tax.SGSTRate }),
	number("SGST Amount", func(i *domain.LineItem) any { return i.Tax.SGSTAmount }),
	number("Total Amount", func(i *domain.LineItem) any { return i.Total }),
	text("Flags", func(rec *domain.InvoiceRecord, item *domain.LineItem) string {
		flags := append(append([]string{}, item.Flags...), rec.Flags...)
		return strings.Join(flags, "; ")
	}),
}

func description(title string) column {
	return text(title, func(_ *domain.InvoiceRecord, i *domain.LineItem) string { return i.Description })
}

func code(title string) column {
	return text(title, func(_ *domain.InvoiceRecord, i *domain.LineItem) string { return i.HSN })
}

func concat(parts ...[]column) []column {
	var out []column
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

var sheetColumns = map[domain.IssuerKind][]column{
	domain.IssuerMogliLab: concat(partyColumns, []column{
		description("Description"),
		code("HSN"),
		number("Qty", func(i *domain.LineItem) any { return i.Quantity }),
		text("Unit", func(_ *domain.InvoiceRecord, i *domain.LineItem) string { return i.Unit }),
		number("Unit Price", func(i *domain.LineItem) any { return i.UnitPrice }),
		number("Taxable Amount", func(i *domain.LineItem) any { return i.TaxableAmount }),
	}, taxColumns),
	domain.IssuerSDI: concat(partyColumns, []column{
		description("Description"),
		code("HSN/SAC"),
		number("Qty", func(i *domain.LineItem) any { return i.Quantity }),
		number("Rate", func(i *domain.LineItem) any { return i.Rate }),
		text("Per", func(_ *domain.InvoiceRecord, i *domain.LineItem) string { return i.Per }),
		number("Taxable Amount", func(i *domain.LineItem) any { return i.TaxableAmount }),
	}, taxColumns),
	domain.IssuerJLL: concat(partyColumns, []column{
		header("Site Name", func(h *domain.InvoiceHeader) string { return h.SiteName }),
		header("Service Type", func(h *domain.InvoiceHeader) string { return h.ServiceType }),
		description("Description"),
		code("SAC"),
		number("Qty", func(i *domain.LineItem) any { return i.Quantity }),
		number("Taxable Amount", func(i *domain.LineItem) any { return i.TaxableAmount }),
	}, taxColumns),
}
