package extractor

import (
	"github.com/shopspring/decimal"

	"invex/internal/domain"
)

// taxSlot points at one rate/amount pair of a TaxBreakdown.
type taxSlot struct {
	name   string
	rate   *decimal.NullDecimal
	amount *decimal.NullDecimal
}

func taxSlots(t *domain.TaxBreakdown) []taxSlot {
	return []taxSlot{
		{name: "igst", rate: &t.IGSTRate, amount: &t.IGSTAmount},
		{name: "cgst", rate: &t.CGSTRate, amount: &t.CGSTAmount},
		{name: "sgst", rate: &t.SGSTRate, amount: &t.SGSTAmount},
	}
}

// reconcile fills fields missing from the text using the other values of the line.
// Values read from the text are never replaced. base, when set, supplies the taxable
// amount from the issuer's quantity and price columns.
func reconcile(item *domain.LineItem, base func(*domain.LineItem) (decimal.Decimal, bool)) {
	fill := func(dst *decimal.NullDecimal, v decimal.Decimal, field string) {
		*dst = decimal.NewNullDecimal(round2(v))
		item.Derived = append(item.Derived, field)
	}

	if !item.TaxableAmount.Valid && base != nil {
		if v, ok := base(item); ok {
			fill(&item.TaxableAmount, v, "taxable_amount")
		}
	}

	taxable := item.TaxableAmount
	for _, s := range taxSlots(&item.Tax) {
		switch {
		case s.rate.Valid && !s.amount.Valid && taxable.Valid:
			fill(s.amount, taxable.Decimal.Mul(s.rate.Decimal).Div(hundred), s.name+"_amount")
		case s.amount.Valid && !s.rate.Valid && taxable.Valid && !taxable.Decimal.IsZero():
			fill(s.rate, hundred.Mul(s.amount.Decimal).Div(taxable.Decimal), s.name+"_rate")
		}
	}

	if !item.Total.Valid && taxable.Valid {
		total := taxable.Decimal.
			Add(orZero(item.Tax.IGSTAmount)).
			Add(orZero(item.Tax.CGSTAmount)).
			Add(orZero(item.Tax.SGSTAmount))
		fill(&item.Total, total, "total")
	}
}

// product multiplies two optional values.
func product(a, b decimal.NullDecimal) (decimal.Decimal, bool) {
	if !a.Valid || !b.Valid {
		return decimal.Decimal{}, false
	}
	return a.Decimal.Mul(b.Decimal), true
}

// summarize sums the line values of rec into its TaxSummary.
func summarize(rec *domain.InvoiceRecord, stated decimal.NullDecimal) {
	var s domain.TaxSummary
	for i := range rec.LineItems {
		item := &rec.LineItems[i]
		s.TaxableAmount = s.TaxableAmount.Add(orZero(item.TaxableAmount))
		s.IGST = s.IGST.Add(orZero(item.Tax.IGSTAmount))
		s.CGST = s.CGST.Add(orZero(item.Tax.CGSTAmount))
		s.SGST = s.SGST.Add(orZero(item.Tax.SGSTAmount))
		s.Total = s.Total.Add(orZero(item.Total))
	}
	s.StatedTotal = stated
	rec.Summary = s
}
