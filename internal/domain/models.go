package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Page is the raw text of one PDF page.
type Page struct {
	Number int    `json:"page_number"`
	Text   string `json:"text"`
}

// RawDocument is the text content of a loaded PDF. It is not modified after loading.
type RawDocument struct {
	FileName string             `json:"file_name"`
	FilePath string             `json:"file_path"`
	Pages    []Page             `json:"pages"`
	Text     string             `json:"-"`
	Metadata map[string]*string `json:"metadata"`
}

// PageCount returns the number of pages in the document.
func (d *RawDocument) PageCount() int {
	return len(d.Pages)
}

// InvoiceHeader holds the party and invoice metadata fields.
type InvoiceHeader struct {
	VendorName    string `json:"vendor_name"`
	VendorGSTIN   string `json:"vendor_gstin"`
	BuyerName     string `json:"buyer_name"`
	BuyerGSTIN    string `json:"buyer_gstin"`
	InvoiceNumber string `json:"invoice_number"`
	InvoiceDate   string `json:"invoice_date"`
	PlaceOfSupply string `json:"place_of_supply"`
	SiteName      string `json:"site_name,omitempty"`
	ServiceType   string `json:"service_type,omitempty"`
}

// TaxBreakdown holds the per-line GST components. Null values were absent from the text
// and could not be derived.
type TaxBreakdown struct {
	IGSTRate   decimal.NullDecimal `json:"igst_rate"`
	IGSTAmount decimal.NullDecimal `json:"igst_amount"`
	CGSTRate   decimal.NullDecimal `json:"cgst_rate"`
	CGSTAmount decimal.NullDecimal `json:"cgst_amount"`
	SGSTRate   decimal.NullDecimal `json:"sgst_rate"`
	SGSTAmount decimal.NullDecimal `json:"sgst_amount"`
}

// LineItem is one row of an invoice's line-item table.
type LineItem struct {
	Description   string              `json:"description"`
	HSN           string              `json:"hsn"`
	Quantity      decimal.NullDecimal `json:"quantity"`
	Unit          string              `json:"unit,omitempty"`
	UnitPrice     decimal.NullDecimal `json:"unit_price"`
	Rate          decimal.NullDecimal `json:"rate"`
	Per           string              `json:"per,omitempty"`
	TaxableAmount decimal.NullDecimal `json:"taxable_amount"`
	Tax           TaxBreakdown        `json:"tax"`
	Total         decimal.NullDecimal `json:"total"`
	Derived       []string            `json:"derived,omitempty"`
	Flags         []string            `json:"flags,omitempty"`
}

// TaxSummary holds the invoice-level sums of the line items.
type TaxSummary struct {
	TaxableAmount decimal.Decimal     `json:"taxable_amount"`
	IGST          decimal.Decimal     `json:"igst"`
	CGST          decimal.Decimal     `json:"cgst"`
	SGST          decimal.Decimal     `json:"sgst"`
	Total         decimal.Decimal     `json:"total"`
	StatedTotal   decimal.NullDecimal `json:"stated_total"`
}

// InvoiceRecord is the structured result of extracting one invoice PDF.
type InvoiceRecord struct {
	Issuer    IssuerKind    `json:"issuer"`
	FileName  string        `json:"file_name"`
	Header    InvoiceHeader `json:"header"`
	LineItems []LineItem    `json:"line_items"`
	Summary   TaxSummary    `json:"summary"`
	Gaps      []string      `json:"gaps,omitempty"`
	Flags     []string      `json:"flags,omitempty"`
}

// Flagged reports whether the record or any of its line items carries a flag.
func (r *InvoiceRecord) Flagged() bool {
	if len(r.Flags) > 0 {
		return true
	}
	for i := range r.LineItems {
		if len(r.LineItems[i].Flags) > 0 {
			return true
		}
	}
	return false
}

// Failure records a document that produced no rows.
type Failure struct {
	FileName string      `json:"file_name" csv:"File Name"`
	Issuer   IssuerKind  `json:"issuer" csv:"Issuer"`
	Kind     FailureKind `json:"kind" csv:"Kind"`
	Reason   string      `json:"reason" csv:"Reason"`
}

// RunSummary describes the outcome of one batch run.
type RunSummary struct {
	RunID        uuid.UUID `json:"run_id" db:"id"`
	StartedAt    time.Time `json:"started_at" db:"started_at"`
	FinishedAt   time.Time `json:"finished_at" db:"finished_at"`
	Files        int       `json:"files" db:"files"`
	Succeeded    int       `json:"succeeded" db:"succeeded"`
	Flagged      int       `json:"flagged" db:"flagged"`
	Unrecognized int       `json:"unrecognized" db:"unrecognized"`
	Failed       int       `json:"failed" db:"failed"`
	Failures     []Failure `json:"failures" db:"-"`
}
