// Package aggregator collects per-file outcomes of a batch run into issuer sheets,
// a failures list and run counts.
package aggregator

import (
	"github.com/sirupsen/logrus"

	"invex/internal/domain"
)

// Sheet is one issuer's flattened rows, one per line item.
type Sheet struct {
	Name    string
	Issuer  domain.IssuerKind
	Columns []string
	Rows    [][]any
}

// Aggregator is owned by a single run and is not safe for concurrent use.
type Aggregator struct {
	sheets   map[domain.IssuerKind]*Sheet
	records  []*domain.InvoiceRecord
	failures []domain.Failure

	succeeded    int
	flagged      int
	unrecognized int
	failed       int
}

// New creates an Aggregator with empty Mogli Lab, SDI and JLL sheets.
func New() *Aggregator {
	a := &Aggregator{sheets: make(map[domain.IssuerKind]*Sheet, len(domain.KnownIssuers))}
	for _, kind := range domain.KnownIssuers {
		cols := sheetColumns[kind]
		titles := make([]string, len(cols))
		for i, c := range cols {
			titles[i] = c.title
		}
		a.sheets[kind] = &Sheet{Name: kind.SheetName(), Issuer: kind, Columns: titles, Rows: [][]any{}}
	}
	return a
}

// AddRecord appends one row per line item to the record's issuer sheet.
func (a *Aggregator) AddRecord(rec *domain.InvoiceRecord) {
	sheet, ok := a.sheets[rec.Issuer]
	if !ok {
		a.AddFailure(domain.Failure{
			FileName: rec.FileName,
			Issuer:   rec.Issuer,
			Kind:     domain.FailureUnrecognized,
			Reason:   domain.ErrUnrecognizedIssuer.Error(),
		})
		return
	}

	cols := sheetColumns[rec.Issuer]
	for i := range rec.LineItems {
		item := &rec.LineItems[i]
		row := make([]any, len(cols))
		for j, c := range cols {
			row[j] = c.value(rec, item)
		}
		sheet.Rows = append(sheet.Rows, row)
	}

	a.records = append(a.records, rec)
	a.succeeded++
	if rec.Flagged() {
		a.flagged++
	}
}

// AddFailure records a document that contributes no rows.
func (a *Aggregator) AddFailure(f domain.Failure) {
	if f.Kind == domain.FailureUnrecognized {
		a.unrecognized++
	} else {
		a.failed++
	}
	a.failures = append(a.failures, f)
	logrus.WithFields(logrus.Fields{
		"file":   f.FileName,
		"kind":   f.Kind,
		"reason": f.Reason,
	}).Info("document skipped")
}

// Sheets returns the issuer sheets in classification priority order.
func (a *Aggregator) Sheets() []*Sheet {
	out := make([]*Sheet, 0, len(domain.KnownIssuers))
	for _, kind := range domain.KnownIssuers {
		out = append(out, a.sheets[kind])
	}
	return out
}

// Sheet returns the sheet for kind, or nil.
func (a *Aggregator) Sheet(kind domain.IssuerKind) *Sheet {
	return a.sheets[kind]
}

// Records returns the successfully extracted records in the order they were added.
func (a *Aggregator) Records() []*domain.InvoiceRecord {
	return a.records
}

// Failures returns the failed and unrecognized documents in the order they were added.
func (a *Aggregator) Failures() []domain.Failure {
	return a.failures
}

// Summary returns the run counts. Run identity and timing are filled in by the caller.
func (a *Aggregator) Summary() domain.RunSummary {
	return domain.RunSummary{
		Files:        a.succeeded + a.unrecognized + a.failed,
		Succeeded:    a.succeeded,
		Flagged:      a.flagged,
		Unrecognized: a.unrecognized,
		Failed:       a.failed,
		Failures:     append([]domain.Failure(nil), a.failures...),
	}
}
