package extractor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"invex/internal/domain"
)

// headerField is a header value looked up by label.
type headerField struct {
	name   string
	labels []string
	set    func(h *domain.InvoiceHeader, v string)
}

// layout describes how one issuer prints its invoices.
type layout struct {
	issuer     domain.IssuerKind
	vendorName string

	// fields are looked up anywhere in the document.
	fields []headerField
	// buyerAnchors start the buyer block; the anchor's value is the buyer name.
	buyerAnchors []string
	gstinLabels  []string

	// tableHeader matches the column header row of the line-item table.
	tableHeader *regexp.Regexp
	// tail is the number of tokens at the right of a row, starting with the HSN/SAC code.
	tail int
	// mapRow assigns the tail tokens of one row.
	mapRow func(r *rowReader, tail []string)
	// taxableBase derives a missing taxable amount, if the issuer prints a price column.
	taxableBase func(*domain.LineItem) (decimal.Decimal, bool)

	labels *labelIndex
}

var (
	rowStart    = regexp.MustCompile(`^(\d{1,4})[.)]?\s+(.+)$`)
	codeToken   = regexp.MustCompile(`^\d{2,10}$`)
	totalsLine  = regexp.MustCompile(`(?i)^(?:grand\s+|sub\s*-?\s*)?total\b`)
	pageMarker  = regexp.MustCompile(`(?i)^page\s+\d+\s*(?:of|/)\s*\d+$`)
	continued   = regexp.MustCompile(`(?i)^\W*(?:continued|contd\.?)(?:\s+(?:on|from)\s+(?:next|previous)\s+page)?\W*$`)
	gstinLine   = regexp.MustCompile(`(?i)^GSTIN\b`)
	titleLine   = regexp.MustCompile(`(?i)^(?:tax\s+)?invoice$`)
	footerLine  = regexp.MustCompile(`(?i)^(?:amount\s+(?:chargeable|in\s+words)|(?:indian\s+)?rupees\b|bank\b|authori[sz]ed\s+signatory|terms\b|declaration\b|(?:tax|hsn(?:/sac)?|sac)\s+summary|(?:hsn|sac)(?:/sac)?\s+taxable\b)`)
	subHeader   = regexp.MustCompile(`(?i)^(?:(?:IGST|CGST|SGST|Rate|Amount|Amt|%|Rs\.?|₹)\s*)+$`)
	whitespaces = regexp.MustCompile(`\s+`)
)

// build finalizes the label index from every label the layout knows about.
func (l *layout) build() *layout {
	var all []string
	for _, f := range l.fields {
		all = append(all, f.labels...)
	}
	all = append(all, l.buyerAnchors...)
	all = append(all, l.gstinLabels...)
	l.labels = newLabelIndex(all)
	return l
}

func (l *layout) Issuer() domain.IssuerKind { return l.issuer }

// Extract runs header lookups, table parsing, reconciliation and summing, in that order.
func (l *layout) Extract(doc *domain.RawDocument) (*domain.InvoiceRecord, error) {
	lines := splitLines(doc.Text)

	rec := &domain.InvoiceRecord{
		Issuer:    l.issuer,
		FileName:  doc.FileName,
		LineItems: []domain.LineItem{},
	}

	tableAt := l.findTableHeader(lines)
	headerEnd := len(lines)
	if tableAt >= 0 {
		headerEnd = tableAt
	}
	l.extractHeader(rec, lines, headerEnd)

	if tableAt < 0 {
		return nil, tableNotFound()
	}
	stated := l.extractTable(rec, lines, tableAt)
	if len(rec.LineItems) == 0 {
		return nil, tableNotFound()
	}

	for i := range rec.LineItems {
		reconcile(&rec.LineItems[i], l.taxableBase)
	}
	summarize(rec, stated)
	return rec, nil
}

func (l *layout) extractHeader(rec *domain.InvoiceRecord, lines []string, headerEnd int) {
	gap := func(field string) { rec.Gaps = append(rec.Gaps, field) }

	rec.Header.VendorName = l.vendorName
	if l.vendorName == "" {
		gap("vendor_name")
	}

	for _, f := range l.fields {
		if v, _, ok := l.labels.find(lines, f.labels, 0, len(lines)); ok {
			f.set(&rec.Header, v)
		} else {
			gap(f.name)
		}
	}

	buyerName, buyerAt, buyerOK := l.labels.find(lines, l.buyerAnchors, 0, headerEnd)
	vendorEnd := headerEnd
	if buyerAt >= 0 {
		vendorEnd = buyerAt
	}

	if v, _, ok := l.labels.find(lines, l.gstinLabels, 0, vendorEnd); ok {
		rec.Header.VendorGSTIN = firstToken(v)
	} else {
		gap("vendor_gstin")
	}

	if buyerOK {
		rec.Header.BuyerName = buyerName
	} else {
		gap("buyer_name")
	}

	if buyerAt < 0 {
		gap("buyer_gstin")
		return
	}
	if v, _, ok := l.labels.find(lines, l.gstinLabels, buyerAt, headerEnd); ok {
		rec.Header.BuyerGSTIN = firstToken(v)
	} else {
		gap("buyer_gstin")
	}
}

func (l *layout) findTableHeader(lines []string) int {
	for i, line := range lines {
		if l.tableHeader.MatchString(normalizeLine(line)) {
			return i
		}
	}
	return -1
}

// extractTable collects line items between the table header and the totals line and
// returns the stated grand total when the totals line carries one. The table also ends
// at a footer anchor such as the amount in words or the signatory block.
func (l *layout) extractTable(rec *domain.InvoiceRecord, lines []string, headerAt int) decimal.NullDecimal {
	p := &tableParser{layout: l, rec: rec, lastSerial: -1}
	for _, raw := range lines[headerAt+1:] {
		line := normalizeLine(raw)
		if line == "" {
			continue
		}
		switch {
		case l.isPageBreak(line):
			p.afterBreak = true
			continue
		case isFurniture(line), p.afterBreak && l.labels.lead.MatchString(line):
			continue
		}
		p.afterBreak = false

		if stated, ok := totalsAmount(line); ok {
			p.abandon()
			return stated
		}
		if footerLine.MatchString(line) {
			p.abandon()
			return decimal.NullDecimal{}
		}
		p.add(line)
	}
	p.abandon()
	return decimal.NullDecimal{}
}

// tableParser assembles line items from the lines of one table.
type tableParser struct {
	*layout
	rec *domain.InvoiceRecord

	// pending is a row whose serial number has been read but whose code and amounts
	// have not, as when a row starts at the foot of one page and ends on the next.
	pending    *pendingRow
	lastSerial int
	// afterBreak is set from a page break until the next table line. Labelled header
	// fields repeated at the top of a page are skipped only there.
	afterBreak bool
}

type pendingRow struct {
	serial int
	tokens []string
}

func (p *tableParser) add(line string) {
	m := rowStart.FindStringSubmatch(line)
	serial := -1
	if m != nil {
		serial, _ = strconv.Atoi(m[1])
	}

	if p.pending != nil {
		if m == nil || serial != p.pending.serial+1 {
			p.pending.tokens = append(p.pending.tokens, strings.Fields(line)...)
			if p.hasTail(p.pending.tokens) {
				row := p.pending
				p.pending = nil
				p.emit(row.serial, row.tokens)
			}
			return
		}
		p.abandon()
	}

	if m != nil {
		tokens := strings.Fields(m[2])
		if p.hasTail(tokens) {
			p.emit(serial, tokens)
			return
		}
		if p.lastSerial < 0 || serial == p.lastSerial+1 {
			p.pending = &pendingRow{serial: serial, tokens: tokens}
			return
		}
	}

	// Continuation of the previous row's description. Text before the first row
	// is a wrapped column header.
	if n := len(p.rec.LineItems); n > 0 {
		item := &p.rec.LineItems[n-1]
		item.Description = strings.TrimSpace(item.Description + " " + line)
	}
}

func (p *tableParser) emit(serial int, tokens []string) {
	r := &rowReader{rec: p.rec, index: len(p.rec.LineItems)}
	r.item.Description = strings.Join(tokens[:len(tokens)-p.tail], " ")
	tail := tokens[len(tokens)-p.tail:]
	r.item.HSN = tail[0]
	p.mapRow(r, tail)
	p.rec.LineItems = append(p.rec.LineItems, r.item)
	p.lastSerial = serial
}

// abandon records a gap for a row that never reached its amounts.
func (p *tableParser) abandon() {
	if p.pending == nil {
		return
	}
	p.rec.Gaps = append(p.rec.Gaps, fmt.Sprintf("line_items: row %d has no HSN/SAC code or amounts", p.pending.serial))
	p.lastSerial = p.pending.serial
	p.pending = nil
}

// hasTail reports whether tokens end with the code column and the numeric columns
// after it, leaving at least one description token.
func (l *layout) hasTail(tokens []string) bool {
	if len(tokens) < l.tail+1 {
		return false
	}
	return codeToken.MatchString(tokens[len(tokens)-l.tail])
}

// isPageBreak reports lines that mark the start of a new page of the table: repeated
// column headers, page markers and the issuer's name.
func (l *layout) isPageBreak(line string) bool {
	switch {
	case l.tableHeader.MatchString(line),
		pageMarker.MatchString(line),
		continued.MatchString(line):
		return true
	}
	return l.vendorName != "" && strings.Contains(line, l.vendorName)
}

// isFurniture reports lines that never belong to the table.
func isFurniture(line string) bool {
	return subHeader.MatchString(line) || gstinLine.MatchString(line) || titleLine.MatchString(line)
}

// totalsAmount returns the stated total of a totals line. A line that starts with
// "Total" but does not end with an amount is description text.
func totalsAmount(line string) (decimal.NullDecimal, bool) {
	if !totalsLine.MatchString(line) {
		return decimal.NullDecimal{}, false
	}
	tokens := strings.Fields(line)
	v, ok := parseAmount(tokens[len(tokens)-1])
	if !ok || !v.Valid {
		return decimal.NullDecimal{}, false
	}
	return v, true
}

func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = strings.TrimSpace(strings.TrimRight(l, "\r"))
	}
	return lines
}

// normalizeLine collapses whitespace and keeps currency markers attached to amounts.
func normalizeLine(line string) string {
	line = whitespaces.ReplaceAllString(strings.TrimSpace(line), " ")
	return currencyGap.ReplaceAllString(line, "$1")
}

// rowReader assigns tail tokens to a line item, recording gaps for unreadable numbers.
type rowReader struct {
	rec   *domain.InvoiceRecord
	index int
	item  domain.LineItem
}

func (r *rowReader) number(field, tok string) decimal.NullDecimal {
	v, ok := parseAmount(tok)
	if !ok {
		r.rec.Gaps = append(r.rec.Gaps, fmt.Sprintf("line_items[%d].%s: not numeric", r.index, field))
	}
	return v
}

func (r *rowReader) text(tok string) string {
	if tok == "-" {
		return ""
	}
	return tok
}

// taxColumns reads the six IGST/CGST/SGST rate and amount tokens.
func (r *rowReader) taxColumns(tokens []string) {
	t := &r.item.Tax
	t.IGSTRate = r.number("igst_rate", tokens[0])
	t.IGSTAmount = r.number("igst_amount", tokens[1])
	t.CGSTRate = r.number("cgst_rate", tokens[2])
	t.CGSTAmount = r.number("cgst_amount", tokens[3])
	t.SGSTRate = r.number("sgst_rate", tokens[4])
	t.SGSTAmount = r.number("sgst_amount", tokens[5])
}
