package service_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"invex/internal/classifier"
	"invex/internal/config"
	"invex/internal/domain"
	"invex/internal/extractor"
	"invex/internal/service"
	"invex/internal/validator"
)

var issuers = config.IssuersConfig{
	Mogli: "Mogli Labs (India) Private Limited",
	SDI:   "SDI Facility Solutions Private Limited",
	JLL:   "Jones Lang LaSalle Property Consultants (India) Private Limited",
}

func newProcessor() service.InvoiceProcessor {
	return service.NewInvoiceProcessor(
		classifier.NewFromConfig(issuers),
		extractor.NewDefaultRegistry(issuers),
		validator.NewEngine(validator.NewBuiltinRegistry()),
	)
}

func rawDocument(name string, lines ...string) *domain.RawDocument {
	text := strings.Join(lines, "\n")
	return &domain.RawDocument{
		FileName: name,
		FilePath: "/in/" + name,
		Pages:    []domain.Page{{Number: 1, Text: text}},
		Text:     text,
	}
}

func mogliDocument(name string) *domain.RawDocument {
	return rawDocument(name,
		"TAX INVOICE",
		issuers.Mogli,
		"GSTIN: 29AAACM1234A1Z5",
		"Invoice No.: MLI/24-25/0042 Invoice Date: 12-Apr-2024",
		"Place of Supply: 29-Karnataka",
		"Bill To: Acme Research Pvt Ltd",
		"GSTIN: 29AABCA9876B1Z2",
		"S.No Description HSN Qty Unit Unit Price Taxable Value IGST % IGST Amt CGST % CGST Amt SGST % SGST Amt Amount",
		"1 Lab Reagent Kit 38220090 10 Nos 100.00 - 18 - - - - - -",
		"Total ₹ 1,180.00",
	)
}

func sdiWithoutTable(name string) *domain.RawDocument {
	return rawDocument(name,
		issuers.SDI,
		"GSTIN/UIN: 27AAFCS1234K1Z9",
		"Invoice No: SDI/HK/2024/119",
		"Buyer (Bill to)",
		"Globex Technologies Pvt Ltd",
		"Amount Chargeable (in words): Indian Rupees Five Thousand Only",
	)
}

func unknownDocument(name string) *domain.RawDocument {
	return rawDocument(name, "Some Other Vendor LLP", "Invoice No: X-1", "Total 100.00")
}

// touch creates empty files under dir and returns their paths.
func touch(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, len(names))
	for i, name := range names {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("%PDF-1.4"), 0o600))
		paths[i] = p
	}
	return paths
}
