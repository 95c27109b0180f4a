package extractor_test

import (
	"strings"

	"invex/internal/domain"
)

const (
	mogliName = "Mogli Labs (India) Private Limited"
	sdiName   = "SDI Facility Solutions Private Limited"
	jllName   = "Jones Lang LaSalle Property Consultants (India) Private Limited"
)

func document(name string, pages ...string) *domain.RawDocument {
	doc := &domain.RawDocument{FileName: name, FilePath: "/in/" + name}
	for i, p := range pages {
		doc.Pages = append(doc.Pages, domain.Page{Number: i + 1, Text: p})
	}
	doc.Text = strings.Join(pages, "\n")
	return doc
}

var mogliInvoice = strings.Join([]string{
	"TAX INVOICE",
	mogliName,
	"GSTIN: 29AAACM1234A1Z5",
	"Invoice No.: MLI/24-25/0042 Invoice Date: 12-Apr-2024",
	"Place of Supply: 29-Karnataka",
	"Bill To: Acme Research Pvt Ltd",
	"GSTIN: 29AABCA9876B1Z2",
	"S.No Description HSN Qty Unit Unit Price Taxable Value IGST % IGST Amt CGST % CGST Amt SGST % SGST Amt Amount",
	"1 Lab Reagent Kit 38220090 10 Nos 100.00 - 18 - - - - - -",
	"Total ₹ 1,180.00",
	"Authorised Signatory",
}, "\n")

var sdiInvoice = strings.Join([]string{
	sdiName,
	"GSTIN/UIN: 27AAFCS1234K1Z9",
	"Invoice No: SDI/HK/2024/118",
	"Dated: 05-May-2024",
	"Place of Supply: 27-Maharashtra",
	"Buyer (Bill to)",
	"Globex Technologies Pvt Ltd",
	"GSTIN/UIN: 27AAACG5555M1Z1",
	"Sl No Description of Services HSN/SAC Quantity Rate per Taxable Value IGST % IGST Amt CGST % CGST Amt SGST % SGST Amt Amount",
	"1 Housekeeping Services 998533 1 5,000.00 Month 5,000.00 - - - 450.00 9 450.00 5,900.00",
	"2 Pantry Consumables 998533 4 250.00 Nos - - - 9 - 9 - -",
	"Total ₹ 7,080.00",
}, "\n")

var sdiWithoutTable = strings.Join([]string{
	sdiName,
	"GSTIN/UIN: 27AAFCS1234K1Z9",
	"Invoice No: SDI/HK/2024/119",
	"Dated: 06-May-2024",
	"Buyer (Bill to)",
	"Globex Technologies Pvt Ltd",
	"Amount Chargeable (in words): Indian Rupees Five Thousand Only",
}, "\n")

var jllPage1 = strings.Join([]string{
	jllName,
	"GSTIN: 29AAACJ3814E1ZK",
	"Invoice Number: JLL/BLR/24/0779",
	"Invoice Date: 30-Jun-2024",
	"Customer Name: Initech India Pvt Ltd",
	"GSTIN: 29AAACI7777Q1Z3",
	"Place of Supply: 29-Karnataka",
	"Site Name: Tech Park Tower B",
	"Service Type: Facility Management",
	"Sr No Description SAC Qty Taxable Value IGST % IGST Amt CGST % CGST Amt SGST % SGST Amt Amount",
	"1 Integrated facility management services for the month 998531 1 1,00,000.00 - - 9 9,000.00 9 9,000.00 1,18,000.00",
	"Page 1 of 2",
}, "\n")

var jllPage2 = strings.Join([]string{
	jllName,
	"GSTIN: 29AAACJ3814E1ZK",
	"Sr No Description SAC Qty Taxable Value IGST % IGST Amt CGST % CGST Amt SGST % SGST Amt Amount",
	"of June 2024 including soft services",
	"2 Electrical consumables 998719 1 10,000.00 - - 9 900.00 9 900.00 11,800.00",
	"Total 1,10,000.00 0.00 9,900.00 9,900.00 1,29,800.00",
	"Page 2 of 2",
}, "\n")

const (
	jllHeaderRow   = "Sr No Description SAC Qty Taxable Value IGST % IGST Amt CGST % CGST Amt SGST % SGST Amt Amount"
	mogliHeaderRow = "S.No Description HSN Qty Unit Unit Price Taxable Value IGST % IGST Amt CGST % CGST Amt SGST % SGST Amt Amount"
)

// The last row starts at the foot of page 1; its code and amounts are on page 2,
// below the repeated page header.
var jllSplitTailPage1 = strings.Join([]string{
	jllName,
	"GSTIN: 29AAACJ3814E1ZK",
	"Invoice Number: JLL/BLR/24/0812",
	"Invoice Date: 31-Jul-2024",
	"Customer Name: Initech India Pvt Ltd",
	"GSTIN: 29AAACI7777Q1Z3",
	"Place of Supply: 29-Karnataka",
	"Site Name: Tech Park Tower B",
	"Service Type: Facility Management",
	jllHeaderRow,
	"1 Electrical consumables 998719 1 10,000.00 - - 9 900.00 9 900.00 11,800.00",
	"2 Housekeeping services for",
	"Page 1 of 2",
}, "\n")

var jllSplitTailPage2 = strings.Join([]string{
	jllName,
	"GSTIN: 29AAACJ3814E1ZK",
	"Invoice Number: JLL/BLR/24/0812",
	jllHeaderRow,
	"tower B 998533 1 5,000.00 - - 9 450.00 9 450.00 5,900.00",
	"Total 17,700.00",
	"Page 2 of 2",
}, "\n")
