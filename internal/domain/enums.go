package domain

// IssuerKind identifies which known invoice layout a document follows.
type IssuerKind string

const (
	IssuerMogliLab     IssuerKind = "mogli_lab"
	IssuerSDI          IssuerKind = "sdi"
	IssuerJLL          IssuerKind = "jll"
	IssuerUnrecognized IssuerKind = "unrecognized"
)

// KnownIssuers lists the supported issuers in classification priority order.
var KnownIssuers = []IssuerKind{IssuerMogliLab, IssuerSDI, IssuerJLL}

// Known reports whether k is one of the supported issuers.
func (k IssuerKind) Known() bool {
	switch k {
	case IssuerMogliLab, IssuerSDI, IssuerJLL:
		return true
	}
	return false
}

// SheetName returns the workbook sheet name rows of this issuer are written to.
func (k IssuerKind) SheetName() string {
	switch k {
	case IssuerMogliLab:
		return "Mogli Lab"
	case IssuerSDI:
		return "SDI"
	case IssuerJLL:
		return "JLL"
	default:
		return ""
	}
}

// FailureKind distinguishes skipped documents from documents that could not be extracted.
type FailureKind string

const (
	FailureUnrecognized FailureKind = "unrecognized"
	FailureFailed       FailureKind = "failed"
)

// PDFExtension is the only file extension picked up from input directories.
const PDFExtension = ".pdf"
