package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"invex/internal/classifier"
	"invex/internal/domain"
	"invex/internal/extractor"
	"invex/internal/validator"
)

// InvoiceProcessor turns one loaded document into a record or a failure.
type InvoiceProcessor interface {
	Process(ctx context.Context, doc *domain.RawDocument) (*domain.InvoiceRecord, *domain.Failure)
}

type invoiceProcessor struct {
	classifier *classifier.Classifier
	extractors *extractor.Registry
	checks     *validator.Engine
}

// NewInvoiceProcessor creates a new InvoiceProcessor implementation.
func NewInvoiceProcessor(
	cls *classifier.Classifier,
	extractors *extractor.Registry,
	checks *validator.Engine,
) InvoiceProcessor {
	return &invoiceProcessor{
		classifier: cls,
		extractors: extractors,
		checks:     checks,
	}
}

// Process classifies doc, runs the issuer's extractor and flags the record with the
// invoice checks. Exactly one of the results is non-nil.
func (p *invoiceProcessor) Process(ctx context.Context, doc *domain.RawDocument) (*domain.InvoiceRecord, *domain.Failure) {
	log := logrus.WithField("file", doc.FileName)

	if strings.TrimSpace(doc.Text) == "" {
		return nil, failure(doc.FileName, domain.IssuerUnrecognized, domain.FailureFailed, domain.ErrEmptyDocument.Error())
	}

	kind := p.classifier.Classify(doc.Text)
	if kind == domain.IssuerUnrecognized {
		return nil, failure(doc.FileName, kind, domain.FailureUnrecognized, domain.ErrUnrecognizedIssuer.Error())
	}
	log = log.WithField("issuer", kind)
	log.Debug("document classified")

	ext, err := p.extractors.Get(kind)
	if err != nil {
		return nil, failure(doc.FileName, kind, domain.FailureFailed, err.Error())
	}

	rec, err := ext.Extract(doc)
	if err != nil {
		reason := err.Error()
		var xerr *extractor.ExtractionError
		if errors.As(err, &xerr) {
			reason = xerr.Reason
		}
		return nil, failure(doc.FileName, kind, domain.FailureFailed, reason)
	}

	if len(rec.Gaps) > 0 {
		log.WithField("gaps", rec.Gaps).Info("fields not found")
	}
	p.checks.Check(ctx, rec)
	return rec, nil
}

func failure(file string, issuer domain.IssuerKind, kind domain.FailureKind, reason string) *domain.Failure {
	return &domain.Failure{FileName: file, Issuer: issuer, Kind: kind, Reason: reason}
}

// panicFailure converts a recovered panic into a failed document.
func panicFailure(file string, r any) *domain.Failure {
	return failure(file, domain.IssuerUnrecognized, domain.FailureFailed, fmt.Sprintf("internal error: %v", r))
}
