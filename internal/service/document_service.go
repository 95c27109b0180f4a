package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"invex/internal/domain"
	"invex/internal/jsonexport"
	"invex/internal/port"
)

// DocumentService defines single-document extraction: the generic page-text JSON and
// invoice extraction of an uploaded file.
type DocumentService interface {
	ExportPages(ctx context.Context, pdfPath, outputDir string) (string, error)
	Pages(ctx context.Context, name string, data []byte) (*jsonexport.Document, error)
	Invoice(ctx context.Context, name string, data []byte) (*domain.InvoiceRecord, *domain.Failure, error)
}

type documentService struct {
	loader    port.TextLoader
	processor InvoiceProcessor
}

// NewDocumentService creates a new DocumentService implementation.
func NewDocumentService(loader port.TextLoader, processor InvoiceProcessor) DocumentService {
	return &documentService{
		loader:    loader,
		processor: processor,
	}
}

// ValidatePDFPath checks that path exists, is a regular file and has a .pdf suffix.
func ValidatePDFPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("pdf path %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", domain.ErrNotRegularFile, path)
	}
	if !isPDF(path) {
		return fmt.Errorf("%w: %s", domain.ErrNotPDF, path)
	}
	return nil
}

// ExportPages writes the page-text JSON of pdfPath to <outputDir>/<basename>.json and
// returns the written path.
func (s *documentService) ExportPages(ctx context.Context, pdfPath, outputDir string) (string, error) {
	if err := ValidatePDFPath(pdfPath); err != nil {
		return "", err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	doc, err := s.loader.Load(ctx, pdfPath)
	if err != nil {
		return "", fmt.Errorf("loading %s: %w", pdfPath, err)
	}

	out := jsonexport.OutputPath(outputDir, pdfPath)
	if err := jsonexport.WriteFile(out, jsonexport.FromRaw(doc)); err != nil {
		return "", err
	}
	logrus.WithFields(logrus.Fields{"file": doc.FileName, "pages": doc.PageCount(), "output": out}).Info("pages exported")
	return out, nil
}

func (s *documentService) Pages(ctx context.Context, name string, data []byte) (*jsonexport.Document, error) {
	if !isPDF(name) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotPDF, name)
	}
	doc, err := s.loader.Parse(ctx, name, data)
	if err != nil {
		return nil, err
	}
	return jsonexport.FromRaw(doc), nil
}

// Invoice extracts an uploaded invoice. Documents that cannot be read are errors;
// documents that are read but produce no record come back as a failure.
func (s *documentService) Invoice(ctx context.Context, name string, data []byte) (rec *domain.InvoiceRecord, f *domain.Failure, err error) {
	if !isPDF(name) {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrNotPDF, name)
	}
	doc, err := s.loader.Parse(ctx, filepath.Base(name), data)
	if err != nil {
		return nil, nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{"file": doc.FileName, "panic": r}).Error("recovered from panic")
			rec, f, err = nil, panicFailure(doc.FileName, r), nil
		}
	}()
	rec, f = s.processor.Process(ctx, doc)
	return rec, f, nil
}
