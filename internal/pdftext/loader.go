// Package pdftext turns PDF files into per-page text using github.com/ledongthuc/pdf.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/sirupsen/logrus"

	"invex/internal/domain"
	"invex/internal/port"
)

// Loader implements port.TextLoader.
type Loader struct{}

// NewLoader creates a PDF text loader.
func NewLoader() port.TextLoader {
	return &Loader{}
}

// Load reads and decodes the PDF at path.
func (l *Loader) Load(ctx context.Context, path string) (*domain.RawDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	doc, err := decode(ctx, f, info.Size())
	if err != nil {
		return nil, err
	}
	doc.FileName = filepath.Base(path)
	doc.FilePath = path
	return doc, nil
}

// Parse decodes an in-memory PDF.
func (l *Loader) Parse(ctx context.Context, name string, data []byte) (*domain.RawDocument, error) {
	doc, err := decode(ctx, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	doc.FileName = name
	doc.FilePath = name
	return doc, nil
}

// decode walks every page. The pdf library panics on some malformed inputs, so panics
// are converted into ErrUnreadablePDF.
func decode(ctx context.Context, r io.ReaderAt, size int64) (doc *domain.RawDocument, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			logrus.WithField("panic", rec).Debug("pdf decoder panicked")
			doc, err = nil, fmt.Errorf("%w: %v", domain.ErrUnreadablePDF, rec)
		}
	}()

	if size == 0 {
		return nil, fmt.Errorf("%w: empty file", domain.ErrUnreadablePDF)
	}

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadablePDF, err)
	}

	total := reader.NumPage()
	pages := make([]domain.Page, 0, total)
	texts := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := pageText(reader.Page(i))
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", domain.ErrUnreadablePDF, i, err)
		}
		pages = append(pages, domain.Page{Number: i, Text: text})
		texts = append(texts, text)
	}

	return &domain.RawDocument{
		Pages:    pages,
		Text:     strings.Join(texts, "\n"),
		Metadata: normalizeMetadata(readInfo(reader)),
	}, nil
}

func pageText(p pdf.Page) (string, error) {
	if p.V.IsNull() {
		return "", nil
	}
	rows, err := p.GetTextByRow()
	if err != nil {
		return "", err
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		if line := rowText(row.Content); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}

// readInfo returns the raw entries of the document information dictionary.
func readInfo(r *pdf.Reader) map[string]string {
	info := r.Trailer().Key("Info")
	if info.IsNull() {
		return nil
	}
	out := make(map[string]string, len(info.Keys()))
	for _, key := range info.Keys() {
		v := info.Key(key)
		switch v.Kind() {
		case pdf.String:
			out[key] = v.Text()
		case pdf.Name:
			out[key] = v.Name()
		case pdf.Null:
			out[key] = ""
		default:
			out[key] = v.String()
		}
	}
	return out
}
