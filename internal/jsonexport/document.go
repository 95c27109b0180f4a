// Package jsonexport writes the page-text JSON document produced by generic mode.
package jsonexport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"invex/internal/domain"
)

// Document is the JSON shape of a PDF's text.
type Document struct {
	FileName   string             `json:"file_name"`
	FilePath   string             `json:"file_path"`
	TotalPages int                `json:"total_pages"`
	Metadata   map[string]*string `json:"metadata"`
	Pages      []Page             `json:"pages"`
}

// Page is one page of a Document.
type Page struct {
	PageNumber int    `json:"page_number"`
	Text       string `json:"text"`
}

// FromRaw builds a Document from a loaded PDF. Page text is trimmed.
func FromRaw(doc *domain.RawDocument) *Document {
	out := &Document{
		FileName:   doc.FileName,
		FilePath:   doc.FilePath,
		TotalPages: doc.PageCount(),
		Metadata:   doc.Metadata,
		Pages:      make([]Page, len(doc.Pages)),
	}
	if out.Metadata == nil {
		out.Metadata = map[string]*string{}
	}
	for i, p := range doc.Pages {
		out.Pages[i] = Page{PageNumber: p.Number, Text: strings.TrimSpace(p.Text)}
	}
	return out
}

// Encode writes d as two-space indented JSON with non-ASCII and HTML characters kept as-is.
func Encode(w io.Writer, d *Document) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	return nil
}

// Marshal returns the encoded form of d.
func Marshal(d *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// OutputPath returns <outDir>/<pdf base name without extension>.json.
func OutputPath(outDir, pdfPath string) string {
	base := filepath.Base(pdfPath)
	return filepath.Join(outDir, strings.TrimSuffix(base, filepath.Ext(base))+".json")
}

// WriteFile writes d to path, creating or truncating it.
func WriteFile(path string, d *Document) error {
	data, err := Marshal(d)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
