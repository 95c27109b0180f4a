// Package csvexport writes the failures report of a batch run.
package csvexport

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"invex/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Writer writes failure rows as CSV.
type Writer struct {
	w   io.Writer
	bom bool
}

// NewWriter creates a Writer that writes CSV to w, prefixed with a UTF-8 BOM.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, bom: true}
}

// WithoutBOM disables the BOM prefix.
func (w *Writer) WithoutBOM() *Writer {
	w.bom = false
	return w
}

// WriteFailures writes the header row followed by one row per failure. The header is
// written even when failures is empty.
func (w *Writer) WriteFailures(failures []domain.Failure) error {
	if w.bom {
		if _, err := w.w.Write(BOM); err != nil {
			return fmt.Errorf("writing bom: %w", err)
		}
	}
	rows := failures
	if rows == nil {
		rows = []domain.Failure{}
	}
	if err := gocsv.Marshal(&rows, w.w); err != nil {
		return fmt.Errorf("writing failures csv: %w", err)
	}
	return nil
}

// WriteFailuresFile writes the failures report to path.
func WriteFailuresFile(path string, failures []domain.Failure) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating failures report %s: %w", path, err)
	}
	if err := NewWriter(out).WriteFailures(failures); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
