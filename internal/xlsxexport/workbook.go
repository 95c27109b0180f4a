// Package xlsxexport writes the batch workbook: one sheet per issuer plus a Failures sheet.
package xlsxexport

import (
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"invex/internal/aggregator"
	"invex/internal/domain"
)

// FailuresSheet is the name of the sheet listing skipped documents.
const FailuresSheet = "Failures"

var failureColumns = []string{"File Name", "Issuer", "Kind", "Reason"}

// Write renders the sheets and failures as an XLSX workbook to w.
func Write(w io.Writer, sheets []*aggregator.Sheet, failures []domain.Failure) error {
	f, err := build(sheets, failures)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

// WriteFile renders the workbook to path.
func WriteFile(path string, sheets []*aggregator.Sheet, failures []domain.Failure) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating workbook %s: %w", path, err)
	}
	if err := Write(out, sheets, failures); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func build(sheets []*aggregator.Sheet, failures []domain.Failure) (*excelize.File, error) {
	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("xlsx style: %w", err)
	}

	first := true
	addSheet := func(name string) error {
		if first {
			first = false
			return f.SetSheetName(f.GetSheetName(0), name)
		}
		_, err := f.NewSheet(name)
		return err
	}

	for _, s := range sheets {
		if err := addSheet(s.Name); err != nil {
			f.Close()
			return nil, fmt.Errorf("xlsx sheet %s: %w", s.Name, err)
		}
		if err := writeTable(f, s.Name, s.Columns, s.Rows, bold); err != nil {
			f.Close()
			return nil, err
		}
	}

	rows := make([][]any, len(failures))
	for i, fl := range failures {
		rows[i] = []any{fl.FileName, string(fl.Issuer), string(fl.Kind), fl.Reason}
	}
	if err := addSheet(FailuresSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("xlsx sheet %s: %w", FailuresSheet, err)
	}
	if err := writeTable(f, FailuresSheet, failureColumns, rows, bold); err != nil {
		f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeTable(f *excelize.File, sheet string, columns []string, rows [][]any, headerStyle int) error {
	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("xlsx header %s: %w", sheet, err)
	}
	if len(columns) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(columns), 1)
		_ = f.SetCellStyle(sheet, "A1", last, headerStyle)
	}

	for i, row := range rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = cellValue(v)
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("xlsx row %d of %s: %w", i+2, sheet, err)
		}
	}

	_ = f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
	return nil
}

// cellValue converts decimals to numeric cells; nulls become empty cells.
func cellValue(v any) any {
	switch d := v.(type) {
	case decimal.NullDecimal:
		if !d.Valid {
			return nil
		}
		return d.Decimal.InexactFloat64()
	case decimal.Decimal:
		return d.InexactFloat64()
	default:
		return v
	}
}
