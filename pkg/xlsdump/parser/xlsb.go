package parser

import (
	"fmt"
	"math"

	"github.com/TsubasaBE/go-xlsb"
	"github.com/TsubasaBE/go-xlsb/workbook"
	"github.com/ukaji3/xlsdump/pkg/xlsdump/models"
)

// XLSBReader reads binary workbooks (.xlsb) with go-xlsb.
type XLSBReader struct {
	wb *workbook.Workbook
}

// OpenXLSB opens a binary workbook.
func OpenXLSB(path string) (*XLSBReader, error) {
	wb, err := workbook.Open(path)
	if err != nil {
		return nil, err
	}
	return &XLSBReader{wb: wb}, nil
}

// Format implements Reader.
func (r *XLSBReader) Format() Format { return FormatXLSB }

// SheetNames implements Reader.
func (r *XLSBReader) SheetNames() []string { return r.wb.Sheets() }

// Visibility implements Reader.
func (r *XLSBReader) Visibility(sheet string) (models.Visibility, error) {
	switch r.wb.SheetVisibility(sheet) {
	case workbook.SheetVisible:
		return models.Visible, nil
	case workbook.SheetHidden:
		return models.Hidden, nil
	case workbook.SheetVeryHidden:
		return models.VeryHidden, nil
	}
	return models.Visible, fmt.Errorf("sheet %q not found", sheet)
}

// SupportsFormulas implements Reader.
func (r *XLSBReader) SupportsFormulas() bool { return false }

// ReadFormulaRows implements Reader.
func (r *XLSBReader) ReadFormulaRows(string) ([]models.Row, error) {
	return nil, ErrFormulasUnsupported
}

// Close implements Reader.
func (r *XLSBReader) Close() error { return r.wb.Close() }

// ReadRows implements Reader.
func (r *XLSBReader) ReadRows(sheetName string) ([]models.Row, error) {
	sheet, err := r.wb.SheetByName(sheetName)
	if err != nil {
		return nil, err
	}

	var rows []models.Row
	for row := range sheet.Rows(true) {
		if len(row) == 0 {
			continue
		}

		// Cells past the declared dimension are zero-valued padding, so the
		// slice index is the column, not Cell.C.
		cells := make([]models.Value, len(row))
		for i, c := range row {
			cells[i] = r.cellValue(c.V, c.Style)
		}
		rows = append(rows, models.Row{Number: row[0].R + 1, Cells: trimRow(cells)})
	}
	if sheet.Err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheetName, sheet.Err)
	}
	return rows, nil
}

func (r *XLSBReader) cellValue(v any, style int) models.Value {
	switch v := v.(type) {
	case nil:
		return models.Null()
	case string:
		return models.Text(v)
	case bool:
		return models.Bool(v)
	case float64:
		if r.wb.Styles.IsDate(style) && !math.IsNaN(v) && !math.IsInf(v, 0) {
			if t, err := xlsb.ConvertDateEx(v, r.wb.Date1904); err == nil {
				return models.Time(t)
			}
		}
		return models.Number(v)
	}
	return parseValue(toString(v))
}
