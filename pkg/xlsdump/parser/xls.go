package parser

import (
	"fmt"
	"io"
	"math"

	"github.com/ukaji3/xlsdump/pkg/xlsdump/models"
	"github.com/yamitzky/xlrd-go/xlrd"
)

// XLSReader reads legacy BIFF workbooks (.xls) with xlrd.
type XLSReader struct {
	book *xlrd.Book
}

// OpenXLS opens a BIFF workbook.
func OpenXLS(path string) (*XLSReader, error) {
	book, err := xlrd.OpenWorkbook(path, &xlrd.OpenWorkbookOptions{
		Logfile:        io.Discard,
		FormattingInfo: true,
	})
	if err != nil {
		return nil, err
	}
	return &XLSReader{book: book}, nil
}

// Format implements Reader.
func (r *XLSReader) Format() Format { return FormatXLS }

// SheetNames implements Reader.
func (r *XLSReader) SheetNames() []string { return r.book.SheetNames() }

// Visibility implements Reader. The BIFF decoder does not expose sheet
// visibility, so every sheet is reported visible.
func (r *XLSReader) Visibility(string) (models.Visibility, error) {
	return models.Visible, nil
}

// SupportsFormulas implements Reader.
func (r *XLSReader) SupportsFormulas() bool { return false }

// ReadFormulaRows implements Reader.
func (r *XLSReader) ReadFormulaRows(string) ([]models.Row, error) {
	return nil, ErrFormulasUnsupported
}

// Close implements Reader. The workbook is fully decoded on open.
func (r *XLSReader) Close() error { return nil }

// ReadRows implements Reader.
func (r *XLSReader) ReadRows(sheetName string) ([]models.Row, error) {
	sheet, err := r.sheet(sheetName)
	if err != nil {
		return nil, err
	}

	rows := make([]models.Row, 0, sheet.NRows)
	for rowx := 0; rowx < sheet.NRows; rowx++ {
		cells := make([]models.Value, sheet.NCols)
		for colx := 0; colx < sheet.NCols; colx++ {
			cells[colx] = r.cellValue(sheet, rowx, colx)
		}
		rows = append(rows, models.Row{Number: rowx + 1, Cells: trimRow(cells)})
	}
	return rows, nil
}

func (r *XLSReader) sheet(name string) (*xlrd.Sheet, error) {
	for i, n := range r.book.SheetNames() {
		if n == name {
			return r.book.SheetByIndex(i)
		}
	}
	return nil, fmt.Errorf("sheet %q not found", name)
}

func (r *XLSReader) cellValue(sheet *xlrd.Sheet, rowx, colx int) models.Value {
	value := sheet.CellValue(rowx, colx)

	ctype := sheet.CellType(rowx, colx)
	switch ctype {
	case xlrd.XL_CELL_EMPTY, xlrd.XL_CELL_BLANK:
		return models.Null()
	case xlrd.XL_CELL_TEXT:
		return models.Text(toString(value))
	case xlrd.XL_CELL_NUMBER, xlrd.XL_CELL_DATE:
		f, ok := toFloat(value)
		if !ok {
			break
		}
		isDate := ctype == xlrd.XL_CELL_DATE || r.isDateCell(sheet.CellXFIndex(rowx, colx))
		if isDate && !math.IsNaN(f) && !math.IsInf(f, 0) {
			if t, err := xlrd.XldateAsDatetime(f, r.book.Datemode); err == nil {
				return models.Time(t)
			}
		}
		return models.Number(f)
	case xlrd.XL_CELL_BOOLEAN:
		switch v := value.(type) {
		case bool:
			return models.Bool(v)
		case int:
			return models.Bool(v != 0)
		}
	case xlrd.XL_CELL_ERROR:
		return models.Text(errorText(value))
	}
	return parseValue(toString(value))
}

func (r *XLSReader) isDateCell(xfIndex int) bool {
	book := r.book
	if xfIndex < 0 || xfIndex >= len(book.XFList) {
		return false
	}
	formatKey := book.XFList[xfIndex].FormatKey
	if builtinDateFormats[formatKey] {
		return true
	}
	if book.FormatMap == nil {
		return false
	}
	format := book.FormatMap[formatKey]
	if format == nil || format.FormatString == "" {
		return false
	}
	return xlrd.IsDateFormatString(book, format.FormatString)
}

func errorText(value interface{}) string {
	switch v := value.(type) {
	case byte:
		if text, ok := xlrd.ErrorTextFromCode[v]; ok {
			return text
		}
	case int:
		if text, ok := xlrd.ErrorTextFromCode[byte(v)]; ok {
			return text
		}
	}
	return "#ERROR"
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func toString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	}
	return fmt.Sprint(value)
}
