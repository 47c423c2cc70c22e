package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/xlsdump/pkg/xlsdump/models"
	"github.com/xuri/excelize/v2"
)

// maxFormulaCells bounds the sheet dimension scanned for formulas; sheets
// declaring a larger used range are scanned over their populated rows only.
const maxFormulaCells = 1 << 22

// XLSXReader reads Office Open XML workbooks (.xlsx, .xlsm) with excelize.
type XLSXReader struct {
	f        *excelize.File
	format   Format
	date1904 bool
	// dateStyles caches whether a style index is a date format.
	dateStyles map[int]bool
}

// OpenXLSX opens an OOXML workbook.
func OpenXLSX(path string, format Format) (*XLSXReader, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}

	r := &XLSXReader{
		f:          f,
		format:     format,
		dateStyles: make(map[int]bool),
	}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		r.date1904 = *props.Date1904
	}
	return r, nil
}

// Format implements Reader.
func (r *XLSXReader) Format() Format { return r.format }

// SheetNames implements Reader.
func (r *XLSXReader) SheetNames() []string { return r.f.GetSheetList() }

// Visibility implements Reader. excelize does not distinguish hidden from
// very hidden, so both are reported as Hidden.
func (r *XLSXReader) Visibility(sheet string) (models.Visibility, error) {
	visible, err := r.f.GetSheetVisible(sheet)
	if err != nil {
		return models.Visible, err
	}
	if !visible {
		return models.Hidden, nil
	}
	return models.Visible, nil
}

// SupportsFormulas implements Reader.
func (r *XLSXReader) SupportsFormulas() bool { return true }

// Close implements Reader.
func (r *XLSXReader) Close() error { return r.f.Close() }

// ReadRows implements Reader.
func (r *XLSXReader) ReadRows(sheet string) ([]models.Row, error) {
	return r.readRows(sheet, false)
}

// ReadFormulaRows implements Reader.
func (r *XLSXReader) ReadFormulaRows(sheet string) ([]models.Row, error) {
	return r.readRows(sheet, true)
}

func (r *XLSXReader) readRows(sheet string, formulas bool) ([]models.Row, error) {
	raw, err := r.f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	// Formula cells without a cached result have no raw value, so in formula
	// mode every position inside the sheet dimension is visited.
	maxCol, maxRow := 0, len(raw)
	if formulas {
		if cols, rows, err := r.dimension(sheet); err == nil && cols*rows <= maxFormulaCells {
			maxCol = cols
			if rows > maxRow {
				maxRow = rows
			}
		}
	}

	result := make([]models.Row, 0, maxRow)
	for rowIdx := 0; rowIdx < maxRow; rowIdx++ {
		rowNum := rowIdx + 1 // 1-based row index
		var rawRow []string
		if rowIdx < len(raw) {
			rawRow = raw[rowIdx]
		}

		width := len(rawRow)
		if maxCol > width {
			width = maxCol
		}

		cells := make([]models.Value, width)
		for colIdx := 0; colIdx < width; colIdx++ {
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err != nil {
				return nil, err
			}

			if formulas {
				formula, err := r.f.GetCellFormula(sheet, cellName)
				if err != nil {
					return nil, fmt.Errorf("formula %s: %w", cellName, err)
				}
				if formula != "" {
					cells[colIdx] = models.Formula(formula)
					continue
				}
			}

			var value string
			if colIdx < len(rawRow) {
				value = rawRow[colIdx]
			}
			if value == "" {
				continue
			}
			cells[colIdx], err = r.cellValue(sheet, cellName, value)
			if err != nil {
				return nil, err
			}
		}

		result = append(result, models.Row{Number: rowNum, Cells: trimRow(cells)})
	}

	return result, nil
}

func (r *XLSXReader) cellValue(sheet, cellName, raw string) (models.Value, error) {
	typ, err := r.f.GetCellType(sheet, cellName)
	if err != nil {
		return models.Value{}, fmt.Errorf("cell type %s: %w", cellName, err)
	}
	isDate := func() bool {
		style, err := r.f.GetCellStyle(sheet, cellName)
		if err != nil {
			return false
		}
		return r.isDateStyle(style)
	}
	return typedValue(raw, typ, isDate, r.date1904), nil
}

func (r *XLSXReader) isDateStyle(idx int) bool {
	if isDate, ok := r.dateStyles[idx]; ok {
		return isDate
	}
	var isDate bool
	if style, err := r.f.GetStyle(idx); err == nil && style != nil {
		custom := ""
		if style.CustomNumFmt != nil {
			custom = *style.CustomNumFmt
		}
		isDate = isDateFormat(style.NumFmt, custom)
	}
	r.dateStyles[idx] = isDate
	return isDate
}

// dimension returns the column and row extent of the sheet's used range.
func (r *XLSXReader) dimension(sheet string) (cols, rows int, err error) {
	ref, err := r.f.GetSheetDimension(sheet)
	if err != nil {
		return 0, 0, err
	}
	last := ref
	if idx := strings.LastIndex(ref, ":"); idx >= 0 {
		last = ref[idx+1:]
	}
	return excelize.CellNameToCoordinates(strings.ReplaceAll(last, "$", ""))
}
