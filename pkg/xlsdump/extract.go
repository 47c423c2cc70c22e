package xlsdump

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ukaji3/xlsdump/pkg/xlsdump/models"
	"github.com/ukaji3/xlsdump/pkg/xlsdump/parser"
)

// Extract reads every sheet of the workbook at path and returns the rows
// that carry data, in sheet order and then original row order.
// Failing to open the workbook is fatal; a failing sheet is logged and skipped.
func Extract(path string, opts Options) (*models.WorkbookData, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, &ReadError{Path: path, Err: err}
	}

	r, err := parser.Open(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	defer r.Close()

	return ExtractFrom(r, filepath.Base(path), opts), nil
}

// ExtractFrom runs extraction over an already opened workbook.
func ExtractFrom(r parser.Reader, bookName string, opts Options) *models.WorkbookData {
	logger := opts.logger().With("workbook", bookName)

	formulas := opts.IncludeFormulas
	if formulas && !r.SupportsFormulas() {
		logger.Warn("formulas requested but not stored by this format; using calculated values",
			"format", r.Format(), "error", ErrFormulasUnsupported)
		formulas = false
	}

	wb := &models.WorkbookData{
		BookName: bookName,
		Format:   string(r.Format()),
		Formulas: formulas,
	}

	for _, sheet := range parser.Sheets(r) {
		summary := models.SheetSummary{Name: sheet.Name}

		if sheet.IsHidden() && !opts.IncludeHidden {
			logger.Info("skipping hidden sheet", "sheet", sheet.Name, "visibility", sheet.Visibility)
			summary.Skipped, summary.Reason = true, "hidden"
			wb.Sheets = append(wb.Sheets, summary)
			continue
		}

		records, err := extractSheet(r, sheet.Name, formulas)
		if err != nil {
			serr := &SheetError{SheetName: sheet.Name, Err: err}
			logger.Warn(serr.Error(), "sheet", sheet.Name)
			summary.Skipped, summary.Reason = true, err.Error()
			wb.Sheets = append(wb.Sheets, summary)
			continue
		}
		if records == nil {
			summary.Skipped, summary.Reason = true, "empty"
		}

		summary.Records = len(records)
		logger.Debug("extracted sheet", "sheet", sheet.Name, "records", summary.Records)
		wb.Sheets = append(wb.Sheets, summary)
		wb.Records = append(wb.Records, records...)
	}

	return wb
}

// extractSheet returns the records of one sheet, or nil for a sheet without rows.
// A decoder panic on malformed content is returned as an error.
func extractSheet(r parser.Reader, sheet string, formulas bool) (records []models.Record, err error) {
	defer func() {
		if p := recover(); p != nil {
			records, err = nil, fmt.Errorf("malformed sheet content: %v", p)
		}
	}()

	var rows []models.Row
	if formulas {
		rows, err = r.ReadFormulaRows(sheet)
	} else {
		rows, err = r.ReadRows(sheet)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	records = make([]models.Record, 0, len(rows))
	for _, row := range rows {
		if !HasSignal(row.Cells) {
			continue
		}
		records = append(records, models.Record{
			Sheet:     sheet,
			RowNumber: row.Number,
			Cells:     row.Cells,
		})
	}
	return records, nil
}
