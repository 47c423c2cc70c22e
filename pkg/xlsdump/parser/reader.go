// Package parser provides workbook decoders behind a common Reader interface.
package parser

import (
	"errors"
	"fmt"

	"github.com/ukaji3/xlsdump/pkg/xlsdump/models"
)

// ErrFormulasUnsupported is returned by ReadFormulaRows on formats that do
// not expose stored formula text.
var ErrFormulasUnsupported = errors.New("formula text not supported for this format")

// Reader is an opened workbook.
type Reader interface {
	// Format returns the decoded container format.
	Format() Format
	// SheetNames lists the worksheets in workbook order.
	SheetNames() []string
	// Visibility returns the visibility state of a sheet.
	Visibility(sheet string) (models.Visibility, error)
	// ReadRows returns the calculated or literal values of a sheet.
	ReadRows(sheet string) ([]models.Row, error)
	// ReadFormulaRows is like ReadRows but renders formula cells as formula text.
	ReadFormulaRows(sheet string) ([]models.Row, error)
	// SupportsFormulas reports whether ReadFormulaRows is available.
	SupportsFormulas() bool
	// Close releases the underlying file.
	Close() error
}

// Open detects the format of path and opens it with the matching reader.
func Open(path string) (Reader, error) {
	format, err := Detect(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatXLSX, FormatXLSM:
		return OpenXLSX(path, format)
	case FormatXLSB:
		return OpenXLSB(path)
	case FormatXLS:
		return OpenXLS(path)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

// Sheets returns the sheets of r with their visibility.
// Sheets whose visibility cannot be read are reported visible.
func Sheets(r Reader) []models.Sheet {
	names := r.SheetNames()
	sheets := make([]models.Sheet, 0, len(names))
	for _, name := range names {
		vis, err := r.Visibility(name)
		if err != nil {
			vis = models.Visible
		}
		sheets = append(sheets, models.Sheet{Name: name, Visibility: vis})
	}
	return sheets
}

// trimRow drops trailing null cells.
func trimRow(cells []models.Value) []models.Value {
	end := len(cells)
	for end > 0 && cells[end-1].Kind == models.KindNull {
		end--
	}
	return cells[:end]
}
