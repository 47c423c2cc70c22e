package xlsdump

import (
	"errors"
	"fmt"

	"github.com/ukaji3/xlsdump/pkg/xlsdump/parser"
)

// ErrNoFilesFound indicates a directory holds no workbook to process.
var ErrNoFilesFound = errors.New("no workbook files found")

// ErrInputNotFound indicates an explicitly named input file does not exist.
var ErrInputNotFound = errors.New("input file not found")

// ErrFormulasUnsupported indicates formula text was requested for a format
// that does not store it; extraction falls back to calculated values.
var ErrFormulasUnsupported = parser.ErrFormulasUnsupported

// ReadError represents a workbook that cannot be opened or decoded.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("error reading workbook %q: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// SheetError represents a failure while extracting a single sheet.
// It is reported as a warning; extraction continues with the next sheet.
type SheetError struct {
	SheetName string
	Err       error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("could not process sheet %q: %v", e.SheetName, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}
