// Package output names and writes extraction results as CSV or JSON.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ukaji3/xlsdump/pkg/xlsdump/models"
)

// Format is an output file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat parses a format name ("csv" or "json").
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatJSON:
		return Format(s), nil
	case "":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("invalid format: %s (must be csv or json)", s)
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	if f == FormatJSON {
		return ".json"
	}
	return ".csv"
}

// WriteError represents a failure to create or write an output file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("error writing output file %q: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Write renders records to path in the given format.
func Write(records []models.Record, path string, format Format, withRowNumbers bool) error {
	if format == FormatJSON {
		return WriteJSON(records, path, withRowNumbers)
	}
	return WriteCSV(records, path, withRowNumbers)
}

// ColumnNames returns the header for records: "Worksheet", "Row_Number"
// when withRowNumbers is set, then "Column_1".."Column_N" where N is the
// widest record's cell count.
func ColumnNames(records []models.Record, withRowNumbers bool) []string {
	width := 0
	for _, r := range records {
		if len(r.Cells) > width {
			width = len(r.Cells)
		}
	}

	names := make([]string, 0, width+2)
	names = append(names, "Worksheet")
	if withRowNumbers {
		names = append(names, "Row_Number")
	}
	for i := 1; i <= width; i++ {
		names = append(names, fmt.Sprintf("Column_%d", i))
	}
	return names
}

// writeFile writes path through a temporary file in the same directory that
// is linked into place once render succeeds. A failed write leaves no partial
// output behind, and an existing path fails with fs.ErrExist instead of being
// replaced.
func writeFile(path string, render func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".xlsdump-*.tmp")
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := render(tmp); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := tmp.Chmod(0644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := os.Link(tmp.Name(), path); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	_ = os.Remove(tmp.Name())
	return nil
}
