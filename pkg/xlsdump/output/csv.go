package output

import (
	"encoding/csv"
	"io"

	"github.com/ukaji3/xlsdump/pkg/xlsdump/models"
)

// WriteCSV writes records as UTF-8 CSV with a Worksheet[,Row_Number],Column_N
// header. Short records are padded with empty fields to the header width.
// With no records the file is created empty.
func WriteCSV(records []models.Record, path string, withRowNumbers bool) error {
	return writeFile(path, func(w io.Writer) error {
		return encodeCSV(w, records, withRowNumbers)
	})
}

func encodeCSV(w io.Writer, records []models.Record, withRowNumbers bool) error {
	if len(records) == 0 {
		return nil
	}

	cw := csv.NewWriter(w)
	header := ColumnNames(records, withRowNumbers)
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for _, r := range records {
		fields := r.Fields(withRowNumbers)
		for i := range row {
			row[i] = ""
			if i < len(fields) {
				row[i] = fields[i].String()
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
