package models

// SheetSummary reports what extraction did with one sheet.
type SheetSummary struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// Records is the number of rows kept.
	Records int `json:"records"`
	// Skipped is set when the sheet was not extracted.
	Skipped bool `json:"skipped,omitempty"`
	// Reason explains why the sheet was skipped.
	Reason string `json:"reason,omitempty"`
}

// WorkbookData is the result of extracting a workbook.
type WorkbookData struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Format is the detected workbook format, e.g. "xlsx".
	Format string `json:"format"`
	// Formulas is set when formula text was read instead of calculated values.
	Formulas bool `json:"formulas"`
	// Sheets summarizes every sheet in workbook order.
	Sheets []SheetSummary `json:"sheets"`
	// Records holds the surviving rows in sheet order, then row order.
	Records []Record `json:"-"`
}
