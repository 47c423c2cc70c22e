package models

// Record is a row that survived filtering, tagged with its sheet.
type Record struct {
	// Sheet is the worksheet the row came from.
	Sheet string
	// RowNumber is the row's 1-based position in the sheet as laid out.
	RowNumber int
	// Cells holds the row's values in original column order.
	Cells []Value
}

// Fields flattens the record into its serialized field sequence:
// the sheet name, the row number when withRowNumber is set, then the cells.
func (r Record) Fields(withRowNumber bool) []Value {
	n := 1 + len(r.Cells)
	if withRowNumber {
		n++
	}
	fields := make([]Value, 0, n)
	fields = append(fields, Text(r.Sheet))
	if withRowNumber {
		fields = append(fields, Number(float64(r.RowNumber)))
	}
	return append(fields, r.Cells...)
}
