package models

// Visibility is the visibility state of a sheet.
type Visibility int

const (
	// Visible sheets are shown in the workbook tab bar.
	Visible Visibility = iota
	// Hidden sheets can be unhidden by the user.
	Hidden
	// VeryHidden sheets can only be unhidden programmatically.
	VeryHidden
)

// String returns the OOXML name of the visibility state.
func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case VeryHidden:
		return "veryHidden"
	}
	return "visible"
}

// Sheet describes a worksheet as reported by a workbook reader.
type Sheet struct {
	// Name is the sheet name, unique within the workbook.
	Name string `json:"name"`
	// Visibility is the sheet's visibility state.
	Visibility Visibility `json:"-"`
}

// IsHidden reports whether the sheet is hidden or very hidden.
func (s Sheet) IsHidden() bool {
	return s.Visibility != Visible
}

// Row is one laid-out row of a sheet.
type Row struct {
	// Number is the row's 1-based position in the sheet.
	Number int
	// Cells holds the row's values in column order. Rows may be jagged.
	Cells []Value
}
