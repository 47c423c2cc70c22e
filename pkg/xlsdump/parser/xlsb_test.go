package parser

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ukaji3/xlsdump/pkg/xlsdump/models"
)

// BIFF12 record types used by the fixtures below.
const (
	recRow          = 0x0000
	recBoolErr      = 0x0003
	recBool         = 0x0004
	recFloat        = 0x0005
	recString       = 0x0007
	recSI           = 0x0013
	recFmt          = 0x002C
	recXF           = 0x002F
	recWorksheet    = 0x0181
	recWorksheetEnd = 0x0182
	recWorkbook     = 0x0183
	recWorkbookEnd  = 0x0184
	recSheetData    = 0x0191
	recSheetDataEnd = 0x0192
	recSheets       = 0x018F
	recSheetsEnd    = 0x0190
	recSheet        = 0x019C
	recSST          = 0x019F
	recSSTEnd       = 0x01A0
	recStyleSheet   = 0x0296
	recStyleEnd     = 0x0297
	recCellXfs      = 0x04E9
	recCellXfsEnd   = 0x04EA
)

// Cell styles in the fixture workbook.
const (
	styleDate    = 0 // numFmt 14
	styleISO     = 1 // numFmt 164 "yyyy-mm-dd"
	styleGeneral = 2
)

type biff12 struct {
	bytes.Buffer
}

func (b *biff12) record(id int, payload ...[]byte) {
	for {
		lo := id & 0xFF
		id >>= 8
		if id > 0 {
			b.WriteByte(byte(lo) | 0x80)
			continue
		}
		b.WriteByte(byte(lo) &^ 0x80)
		break
	}

	n := 0
	for _, p := range payload {
		n += len(p)
	}
	for {
		lo := n & 0x7F
		n >>= 7
		if n > 0 {
			b.WriteByte(byte(lo) | 0x80)
			continue
		}
		b.WriteByte(byte(lo))
		break
	}

	for _, p := range payload {
		b.Write(p)
	}
}

func u32(v uint32) []byte { return binary.LittleEndian.AppendUint32(nil, v) }

func u16(v uint16) []byte { return binary.LittleEndian.AppendUint16(nil, v) }

func f64(v float64) []byte { return binary.LittleEndian.AppendUint64(nil, math.Float64bits(v)) }

func wideString(s string) []byte {
	runes := []rune(s)
	out := u32(uint32(len(runes)))
	for _, r := range runes {
		out = append(out, u16(uint16(r))...)
	}
	return out
}

func cellHeader(col, style uint32) []byte {
	return append(u32(col), u32(style)...)
}

type xlsbSheet struct {
	name    string
	hsState uint32
	data    []byte
}

// writeXLSB assembles a binary workbook with a shared string table, three
// cell styles and the given sheets, and returns its path.
func writeXLSB(t *testing.T, strs []string, sheets ...xlsbSheet) string {
	t.Helper()

	var wb biff12
	wb.record(recWorkbook)
	wb.record(recSheets)
	rels := `<?xml version="1.0" encoding="UTF-8"?>` +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`
	for i, s := range sheets {
		id := "rId" + string(rune('1'+i))
		wb.record(recSheet, u32(s.hsState), u32(uint32(i+1)), wideString(id), wideString(s.name))
		rels += `<Relationship Id="` + id + `" Type="worksheet" Target="worksheets/sheet` + string(rune('1'+i)) + `.bin"/>`
	}
	rels += `</Relationships>`
	wb.record(recSheetsEnd)
	wb.record(recWorkbookEnd)

	var sst biff12
	sst.record(recSST, u32(uint32(len(strs))), u32(uint32(len(strs))))
	for _, s := range strs {
		sst.record(recSI, []byte{0x00}, wideString(s))
	}
	sst.record(recSSTEnd)

	xf := func(numFmt uint16) []byte {
		return append(append(u16(0), u16(numFmt)...), make([]byte, 8)...)
	}
	var styles biff12
	styles.record(recStyleSheet)
	styles.record(recFmt, u16(164), wideString("yyyy-mm-dd"))
	styles.record(recCellXfs)
	styles.record(recXF, xf(14))
	styles.record(recXF, xf(164))
	styles.record(recXF, xf(0))
	styles.record(recCellXfsEnd)
	styles.record(recStyleEnd)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entries := []struct {
		name string
		data []byte
	}{
		{"xl/_rels/workbook.bin.rels", []byte(rels)},
		{"xl/workbook.bin", wb.Bytes()},
		{"xl/sharedStrings.bin", sst.Bytes()},
		{"xl/styles.bin", styles.Bytes()},
	}
	for i, s := range sheets {
		entries = append(entries, struct {
			name string
			data []byte
		}{"xl/worksheets/sheet" + string(rune('1'+i)) + ".bin", s.data})
	}
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			t.Fatalf("zip create %s: %v", e.name, err)
		}
		if _, err := w.Write(e.data); err != nil {
			t.Fatalf("zip write %s: %v", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}

	path := filepath.Join(t.TempDir(), "book.xlsb")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return path
}

// worksheet wraps cell records in a sheet stream with no DIMENSION record.
func worksheet(body func(ws *biff12)) []byte {
	var ws biff12
	ws.record(recWorksheet)
	ws.record(recSheetData)
	body(&ws)
	ws.record(recSheetDataEnd)
	ws.record(recWorksheetEnd)
	return ws.Bytes()
}

// dataSheet holds row 1 [42.5, "hello", TRUE] and row 3 [2024-03-15, , , #DIV/0!].
// Row 3 lies beyond the one-column default dimension with a gap in columns B:C.
func dataSheet() []byte {
	return worksheet(func(ws *biff12) {
		ws.record(recRow, u32(0))
		ws.record(recFloat, cellHeader(0, styleGeneral), f64(42.5))
		ws.record(recString, cellHeader(1, styleGeneral), u32(0))
		ws.record(recBool, cellHeader(2, styleGeneral), []byte{1})

		ws.record(recRow, u32(2))
		ws.record(recFloat, cellHeader(0, styleDate), f64(45366))
		ws.record(recBoolErr, cellHeader(3, styleGeneral), []byte{0x07})
	})
}

func isoSheet() []byte {
	return worksheet(func(ws *biff12) {
		ws.record(recRow, u32(0))
		ws.record(recFloat, cellHeader(0, styleISO), f64(45366.5))
	})
}

func emptySheet() []byte {
	return worksheet(func(*biff12) {})
}

// brokenSheet has one good row followed by a ROW record too short to hold
// its row index.
func brokenSheet() []byte {
	return worksheet(func(ws *biff12) {
		ws.record(recRow, u32(0))
		ws.record(recString, cellHeader(0, styleGeneral), u32(0))
		ws.record(recRow, []byte{0x01, 0x00})
	})
}

func openFixtureXLSB(t *testing.T) *XLSBReader {
	t.Helper()
	path := writeXLSB(t, []string{"hello"},
		xlsbSheet{name: "Data", data: dataSheet()},
		xlsbSheet{name: "Stamps", data: isoSheet()},
		xlsbSheet{name: "Hidden", hsState: 1, data: emptySheet()},
		xlsbSheet{name: "Secret", hsState: 2, data: emptySheet()},
		xlsbSheet{name: "Broken", data: brokenSheet()},
	)
	r, err := OpenXLSB(path)
	if err != nil {
		t.Fatalf("OpenXLSB failed: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestXLSBReadRows(t *testing.T) {
	r := openFixtureXLSB(t)

	want := []string{"Data", "Stamps", "Hidden", "Secret", "Broken"}
	if got := r.SheetNames(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("SheetNames() = %v, want %v", got, want)
	}

	rows, err := r.ReadRows("Data")
	if err != nil {
		t.Fatalf("ReadRows failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[0].Number != 1 || rows[1].Number != 3 {
		t.Errorf("Row numbers = %d, %d; want 1, 3", rows[0].Number, rows[1].Number)
	}
	if len(rows[0].Cells) != 3 || len(rows[1].Cells) != 4 {
		t.Fatalf("Cell counts = %d, %d; want 3, 4", len(rows[0].Cells), len(rows[1].Cells))
	}

	tests := []struct {
		name string
		got  models.Value
		kind models.Kind
		want string
	}{
		{"number", rows[0].Cells[0], models.KindNumber, "42.5"},
		{"shared string", rows[0].Cells[1], models.KindText, "hello"},
		{"boolean", rows[0].Cells[2], models.KindBool, "TRUE"},
		{"date", rows[1].Cells[0], models.KindTime, "2024-03-15"},
		{"gap", rows[1].Cells[1], models.KindNull, ""},
		{"error", rows[1].Cells[3], models.KindText, "#DIV/0!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.Kind != tt.kind || tt.got.String() != tt.want {
				t.Errorf("got %q (kind %d), want %q (kind %d)", tt.got, tt.got.Kind, tt.want, tt.kind)
			}
		})
	}
}

func TestXLSBReadRows_CustomDateFormat(t *testing.T) {
	r := openFixtureXLSB(t)

	rows, err := r.ReadRows("Stamps")
	if err != nil {
		t.Fatalf("ReadRows failed: %v", err)
	}
	if len(rows) != 1 || len(rows[0].Cells) != 1 {
		t.Fatalf("Expected a single cell, got %v", rows)
	}
	if got := rows[0].Cells[0]; got.Kind != models.KindTime || got.String() != "2024-03-15T12:00:00" {
		t.Errorf("Expected 2024-03-15T12:00:00, got %q (kind %d)", got, got.Kind)
	}
}

func TestXLSBReadRows_CorruptStream(t *testing.T) {
	r := openFixtureXLSB(t)

	rows, err := r.ReadRows("Broken")
	if err == nil {
		t.Fatalf("Expected error for malformed row record, got %d rows", len(rows))
	}
	if !strings.Contains(err.Error(), "Broken") {
		t.Errorf("Expected sheet name in error, got %v", err)
	}

	// A later read of a healthy sheet is unaffected.
	if _, err := r.ReadRows("Data"); err != nil {
		t.Errorf("ReadRows(Data) after failure: %v", err)
	}
}

func TestXLSBReadRows_EmptyAndUnknown(t *testing.T) {
	r := openFixtureXLSB(t)

	rows, err := r.ReadRows("Hidden")
	if err != nil {
		t.Fatalf("ReadRows failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("Expected no rows, got %v", rows)
	}

	if _, err := r.ReadRows("NoSuchSheet"); err == nil {
		t.Error("Expected error for unknown sheet")
	}
}

func TestXLSBVisibility(t *testing.T) {
	r := openFixtureXLSB(t)

	tests := []struct {
		sheet   string
		want    models.Visibility
		wantErr bool
	}{
		{"Data", models.Visible, false},
		{"Hidden", models.Hidden, false},
		{"Secret", models.VeryHidden, false},
		{"NoSuchSheet", models.Visible, true},
	}
	for _, tt := range tests {
		t.Run(tt.sheet, func(t *testing.T) {
			got, err := r.Visibility(tt.sheet)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Visibility(%q) error = %v, wantErr %v", tt.sheet, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Visibility(%q) = %v, want %v", tt.sheet, got, tt.want)
			}
		})
	}
}

func TestXLSBCapabilities(t *testing.T) {
	r := openFixtureXLSB(t)

	if r.Format() != FormatXLSB {
		t.Errorf("Format() = %v, want %v", r.Format(), FormatXLSB)
	}
	if r.SupportsFormulas() {
		t.Error("Expected formulas to be unsupported")
	}
	if _, err := r.ReadFormulaRows("Data"); !errors.Is(err, ErrFormulasUnsupported) {
		t.Errorf("ReadFormulaRows error = %v, want ErrFormulasUnsupported", err)
	}
}

func TestOpenXLSB_Errors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.xlsb")
	if err := os.WriteFile(garbage, []byte("not a zip archive"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{filepath.Join(dir, "missing.xlsb"), garbage} {
		if _, err := OpenXLSB(path); err == nil {
			t.Errorf("Expected error opening %s", filepath.Base(path))
		}
	}
}
