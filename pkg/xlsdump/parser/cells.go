package parser

import (
	"strconv"
	"time"

	"github.com/ukaji3/xlsdump/pkg/xlsdump/models"
	"github.com/xuri/excelize/v2"
)

// parseValue attempts to parse a raw cell string as a number.
// Returns a Number for numeric strings and Text otherwise.
func parseValue(s string) models.Value {
	if s == "" {
		return models.Null()
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return models.Number(f)
	}
	return models.Text(s)
}

// parseBool decodes the raw value of a boolean cell ("1"/"0", "TRUE"/"FALSE").
func parseBool(s string) models.Value {
	if b, err := strconv.ParseBool(s); err == nil {
		return models.Bool(b)
	}
	return models.Text(s)
}

// parseISOTime decodes the raw value of an ISO 8601 date cell (t="d").
func parseISOTime(s string) models.Value {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return models.Time(t)
		}
	}
	return models.Text(s)
}

// typedValue converts the raw string of an xlsx cell into a Value using the
// cell's stored type. isDate reports whether the cell's style is a date format.
func typedValue(raw string, typ excelize.CellType, isDate func() bool, date1904 bool) models.Value {
	if raw == "" {
		return models.Null()
	}

	switch typ {
	case excelize.CellTypeBool:
		return parseBool(raw)
	case excelize.CellTypeDate:
		return parseISOTime(raw)
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		v := parseValue(raw)
		if f, ok := v.Float(); ok && isDate() {
			if t, err := excelize.ExcelDateToTime(f, date1904); err == nil {
				return models.Time(t)
			}
		}
		return v
	}
	return models.Text(raw)
}
