// Package models defines data structures for workbook extraction.
package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// FormulaPrefix marks a cell rendered as formula text rather than its result.
// The text never starts with "=" so spreadsheet software will not re-evaluate it.
const FormulaPrefix = "FORMULA: ="

// Kind identifies the type of value held by a cell.
type Kind int

const (
	// KindNull is an absent cell.
	KindNull Kind = iota
	// KindText is a string cell.
	KindText
	// KindNumber is a numeric cell.
	KindNumber
	// KindBool is a boolean cell.
	KindBool
	// KindTime is a date/time cell.
	KindTime
	// KindFormula is formula text, rendered with FormulaPrefix.
	KindFormula
)

// Value is a single cell value.
type Value struct {
	Kind Kind
	text string
	num  float64
	b    bool
	t    time.Time
}

// Null returns the absent value.
func Null() Value { return Value{} }

// Text returns a string value.
func Text(s string) Value { return Value{Kind: KindText, text: s} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{Kind: KindNumber, num: f} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{Kind: KindBool, b: b} }

// Time returns a date/time value.
func Time(t time.Time) Value { return Value{Kind: KindTime, t: t} }

// Formula returns formula text for body. A leading "=" on body is dropped.
func Formula(body string) Value {
	if len(body) > 0 && body[0] == '=' {
		body = body[1:]
	}
	return Value{Kind: KindFormula, text: body}
}

// IsNull reports whether the value is absent. Non-finite numbers count as absent.
func (v Value) IsNull() bool {
	switch v.Kind {
	case KindNull:
		return true
	case KindNumber:
		return math.IsNaN(v.num) || math.IsInf(v.num, 0)
	}
	return false
}

// Float returns the numeric payload and whether the value is a number.
func (v Value) Float() (float64, bool) {
	return v.num, v.Kind == KindNumber
}

// String returns the textual representation of the value.
// Null and non-finite numbers render as "".
func (v Value) String() string {
	switch v.Kind {
	case KindText:
		return v.text
	case KindNumber:
		if v.IsNull() {
			return ""
		}
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		if v.b {
			return "TRUE"
		}
		return "FALSE"
	case KindTime:
		return formatTime(v.t)
	case KindFormula:
		return FormulaPrefix + v.text
	}
	return ""
}

// MarshalJSON encodes numbers and booleans natively and everything else as a string.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		if v.IsNull() {
			return []byte("null"), nil
		}
		return []byte(strconv.FormatFloat(v.num, 'f', -1, 64)), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindNull:
		return []byte("null"), nil
	}
	return marshalString(v.String())
}

// marshalString encodes s without HTML escaping.
func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// formatTime drops the clock for midnight values and the zone for UTC.
func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	if t.Location() == time.UTC {
		return t.Format("2006-01-02T15:04:05")
	}
	return t.Format(time.RFC3339)
}
