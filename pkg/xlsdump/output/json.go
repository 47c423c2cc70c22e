package output

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/ukaji3/xlsdump/pkg/xlsdump/models"
)

// WriteJSON writes records as a pretty-printed JSON array of objects keyed
// like the CSV header. Null, blank and "NaN" fields are omitted.
func WriteJSON(records []models.Record, path string, withRowNumbers bool) error {
	return writeFile(path, func(w io.Writer) error {
		return encodeJSON(w, records, withRowNumbers)
	})
}

func encodeJSON(w io.Writer, records []models.Record, withRowNumbers bool) error {
	names := ColumnNames(records, withRowNumbers)

	objects := make([]object, 0, len(records))
	for _, r := range records {
		fields := r.Fields(withRowNumbers)
		obj := object{}
		for i, v := range fields {
			if i >= len(names) {
				break
			}
			if omitField(v) {
				continue
			}
			obj = append(obj, member{Key: names[i], Value: v})
		}
		objects = append(objects, obj)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(objects)
}

// omitField reports whether a field is left out of its JSON object.
func omitField(v models.Value) bool {
	if v.IsNull() {
		return true
	}
	s := v.String()
	return strings.TrimSpace(s) == "" || strings.EqualFold(s, "nan")
}

type member struct {
	Key   string
	Value models.Value
}

// object is a JSON object that keeps its keys in insertion order.
type object []member

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := m.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
