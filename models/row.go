package models

import (
	"bytes"
	"encoding/json"
)

// Row ist eine projizierte Ergebniszeile. Die Spaltenreihenfolge der Abfrage bleibt
// im JSON erhalten; Werte sind bereits JSON-taugliche Primitive.
type Row struct {
	Columns []string
	Values  []any
}

// Get liefert den Wert einer Spalte.
func (r Row) Get(column string) (any, bool) {
	for i, c := range r.Columns {
		if c == column {
			return r.Values[i], true
		}
	}
	return nil, false
}

// MarshalJSON schreibt die Zeile als Objekt in Spaltenreihenfolge.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.Values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
