package services

import (
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm/schema"
)

type cellKind int

const (
	textCell cellKind = iota
	numberCell
	dateCell
)

// textDateLayouts werden für Datumszellen versucht, die als Text gespeichert sind.
var textDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02/01/2006",
	"02/01/2006 15:04:05",
}

var schemaCache sync.Map

// columnKinds leitet aus dem GORM-Modell ab, wie jede Spalte aus der Arbeitsmappe
// gelesen wird. Primärschlüssel und created_at werden nie aus der Datei übernommen.
func columnKinds(model any) (map[string]cellKind, error) {
	s, err := schema.Parse(model, &schemaCache, schema.NamingStrategy{})
	if err != nil {
		return nil, fmt.Errorf("parse model schema: %w", err)
	}
	kinds := make(map[string]cellKind, len(s.Fields))
	for _, f := range s.Fields {
		if f.DBName == "" || f.PrimaryKey || f.DBName == "created_at" {
			continue
		}
		switch f.IndirectFieldType {
		case reflect.TypeOf(float64(0)):
			kinds[f.DBName] = numberCell
		case reflect.TypeOf(time.Time{}):
			kinds[f.DBName] = dateCell
		default:
			kinds[f.DBName] = textCell
		}
	}
	return kinds, nil
}

// readSheet liest das erste Blatt einer Arbeitsmappe. Die erste Zeile ist die Kopfzeile;
// unbekannte Spalten werden ignoriert, leere oder nicht lesbare Zellen werden NULL.
func readSheet(r io.Reader, kinds map[string]cellKind) ([]map[string]any, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return []map[string]any{}, nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	records := make([]map[string]any, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]any, len(kinds))
		filled := false
		for i, col := range header {
			kind, ok := kinds[col]
			if !ok {
				continue
			}
			var raw string
			if i < len(row) {
				raw = row[i]
			}
			v := cellValue(kind, raw)
			if v != nil {
				filled = true
			}
			rec[col] = v
		}
		if filled {
			records = append(records, rec)
		}
	}
	return records, nil
}

func cellValue(kind cellKind, raw string) any {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	switch kind {
	case numberCell:
		n, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return nil
		}
		return n
	case dateCell:
		if t, ok := parseDate(s); ok {
			return t
		}
		return nil
	default:
		return raw
	}
}

// parseDate akzeptiert Excel-Seriennummern und die üblichen Textformate.
func parseDate(s string) (time.Time, bool) {
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	for _, layout := range textDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
