package storage

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

const (
	dateLayout = "2006-01-02"
	// TimestampLayout ist das ISO-Format für Zeitstempel ohne Zone in API-Antworten.
	TimestampLayout = "2006-01-02T15:04:05.999999"
)

// cleanValue macht einen Spaltenwert JSON-tauglich: Datum/Zeit als ISO-Text,
// NUMERIC als Dezimaltext, alles Unbekannte als Text.
func cleanValue(oid uint32, v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case string, bool, int, int16, int32, int64:
		return val
	case float32:
		return cleanFloat(float64(val))
	case float64:
		return cleanFloat(val)
	case time.Time:
		switch oid {
		case pgtype.DateOID:
			return val.Format(dateLayout)
		case pgtype.TimestampOID:
			return val.Format(TimestampLayout)
		default:
			return val.Format(time.RFC3339Nano)
		}
	case pgtype.Numeric:
		return numericText(val)
	case []byte:
		return string(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

func cleanFloat(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}

func numericText(n pgtype.Numeric) any {
	if !n.Valid {
		return nil
	}
	if n.NaN || n.InfinityModifier != pgtype.Finite {
		return nil
	}
	v, err := n.Value()
	if err != nil || v == nil {
		return nil
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// columnKeys vergibt eindeutige Schlüssel. Doppelte Spaltennamen aus dem JOIN werden
// nicht verworfen, sondern über ihre Position unterschieden: name_<index>.
func columnKeys(names []string) []string {
	seen := make(map[string]bool, len(names))
	keys := make([]string, len(names))
	for i, name := range names {
		key := name
		if seen[name] {
			key = name + "_" + strconv.Itoa(i)
		}
		seen[name] = true
		seen[key] = true
		keys[i] = key
	}
	return keys
}
