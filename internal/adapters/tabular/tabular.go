// Package tabular holds the loosely-typed table shape that user-edited
// data arrives in, plus the best-effort coercion helpers used while
// cleaning it. Coercion never fails hard; callers drop rows where a
// required field does not coerce.
package tabular

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Row is a single column-name-addressable record. Values may be strings
// (CSV/XLSX cells), JSON numbers, or native Go numerics.
type Row map[string]any

// Table is an ordered batch of rows.
type Table []Row

// Canonicalize lowercases and trims every column name and applies the
// given alias map. Unknown columns keep their lowered name. Row order is
// preserved; when two source columns collapse onto the same canonical
// name the later one wins.
func (t Table) Canonicalize(aliases map[string]string) Table {
	out := make(Table, 0, len(t))
	for _, row := range t {
		cr := make(Row, len(row))
		for col, v := range row {
			key := strings.ToLower(strings.TrimSpace(col))
			if canon, ok := aliases[key]; ok {
				key = canon
			}
			cr[key] = v
		}
		out = append(out, cr)
	}
	return out
}

// Clone returns a deep-enough copy of the table for snapshot purposes.
// Cell values are treated as immutable.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, 0, len(t))
	for _, row := range t {
		cr := make(Row, len(row))
		for k, v := range row {
			cr[k] = v
		}
		out = append(out, cr)
	}
	return out
}

// Int coerces a cell to an integer. Floats must be integral; strings are
// trimmed and parsed. The bool result reports success.
func Int(v any) (int, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.IsNaN(n) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		return Int(string(n))
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		if i, err := strconv.Atoi(s); err == nil {
			return i, true
		}
		// "3.0" style cells coming out of spreadsheet exports.
		d, ok := Decimal(s)
		if !ok || !d.IsInteger() {
			return 0, false
		}
		return int(d.IntPart()), true
	default:
		return 0, false
	}
}

// Decimal coerces a cell to an exact decimal. String cells may use a
// comma as the decimal separator (German spreadsheet exports); the comma
// form is only tried when the dot form does not parse.
func Decimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case nil:
		return decimal.Zero, false
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case float64:
		if math.IsInf(n, 0) || math.IsNaN(n) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(n), true
	case json.Number:
		return Decimal(string(n))
	case decimal.Decimal:
		return n, true
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return decimal.Zero, false
		}
		if d, err := decimal.NewFromString(s); err == nil {
			return d, true
		}
		if strings.Contains(s, ",") && !strings.Contains(s, ".") {
			if d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ".")); err == nil {
				return d, true
			}
		}
		return decimal.Zero, false
	default:
		return decimal.Zero, false
	}
}
