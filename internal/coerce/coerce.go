package coerce

import (
	"math"
	"strconv"
	"strings"
	"time"

	"datalens/domain/table"
)

// dateFormats is the ordered permissive attempt list. Order matters: the
// first matching layout wins, so unambiguous ISO shapes come first.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02-Jan-2006",
	"2-Jan-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
}

// Number attempts a permissive numeric parse: currency symbols, percent
// signs, thousands separators, European decimal commas, and parenthesized
// negatives are tolerated. NaN and Inf never parse.
func Number(raw string) (float64, bool) {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return 0, false
	}

	negative := false
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		clean = strings.TrimSuffix(strings.TrimPrefix(clean, "("), ")")
		negative = true
	}

	for _, symbol := range []string{"$", "€", "£", "¥", "%"} {
		clean = strings.ReplaceAll(clean, symbol, "")
	}
	clean = strings.TrimSpace(clean)

	hasComma := strings.Contains(clean, ",")
	hasPeriod := strings.Contains(clean, ".")
	switch {
	case hasComma && hasPeriod:
		// Decide decimal separator by which comes last.
		if strings.LastIndex(clean, ",") > strings.LastIndex(clean, ".") {
			// European: 1.234,56
			clean = strings.ReplaceAll(clean, ".", "")
			clean = strings.ReplaceAll(clean, ",", ".")
		} else {
			// Standard: 1,234.56
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case hasComma:
		// Comma only: decimal if a short fractional tail follows, otherwise
		// a thousands separator.
		tail := clean[strings.LastIndex(clean, ",")+1:]
		if len(tail) > 0 && len(tail) <= 2 {
			clean = strings.ReplaceAll(clean, ",", ".")
		} else {
			clean = strings.ReplaceAll(clean, ",", "")
		}
	}
	clean = strings.ReplaceAll(clean, " ", "")

	if negative {
		clean = "-" + clean
	}

	val, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, false
	}
	return val, true
}

// Date attempts the mixed-format date parse. Purely numeric strings never
// parse as dates; they belong to the numeric test.
func Date(raw string) (time.Time, bool) {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return time.Time{}, false
	}
	if _, err := strconv.ParseFloat(clean, 64); err == nil {
		return time.Time{}, false
	}

	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, clean); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CellNumber coerces a typed cell to float64. Native numerics pass through;
// text cells go through the permissive parse; everything else fails.
func CellNumber(v table.Value) (float64, bool) {
	switch {
	case v.IsMissing:
		return 0, false
	case v.IsNumeric():
		return *v.NumericVal, true
	case v.IsText():
		return Number(*v.TextVal)
	}
	return 0, false
}

// CellDate coerces a typed cell to a date. Native time cells pass through.
func CellDate(v table.Value) (time.Time, bool) {
	switch {
	case v.IsMissing:
		return time.Time{}, false
	case v.IsTime():
		return *v.TimeVal, true
	case v.IsText():
		return Date(*v.TextVal)
	}
	return time.Time{}, false
}
