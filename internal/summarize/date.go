package summarize

import (
	"time"

	"datalens/domain/profile"
	"datalens/domain/table"
	"datalens/internal/coerce"
)

// Dates reports the min and max parsed date of a column. Unparseable
// entries are dropped; zero parses yields nil stats, not an error.
func Dates(values []table.Value) *profile.Stats {
	var min, max time.Time
	parsed := 0

	for _, v := range values {
		t, ok := coerce.CellDate(v)
		if !ok {
			continue
		}
		if parsed == 0 || t.Before(min) {
			min = t
		}
		if parsed == 0 || t.After(max) {
			max = t
		}
		parsed++
	}
	if parsed == 0 {
		return nil
	}

	return &profile.Stats{
		MinDate: min.Format("2006-01-02"),
		MaxDate: max.Format("2006-01-02"),
	}
}
