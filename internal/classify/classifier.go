package classify

import (
	"sort"
	"strings"

	"datalens/domain/profile"
	"datalens/domain/table"
	"datalens/internal/coerce"
)

// Config defines the classification thresholds.
type Config struct {
	DateSampleSize    int     `json:"date_sample_size"`     // values sampled for the date parse test
	DateRatio         float64 `json:"date_ratio"`           // parse success needed without a name hint
	HintedDateRatio   float64 `json:"hinted_date_ratio"`    // parse success needed with a name hint
	NumericRatio      float64 `json:"numeric_ratio"`        // fraction that must parse as numbers
	IDUniqueRatio     float64 `json:"id_unique_ratio"`      // uniqueness ratio floor for sequential IDs
	IDMinUnique       int     `json:"id_min_unique"`        // distinct value floor for sequential IDs
	IDIntegralSample  int     `json:"id_integral_sample"`   // leading values checked for zero fraction
	IDDiffModeShare   float64 `json:"id_diff_mode_share"`   // share of diffs the modal step must cover
	HighCardRatio     float64 `json:"high_card_ratio"`      // uniqueness ratio above which text is skipped
	HighCardMinUnique int     `json:"high_card_min_unique"` // distinct value floor for the text skip
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		DateSampleSize:    50,
		DateRatio:         0.8,
		HintedDateRatio:   0.5,
		NumericRatio:      0.8,
		IDUniqueRatio:     0.95,
		IDMinUnique:       100,
		IDIntegralSample:  200,
		IDDiffModeShare:   0.90,
		HighCardRatio:     0.85,
		HighCardMinUnique: 50,
	}
}

// Decision is the classification outcome. SkipReason is set only when the
// category is Skipped.
type Decision struct {
	Category   profile.Category
	SkipReason string
}

// Classifier decides each column's semantic category. It is a pure function
// of the column's values, its header name, and the table row count.
type Classifier struct {
	config Config
}

// New creates a classifier with the given thresholds.
func New(config Config) *Classifier {
	return &Classifier{config: config}
}

// NewDefault creates a classifier with production thresholds.
func NewDefault() *Classifier {
	return New(DefaultConfig())
}

var dateHints = []string{
	"date", "time", "timestamp", "created", "updated", "dt",
	"dob", "birth", "start", "end", "expiry", "due",
}

var idTokens = []string{
	"_id", "id_", "key", "index", "idx", "code",
	"_no", "_num", "serial", "pk", "fk", "identifier",
}

// Classify assigns exactly one category. It is deterministic, total, and
// never panics; unparseable values simply do not count toward their ratio.
func (c *Classifier) Classify(values []table.Value, name string, totalRows int) Decision {
	clean := nonMissing(values)
	if len(clean) == 0 {
		return Decision{Category: profile.CategoryString}
	}

	if c.isDate(clean, name) {
		return Decision{Category: profile.CategoryDate}
	}

	numerics := make([]float64, 0, len(clean))
	for _, v := range clean {
		if n, ok := coerce.CellNumber(v); ok {
			numerics = append(numerics, n)
		}
	}
	numericRatio := float64(len(numerics)) / float64(len(clean))
	unique := UniqueCount(clean)

	if numericRatio >= c.config.NumericRatio {
		if c.isSequentialID(numerics, name, unique, totalRows) {
			return Decision{
				Category:   profile.CategorySkipped,
				SkipReason: "sequential identifier",
			}
		}
		return Decision{Category: profile.CategoryNumerical}
	}

	if totalRows > 0 {
		cardinality := float64(unique) / float64(totalRows)
		if cardinality > c.config.HighCardRatio && unique > c.config.HighCardMinUnique {
			return Decision{
				Category:   profile.CategorySkipped,
				SkipReason: "high cardinality free-text field",
			}
		}
	}
	return Decision{Category: profile.CategoryString}
}

// isDate applies the three-way date test: native date storage, a sample
// parse above the unhinted threshold, or a name hint plus a weaker parse.
func (c *Classifier) isDate(clean []table.Value, name string) bool {
	native := true
	for _, v := range clean {
		if !v.IsTime() {
			native = false
			break
		}
	}
	if native {
		return true
	}

	sample := clean
	if len(sample) > c.config.DateSampleSize {
		sample = sample[:c.config.DateSampleSize]
	}
	parsed := 0
	for _, v := range sample {
		if _, ok := coerce.CellDate(v); ok {
			parsed++
		}
	}
	ratio := float64(parsed) / float64(len(sample))

	if ratio >= c.config.DateRatio {
		return true
	}
	return hasDateHint(name) && ratio >= c.config.HintedDateRatio
}

// isSequentialID guards continuous measures from being mistaken for keys:
// all of high uniqueness, integral values, and either a name token or a
// dominant constant step must hold.
func (c *Classifier) isSequentialID(numerics []float64, name string, unique, totalRows int) bool {
	if totalRows == 0 || unique <= c.config.IDMinUnique {
		return false
	}
	if float64(unique)/float64(totalRows) <= c.config.IDUniqueRatio {
		return false
	}

	head := numerics
	if len(head) > c.config.IDIntegralSample {
		head = head[:c.config.IDIntegralSample]
	}
	for _, n := range head {
		if n != float64(int64(n)) {
			return false
		}
	}

	return hasIDName(name) || c.isArithmeticProgression(numerics)
}

// isArithmeticProgression reports whether the sorted values step by one
// dominant positive constant. The modal diff must cover more than the
// configured share of all diffs; frequency ties resolve to the smaller
// step, so bimodal gap patterns do not qualify.
func (c *Classifier) isArithmeticProgression(numerics []float64) bool {
	if len(numerics) < 2 {
		return false
	}

	sorted := make([]float64, len(numerics))
	copy(sorted, numerics)
	sort.Float64s(sorted)

	freq := make(map[float64]int)
	for i := 1; i < len(sorted); i++ {
		freq[sorted[i]-sorted[i-1]]++
	}

	mode, modeCount := 0.0, 0
	for diff, count := range freq {
		if count > modeCount || (count == modeCount && diff < mode) {
			mode, modeCount = diff, count
		}
	}

	totalDiffs := len(sorted) - 1
	return mode > 0 && float64(modeCount)/float64(totalDiffs) > c.config.IDDiffModeShare
}

// UniqueCount returns the number of distinct stringified non-missing values.
func UniqueCount(values []table.Value) int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v.IsMissing {
			continue
		}
		seen[v.String()] = struct{}{}
	}
	return len(seen)
}

func nonMissing(values []table.Value) []table.Value {
	out := make([]table.Value, 0, len(values))
	for _, v := range values {
		if !v.IsMissing {
			out = append(out, v)
		}
	}
	return out
}

func hasDateHint(name string) bool {
	lower := strings.ToLower(name)
	for _, hint := range dateHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

func hasIDName(name string) bool {
	lower := strings.ToLower(name)
	if lower == "id" {
		return true
	}
	for _, token := range idTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}
