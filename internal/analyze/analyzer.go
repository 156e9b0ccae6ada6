package analyze

import (
	"fmt"
	"math"

	"datalens/domain/profile"
	"datalens/domain/table"
	"datalens/internal/classify"
	"datalens/internal/correlate"
	"datalens/internal/summarize"
)

// previewRows is how many stringified rows the result carries for display.
const previewRows = 5

// secondaryChartMaxUnique bounds the distinct count at which a numeric
// column also gets a value-count bar chart.
const secondaryChartMaxUnique = 20

// Notices collects human-readable diagnostics for user-facing feedback. The
// orchestrator writes here instead of to a process-wide logger so the engine
// stays free of I/O side effects.
type Notices interface {
	Addf(format string, args ...interface{})
}

// noticeList is the default slice-backed collector.
type noticeList struct {
	entries []string
}

func (n *noticeList) Addf(format string, args ...interface{}) {
	n.entries = append(n.entries, fmt.Sprintf(format, args...))
}

// Analyzer drives the profiling pipeline. It holds no mutable state across
// calls and may be shared by concurrent callers.
type Analyzer struct {
	classifier *classify.Classifier
}

// New creates an analyzer with production classification thresholds.
func New() *Analyzer {
	return &Analyzer{classifier: classify.NewDefault()}
}

// NewWithConfig creates an analyzer with custom classification thresholds.
func NewWithConfig(config classify.Config) *Analyzer {
	return &Analyzer{classifier: classify.New(config)}
}

// Profile computes the full table profile in one synchronous call. A failure
// while analyzing one column degrades that column to an Error entry; it
// never aborts the run.
func (a *Analyzer) Profile(tbl *table.Table) *profile.Result {
	notices := &noticeList{}
	rows := tbl.RowCount()

	result := &profile.Result{
		Valid:          true,
		Message:        "Uploaded file is in correct format",
		Rows:           rows,
		Columns:        tbl.ColumnCount(),
		QualityPercent: overallQuality(tbl),
		ColumnNames:    tbl.ColumnNames(),
		Preview:        preview(tbl),
		ColumnProfiles: make([]profile.ColumnProfile, 0, tbl.ColumnCount()),
	}

	numeric := make([]correlate.Series, 0, tbl.ColumnCount())
	for _, col := range tbl.Columns {
		cp := a.profileColumn(col, rows, notices)
		if cp.Category == profile.CategoryNumerical {
			numeric = append(numeric, correlate.Series{Name: col.Name, Values: col.Values})
		}
		result.ColumnProfiles = append(result.ColumnProfiles, cp)
	}

	result.Correlation = correlate.Matrix(numeric)
	if len(numeric) < 2 {
		notices.Addf("correlation skipped: fewer than 2 numeric columns")
	}

	result.Notices = notices.entries
	if result.Notices == nil {
		result.Notices = []string{}
	}
	return result
}

// profileColumn classifies and summarizes one column. A panic anywhere in
// the per-column path is captured as an Error-category entry.
func (a *Analyzer) profileColumn(col table.Column, totalRows int, notices Notices) (cp profile.ColumnProfile) {
	defer func() {
		if r := recover(); r != nil {
			cp = profile.ColumnProfile{
				Name:         col.Name,
				Category:     profile.CategoryError,
				ErrorMessage: fmt.Sprintf("%v", r),
			}
			notices.Addf("column %q errored: %v", col.Name, r)
		}
	}()

	missing := 0
	for _, v := range col.Values {
		if v.IsMissing {
			missing++
		}
	}

	cp = profile.ColumnProfile{
		Name:           col.Name,
		DtypeLabel:     dtypeLabel(col.Values),
		MissingCount:   missing,
		UniqueCount:    classify.UniqueCount(col.Values),
		QualityPercent: qualityPercent(missing, totalRows),
	}

	decision := a.classifier.Classify(col.Values, col.Name, totalRows)
	cp.Category = decision.Category

	switch decision.Category {
	case profile.CategoryNumerical:
		summary := summarize.Numeric(col.Values)
		cp.Stats = summary.Stats
		cp.ChartPrimary = summary.Histogram
		cp.Outliers = summary.Outliers
		cp.Boxplot = summary.Boxplot
		if cp.UniqueCount <= secondaryChartMaxUnique {
			cp.ChartSecondary = summarize.Categorical(col.Values)
		}
	case profile.CategoryString:
		cp.ChartPrimary = summarize.Categorical(col.Values)
	case profile.CategoryDate:
		cp.Stats = summarize.Dates(col.Values)
	case profile.CategorySkipped:
		cp.SkipReason = decision.SkipReason
		notices.Addf("column %q skipped: %s", col.Name, decision.SkipReason)
	}
	return cp
}

// overallQuality is the table-level data quality percentage: the share of
// non-missing cells, 100.0 for a table with no cells.
func overallQuality(tbl *table.Table) float64 {
	totalCells := 0
	missingCells := 0
	for _, col := range tbl.Columns {
		for _, v := range col.Values {
			totalCells++
			if v.IsMissing {
				missingCells++
			}
		}
	}
	if totalCells == 0 {
		return 100.0
	}
	return round1(100 * (1 - float64(missingCells)/float64(totalCells)))
}

func qualityPercent(missing, totalRows int) float64 {
	if totalRows == 0 {
		return 100.0
	}
	return round1(100 * (1 - float64(missing)/float64(totalRows)))
}

// preview stringifies the first few rows for display.
func preview(tbl *table.Table) [][]string {
	rows := tbl.RowCount()
	if rows > previewRows {
		rows = previewRows
	}
	out := make([][]string, rows)
	for r := 0; r < rows; r++ {
		out[r] = make([]string, tbl.ColumnCount())
		for c := 0; c < tbl.ColumnCount(); c++ {
			out[r][c] = tbl.Cell(r, c).String()
		}
	}
	return out
}

// dtypeLabel reports the storage type the values arrived as. Informational
// only; classification never depends on it.
func dtypeLabel(values []table.Value) string {
	numeric, text, times := 0, 0, 0
	for _, v := range values {
		switch {
		case v.IsNumeric():
			numeric++
		case v.IsTime():
			times++
		case v.IsText():
			text++
		}
	}
	present := numeric + text + times
	switch {
	case present == 0:
		return "empty"
	case numeric == present:
		return "numeric"
	case times == present:
		return "datetime"
	case text == present:
		return "text"
	}
	return "mixed"
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
