package profile

// Category is the semantic classification of a column. Exactly one applies.
type Category string

const (
	CategoryNumerical Category = "Numerical"
	CategoryString    Category = "String"
	CategoryDate      Category = "Date"
	CategorySkipped   Category = "Skipped"
	CategoryError     Category = "Error"
)

// ChartData is a chart-ready label/value block. Rendering is the caller's
// job; the engine only emits the data.
type ChartData struct {
	Kind   string    `json:"kind"` // "histogram" or "bar"
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Stats is the category-dependent descriptive block. Numeric columns fill
// the five summary fields; date columns fill MinDate/MaxDate.
type Stats struct {
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Mean    *float64 `json:"mean,omitempty"`
	Median  *float64 `json:"median,omitempty"`
	StdDev  *float64 `json:"std_dev,omitempty"`
	MinDate string   `json:"min_date,omitempty"`
	MaxDate string   `json:"max_date,omitempty"`
}

// Outlier is one flagged value with its original 1-based row index.
type Outlier struct {
	Row   int     `json:"row"`
	Value float64 `json:"value"`
}

// OutlierReport carries the IQR fences, the total count, and the first few
// occurrences in row order. Entries is capped; TotalCount is not.
type OutlierReport struct {
	Entries    []Outlier `json:"entries"`
	TotalCount int       `json:"total_count"`
	LowerBound float64   `json:"lower_bound"`
	UpperBound float64   `json:"upper_bound"`
}

// Boxplot is the five-number summary. Whiskers are the most extreme
// non-outlier values, not the raw min/max.
type Boxplot struct {
	Min      float64   `json:"min"`
	Q1       float64   `json:"q1"`
	Median   float64   `json:"median"`
	Q3       float64   `json:"q3"`
	Max      float64   `json:"max"`
	Outliers []float64 `json:"outliers"`
}

// ColumnProfile is the per-column analysis output.
type ColumnProfile struct {
	Name           string         `json:"name"`
	Category       Category       `json:"category"`
	DtypeLabel     string         `json:"dtype"`
	MissingCount   int            `json:"missing_count"`
	UniqueCount    int            `json:"unique_count"`
	QualityPercent float64        `json:"quality_percent"`
	Stats          *Stats         `json:"stats,omitempty"`
	ChartPrimary   *ChartData     `json:"chart_primary,omitempty"`
	ChartSecondary *ChartData     `json:"chart_secondary,omitempty"`
	Outliers       *OutlierReport `json:"outliers,omitempty"`
	Boxplot        *Boxplot       `json:"boxplot,omitempty"`
	SkipReason     string         `json:"skip_reason,omitempty"`
	ErrorMessage   string         `json:"error_message,omitempty"`
}

// Correlation holds the numeric column names and their square Pearson
// matrix. Empty unless at least two columns are Numerical.
type Correlation struct {
	Columns []string    `json:"columns"`
	Matrix  [][]float64 `json:"matrix"`
}

// IsEmpty reports whether the block carries no matrix.
func (c Correlation) IsEmpty() bool {
	return len(c.Columns) < 2
}

// Result is the whole-table profile: an immutable snapshot computed in one
// call, holding no live view over the source table.
type Result struct {
	Valid          bool            `json:"valid"`
	Message        string          `json:"message"`
	Rows           int             `json:"rows"`
	Columns        int             `json:"columns"`
	QualityPercent float64         `json:"quality_percent"`
	ColumnNames    []string        `json:"column_names"`
	Preview        [][]string      `json:"preview"`
	ColumnProfiles []ColumnProfile `json:"column_analysis"`
	Correlation    Correlation     `json:"correlation"`
	Notices        []string        `json:"notices"`
}
