package summarize

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"datalens/domain/profile"
	"datalens/domain/table"
	"datalens/internal/coerce"
)

const (
	minHistogramN    = 2
	minOutlierN      = 4
	minBins          = 5
	maxBins          = 50
	maxOutlierRows   = 5
	maxBoxplotValues = 50
)

// NumericSummary bundles the artifacts computed for a Numerical column.
// Artifacts below their sample-size minimum stay nil; that is a soft
// condition, never an error.
type NumericSummary struct {
	Stats     *profile.Stats
	Histogram *profile.ChartData
	Outliers  *profile.OutlierReport
	Boxplot   *profile.Boxplot
}

// Numeric summarizes a column's coercible values. The full column is passed
// so outliers can report original 1-based row indexes; missing and
// non-numeric cells are excluded before computation.
func Numeric(values []table.Value) NumericSummary {
	rows := make([]int, 0, len(values))
	data := make([]float64, 0, len(values))
	for i, v := range values {
		if n, ok := coerce.CellNumber(v); ok {
			rows = append(rows, i+1)
			data = append(data, n)
		}
	}

	summary := NumericSummary{}
	if len(data) == 0 {
		return summary
	}

	summary.Stats = describeNumeric(data)
	if len(data) >= minHistogramN {
		summary.Histogram = histogram(data)
	}
	if len(data) >= minOutlierN {
		summary.Outliers, summary.Boxplot = fenceAndBox(data, rows)
	}
	return summary
}

// describeNumeric computes the five descriptive statistics, rounded to one
// decimal at output only.
func describeNumeric(data []float64) *profile.Stats {
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)

	stdDev := 0.0
	if len(data) >= 2 {
		stdDev, _ = stats.StandardDeviationSample(data)
	}

	return &profile.Stats{
		Min:    ptr(round1(min)),
		Max:    ptr(round1(max)),
		Mean:   ptr(round1(mean)),
		Median: ptr(round1(median)),
		StdDev: ptr(round1(stdDev)),
	}
}

// histogram bins the data with the Freedman-Diaconis rule, falling back to
// sqrt(n) bins when the IQR is zero. The bin count always lands in
// [minBins, maxBins] when the IQR is positive, and every value is counted.
func histogram(data []float64) *profile.ChartData {
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	q1, _ := stats.Percentile(data, 25)
	q3, _ := stats.Percentile(data, 75)
	iqr := q3 - q1
	n := len(data)

	bins := 1
	if iqr > 0 && max > min {
		binWidth := 2 * iqr * math.Pow(float64(n), -1.0/3.0)
		bins = int(math.Ceil((max - min) / binWidth))
		if bins < minBins {
			bins = minBins
		}
	} else {
		bins = int(math.Floor(math.Sqrt(float64(n))))
		if bins < 1 {
			bins = 1
		}
	}
	if bins > maxBins {
		bins = maxBins
	}

	counts := make([]float64, bins)
	labels := make([]string, bins)
	width := (max - min) / float64(bins)

	for _, v := range data {
		idx := bins - 1
		if width > 0 {
			idx = int((v - min) / width)
			if idx >= bins {
				idx = bins - 1
			}
		}
		counts[idx]++
	}
	for i := 0; i < bins; i++ {
		lo := min + float64(i)*width
		hi := lo + width
		labels[i] = fmt.Sprintf("%.1f – %.1f", round1(lo), round1(hi))
	}

	return &profile.ChartData{Kind: "histogram", Labels: labels, Values: counts}
}

// fenceAndBox computes the IQR fences once and derives both the outlier
// report and the boxplot from them.
func fenceAndBox(data []float64, rows []int) (*profile.OutlierReport, *profile.Boxplot) {
	q1, _ := stats.Percentile(data, 25)
	q3, _ := stats.Percentile(data, 75)
	median, _ := stats.Median(data)
	iqr := q3 - q1
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr

	report := &profile.OutlierReport{
		Entries:    []profile.Outlier{},
		LowerBound: lower,
		UpperBound: upper,
	}
	boxOutliers := []float64{}

	// Whiskers are the most extreme values inside the fences, not the raw
	// min/max.
	whiskerMin, whiskerMax := math.Inf(1), math.Inf(-1)
	for i, v := range data {
		if v < lower || v > upper {
			report.TotalCount++
			if len(report.Entries) < maxOutlierRows {
				report.Entries = append(report.Entries, profile.Outlier{
					Row:   rows[i],
					Value: round1(v),
				})
			}
			if len(boxOutliers) < maxBoxplotValues {
				boxOutliers = append(boxOutliers, round1(v))
			}
			continue
		}
		if v < whiskerMin {
			whiskerMin = v
		}
		if v > whiskerMax {
			whiskerMax = v
		}
	}
	if math.IsInf(whiskerMin, 1) {
		whiskerMin, whiskerMax = q1, q3
	}

	box := &profile.Boxplot{
		Min:      round1(whiskerMin),
		Q1:       round1(q1),
		Median:   round1(median),
		Q3:       round1(q3),
		Max:      round1(whiskerMax),
		Outliers: boxOutliers,
	}
	return report, box
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func ptr(v float64) *float64 {
	return &v
}
