package correlate

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"datalens/domain/profile"
	"datalens/domain/table"
	"datalens/internal/coerce"
)

// Series is one numeric column handed to the correlation engine. Values are
// the full column so pairwise row alignment is preserved.
type Series struct {
	Name   string
	Values []table.Value
}

// Matrix computes the symmetric pairwise-complete Pearson matrix over all
// Numerical columns. Fewer than two series yields an empty block, not an
// error. Cells are rounded to two decimals; the diagonal is always 1.0.
func Matrix(series []Series) profile.Correlation {
	if len(series) < 2 {
		return profile.Correlation{}
	}

	names := make([]string, len(series))
	matrix := make([][]float64, len(series))
	for i := range series {
		names[i] = series[i].Name
		matrix[i] = make([]float64, len(series))
		matrix[i][i] = 1.0
	}

	for i := 0; i < len(series); i++ {
		for j := i + 1; j < len(series); j++ {
			r := pairwise(series[i].Values, series[j].Values)
			matrix[i][j] = r
			matrix[j][i] = r
		}
	}

	return profile.Correlation{Columns: names, Matrix: matrix}
}

// pairwise correlates two columns over rows where both cells coerce
// numerically. Degenerate pairs (under two shared rows, or zero variance)
// report 0.
func pairwise(a, b []table.Value) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	x := make([]float64, 0, n)
	y := make([]float64, 0, n)
	for row := 0; row < n; row++ {
		va, okA := coerce.CellNumber(a[row])
		vb, okB := coerce.CellNumber(b[row])
		if okA && okB {
			x = append(x, va)
			y = append(y, vb)
		}
	}
	if len(x) < 2 {
		return 0
	}

	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return math.Round(r*100) / 100
}
