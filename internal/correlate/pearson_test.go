package correlate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datalens/domain/table"
)

func series(name string, values ...float64) Series {
	cells := make([]table.Value, len(values))
	for i, v := range values {
		cells[i] = table.NewNumeric(v)
	}
	return Series{Name: name, Values: cells}
}

func TestMatrix_FewerThanTwoSeriesIsEmpty(t *testing.T) {
	assert.True(t, Matrix(nil).IsEmpty())
	assert.True(t, Matrix([]Series{series("x", 1, 2, 3)}).IsEmpty())
}

func TestMatrix_PerfectCorrelation(t *testing.T) {
	result := Matrix([]Series{
		series("x", 1, 2, 3, 4, 5),
		series("double_x", 2, 4, 6, 8, 10),
	})

	require.False(t, result.IsEmpty())
	assert.Equal(t, []string{"x", "double_x"}, result.Columns)
	assert.Equal(t, 1.0, result.Matrix[0][1])
	assert.Equal(t, 1.0, result.Matrix[1][0])
}

func TestMatrix_PerfectAntiCorrelation(t *testing.T) {
	result := Matrix([]Series{
		series("x", 1, 2, 3, 4),
		series("neg_x", 8, 6, 4, 2),
	})

	assert.Equal(t, -1.0, result.Matrix[0][1])
}

func TestMatrix_SymmetricWithUnitDiagonal(t *testing.T) {
	result := Matrix([]Series{
		series("a", 1, 5, 2, 8, 3),
		series("b", 2, 3, 9, 1, 4),
		series("c", 7, 7, 1, 2, 9),
	})

	require.Len(t, result.Matrix, 3)
	for i := 0; i < 3; i++ {
		assert.Equal(t, 1.0, result.Matrix[i][i])
		for j := 0; j < 3; j++ {
			assert.Equal(t, result.Matrix[i][j], result.Matrix[j][i])
			assert.GreaterOrEqual(t, result.Matrix[i][j], -1.0)
			assert.LessOrEqual(t, result.Matrix[i][j], 1.0)
		}
	}
}

func TestMatrix_PairwiseCompleteExcludesRowsWithEitherMissing(t *testing.T) {
	// Row 3 is missing in a, row 5 is text in b: both rows drop from the
	// pair. The remaining rows are perfectly correlated.
	a := Series{Name: "a", Values: []table.Value{
		table.NewNumeric(1),
		table.NewNumeric(2),
		table.NewMissing(),
		table.NewNumeric(4),
		table.NewNumeric(5),
	}}
	b := Series{Name: "b", Values: []table.Value{
		table.NewNumeric(10),
		table.NewNumeric(20),
		table.NewNumeric(30),
		table.NewNumeric(40),
		table.NewText("oops"),
	}}

	result := Matrix([]Series{a, b})

	assert.Equal(t, 1.0, result.Matrix[0][1])
}

func TestMatrix_ZeroVariancePairReportsZero(t *testing.T) {
	result := Matrix([]Series{
		series("constant", 5, 5, 5, 5),
		series("varying", 1, 2, 3, 4),
	})

	assert.Equal(t, 0.0, result.Matrix[0][1])
	assert.Equal(t, 1.0, result.Matrix[0][0], "diagonal stays 1.0 even for a degenerate column")
}

func TestMatrix_CellsRoundedToTwoDecimals(t *testing.T) {
	result := Matrix([]Series{
		series("x", 1, 2, 3, 4, 5, 6),
		series("y", 2, 1, 4, 3, 7, 5),
	})

	r := result.Matrix[0][1]
	assert.InDelta(t, math.Round(r*100), r*100, 1e-9)
}
