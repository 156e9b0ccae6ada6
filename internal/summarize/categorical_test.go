package summarize

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datalens/domain/table"
)

func textCells(values ...string) []table.Value {
	out := make([]table.Value, len(values))
	for i, v := range values {
		out[i] = table.NewText(v)
	}
	return out
}

func TestCategorical_RanksByFrequencyDescending(t *testing.T) {
	values := textCells("b", "a", "b", "c", "b", "a")

	chart := Categorical(values)
	require.NotNil(t, chart)

	assert.Equal(t, "bar", chart.Kind)
	assert.Equal(t, []string{"b", "a", "c"}, chart.Labels)
	assert.Equal(t, []float64{3, 2, 1}, chart.Values)
}

func TestCategorical_TiesBreakByFirstAppearance(t *testing.T) {
	values := textCells("zebra", "apple", "zebra", "apple")

	chart := Categorical(values)
	require.NotNil(t, chart)

	assert.Equal(t, []string{"zebra", "apple"}, chart.Labels)
}

func TestCategorical_CapsAtThirtyLabels(t *testing.T) {
	values := []table.Value{}
	for i := 0; i < 80; i++ {
		values = append(values, table.NewText(fmt.Sprintf("cat_%02d", i%40)))
	}

	chart := Categorical(values)
	require.NotNil(t, chart)

	assert.Len(t, chart.Labels, 30)
	assert.Len(t, chart.Values, 30)
}

func TestCategorical_SkipsMissingValues(t *testing.T) {
	values := []table.Value{
		table.NewText("x"),
		table.NewMissing(),
		table.NewText("x"),
	}

	chart := Categorical(values)
	require.NotNil(t, chart)

	assert.Equal(t, []string{"x"}, chart.Labels)
	assert.Equal(t, []float64{2}, chart.Values)
}

func TestCategorical_AllMissingReturnsNil(t *testing.T) {
	values := []table.Value{table.NewMissing(), table.NewMissing()}

	assert.Nil(t, Categorical(values))
}

func TestCategorical_StatusScenario(t *testing.T) {
	labels := []string{"Active", "Inactive", "Pending"}
	values := make([]table.Value, 0, 500)
	for i := 0; i < 500; i++ {
		values = append(values, table.NewText(labels[i%3]))
	}

	chart := Categorical(values)
	require.NotNil(t, chart)

	assert.Len(t, chart.Labels, 3)
	total := 0.0
	for _, v := range chart.Values {
		total += v
	}
	assert.Equal(t, 500.0, total)
}
