package summarize

import (
	"sort"

	"datalens/domain/profile"
	"datalens/domain/table"
)

// maxCategories caps the bar-chart payload on high-cardinality columns that
// still classified String. The true distinct count is reported elsewhere.
const maxCategories = 30

// Categorical ranks distinct stringified values by frequency, descending,
// with ties broken by first appearance.
func Categorical(values []table.Value) *profile.ChartData {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := []string{}

	for i, v := range values {
		if v.IsMissing {
			continue
		}
		s := v.String()
		if _, seen := counts[s]; !seen {
			firstSeen[s] = i
			order = append(order, s)
		}
		counts[s]++
	}
	if len(order) == 0 {
		return nil
	}

	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})
	if len(order) > maxCategories {
		order = order[:maxCategories]
	}

	chart := &profile.ChartData{
		Kind:   "bar",
		Labels: make([]string, len(order)),
		Values: make([]float64, len(order)),
	}
	for i, label := range order {
		chart.Labels[i] = label
		chart.Values[i] = float64(counts[label])
	}
	return chart
}
