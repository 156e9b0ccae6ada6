package testkit

import (
	"fmt"
	"math/rand"

	"datalens/domain/table"
)

// Kit generates deterministic synthetic columns and tables for tests. The
// same seed always yields the same data.
type Kit struct {
	rng *rand.Rand
}

// New creates a kit with the given seed.
func New(seed int64) *Kit {
	return &Kit{rng: rand.New(rand.NewSource(seed))}
}

// SequentialIDColumn builds values 1..n as numeric cells.
func (k *Kit) SequentialIDColumn(name string, n int) table.Column {
	values := make([]table.Value, n)
	for i := range values {
		values[i] = table.NewNumeric(float64(i + 1))
	}
	return table.Column{Name: name, Values: values}
}

// UniformFloatColumn builds n floats drawn uniformly from [lo, hi).
func (k *Kit) UniformFloatColumn(name string, n int, lo, hi float64) table.Column {
	values := make([]table.Value, n)
	for i := range values {
		values[i] = table.NewNumeric(lo + k.rng.Float64()*(hi-lo))
	}
	return table.Column{Name: name, Values: values}
}

// CategoricalColumn cycles the given labels across n rows.
func (k *Kit) CategoricalColumn(name string, n int, labels ...string) table.Column {
	values := make([]table.Value, n)
	for i := range values {
		values[i] = table.NewText(labels[i%len(labels)])
	}
	return table.Column{Name: name, Values: values}
}

// DateColumn builds n ISO date strings starting at 2024-01-01, one day
// apart, as text cells (the classifier must recognize them by parsing).
func (k *Kit) DateColumn(name string, n int) table.Column {
	values := make([]table.Value, n)
	for i := range values {
		values[i] = table.NewText(fmt.Sprintf("2024-%02d-%02d", 1+i/28%12, 1+i%28))
	}
	return table.Column{Name: name, Values: values}
}

// FreeTextColumn builds n distinct strings, like names or emails.
func (k *Kit) FreeTextColumn(name string, n int) table.Column {
	values := make([]table.Value, n)
	for i := range values {
		values[i] = table.NewText(fmt.Sprintf("user_%06d@example.com", i+1))
	}
	return table.Column{Name: name, Values: values}
}

// NumericWithOutliers builds a tight cluster around base plus the given
// spike values appended at the end.
func (k *Kit) NumericWithOutliers(name string, n int, base float64, spikes ...float64) table.Column {
	values := make([]table.Value, 0, n+len(spikes))
	for i := 0; i < n; i++ {
		values = append(values, table.NewNumeric(base+float64(i%10)))
	}
	for _, spike := range spikes {
		values = append(values, table.NewNumeric(spike))
	}
	return table.Column{Name: name, Values: values}
}

// WithMissing returns a copy of the column with every stride-th cell blanked.
func (k *Kit) WithMissing(col table.Column, stride int) table.Column {
	values := make([]table.Value, len(col.Values))
	copy(values, col.Values)
	for i := stride - 1; i < len(values); i += stride {
		values[i] = table.NewMissing()
	}
	return table.Column{Name: col.Name, Values: values}
}

// Table assembles columns into a table.
func (k *Kit) Table(columns ...table.Column) *table.Table {
	return &table.Table{Columns: columns}
}

// EmployeeTable is the canonical fixture: a sequential Employee_ID column
// and a continuous Salary column.
func (k *Kit) EmployeeTable(rows int) *table.Table {
	return k.Table(
		k.SequentialIDColumn("Employee_ID", rows),
		k.UniformFloatColumn("Salary", rows, 30000, 90000),
	)
}
