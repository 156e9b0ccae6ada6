package table

import (
	"fmt"
	"time"
)

// ValueType defines the storage type a cell value arrived as.
type ValueType string

const (
	TypeMissing ValueType = "missing"
	TypeNumeric ValueType = "numeric"
	TypeText    ValueType = "text"
	TypeTime    ValueType = "time"
)

// Value represents one typed cell. Missing is a distinguished state, never
// the number zero or the empty string.
type Value struct {
	Type       ValueType  `json:"type"`
	NumericVal *float64   `json:"numeric_val,omitempty"`
	TextVal    *string    `json:"text_val,omitempty"`
	TimeVal    *time.Time `json:"time_val,omitempty"`
	IsMissing  bool       `json:"is_missing"`
}

// NewMissing creates a missing cell.
func NewMissing() Value {
	return Value{Type: TypeMissing, IsMissing: true}
}

// NewNumeric creates a numeric cell.
func NewNumeric(n float64) Value {
	return Value{Type: TypeNumeric, NumericVal: &n}
}

// NewText creates a text cell. Empty strings collapse to missing.
func NewText(s string) Value {
	if s == "" {
		return NewMissing()
	}
	return Value{Type: TypeText, TextVal: &s}
}

// NewTime creates a time cell.
func NewTime(t time.Time) Value {
	return Value{Type: TypeTime, TimeVal: &t}
}

// IsNumeric returns true if the cell holds a native number.
func (v Value) IsNumeric() bool {
	return v.Type == TypeNumeric && v.NumericVal != nil
}

// IsText returns true if the cell holds text.
func (v Value) IsText() bool {
	return v.Type == TypeText && v.TextVal != nil
}

// IsTime returns true if the cell holds a native date/time.
func (v Value) IsTime() bool {
	return v.Type == TypeTime && v.TimeVal != nil
}

// String renders the cell for previews and categorical counting.
func (v Value) String() string {
	switch v.Type {
	case TypeNumeric:
		if v.NumericVal != nil {
			return fmt.Sprintf("%g", *v.NumericVal)
		}
	case TypeText:
		if v.TextVal != nil {
			return *v.TextVal
		}
	case TypeTime:
		if v.TimeVal != nil {
			return v.TimeVal.Format("2006-01-02")
		}
	}
	return ""
}

// Column is an ordered sequence of cells under a header name. Row i in every
// column of a table refers to the same record.
type Column struct {
	Name   string  `json:"name"`
	Values []Value `json:"values"`
}

// Table is a rectangular set of named columns produced by an ingestion
// collaborator. It is treated as immutable once handed to the engine.
type Table struct {
	Columns []Column `json:"columns"`
}

// RowCount returns the number of rows (length of the longest column).
func (t *Table) RowCount() int {
	rows := 0
	for _, col := range t.Columns {
		if len(col.Values) > rows {
			rows = len(col.Values)
		}
	}
	return rows
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return len(t.Columns)
}

// ColumnNames returns header names in declaration order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// Cell returns the value at (row, col), or a missing value when the column
// is ragged and has no cell on that row.
func (t *Table) Cell(row, col int) Value {
	if col < 0 || col >= len(t.Columns) {
		return NewMissing()
	}
	values := t.Columns[col].Values
	if row < 0 || row >= len(values) {
		return NewMissing()
	}
	return values[row]
}
