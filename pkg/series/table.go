package series

import (
	"cloud.google.com/go/civil"

	"github.com/voidshard/beanbook/pkg/taxonomy"
)

// Table is an aggregated time series: one row per calendar day with no gaps,
// one column per taxonomy leaf in lexical key order.
//
// Values is column-major (Values[col][row]). Observed[row] is true when at
// least one source record fell on that day; other rows are zero-filled.
type Table struct {
	Dates    []civil.Date
	Columns  []taxonomy.Key
	Values   [][]float64
	Observed []bool
}

// NewTable allocates a zero-filled table over dates.
func NewTable(dates []civil.Date, columns []taxonomy.Key) *Table {
	t := &Table{
		Dates:    dates,
		Columns:  columns,
		Values:   make([][]float64, len(columns)),
		Observed: make([]bool, len(dates)),
	}
	for i := range t.Values {
		t.Values[i] = make([]float64, len(dates))
	}
	return t
}

// Len is the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Dates)
}

// Row returns the index of date d, or -1 when d is outside the table.
func (t *Table) Row(d civil.Date) int {
	if t.Len() == 0 || d.Before(t.Dates[0]) || d.After(t.Dates[len(t.Dates)-1]) {
		return -1
	}
	return d.DaysSince(t.Dates[0])
}

// Column returns the series of key k, or nil when k is not a column.
func (t *Table) Column(k taxonomy.Key) []float64 {
	for i, c := range t.Columns {
		if c == k {
			return t.Values[i]
		}
	}
	return nil
}

// Sum totals each column over rows [lo, hi).
func (t *Table) Sum(lo, hi int) []float64 {
	out := make([]float64, len(t.Columns))
	for c, vals := range t.Values {
		for r := lo; r < hi; r++ {
			out[c] += vals[r]
		}
	}
	return out
}

// At returns every column's value on row r.
func (t *Table) At(r int) []float64 {
	out := make([]float64, len(t.Columns))
	for c, vals := range t.Values {
		out[c] = vals[r]
	}
	return out
}

// LastObserved is the last observed row in [lo, hi), or -1.
func (t *Table) LastObserved(lo, hi int) int {
	for r := hi - 1; r >= lo; r-- {
		if t.Observed[r] {
			return r
		}
	}
	return -1
}

// Monthly sums each column per calendar month; rows are indexed by month end.
func (t *Table) Monthly() *Table {
	if t.Len() == 0 {
		return NewTable(nil, t.Columns)
	}
	var months []civil.Date
	for _, d := range t.Dates {
		end := MonthEnd(d)
		if len(months) == 0 || months[len(months)-1] != end {
			months = append(months, end)
		}
	}

	out := NewTable(months, t.Columns)
	m := 0
	for r, d := range t.Dates {
		if d.After(months[m]) {
			m++
		}
		out.Observed[m] = out.Observed[m] || t.Observed[r]
		for c := range t.Columns {
			out.Values[c][m] += t.Values[c][r]
		}
	}
	return out
}
