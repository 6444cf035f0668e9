package series

import (
	"cloud.google.com/go/civil"

	"github.com/voidshard/beanbook/pkg/domain"
)

// Frame is a small date-indexed table with named columns, used for net worth
// and summary metrics. Values is column-major (Values[col][row]).
type Frame struct {
	Index   []civil.Date
	Columns []string
	Values  [][]float64
}

// NewFrame allocates a zero-filled frame.
func NewFrame(index []civil.Date, columns ...string) *Frame {
	f := &Frame{Index: index, Columns: columns, Values: make([][]float64, len(columns))}
	for i := range f.Values {
		f.Values[i] = make([]float64, len(index))
	}
	return f
}

// Len is the number of rows.
func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Index)
}

// Col returns the named column, or nil.
func (f *Frame) Col(name string) []float64 {
	for i, c := range f.Columns {
		if c == name {
			return f.Values[i]
		}
	}
	return nil
}

// AsOf returns the last row dated on or before d, or -1.
func (f *Frame) AsOf(d civil.Date) int {
	row := -1
	for i, x := range f.Index {
		if x.After(d) {
			break
		}
		row = i
	}
	return row
}

// Entries flattens the frame into storable records, one per cell.
func (f *Frame) Entries(report string) []*domain.Entry {
	out := make([]*domain.Entry, 0, len(f.Index)*len(f.Columns))
	for r, d := range f.Index {
		date := d.String()
		for c, name := range f.Columns {
			out = append(out, domain.NewEntry(report, "", date, "", "", "", name, f.Values[c][r]))
		}
	}
	return out
}
