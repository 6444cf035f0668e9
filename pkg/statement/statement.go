// Package statement builds balance sheets, income statements and cashflow
// statements from aggregated tables.
//
// Each statement is a flat list of rows keyed by (Category, Type, Item). Every
// category is followed by its Type subtotals ("Total" item) and its own total
// (Type "Total", Item " "), and a synthetic "Net" category closes the list.
package statement

import (
	"math"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/voidshard/beanbook/pkg/domain"
	"github.com/voidshard/beanbook/pkg/series"
	"github.com/voidshard/beanbook/pkg/taxonomy"
)

const (
	// NetIncome is the Type of the income statement's Net rows.
	NetIncome = "Net Income"
	// BeforeTaxes and AfterTaxes are the income statement's Net items.
	BeforeTaxes = "Before Taxes"
	AfterTaxes  = "After Taxes"

	MetricDollars = "$"
	MetricPercent = "%"
)

// DefaultTaxCategories are excluded from net income before taxes.
var DefaultTaxCategories = []string{"Taxes"}

type Kind int

const (
	Balance Kind = iota
	Income
	Cashflow
)

func (k Kind) String() string {
	switch k {
	case Income:
		return "income"
	case Cashflow:
		return "cashflow"
	default:
		return "balance"
	}
}

// Row is one statement line. Percent is relative to the row's own Category
// total and is NaN when that total is zero.
type Row struct {
	Key     taxonomy.Key
	Dollars float64
	Percent float64
}

// Statement is the result of one build. Rows is empty when the period holds
// no data; AsOf is then the zero date.
type Statement struct {
	Kind   Kind
	Period series.Period
	AsOf   civil.Date
	Rows   []Row
}

// Empty reports whether the period had no data.
func (s *Statement) Empty() bool {
	return len(s.Rows) == 0
}

// Lookup finds the row with key k.
func (s *Statement) Lookup(k taxonomy.Key) (Row, bool) {
	for _, r := range s.Rows {
		if r.Key == k {
			return r, true
		}
	}
	return Row{}, false
}

// Rounded returns a copy with dollars and percentages rounded to places decimals.
func (s *Statement) Rounded(places int32) *Statement {
	out := *s
	out.Rows = make([]Row, len(s.Rows))
	for i, r := range s.Rows {
		out.Rows[i] = Row{Key: r.Key, Dollars: series.Round(r.Dollars, places), Percent: series.Round(r.Percent, places)}
	}
	return &out
}

// Entries flattens the statement into storable records, two per row.
func (s *Statement) Entries() []*domain.Entry {
	report := s.Kind.String()
	period := s.Period.String()
	date := ""
	if !s.Empty() {
		date = s.AsOf.String()
	}

	out := make([]*domain.Entry, 0, 2*len(s.Rows))
	for _, r := range s.Rows {
		k := r.Key
		out = append(out,
			domain.NewEntry(report, period, date, k.Category, k.Type, k.Item, MetricDollars, r.Dollars),
			domain.NewEntry(report, period, date, k.Category, k.Type, k.Item, MetricPercent, r.Percent),
		)
	}
	return out
}

// FormatAccounting renders v with two decimals and thousands separators,
// negatives in parentheses and NaN (or ±Inf) as a blank: 1234.5 => "1,234.50",
// -3 => "(3.00)".
func FormatAccounting(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return taxonomy.Blank
	}
	d := decimal.NewFromFloat(v).Round(2)
	s := group(d.Abs().StringFixed(2))
	if d.IsNegative() {
		return "(" + s + ")"
	}
	return s
}

// group inserts thousands separators into a plain "1234567.89" string.
func group(s string) string {
	whole, frac := s, ""
	for i := range s {
		if s[i] == '.' {
			whole, frac = s[:i], s[i:]
			break
		}
	}
	if len(whole) <= 3 {
		return s
	}
	buf := make([]byte, 0, len(s)+len(whole)/3)
	lead := len(whole) % 3
	if lead == 0 {
		lead = 3
	}
	buf = append(buf, whole[:lead]...)
	for i := lead; i < len(whole); i += 3 {
		buf = append(buf, ',')
		buf = append(buf, whole[i:i+3]...)
	}
	return string(buf) + frac
}
