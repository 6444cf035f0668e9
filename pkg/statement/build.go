package statement

import (
	"sort"

	"github.com/voidshard/beanbook/pkg/series"
	"github.com/voidshard/beanbook/pkg/taxonomy"
)

type options struct {
	taxes map[string]bool
}

// Option tunes a statement build.
type Option func(*options)

// WithTaxCategories names the categories left out of net income before taxes.
func WithTaxCategories(categories ...string) Option {
	return func(o *options) {
		o.taxes = map[string]bool{}
		for _, c := range categories {
			o.taxes[c] = true
		}
	}
}

// BalanceSheet snapshots t on the last day in p with a balance record. The Net
// section sums each Type across categories, e.g. Assets + Liabilities per Type.
func BalanceSheet(t *series.Table, p series.Period) *Statement {
	s := &Statement{Kind: Balance, Period: p}
	lo, hi := p.Window(t.Dates)
	r := t.LastObserved(lo, hi)
	if r < 0 {
		return s
	}
	s.AsOf = t.Dates[r]
	leaves := t.At(r)
	s.Rows = append(rollup(t.Columns, leaves), netByType(t.Columns, leaves)...)
	return s
}

// CashflowStatement sums t over p; its Net section mirrors the balance sheet.
func CashflowStatement(t *series.Table, p series.Period) *Statement {
	s := &Statement{Kind: Cashflow, Period: p}
	leaves, ok := periodSum(s, t, p)
	if !ok {
		return s
	}
	s.Rows = append(rollup(t.Columns, leaves), netByType(t.Columns, leaves)...)
	return s
}

// IncomeStatement sums t over p. Net income before taxes leaves out the tax
// categories (see WithTaxCategories); after taxes includes them with their sign.
// The Net total repeats the after-taxes figure.
func IncomeStatement(t *series.Table, p series.Period, opts ...Option) *Statement {
	o := &options{}
	WithTaxCategories(DefaultTaxCategories...)(o)
	for _, opt := range opts {
		opt(o)
	}

	s := &Statement{Kind: Income, Period: p}
	leaves, ok := periodSum(s, t, p)
	if !ok {
		return s
	}
	s.Rows = rollup(t.Columns, leaves)

	before, after := 0.0, 0.0
	for _, row := range s.Rows {
		if row.Key.Type != taxonomy.Total {
			continue
		}
		after += row.Dollars
		if !o.taxes[row.Key.Category] {
			before += row.Dollars
		}
	}
	s.Rows = append(s.Rows,
		Row{Key: taxonomy.Key{Category: taxonomy.Net, Type: NetIncome, Item: BeforeTaxes}, Dollars: before, Percent: series.Pct(before, after)},
		Row{Key: taxonomy.Key{Category: taxonomy.Net, Type: NetIncome, Item: AfterTaxes}, Dollars: after, Percent: series.Pct(after, after)},
		Row{Key: taxonomy.Key{Category: taxonomy.Net, Type: taxonomy.Total, Item: taxonomy.Blank}, Dollars: after, Percent: series.Pct(after, after)},
	)
	return s
}

func periodSum(s *Statement, t *series.Table, p series.Period) ([]float64, bool) {
	lo, hi := p.Window(t.Dates)
	if t.LastObserved(lo, hi) < 0 {
		return nil, false
	}
	s.AsOf = t.Dates[hi-1]
	return t.Sum(lo, hi), true
}

// rollup emits each category's leaves and subtotals in lexical key order.
// Totals are accumulated from the leaves in a first pass and rows emitted in a
// second.
func rollup(keys []taxonomy.Key, leaves []float64) []Row {
	keys, leaves = sortLeaves(keys, leaves)

	typeTotals := map[[2]string]float64{}
	catTotals := map[string]float64{}
	for i, k := range keys {
		typeTotals[[2]string{k.Category, k.Type}] += leaves[i]
		catTotals[k.Category] += leaves[i]
	}

	rows := make([]Row, 0, len(keys)+len(typeTotals)+len(catTotals))
	row := func(k taxonomy.Key, v float64) {
		rows = append(rows, Row{Key: k, Dollars: v, Percent: series.Pct(v, catTotals[k.Category])})
	}
	for i, k := range keys {
		row(k, leaves[i])

		last := i == len(keys)-1
		if last || keys[i+1].Type != k.Type || keys[i+1].Category != k.Category {
			row(taxonomy.Key{Category: k.Category, Type: k.Type, Item: taxonomy.Total}, typeTotals[[2]string{k.Category, k.Type}])
		}
		if last || keys[i+1].Category != k.Category {
			row(taxonomy.Key{Category: k.Category, Type: taxonomy.Total, Item: taxonomy.Blank}, catTotals[k.Category])
		}
	}
	return rows
}

// sortLeaves returns keys in lexical order with leaves permuted to match, so
// every category and type is contiguous. The inputs are left untouched.
func sortLeaves(keys []taxonomy.Key, leaves []float64) ([]taxonomy.Key, []float64) {
	if sort.SliceIsSorted(keys, func(i, j int) bool { return keys[i].Less(keys[j]) }) {
		return keys, leaves
	}
	idx := make([]int, len(keys))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return keys[idx[i]].Less(keys[idx[j]]) })

	sk := make([]taxonomy.Key, len(keys))
	sl := make([]float64, len(leaves))
	for i, j := range idx {
		sk[i], sl[i] = keys[j], leaves[j]
	}
	return sk, sl
}

// netByType sums each Type across every category, yielding one
// (Net, Type, Total) row per Type and a (Net, Total, " ") row.
func netByType(keys []taxonomy.Key, leaves []float64) []Row {
	byType := map[string]float64{}
	for i, k := range keys {
		byType[k.Type] += leaves[i]
	}
	types := make([]string, 0, len(byType))
	for typ := range byType {
		types = append(types, typ)
	}
	sort.Strings(types)
	total := 0.0
	for _, typ := range types {
		total += byType[typ]
	}

	rows := make([]Row, 0, len(types)+1)
	for _, typ := range types {
		v := byType[typ]
		rows = append(rows, Row{Key: taxonomy.Key{Category: taxonomy.Net, Type: typ, Item: taxonomy.Total}, Dollars: v, Percent: series.Pct(v, total)})
	}
	return append(rows, Row{Key: taxonomy.Key{Category: taxonomy.Net, Type: taxonomy.Total, Item: taxonomy.Blank}, Dollars: total, Percent: series.Pct(total, total)})
}
