// Package networth derives assets, debts and net worth from an accounts table
// along with their summary statistics, growth over standard look-back windows
// and the dates net worth first crossed given milestones.
package networth

import (
	"math"
	"sort"

	"github.com/voidshard/beanbook/pkg/domain"
	"github.com/voidshard/beanbook/pkg/series"
)

// Frame columns produced by Compute.
const (
	Assets    = "Assets"
	Debts     = "Debts"
	Net       = "Net"
	DebtRatio = "Debt Ratio"

	AssetsChange = "Assets Change"
	DebtsChange  = "Debts Change"
	NetChange    = "Net Change"

	AssetsPctChange = "Assets % Change"
	DebtsPctChange  = "Debts % Change"
	NetPctChange    = "Net % Change"
)

// Compute builds the net worth frame on the accounts table's own dates.
// Positive balances count as assets and negative ones as debts. Changes are
// row over row; the first row's changes are zero.
func Compute(accounts *domain.Accounts) *series.Frame {
	if accounts == nil {
		accounts = &domain.Accounts{}
	}
	f := series.NewFrame(accounts.Dates,
		Assets, Debts, Net, DebtRatio,
		AssetsChange, DebtsChange, NetChange,
		AssetsPctChange, DebtsPctChange, NetPctChange,
	)
	assets, debts, net, ratio := f.Values[0], f.Values[1], f.Values[2], f.Values[3]

	for r := range accounts.Dates {
		for _, v := range accounts.Row(r) {
			if v > 0 {
				assets[r] += v
			} else {
				debts[r] += v
			}
		}
		net[r] = assets[r] + debts[r]
		ratio[r] = series.Pct(math.Abs(debts[r]), assets[r])
	}

	for i, col := range [][]float64{assets, debts, net} {
		change, pct := f.Values[4+i], f.Values[7+i]
		for r := 1; r < len(col); r++ {
			change[r] = col[r] - col[r-1]
			pct[r] = series.PctChange(col[r-1], col[r])
		}
	}
	return f
}

// Stat summarises one frame column.
type Stat struct {
	Column  string
	Current float64
	Max     float64
	Min     float64
	Mean    float64
	Median  float64
	StdDev  float64
}

// Stats summarises every column of f. NaN and ±Inf count as zero. StdDev is
// the sample standard deviation, zero for fewer than two rows. An empty frame
// gives NaN throughout.
func Stats(f *series.Frame) []Stat {
	out := make([]Stat, 0, len(f.Columns))
	for c, name := range f.Columns {
		out = append(out, stat(name, f.Values[c]))
	}
	return out
}

func stat(name string, raw []float64) Stat {
	n := len(raw)
	if n == 0 {
		nan := math.NaN()
		return Stat{Column: name, Current: nan, Max: nan, Min: nan, Mean: nan, Median: nan, StdDev: nan}
	}

	vals := make([]float64, n)
	sum := 0.0
	for i, v := range raw {
		vals[i] = series.Finite(v)
		sum += vals[i]
	}
	s := Stat{Column: name, Current: vals[n-1], Mean: sum / float64(n)}

	if n > 1 {
		ss := 0.0
		for _, v := range vals {
			ss += (v - s.Mean) * (v - s.Mean)
		}
		s.StdDev = math.Sqrt(ss / float64(n-1))
	}

	sort.Float64s(vals)
	s.Min, s.Max = vals[0], vals[n-1]
	if n%2 == 1 {
		s.Median = vals[n/2]
	} else {
		s.Median = (vals[n/2-1] + vals[n/2]) / 2
	}
	return s
}

// StatEntries flattens stats into storable records.
func StatEntries(stats []Stat) []*domain.Entry {
	out := make([]*domain.Entry, 0, 6*len(stats))
	for _, s := range stats {
		for _, m := range []struct {
			name string
			v    float64
		}{
			{"Current", s.Current},
			{"Max", s.Max},
			{"Min", s.Min},
			{"Mean", s.Mean},
			{"Median", s.Median},
			{"Std Dev", s.StdDev},
		} {
			out = append(out, domain.NewEntry("stats", "", "", s.Column, "", "", m.name, m.v))
		}
	}
	return out
}
