package networth

import (
	"math"
	"sort"
	"strconv"
	"time"

	"cloud.google.com/go/civil"

	"github.com/voidshard/beanbook/pkg/domain"
	"github.com/voidshard/beanbook/pkg/series"
)

// Growth metric names, emitted in this order for each offset.
const (
	Final          = "Final"
	Initial        = "Initial"
	Delta          = "Delta"
	GainPct        = "Gain %"
	AnnualizedGain = "Annualized Gain"
	CAGR           = "CAGR"
)

// Offset is a named look-back window ending at the latest date.
type Offset struct {
	Name   string
	Months int
	// YTD looks back to December 31st of the previous year.
	YTD bool
	// Life looks back to the first date.
	Life bool
}

// Target is the start date of the window ending at latest.
func (o Offset) Target(first, latest civil.Date) civil.Date {
	switch {
	case o.Life:
		return first
	case o.YTD:
		return civil.Date{Year: latest.Year - 1, Month: time.December, Day: 31}
	default:
		return series.AddMonths(latest, -o.Months)
	}
}

// DefaultOffsets are the standard look-back windows.
var DefaultOffsets = []Offset{
	{Name: "1 Mo", Months: 1},
	{Name: "3 Mo", Months: 3},
	{Name: "6 Mo", Months: 6},
	{Name: "YTD", YTD: true},
	{Name: "1 Yr", Months: 12},
	{Name: "2 Yr", Months: 24},
	{Name: "3 Yr", Months: 36},
	{Name: "5 Yr", Months: 60},
	{Name: "10 Yr", Months: 120},
	{Name: "Life", Life: true},
}

// GrowthRow is one metric of one offset.
type GrowthRow struct {
	Offset string
	Metric string
	Value  float64
}

// Growth measures column over each offset. Offsets whose start date falls
// before the first row are skipped. The initial value is the one in effect on
// the start date.
func Growth(f *series.Frame, column string, offsets []Offset) []GrowthRow {
	vals := f.Col(column)
	if f.Len() == 0 || vals == nil {
		return nil
	}
	first, latest := f.Index[0], f.Index[f.Len()-1]
	final := vals[len(vals)-1]

	var out []GrowthRow
	for _, o := range offsets {
		target := o.Target(first, latest)
		if target.Before(first) {
			continue
		}
		initial := vals[f.AsOf(target)]
		years := series.Years(target, latest)
		delta := final - initial
		gain := series.Pct(delta, initial)

		annualized, cagr := 0.0, 0.0
		if years > 0 {
			annualized = gain / years
			cagr = 100 * (math.Pow(series.Div(final, initial), 1/years) - 1)
		}

		for _, m := range []struct {
			name string
			v    float64
		}{
			{Final, final},
			{Initial, initial},
			{Delta, delta},
			{GainPct, gain},
			{AnnualizedGain, annualized},
			{CAGR, cagr},
		} {
			out = append(out, GrowthRow{Offset: o.Name, Metric: m.name, Value: m.v})
		}
	}
	return out
}

// GrowthEntries flattens growth rows into storable records.
func GrowthEntries(column string, rows []GrowthRow) []*domain.Entry {
	out := make([]*domain.Entry, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.NewEntry("growth", r.Offset, "", column, "", "", r.Metric, r.Value))
	}
	return out
}

// Milestone is the first date net worth reached Threshold. When it never did,
// Reached is false and Date and Value are the latest row's.
type Milestone struct {
	Threshold float64
	Date      civil.Date
	Value     float64
	Reached   bool
}

// Milestones finds, for each threshold in ascending order, the first row whose
// Net is at or above it. There is always one milestone per threshold.
func Milestones(f *series.Frame, thresholds []float64) []Milestone {
	sorted := append([]float64{}, thresholds...)
	sort.Float64s(sorted)
	net := f.Col(Net)

	out := make([]Milestone, 0, len(sorted))
	for _, th := range sorted {
		m := Milestone{Threshold: th, Value: math.NaN()}
		for r, v := range net {
			if v >= th {
				m.Date, m.Value, m.Reached = f.Index[r], v, true
				break
			}
		}
		if !m.Reached && len(net) > 0 {
			last := len(net) - 1
			m.Date, m.Value = f.Index[last], net[last]
		}
		out = append(out, m)
	}
	return out
}

// MilestoneEntries flattens milestones into storable records.
func MilestoneEntries(ms []Milestone) []*domain.Entry {
	out := make([]*domain.Entry, 0, 2*len(ms))
	for _, m := range ms {
		th := series.Round(m.Threshold, 2)
		reached := 0.0
		if m.Reached {
			reached = 1
		}
		date := ""
		if m.Date.IsValid() {
			date = m.Date.String()
		}
		label := strconv.FormatFloat(th, 'f', -1, 64)
		out = append(out,
			domain.NewEntry("milestones", "", date, Net, "", label, "Value", m.Value),
			domain.NewEntry("milestones", "", date, Net, "", label, "Reached", reached),
		)
	}
	return out
}
