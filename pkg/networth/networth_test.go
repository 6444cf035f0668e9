package networth

import (
	"math"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidshard/beanbook/pkg/domain"
	"github.com/voidshard/beanbook/pkg/series"
)

func day(y, m, d int) civil.Date {
	return civil.Date{Year: y, Month: time.Month(m), Day: d}
}

func accounts() *domain.Accounts {
	cash := domain.AccountKey{Type: "Cash", Name: "Checking"}
	card := domain.AccountKey{Type: "Credit", Name: "Visa"}
	return domain.NewAccounts([]domain.Balance{
		{Date: day(2020, 1, 31), Account: cash, Amount: 1000},
		{Date: day(2020, 1, 31), Account: card, Amount: -250},
		{Date: day(2020, 2, 29), Account: cash, Amount: 1500},
		{Date: day(2020, 2, 29), Account: card, Amount: 0},
		{Date: day(2020, 3, 31), Account: cash, Amount: 0},
		{Date: day(2020, 3, 31), Account: card, Amount: -100},
	})
}

func TestCompute(t *testing.T) {
	f := Compute(accounts())
	require.Equal(t, 3, f.Len())

	assert.Equal(t, []float64{1000, 1500, 0}, f.Col(Assets))
	assert.Equal(t, []float64{-250, 0, -100}, f.Col(Debts))
	assert.Equal(t, []float64{750, 1500, -100}, f.Col(Net))

	ratio := f.Col(DebtRatio)
	assert.Equal(t, 25.0, ratio[0])
	assert.Equal(t, 0.0, ratio[1])
	assert.True(t, math.IsNaN(ratio[2]))

	assert.Equal(t, []float64{0, 750, -1600}, f.Col(NetChange))
	assert.Equal(t, []float64{0, 500, -1500}, f.Col(AssetsChange))
	pct := f.Col(NetPctChange)
	assert.Equal(t, 0.0, pct[0])
	assert.Equal(t, 100.0, pct[1])
	assert.InDelta(t, -106.6667, pct[2], 1e-4)

	dpct := f.Col(DebtsPctChange)
	assert.Equal(t, -100.0, dpct[1])
	assert.True(t, math.IsNaN(dpct[2]))
}

func TestComputeEmpty(t *testing.T) {
	f := Compute(nil)
	assert.Equal(t, 0, f.Len())
	assert.Len(t, f.Columns, 10)
}

func TestStats(t *testing.T) {
	f := series.NewFrame([]civil.Date{day(2020, 1, 1), day(2020, 1, 2), day(2020, 1, 3), day(2020, 1, 4)}, "A", "B")
	copy(f.Values[0], []float64{2, 4, 4, math.Inf(1)})
	copy(f.Values[1], []float64{math.NaN(), 1, 3, 2})

	stats := Stats(f)
	require.Len(t, stats, 2)

	a := stats[0]
	assert.Equal(t, "A", a.Column)
	assert.Equal(t, 0.0, a.Current)
	assert.Equal(t, 4.0, a.Max)
	assert.Equal(t, 0.0, a.Min)
	assert.Equal(t, 2.5, a.Mean)
	assert.Equal(t, 3.0, a.Median)
	assert.InDelta(t, 1.9149, a.StdDev, 1e-4)

	b := stats[1]
	assert.Equal(t, 2.0, b.Current)
	assert.Equal(t, 1.5, b.Median)

	one := Stats(series.NewFrame([]civil.Date{day(2020, 1, 1)}, "A"))
	assert.Equal(t, 0.0, one[0].StdDev)

	empty := Stats(series.NewFrame(nil, "A"))
	assert.True(t, math.IsNaN(empty[0].Current))
	assert.Len(t, StatEntries(stats), 12)
}

func frame(net map[civil.Date]float64, dates ...civil.Date) *series.Frame {
	f := series.NewFrame(dates, Net)
	for i, d := range dates {
		f.Values[0][i] = net[d]
	}
	return f
}

func byMetric(rows []GrowthRow, offset string) map[string]float64 {
	out := map[string]float64{}
	for _, r := range rows {
		if r.Offset == offset {
			out[r.Metric] = r.Value
		}
	}
	return out
}

func TestGrowth(t *testing.T) {
	dates := []civil.Date{day(2019, 1, 31), day(2019, 6, 30), day(2019, 12, 31), day(2020, 11, 30), day(2020, 12, 31)}
	f := frame(map[civil.Date]float64{
		dates[0]: 100, dates[1]: 110, dates[2]: 120, dates[3]: 140, dates[4]: 150,
	}, dates...)

	rows := Growth(f, Net, DefaultOffsets)

	offsets := map[string]bool{}
	for _, r := range rows {
		offsets[r.Offset] = true
	}
	// 2 years and longer start before the first row
	assert.Equal(t, map[string]bool{"1 Mo": true, "3 Mo": true, "6 Mo": true, "YTD": true, "1 Yr": true, "Life": true}, offsets)
	assert.Len(t, rows, 6*6)

	mo := byMetric(rows, "1 Mo")
	assert.Equal(t, 150.0, mo[Final])
	assert.Equal(t, 140.0, mo[Initial])
	assert.Equal(t, 10.0, mo[Delta])
	assert.InDelta(t, 7.142857, mo[GainPct], 1e-6)

	ytd := byMetric(rows, "YTD")
	assert.Equal(t, 120.0, ytd[Initial])
	assert.InDelta(t, 25.0, ytd[GainPct], 1e-9)
	years := float64(366) / series.DaysInYear
	assert.InDelta(t, 25.0/years, ytd[AnnualizedGain], 1e-9)
	assert.InDelta(t, 100*(math.Pow(1.25, 1/years)-1), ytd[CAGR], 1e-9)

	// 6 months back is 2020-06-30; the value in effect then is the 2019-12-31 one
	six := byMetric(rows, "6 Mo")
	assert.Equal(t, 120.0, six[Initial])

	life := byMetric(rows, "Life")
	assert.Equal(t, 100.0, life[Initial])
	assert.InDelta(t, 50.0, life[GainPct], 1e-9)
}

func TestGrowthEdgeCases(t *testing.T) {
	single := frame(map[civil.Date]float64{day(2020, 1, 1): 10}, day(2020, 1, 1))
	life := byMetric(Growth(single, Net, DefaultOffsets), "Life")
	assert.Equal(t, 0.0, life[CAGR])
	assert.Equal(t, 0.0, life[AnnualizedGain])
	assert.Equal(t, 0.0, life[Delta])

	zero := frame(map[civil.Date]float64{day(2019, 1, 1): 0, day(2020, 1, 1): 10}, day(2019, 1, 1), day(2020, 1, 1))
	life = byMetric(Growth(zero, Net, DefaultOffsets), "Life")
	assert.True(t, math.IsNaN(life[GainPct]))
	assert.True(t, math.IsNaN(life[CAGR]))

	assert.Empty(t, Growth(series.NewFrame(nil, Net), Net, DefaultOffsets))
	assert.Empty(t, Growth(single, "Missing", DefaultOffsets))
}

func TestMilestones(t *testing.T) {
	dates := []civil.Date{day(2020, 1, 31), day(2020, 2, 29), day(2020, 3, 31)}
	f := frame(map[civil.Date]float64{dates[0]: 500, dates[1]: 2000, dates[2]: 1500}, dates...)

	ms := Milestones(f, []float64{10000, 1000, 0})
	require.Len(t, ms, 3)

	assert.Equal(t, Milestone{Threshold: 0, Date: dates[0], Value: 500, Reached: true}, ms[0])
	assert.Equal(t, Milestone{Threshold: 1000, Date: dates[1], Value: 2000, Reached: true}, ms[1])
	// never reached: last date with its actual value
	assert.Equal(t, Milestone{Threshold: 10000, Date: dates[2], Value: 1500, Reached: false}, ms[2])

	entries := MilestoneEntries(ms)
	assert.Len(t, entries, 6)
	assert.Equal(t, "10000", entries[4].Item)
}

func TestMilestonesEmptyFrame(t *testing.T) {
	ms := Milestones(series.NewFrame(nil, Net), []float64{1e4})
	require.Len(t, ms, 1)
	assert.False(t, ms[0].Reached)
	assert.True(t, math.IsNaN(ms[0].Value))
	assert.False(t, ms[0].Date.IsValid())
	assert.Equal(t, "", MilestoneEntries(ms)[0].Date)
}
