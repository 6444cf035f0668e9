// Package series holds the dense, date-indexed tables shared by the
// aggregation, statement and net worth code.
package series

import (
	"math"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// DaysInYear is the mean year length used to turn day counts into years.
const DaysInYear = 365.24

// Span returns every calendar day from start to end inclusive. It is empty when
// end is before start.
func Span(start, end civil.Date) []civil.Date {
	if end.Before(start) {
		return nil
	}
	n := end.DaysSince(start) + 1
	out := make([]civil.Date, n)
	for i := range out {
		out[i] = start.AddDays(i)
	}
	return out
}

// Bounds returns the earliest and latest of dates; ok is false for no dates.
func Bounds(dates ...[]civil.Date) (first, last civil.Date, ok bool) {
	for _, ds := range dates {
		for _, d := range ds {
			if !ok || d.Before(first) {
				first = d
			}
			if !ok || d.After(last) {
				last = d
			}
			ok = true
		}
	}
	return first, last, ok
}

// AddMonths shifts d by n months. Days past the end of the target month are
// clamped to its last day (Mar 31 - 1 month = Feb 28 or 29).
func AddMonths(d civil.Date, n int) civil.Date {
	first := civil.DateOf(civil.Date{Year: d.Year, Month: d.Month, Day: 1}.In(time.UTC).AddDate(0, n, 0))
	end := MonthEnd(first)
	if d.Day > end.Day {
		return end
	}
	return civil.Date{Year: first.Year, Month: first.Month, Day: d.Day}
}

// MonthEnd is the last day of d's month.
func MonthEnd(d civil.Date) civil.Date {
	first := civil.Date{Year: d.Year, Month: d.Month, Day: 1}
	return civil.DateOf(first.In(time.UTC).AddDate(0, 1, -1))
}

// Years is the elapsed time from a to b in mean years.
func Years(a, b civil.Date) float64 {
	return float64(b.DaysSince(a)) / DaysInYear
}

// Div divides, returning NaN instead of ±Inf or a panic when den is zero.
func Div(num, den float64) float64 {
	if den == 0 {
		return math.NaN()
	}
	return num / den
}

// Pct is 100 * num / den, NaN when den is zero.
func Pct(num, den float64) float64 {
	return 100 * Div(num, den)
}

// PctChange is the percent change from prev to cur, NaN when prev is zero.
func PctChange(prev, cur float64) float64 {
	return Pct(cur-prev, prev)
}

// Finite maps NaN and ±Inf to zero.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Round rounds half away from zero to places decimals. NaN and ±Inf pass through.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}
