// Package forecast simulates reaching financial independence (FI) year by
// year from fixed assumptions rather than historical data.
package forecast

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/voidshard/beanbook/pkg/domain"
	"github.com/voidshard/beanbook/pkg/series"
)

// ErrParams is returned for inconsistent simulation parameters.
var ErrParams = errors.New("invalid forecast parameters")

// Params are the simulation assumptions. Rates are fractions (0.05 = 5%).
type Params struct {
	Income         float64
	InitialBalance float64
	IncomeIncrease float64
	SavingsRate    float64
	WithdrawalRate float64
	ReturnRate     float64
	Age            int
	LifeExpectancy int
	MinSpending    float64
	MaxSpending    float64
	// Start dates the first year; zero leaves years undated.
	Start civil.Date
	// ExpenseIncrease lets expenses follow income; when false they are fixed
	// after the first year.
	ExpenseIncrease bool
}

// DefaultParams mirror a typical early-career saver.
func DefaultParams() Params {
	return Params{
		Income:          50000,
		IncomeIncrease:  0.03,
		SavingsRate:     0.5,
		WithdrawalRate:  0.04,
		ReturnRate:      0.05,
		Age:             23,
		LifeExpectancy:  90,
		MaxSpending:     math.Inf(1),
		ExpenseIncrease: true,
	}
}

func (p Params) validate() error {
	var problems []string
	if p.LifeExpectancy < p.Age {
		problems = append(problems, fmt.Sprintf("life expectancy %d before age %d", p.LifeExpectancy, p.Age))
	}
	if p.SavingsRate < 0 || p.SavingsRate > 1 {
		problems = append(problems, fmt.Sprintf("savings rate %v outside [0, 1]", p.SavingsRate))
	}
	if p.WithdrawalRate < 0 {
		problems = append(problems, fmt.Sprintf("negative withdrawal rate %v", p.WithdrawalRate))
	}
	if p.MaxSpending < p.MinSpending {
		problems = append(problems, fmt.Sprintf("max spending %v below min spending %v", p.MaxSpending, p.MinSpending))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w:\n- %s", ErrParams, strings.Join(problems, "\n- "))
	}
	return nil
}

// Year is one simulated year.
type Year struct {
	Year           int
	Date           civil.Date
	Age            int
	Balance        float64
	Income         float64
	Savings        float64
	Expenses       float64
	Return         float64
	SafeWithdrawal float64
	PctFI          float64
	FI             bool
}

// Assumption runs the simulation from Age to LifeExpectancy inclusive.
//
// Each year's savings are SavingsRate of income and expenses the rest, clamped
// to [MinSpending, MaxSpending]; after FI, expenses are the previous year's
// safe withdrawal. From the second year the balance grows by ReturnRate and
// the safe withdrawal is WithdrawalRate of the previous balance. FI is reached
// once that withdrawal covers the previous year's expenses; from then on the
// withdrawal is taken from the balance and income stops. Before FI, savings
// are added to the balance and income grows by IncomeIncrease.
func Assumption(p Params) ([]Year, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	n := p.LifeExpectancy - p.Age + 1
	out := make([]Year, n)
	out[0].Balance = p.InitialBalance

	income := p.Income
	expenses := 0.0
	fi := false
	for i := range out {
		y := &out[i]
		y.Year = i
		y.Age = p.Age + i
		if p.Start.IsValid() {
			y.Date = yearEnd(p.Start, i)
		}

		savings := p.SavingsRate * income
		if i == 0 || p.ExpenseIncrease {
			if fi {
				expenses = out[i-1].SafeWithdrawal
			} else {
				expenses = (1 - p.SavingsRate) * income
			}
			expenses = math.Min(math.Max(expenses, p.MinSpending), p.MaxSpending)
		}
		y.Income = income
		y.Savings = savings
		y.Expenses = expenses

		if i > 0 {
			prev := out[i-1]
			y.Return = p.ReturnRate * prev.Balance
			y.Balance = (1 + p.ReturnRate) * prev.Balance
			y.SafeWithdrawal = p.WithdrawalRate * prev.Balance
			y.PctFI = series.Pct(y.SafeWithdrawal, y.Expenses)
			if y.SafeWithdrawal >= prev.Expenses {
				fi = true
				y.Balance -= y.SafeWithdrawal
			}
		}

		if fi {
			income = 0
		} else if i > 0 {
			y.Balance += savings
			income *= 1 + p.IncomeIncrease
		}
		y.FI = fi
	}
	return out, nil
}

// yearEnd is December 31st of the i-th year counted from start's year.
func yearEnd(start civil.Date, i int) civil.Date {
	y := start.Year + i
	return civil.Date{Year: y, Month: time.December, Day: 31}
}

// FirstFI returns the first year at FI, or false when it is never reached.
func FirstFI(years []Year) (Year, bool) {
	for _, y := range years {
		if y.FI {
			return y, true
		}
	}
	return Year{}, false
}

// Entries flattens the simulation into storable records.
func Entries(years []Year) []*domain.Entry {
	out := make([]*domain.Entry, 0, 9*len(years))
	for _, y := range years {
		date := ""
		if y.Date.IsValid() {
			date = y.Date.String()
		}
		period := fmt.Sprintf("%d", y.Year)
		fi := 0.0
		if y.FI {
			fi = 1
		}
		for _, m := range []struct {
			name string
			v    float64
		}{
			{"Age", float64(y.Age)},
			{"Balance", y.Balance},
			{"Income", y.Income},
			{"Savings", y.Savings},
			{"Expenses", y.Expenses},
			{"Return on Investment", y.Return},
			{"Safe Withdrawal", y.SafeWithdrawal},
			{"% FI", y.PctFI},
			{"FI", fi},
		} {
			out = append(out, domain.NewEntry("forecast", period, date, "", "", "", m.name, m.v))
		}
	}
	return out
}
