// Package summary joins net worth, annualized income and cashflow, and credit
// limits into one monthly table of financial ratios.
package summary

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"cloud.google.com/go/civil"

	"github.com/voidshard/beanbook/pkg/domain"
	"github.com/voidshard/beanbook/pkg/networth"
	"github.com/voidshard/beanbook/pkg/series"
)

// DefaultWithdrawalRate is the yearly share of net worth considered safe to spend.
const DefaultWithdrawalRate = 0.04

// Summary columns.
const (
	Assets      = "Assets"
	Debts       = "Debts"
	NetWorth    = "Net Worth"
	CreditLimit = "Credit Limit"
	CreditUsed  = "Credit Used"

	Revenue  = "Revenue"
	Expenses = "Expenses"
	Taxes    = "Taxes"
	Inflow   = "Inflow"
	Outflow  = "Outflow"

	DebtRatio        = "Debt Ratio"
	DebtToIncome     = "Debt to Income"
	DebtUtilization  = "Debt Utilization"
	ProfitMargin     = "Profit Margin"
	SavingsRate      = "Savings Rate"
	IncomeMultiple   = "Income Multiple"
	ExpenseMultiple  = "Expense Multiple"
	SafeWithdrawal   = "Safe Withdrawal"
	SafeWithdrawalPc = "Safe Withdrawal %"
	TaxRate          = "Tax Rate"
)

// Columns lists the summary columns in output order.
var Columns = []string{
	Assets, Debts, NetWorth, CreditLimit, CreditUsed,
	Revenue, Expenses, Taxes, Inflow, Outflow,
	DebtRatio, DebtToIncome, DebtUtilization, ProfitMargin, SavingsRate,
	IncomeMultiple, ExpenseMultiple, SafeWithdrawal, SafeWithdrawalPc, TaxRate,
}

// ErrInput is returned for unusable summary inputs.
var ErrInput = errors.New("invalid summary input")

// Input holds the tables to join. Category lists name the statement categories
// read from the income and cashflow tables; empty lists take the defaults
// ("Revenue", "Expenses", "Taxes", "Inflow", "Outflow").
type Input struct {
	Accounts *domain.Accounts
	Limits   *domain.Accounts
	Income   *series.Table
	Cashflow *series.Table

	RevenueCategories []string
	ExpenseCategories []string
	TaxCategories     []string
	InflowCategories  []string
	OutflowCategories []string

	WithdrawalRate float64
}

func (in Input) withDefaults() Input {
	def := func(v []string, d string) []string {
		if len(v) == 0 {
			return []string{d}
		}
		return v
	}
	in.RevenueCategories = def(in.RevenueCategories, Revenue)
	in.ExpenseCategories = def(in.ExpenseCategories, Expenses)
	in.TaxCategories = def(in.TaxCategories, Taxes)
	in.InflowCategories = def(in.InflowCategories, Inflow)
	in.OutflowCategories = def(in.OutflowCategories, Outflow)
	if in.WithdrawalRate == 0 {
		in.WithdrawalRate = DefaultWithdrawalRate
	}
	if in.Accounts == nil {
		in.Accounts = &domain.Accounts{}
	}
	if in.Limits == nil {
		in.Limits = &domain.Accounts{}
	}
	return in
}

// Monthly builds one row per month end. Balances are those in effect at the
// month end; flows are the month's totals times twelve. Ratios whose
// denominator is zero are NaN.
func Monthly(in Input) (*series.Frame, error) {
	if in.WithdrawalRate < 0 || in.WithdrawalRate > 1 || math.IsNaN(in.WithdrawalRate) {
		return nil, fmt.Errorf("%w: withdrawal rate %v outside [0, 1]", ErrInput, in.WithdrawalRate)
	}
	in = in.withDefaults()

	nw := networth.Compute(in.Accounts)
	income := monthly(in.Income)
	cashflow := monthly(in.Cashflow)

	index := monthEnds(in.Accounts.Dates, in.Limits.Dates, income.dates(), cashflow.dates())
	f := series.NewFrame(index, Columns...)
	col := map[string][]float64{}
	for i, name := range Columns {
		col[name] = f.Values[i]
	}

	for r, m := range index {
		assets, debts, net := math.NaN(), math.NaN(), math.NaN()
		if row := nw.AsOf(m); row >= 0 {
			assets, debts, net = nw.Col(networth.Assets)[row], nw.Col(networth.Debts)[row], nw.Col(networth.Net)[row]
		}
		limit, used := credit(in.Accounts, in.Limits, m)

		revenue := 12 * income.sum(m, in.RevenueCategories)
		expenses := 12 * math.Abs(income.sum(m, in.ExpenseCategories))
		taxes := 12 * math.Abs(income.sum(m, in.TaxCategories))
		inflow := 12 * cashflow.sum(m, in.InflowCategories)
		outflow := 12 * math.Abs(cashflow.sum(m, in.OutflowCategories))
		withdrawal := in.WithdrawalRate * net

		for name, v := range map[string]float64{
			Assets:           assets,
			Debts:            debts,
			NetWorth:         net,
			CreditLimit:      limit,
			CreditUsed:       used,
			Revenue:          revenue,
			Expenses:         expenses,
			Taxes:            taxes,
			Inflow:           inflow,
			Outflow:          outflow,
			DebtRatio:        series.Pct(math.Abs(debts), assets),
			DebtToIncome:     series.Pct(math.Abs(debts), revenue),
			DebtUtilization:  series.Pct(used, limit),
			ProfitMargin:     series.Pct(revenue-expenses-taxes, revenue),
			SavingsRate:      series.Pct(inflow-outflow, inflow),
			IncomeMultiple:   series.Div(net, revenue),
			ExpenseMultiple:  series.Div(net, expenses),
			SafeWithdrawal:   withdrawal,
			SafeWithdrawalPc: series.Pct(withdrawal, expenses),
			TaxRate:          series.Pct(taxes, revenue),
		} {
			col[name][r] = v
		}
	}
	return f, nil
}

// credit sums the limits in effect at m, and the debt owed on the accounts
// those limits belong to.
func credit(accounts, limits *domain.Accounts, m civil.Date) (limit, used float64) {
	lr := asOf(limits.Dates, m)
	if lr < 0 {
		return 0, 0
	}
	ar := asOf(accounts.Dates, m)
	for c, key := range limits.Keys {
		limit += math.Abs(limits.Values[c][lr])
		if ar < 0 {
			continue
		}
		cols, _ := accounts.Select(key)
		for _, ac := range cols {
			if v := accounts.Values[ac][ar]; v < 0 {
				used -= v
			}
		}
	}
	return limit, used
}

func asOf(dates []civil.Date, d civil.Date) int {
	row := -1
	for i, x := range dates {
		if x.After(d) {
			break
		}
		row = i
	}
	return row
}

func monthEnds(dates ...[]civil.Date) []civil.Date {
	seen := map[civil.Date]bool{}
	var out []civil.Date
	for _, ds := range dates {
		for _, d := range ds {
			m := series.MonthEnd(d)
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// months is a monthly table addressable by month end.
type months struct {
	t   *series.Table
	row map[civil.Date]int
}

func monthly(t *series.Table) months {
	if t == nil {
		return months{}
	}
	m := months{t: t.Monthly(), row: map[civil.Date]int{}}
	for i, d := range m.t.Dates {
		m.row[d] = i
	}
	return m
}

func (m months) dates() []civil.Date {
	if m.t == nil {
		return nil
	}
	return m.t.Dates
}

// sum totals the columns of the given categories in month end d.
func (m months) sum(d civil.Date, categories []string) float64 {
	r, ok := m.row[d]
	if !ok {
		return 0
	}
	total := 0.0
	for c, k := range m.t.Columns {
		for _, cat := range categories {
			if k.Category == cat {
				total += m.t.Values[c][r]
				break
			}
		}
	}
	return total
}
