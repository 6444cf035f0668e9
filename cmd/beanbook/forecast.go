package main

import (
	"fmt"
	"math"

	"cloud.google.com/go/civil"

	"github.com/voidshard/beanbook/pkg/forecast"
	"github.com/voidshard/beanbook/pkg/logger"
	"github.com/voidshard/beanbook/pkg/statement"
)

type forecastCmd struct {
	Income         float64 `default:"50000" help:"First year income."`
	Balance        float64 `help:"Starting invested balance."`
	IncomeIncrease float64 `default:"0.03" help:"Yearly income growth before FI."`
	SavingsRate    float64 `default:"0.5" help:"Share of income saved before FI."`
	WithdrawalRate float64 `help:"Share of the balance withdrawn each year; 0 uses BEANBOOK_WITHDRAWAL_RATE."`
	ReturnRate     float64 `default:"0.05" help:"Yearly investment return."`
	Age            int     `default:"23" help:"Age in the first year."`
	LifeExpectancy int     `default:"90" help:"Age in the last simulated year."`
	MinSpending    float64 `help:"Floor on yearly expenses."`
	MaxSpending    float64 `help:"Cap on yearly expenses, 0 for none."`
	Start          string  `help:"Date in the first simulated year (YYYY-MM-DD); years stay undated without it."`
	FixedExpenses  bool    `help:"Keep expenses at the first year's level instead of following income."`
}

func (c *forecastCmd) Run(g *globals) error {
	ctx, cfg, err := g.setup()
	if err != nil {
		return err
	}

	p := forecast.Params{
		Income:          c.Income,
		InitialBalance:  c.Balance,
		IncomeIncrease:  c.IncomeIncrease,
		SavingsRate:     c.SavingsRate,
		WithdrawalRate:  c.WithdrawalRate,
		ReturnRate:      c.ReturnRate,
		Age:             c.Age,
		LifeExpectancy:  c.LifeExpectancy,
		MinSpending:     c.MinSpending,
		MaxSpending:     c.MaxSpending,
		ExpenseIncrease: !c.FixedExpenses,
	}
	if p.WithdrawalRate == 0 {
		p.WithdrawalRate = cfg.WithdrawalRate
	}
	if p.MaxSpending == 0 {
		p.MaxSpending = math.Inf(1)
	}
	if c.Start != "" {
		if p.Start, err = civil.ParseDate(c.Start); err != nil {
			return fmt.Errorf("start: %w", err)
		}
	}

	years, err := forecast.Assumption(p)
	if err != nil {
		return err
	}

	w := newTable()
	fmt.Fprintln(w, "Year\tDate\tAge\tBalance\tIncome\tSavings\tExpenses\tReturn\tSafe Withdrawal\t% FI\tFI\t")
	for _, y := range years {
		date := ""
		if y.Date.IsValid() {
			date = y.Date.String()
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s%t\t\n", y.Year, date, y.Age,
			joinAccounting(y.Balance, y.Income, y.Savings, y.Expenses, y.Return, y.SafeWithdrawal, y.PctFI), y.FI)
	}
	w.Flush()

	log := logger.FromContext(ctx)
	if fi, ok := forecast.FirstFI(years); ok {
		log.Info().Int("age", fi.Age).Str("balance", statement.FormatAccounting(fi.Balance)).Msg("financially independent")
	} else {
		log.Warn().Msg("financial independence not reached")
	}

	return g.emit(ctx, cfg, forecast.Entries(years))
}
