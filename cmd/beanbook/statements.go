package main

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/voidshard/beanbook/pkg/aggregate"
	"github.com/voidshard/beanbook/pkg/config"
	"github.com/voidshard/beanbook/pkg/domain"
	"github.com/voidshard/beanbook/pkg/logger"
	"github.com/voidshard/beanbook/pkg/series"
	"github.com/voidshard/beanbook/pkg/source"
	"github.com/voidshard/beanbook/pkg/statement"
)

type balanceCmd struct {
	Period string `arg help:"Year (2020) or inclusive range (2020-01-01:2020-06-30)."`
}

type incomeCmd struct {
	Period string `arg help:"Year (2020) or inclusive range (2020-01-01:2020-06-30)."`
}

type cashflowCmd struct {
	Period string `arg help:"Year (2020) or inclusive range (2020-01-01:2020-06-30)."`
}

type reportCmd struct {
	Period string `arg help:"Year (2020) or inclusive range (2020-01-01:2020-06-30)."`
}

func (c *balanceCmd) Run(g *globals) error {
	return runStatements(g, c.Period, buildBalance)
}

func (c *incomeCmd) Run(g *globals) error {
	return runStatements(g, c.Period, buildIncome)
}

func (c *cashflowCmd) Run(g *globals) error {
	return runStatements(g, c.Period, buildCashflow)
}

func (c *reportCmd) Run(g *globals) error {
	return runStatements(g, c.Period, buildBalance, buildIncome, buildCashflow)
}

// centPlaces is the precision statements are exported at.
const centPlaces = 2

type builder func(ctx context.Context, g *globals, cfg *config.Config, p series.Period) (*statement.Statement, error)

// runStatements builds each statement concurrently, then prints and emits them
// in the order given.
func runStatements(g *globals, period string, builders ...builder) error {
	ctx, cfg, err := g.setup()
	if err != nil {
		return err
	}
	p, err := series.ParsePeriod(period)
	if err != nil {
		return err
	}

	results := make([]*statement.Statement, len(builders))
	eg, ectx := errgroup.WithContext(ctx)
	for i, build := range builders {
		i, build := i, build
		eg.Go(func() error {
			s, err := build(ectx, g, cfg, p)
			if err != nil {
				return err
			}
			results[i] = s
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	log := logger.FromContext(ctx)
	var entries []*domain.Entry
	for _, s := range results {
		if s.Empty() {
			log.Warn().Str("statement", s.Kind.String()).Str("period", p.String()).Msg("no data in period")
		}
		printStatement(s)
		entries = append(entries, s.Rounded(centPlaces).Entries()...)
	}
	return g.emit(ctx, cfg, entries)
}

func buildBalance(ctx context.Context, g *globals, cfg *config.Config, p series.Period) (*statement.Statement, error) {
	tax, err := g.readTaxonomy(g.BalanceTaxonomy, "balance-taxonomy", source.ReadBalanceTaxonomy)
	if err != nil {
		return nil, err
	}
	accounts, err := g.records().Accounts(ctx)
	if err != nil {
		return nil, err
	}
	t, err := aggregate.Balance(accounts, tax)
	if err != nil {
		return nil, err
	}
	return statement.BalanceSheet(t, p), nil
}

func buildIncome(ctx context.Context, g *globals, cfg *config.Config, p series.Period) (*statement.Statement, error) {
	tax, err := g.readTaxonomy(g.IncomeTaxonomy, "income-taxonomy", source.ReadFlowTaxonomy)
	if err != nil {
		return nil, err
	}
	src := g.records()
	paychecks, err := src.Paychecks(ctx)
	if err != nil {
		return nil, err
	}
	txns, err := src.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	t, err := aggregate.Income(paychecks, txns, tax)
	if err != nil {
		return nil, err
	}
	return statement.IncomeStatement(t, p, statement.WithTaxCategories(cfg.TaxCategories...)), nil
}

func buildCashflow(ctx context.Context, g *globals, cfg *config.Config, p series.Period) (*statement.Statement, error) {
	tax, err := g.readTaxonomy(g.CashflowTaxonomy, "cashflow-taxonomy", source.ReadFlowTaxonomy)
	if err != nil {
		return nil, err
	}
	txns, err := g.records().Transactions(ctx)
	if err != nil {
		return nil, err
	}
	t, err := aggregate.Cashflow(txns, tax)
	if err != nil {
		return nil, err
	}
	return statement.CashflowStatement(t, p), nil
}

func printStatement(s *statement.Statement) {
	fmt.Printf("%s %s", s.Kind, s.Period)
	if !s.Empty() {
		fmt.Printf(" (as of %s)", s.AsOf)
	}
	fmt.Println()

	w := newTable()
	fmt.Fprintln(w, "Category\tType\tItem\t$\t%\t")
	for _, r := range s.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n", r.Key.Category, r.Key.Type, r.Key.Item,
			statement.FormatAccounting(r.Dollars), statement.FormatAccounting(r.Percent))
	}
	w.Flush()
	fmt.Println()
}
