package main

import (
	"github.com/voidshard/beanbook/pkg/aggregate"
	"github.com/voidshard/beanbook/pkg/source"
	"github.com/voidshard/beanbook/pkg/summary"
)

type summaryCmd struct {
	Revenue  []string `help:"Income statement categories counted as revenue." default:"Revenue"`
	Expenses []string `help:"Income statement categories counted as expenses." default:"Expenses"`
	Inflow   []string `help:"Cashflow statement categories counted as inflow." default:"Inflow"`
	Outflow  []string `help:"Cashflow statement categories counted as outflow." default:"Outflow"`
}

func (c *summaryCmd) Run(g *globals) error {
	ctx, cfg, err := g.setup()
	if err != nil {
		return err
	}
	src := g.records()

	in := summary.Input{
		RevenueCategories: c.Revenue,
		ExpenseCategories: c.Expenses,
		TaxCategories:     cfg.TaxCategories,
		InflowCategories:  c.Inflow,
		OutflowCategories: c.Outflow,
		WithdrawalRate:    cfg.WithdrawalRate,
	}
	if in.Accounts, err = src.Accounts(ctx); err != nil {
		return err
	}
	if in.Limits, err = src.Limits(ctx); err != nil {
		return err
	}

	txns, err := src.Transactions(ctx)
	if err != nil {
		return err
	}
	// statements without a taxonomy contribute nothing
	if g.IncomeTaxonomy != "" {
		tax, err := source.ReadFlowTaxonomy(g.IncomeTaxonomy)
		if err != nil {
			return err
		}
		paychecks, err := src.Paychecks(ctx)
		if err != nil {
			return err
		}
		if in.Income, err = aggregate.Income(paychecks, txns, tax); err != nil {
			return err
		}
	}
	if g.CashflowTaxonomy != "" {
		tax, err := source.ReadFlowTaxonomy(g.CashflowTaxonomy)
		if err != nil {
			return err
		}
		if in.Cashflow, err = aggregate.Cashflow(txns, tax); err != nil {
			return err
		}
	}

	f, err := summary.Monthly(in)
	if err != nil {
		return err
	}
	printFrame(f)

	return g.emit(ctx, cfg, f.Entries("summary"))
}
