package main

import (
	"fmt"
	"strings"

	"github.com/voidshard/beanbook/pkg/networth"
	"github.com/voidshard/beanbook/pkg/series"
	"github.com/voidshard/beanbook/pkg/statement"
)

type networthCmd struct{}

type growthCmd struct {
	Column string `default:"Net" help:"Net worth column to measure [Assets Debts Net]."`
}

type milestonesCmd struct {
	Thresholds []float64 `default:"10000,50000,100000,250000,500000,1000000" help:"Net worth thresholds."`
}

func (c *networthCmd) Run(g *globals) error {
	ctx, cfg, err := g.setup()
	if err != nil {
		return err
	}
	accounts, err := g.records().Accounts(ctx)
	if err != nil {
		return err
	}

	f := networth.Compute(accounts)
	stats := networth.Stats(f)
	printFrame(f)

	w := newTable()
	fmt.Fprintln(w, "\tCurrent\tMax\tMin\tMean\tMedian\tStd Dev\t")
	for _, s := range stats {
		fmt.Fprintf(w, "%s\t%s\n", s.Column, joinAccounting(s.Current, s.Max, s.Min, s.Mean, s.Median, s.StdDev))
	}
	w.Flush()

	return g.emit(ctx, cfg, append(f.Entries("networth"), networth.StatEntries(stats)...))
}

func (c *growthCmd) Run(g *globals) error {
	ctx, cfg, err := g.setup()
	if err != nil {
		return err
	}
	accounts, err := g.records().Accounts(ctx)
	if err != nil {
		return err
	}

	f := networth.Compute(accounts)
	if f.Col(c.Column) == nil {
		return fmt.Errorf("unknown column %q", c.Column)
	}
	rows := networth.Growth(f, c.Column, networth.DefaultOffsets)

	w := newTable()
	fmt.Fprintln(w, "Offset\tMetric\tValue\t")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t\n", r.Offset, r.Metric, statement.FormatAccounting(r.Value))
	}
	w.Flush()

	return g.emit(ctx, cfg, networth.GrowthEntries(c.Column, rows))
}

func (c *milestonesCmd) Run(g *globals) error {
	ctx, cfg, err := g.setup()
	if err != nil {
		return err
	}
	accounts, err := g.records().Accounts(ctx)
	if err != nil {
		return err
	}

	ms := networth.Milestones(networth.Compute(accounts), c.Thresholds)

	w := newTable()
	fmt.Fprintln(w, "Threshold\tDate\tNet\tReached\t")
	for _, m := range ms {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t\n", statement.FormatAccounting(m.Threshold), m.Date, statement.FormatAccounting(m.Value), m.Reached)
	}
	w.Flush()

	return g.emit(ctx, cfg, networth.MilestoneEntries(ms))
}

func printFrame(f *series.Frame) {
	w := newTable()
	fmt.Fprintf(w, "Date\t%s\t\n", strings.Join(f.Columns, "\t"))
	for r, d := range f.Index {
		row := make([]float64, len(f.Columns))
		for c := range f.Columns {
			row[c] = f.Values[c][r]
		}
		fmt.Fprintf(w, "%s\t%s\n", d, joinAccounting(row...))
	}
	w.Flush()
	fmt.Println()
}

func joinAccounting(vs ...float64) string {
	var b strings.Builder
	for _, v := range vs {
		b.WriteString(statement.FormatAccounting(v))
		b.WriteByte('\t')
	}
	return b.String()
}
