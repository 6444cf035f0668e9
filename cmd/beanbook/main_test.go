package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidshard/beanbook/pkg/domain"
	"github.com/voidshard/beanbook/pkg/store"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// testGlobals points every input at small files in a temp dir and pins the
// environment so the host's configuration does not leak in.
func testGlobals(t *testing.T) (*globals, string) {
	t.Helper()
	t.Setenv("BEANBOOK_LOG_LEVEL", "error")
	t.Setenv("BEANBOOK_ES_ADDRESSES", "http://localhost:9200")
	t.Setenv("BEANBOOK_SEAL_KEY", "")
	t.Setenv("BEANBOOK_SIGN_KEY", "")
	t.Setenv("BEANBOOK_WITHDRAWAL_RATE", "")
	t.Setenv("BEANBOOK_TAX_CATEGORIES", "")

	dir := t.TempDir()
	return &globals{
		Accounts: write(t, dir, "accounts.json", `[
			{"date": "2020-06-30", "account": ["Cash", "A"], "amount": 100.123},
			{"date": "2020-06-30", "account": ["Cash", "B"], "amount": 50}
		]`),
		Transactions: write(t, dir, "transactions.json", `[
			{"date": "2020-03-01", "amount": -50, "category": "Food"}
		]`),
		Paychecks: write(t, dir, "paychecks.json", `[
			{"date": "2020-01-15", "Base Rate": 4000}
		]`),
		BalanceTaxonomy: write(t, dir, "balance.json",
			`{"Assets": {"Current": {"Cash": [["Cash", "A"], ["Cash", "B"]]}}}`),
		IncomeTaxonomy: write(t, dir, "income.json",
			`{"Revenue": {"Operating": {"Salary": {"categories": ["Base Rate"], "source": "paycheck"}}}}`),
		CashflowTaxonomy: write(t, dir, "cashflow.json",
			`{"Outflow": {"Operating": {"Dining": {"categories": ["Food"]}}}}`),
	}, dir
}

func find(entries []*domain.Entry, report, category, typ, item, metric string) *domain.Entry {
	for _, e := range entries {
		if e.Report == report && e.Category == category && e.Type == typ && e.Item == item && e.Metric == metric {
			return e
		}
	}
	return nil
}

func TestReportWritesEveryOut(t *testing.T) {
	g, dir := testGlobals(t)
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")
	g.Out = []string{"jsonfile:" + a, "jsonfile:" + b}

	require.NoError(t, (&reportCmd{Period: "2020"}).Run(g))

	entries, err := store.ReadJSONFile(a, "", "")
	require.NoError(t, err)
	other, err := store.ReadJSONFile(b, "", "")
	require.NoError(t, err)
	assert.Equal(t, entries, other)

	cases := []struct {
		report, category, typ, item string
		expect                      float64
	}{
		{"balance", "Assets", "Current", "Cash", 150.12},
		{"balance", "Net", "Total", " ", 150.12},
		{"income", "Revenue", "Operating", "Salary", 4000},
		{"income", "Net", "Net Income", "After Taxes", 4000},
		{"cashflow", "Outflow", "Operating", "Dining", -50},
	}
	for _, tt := range cases {
		e := find(entries, tt.report, tt.category, tt.typ, tt.item, "$")
		require.NotNil(t, e, "%s %s/%s/%s", tt.report, tt.category, tt.typ, tt.item)
		require.NotNil(t, e.Value)
		assert.Equal(t, tt.expect, *e.Value)
		assert.Equal(t, "2020", e.Period)
	}
}

func TestBalanceCommand(t *testing.T) {
	g, dir := testGlobals(t)
	out := filepath.Join(dir, "balance.db")
	g.Out = []string{"sqlite:" + out}

	require.NoError(t, (&balanceCmd{Period: "2020-01-01:2020-06-30"}).Run(g))
	assert.FileExists(t, out)
}

func TestStatementErrors(t *testing.T) {
	g, _ := testGlobals(t)

	g.BalanceTaxonomy = ""
	err := (&balanceCmd{Period: "2020"}).Run(g)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--balance-taxonomy")

	err = (&cashflowCmd{Period: "20"}).Run(g)
	assert.Error(t, err)

	g.Out = []string{"nowhere"}
	err = (&cashflowCmd{Period: "2020"}).Run(g)
	assert.True(t, errors.Is(err, store.ErrOutPath))
}

func TestEmitWithoutOut(t *testing.T) {
	g, _ := testGlobals(t)
	ctx, cfg, err := g.setup()
	require.NoError(t, err)

	assert.NoError(t, g.emit(ctx, cfg, []*domain.Entry{domain.NewEntry("balance", "2020", "", "", "", "", "$", 1)}))
}

func TestNetworthCommands(t *testing.T) {
	g, dir := testGlobals(t)
	out := filepath.Join(dir, "networth.json")
	g.Out = []string{"jsonfile:" + out}

	require.NoError(t, (&networthCmd{}).Run(g))
	entries, err := store.ReadJSONFile(out, "", "")
	require.NoError(t, err)
	assert.NotNil(t, find(entries, "networth", "", "", "", "Net"))
	assert.NotNil(t, find(entries, "stats", "Net", "", "", "Current"))

	require.NoError(t, (&milestonesCmd{Thresholds: []float64{100, 1000}}).Run(g))
	entries, err = store.ReadJSONFile(out, "", "")
	require.NoError(t, err)
	assert.NotEmpty(t, entries)

	assert.Error(t, (&growthCmd{Column: "Cash"}).Run(g))
}

func TestForecastCommand(t *testing.T) {
	g, dir := testGlobals(t)
	out := filepath.Join(dir, "forecast.json")
	g.Out = []string{"jsonfile:" + out}

	cmd := &forecastCmd{
		Income:         100,
		IncomeIncrease: 0.03,
		SavingsRate:    0.5,
		ReturnRate:     0.05,
		Age:            30,
		LifeExpectancy: 32,
		Start:          "2020-01-01",
	}
	require.NoError(t, cmd.Run(g))

	entries, err := store.ReadJSONFile(out, "", "")
	require.NoError(t, err)
	assert.Len(t, entries, 3*9)
	assert.Equal(t, "2020-12-31", entries[0].Date)

	cmd.Start = "soon"
	assert.Error(t, cmd.Run(g))
}
