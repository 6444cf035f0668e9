/*Basic command structure*/
package main

import (
	"github.com/alecthomas/kong"
)

// globals holds options shared by every command
type globals struct {
	LogLevel string   `help:"Log level [debug info warn error], overrides BEANBOOK_LOG_LEVEL."`
	EnvFile  string   `default:".env" help:"Optional KEY=VALUE file loaded before reading the environment."`
	Out      []string `help:"Where to also write report entries [jsonfile:/path/file.json sealed:/path/file.sealed es8:http://myelasticsearch:9200 sqlite:/path/file.db]"`

	Accounts     string `help:"JSON array of account balances."`
	Limits       string `help:"JSON array of credit limits, same layout as accounts."`
	Transactions string `help:"JSON array of transactions."`
	Paychecks    string `help:"JSON array of paychecks."`

	BalanceTaxonomy  string `name:"balance-taxonomy" help:"Balance sheet taxonomy (JSON)."`
	IncomeTaxonomy   string `name:"income-taxonomy" help:"Income statement taxonomy (JSON)."`
	CashflowTaxonomy string `name:"cashflow-taxonomy" help:"Cashflow statement taxonomy (JSON)."`
}

// cli commands / args available
var cli struct {
	Globals globals `embed`

	Balance  balanceCmd  `cmd help:"Balance sheet as of the end of a period."`
	Income   incomeCmd   `cmd help:"Income statement for a period."`
	Cashflow cashflowCmd `cmd help:"Cashflow statement for a period."`
	Report   reportCmd   `cmd help:"All three statements for a period."`

	Networth   networthCmd   `cmd help:"Net worth over time and its summary statistics."`
	Growth     growthCmd     `cmd help:"Net worth growth over standard look-back windows."`
	Milestones milestonesCmd `cmd help:"First dates net worth reached each threshold."`
	Summary    summaryCmd    `cmd help:"Monthly financial ratios."`

	Forecast forecastCmd `cmd help:"Simulate reaching financial independence."`
}

func main() {
	ctx := kong.Parse(&cli, kong.Name("beanbook"), kong.Description("Personal finance statements from categorized records."))
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
