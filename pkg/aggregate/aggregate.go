// Package aggregate turns raw balances, transactions and paychecks into dense
// daily tables with one column per taxonomy item.
package aggregate

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/voidshard/beanbook/pkg/domain"
	"github.com/voidshard/beanbook/pkg/series"
	"github.com/voidshard/beanbook/pkg/taxonomy"
)

// ErrUnknownAccount is returned when a balance selector names an account the
// accounts table does not have.
var ErrUnknownAccount = errors.New("unknown account")

// Balance sums the selected account columns per day. Days without a balance
// record are zero and left unobserved.
func Balance(accounts *domain.Accounts, tax taxonomy.Taxonomy) (*series.Table, error) {
	norm, err := prepare(tax, taxonomy.Balances)
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = &domain.Accounts{}
	}

	keys := norm.Keys()
	picks := make([][]int, 0, len(keys))
	var missing []string
	norm.Walk(func(k taxonomy.Key, sel taxonomy.Selector) {
		cols, unknown := pickColumns(accounts, sel.(taxonomy.BalanceSelector))
		for _, u := range unknown {
			missing = append(missing, fmt.Sprintf("%s: %s", k, u))
		}
		picks = append(picks, cols)
	})
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w:\n- %s", ErrUnknownAccount, strings.Join(missing, "\n- "))
	}

	table := newTable(keys, accounts.Dates)
	for i, d := range accounts.Dates {
		r := table.Row(d)
		table.Observed[r] = true
		for c, cols := range picks {
			for _, col := range cols {
				table.Values[c][r] += accounts.Values[col][i]
			}
		}
	}
	return table, nil
}

// Income sums matching transactions per day, and for paycheck-sourced items
// the named paycheck fields. The calendar covers both record sets.
func Income(paychecks []domain.Paycheck, txns []domain.Transaction, tax taxonomy.Taxonomy) (*series.Table, error) {
	norm, err := prepare(tax, taxonomy.Flows)
	if err != nil {
		return nil, err
	}
	return flows(norm, paychecks, txns), nil
}

// Cashflow sums matching transactions per day. Paycheck-sourced items are a
// configuration error here.
func Cashflow(txns []domain.Transaction, tax taxonomy.Taxonomy) (*series.Table, error) {
	norm, err := prepare(tax, taxonomy.Flows)
	if err != nil {
		return nil, err
	}

	var problems []string
	norm.Walk(func(k taxonomy.Key, sel taxonomy.Selector) {
		if sel.(taxonomy.FlowSelector).Source == taxonomy.Paychecks {
			problems = append(problems, fmt.Sprintf("%s: %s source is only valid for income", k, taxonomy.Paychecks))
		}
	})
	if len(problems) > 0 {
		return nil, fmt.Errorf("%w:\n- %s", taxonomy.ErrInvalid, strings.Join(problems, "\n- "))
	}
	return flows(norm, nil, txns), nil
}

func prepare(tax taxonomy.Taxonomy, want taxonomy.Kind) (taxonomy.Taxonomy, error) {
	norm, err := taxonomy.Normalize(tax)
	if err != nil {
		return taxonomy.Taxonomy{}, err
	}
	if got := norm.Kind(); got != want {
		return taxonomy.Taxonomy{}, fmt.Errorf("%w: %s aggregation needs %s selectors, got %s", taxonomy.ErrInvalid, want, want, got)
	}
	return norm, nil
}

func flows(norm taxonomy.Taxonomy, paychecks []domain.Paycheck, txns []domain.Transaction) *series.Table {
	dates := make([]civil.Date, 0, len(paychecks)+len(txns))
	for _, p := range paychecks {
		dates = append(dates, p.Date)
	}
	for _, tx := range txns {
		dates = append(dates, tx.Date)
	}

	table := newTable(norm.Keys(), dates)
	for _, d := range dates {
		table.Observed[table.Row(d)] = true
	}

	c := 0
	norm.Walk(func(_ taxonomy.Key, sel taxonomy.Selector) {
		fs := sel.(taxonomy.FlowSelector)
		vals := table.Values[c]
		c++

		if fs.Source == taxonomy.Paychecks {
			for _, p := range paychecks {
				vals[table.Row(p.Date)] += p.Sum(fs.Categories)
			}
			return
		}
		for _, tx := range txns {
			if fs.Matches(tx) {
				vals[table.Row(tx.Date)] += tx.Amount
			}
		}
	})
	return table
}

// newTable spans the full record range of dates; keys are already in lexical
// order because the taxonomy is normalized.
func newTable(keys []taxonomy.Key, dates []civil.Date) *series.Table {
	first, last, ok := series.Bounds(dates)
	if !ok {
		return series.NewTable(nil, keys)
	}
	return series.NewTable(series.Span(first, last), keys)
}

// pickColumns resolves a selector to distinct account columns.
func pickColumns(accounts *domain.Accounts, sel taxonomy.BalanceSelector) (cols []int, unknown []string) {
	seen := map[int]bool{}
	for _, key := range sel.Columns {
		found, ok := accounts.Select(key)
		if !ok {
			unknown = append(unknown, key.String())
			continue
		}
		for _, col := range found {
			if !seen[col] {
				seen[col] = true
				cols = append(cols, col)
			}
		}
	}
	sort.Ints(cols)
	return cols, unknown
}
