package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/voidshard/beanbook/pkg/domain"
	"github.com/voidshard/beanbook/pkg/logger"
	"github.com/voidshard/beanbook/pkg/taxonomy"
)

// JSONFiles reads each record set from its own JSON array file. An empty path
// yields no records.
//
// Accounts and limits are arrays of balances:
//
//	[{"date": "2020-01-31", "account": ["Cash", "Checking"], "amount": 100}]
type JSONFiles struct {
	AccountsPath     string
	LimitsPath       string
	TransactionsPath string
	PaychecksPath    string
}

func (f *JSONFiles) Accounts(ctx context.Context) (*domain.Accounts, error) {
	var balances []domain.Balance
	if err := readJSON(ctx, "accounts", f.AccountsPath, &balances); err != nil {
		return nil, err
	}
	return domain.NewAccounts(balances), nil
}

func (f *JSONFiles) Limits(ctx context.Context) (*domain.Accounts, error) {
	var balances []domain.Balance
	if err := readJSON(ctx, "limits", f.LimitsPath, &balances); err != nil {
		return nil, err
	}
	return domain.NewAccounts(balances), nil
}

func (f *JSONFiles) Transactions(ctx context.Context) ([]domain.Transaction, error) {
	var txns []domain.Transaction
	if err := readJSON(ctx, "transactions", f.TransactionsPath, &txns); err != nil {
		return nil, err
	}
	return txns, nil
}

func (f *JSONFiles) Paychecks(ctx context.Context) ([]domain.Paycheck, error) {
	var paychecks []domain.Paycheck
	if err := readJSON(ctx, "paychecks", f.PaychecksPath, &paychecks); err != nil {
		return nil, err
	}
	return paychecks, nil
}

// ReadBalanceTaxonomy parses a balance taxonomy file.
func ReadBalanceTaxonomy(path string) (taxonomy.Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return taxonomy.Taxonomy{}, fmt.Errorf("read taxonomy: %w", err)
	}
	t, err := taxonomy.ParseBalance(data)
	if err != nil {
		return taxonomy.Taxonomy{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ReadFlowTaxonomy parses an income or cashflow taxonomy file.
func ReadFlowTaxonomy(path string) (taxonomy.Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return taxonomy.Taxonomy{}, fmt.Errorf("read taxonomy: %w", err)
	}
	t, err := taxonomy.ParseFlow(data)
	if err != nil {
		return taxonomy.Taxonomy{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func readJSON(ctx context.Context, what, path string, v interface{}) error {
	if path == "" {
		return nil
	}
	log := logger.WithFields(logger.FromContext(ctx), map[string]interface{}{
		"records": what,
		"path":    path,
	})

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", what, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s %s: %w", what, path, err)
	}
	log.Debug().Msg("loaded")
	return nil
}
