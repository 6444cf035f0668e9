package source

import (
	"context"

	"github.com/voidshard/beanbook/pkg/domain"
)

// Source supplies the raw records reports are computed from. Implementations
// return fresh values on every call.
type Source interface {
	Accounts(context.Context) (*domain.Accounts, error)
	Limits(context.Context) (*domain.Accounts, error)
	Transactions(context.Context) ([]domain.Transaction, error)
	Paychecks(context.Context) ([]domain.Paycheck, error)
}
