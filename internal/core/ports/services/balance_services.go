package services

import (
	"context"
	"time"

	"github.com/SscSPs/balance_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceSvcFacade answers point-in-time and aggregate balance queries
type BalanceSvcFacade interface {
	// BalanceAsOf returns the balance of an account at an instant. A nil date
	// means now, which is the current balance.
	BalanceAsOf(ctx context.Context, accountID string, date *time.Time) (decimal.Decimal, error)

	// TotalBalance sums the balances of the given accounts at an instant,
	// converted into the base currency.
	TotalBalance(ctx context.Context, accountIDs []string, date *time.Time) (*domain.TotalBalance, error)
}
