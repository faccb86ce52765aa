package repositories

import (
	"context"

	"github.com/SscSPs/balance_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	// Missing ids are simply absent from the map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves all accounts ordered by name.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's name and start balance.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// UpdateAccountBalance writes the derived current balance of an account.
	UpdateAccountBalance(ctx context.Context, accountID string, balance decimal.Decimal) error

	// DeleteAccount removes an account. Its operations must be removed first.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountLocker locks account rows for the rest of a transaction.
type AccountLocker interface {
	// LockAccounts locks the given accounts in ascending id order.
	// It fails with apperrors.ErrNotFound if any account does not exist.
	LockAccounts(ctx context.Context, accountIDs []string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
