package services

import (
	"context"

	"github.com/SscSPs/balance_ledger/internal/core/domain"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves all accounts.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account whose current balance is its start balance.
	CreateAccount(ctx context.Context, input domain.AccountInput) (*domain.Account, error)

	// UpdateAccount renames an account or changes its start balance. A changed
	// start balance recalculates the whole chain.
	UpdateAccount(ctx context.Context, accountID string, patch domain.AccountPatch) (*domain.Account, error)

	// DeleteAccount removes an account with all its operations. Transfer legs on
	// other accounts that pointed at it are removed too.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountMaintenanceSvc defines maintenance operations on derived balances
type AccountMaintenanceSvc interface {
	// RecalculateAccount recomputes every stored balance of an account and
	// returns its current balance. Running it on a consistent account changes nothing.
	RecalculateAccount(ctx context.Context, accountID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountMaintenanceSvc
}
