package pgsql

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/SscSPs/balance_ledger/internal/apperrors"
	"github.com/SscSPs/balance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/balance_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/balance_ledger/internal/models"
	"github.com/SscSPs/balance_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, name, currency_id, start_balance, current_balance, created_at, last_updated_at`

type PgxAccountRepository struct {
	db querier
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(db querier) *PgxAccountRepository {
	return &PgxAccountRepository{db: db}
}

// Ensure PgxAccountRepository implements the account interfaces
var (
	_ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)
	_ portsrepo.AccountLocker           = (*PgxAccountRepository)(nil)
)

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Name,
		&m.CurrencyID,
		&m.StartBalance,
		&m.CurrentBalance,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.CurrencyID,
		m.StartBalance,
		m.CurrentBalance,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, m.AccountID)
		}
		return storeError(fmt.Sprintf("failed to save account %s", m.AccountID), err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	m, err := scanAccount(r.db.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, storeError(fmt.Sprintf("failed to find account by ID %s", accountID), err)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	rows, err := r.db.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, storeError("failed to query accounts by IDs", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, storeError("failed to collect account rows", err)
	}

	accounts := make(map[string]domain.Account, len(ms))
	for _, m := range ms {
		accounts[m.AccountID] = mapping.ToDomainAccount(m)
	}
	return accounts, nil
}

// ListAccounts retrieves all accounts ordered by name.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY name, account_id;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, storeError("failed to list accounts", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, storeError("failed to collect account rows", err)
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

// UpdateAccount updates the name and start balance of an account.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $2, start_balance = $3, last_updated_at = $4
		WHERE account_id = $1;
	`
	tag, err := r.db.Exec(ctx, query, account.AccountID, account.Name, account.StartBalance, account.LastUpdatedAt)
	if err != nil {
		return storeError(fmt.Sprintf("failed to update account %s", account.AccountID), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, account.AccountID)
	}
	return nil
}

// UpdateAccountBalance writes the derived current balance of an account.
func (r *PgxAccountRepository) UpdateAccountBalance(ctx context.Context, accountID string, balance decimal.Decimal) error {
	tag, err := r.db.Exec(ctx, `UPDATE accounts SET current_balance = $2 WHERE account_id = $1;`, accountID, balance)
	if err != nil {
		return storeError(fmt.Sprintf("failed to update balance of account %s", accountID), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return nil
}

// DeleteAccount removes an account. The foreign key from operations makes this
// fail while operations still reference it.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		return storeError(fmt.Sprintf("failed to delete account %s", accountID), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return nil
}

// LockAccounts takes row locks on the given accounts in ascending id order.
func (r *PgxAccountRepository) LockAccounts(ctx context.Context, accountIDs []string) error {
	if len(accountIDs) == 0 {
		return nil
	}
	ids := slices.Clone(accountIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	query := `SELECT account_id FROM accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE;`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return storeError("failed to lock accounts", err)
	}
	locked, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return storeError("failed to lock accounts", err)
	}
	if len(locked) != len(ids) {
		for _, id := range ids {
			if !slices.Contains(locked, id) {
				return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
			}
		}
	}
	return nil
}
