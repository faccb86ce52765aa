package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/SscSPs/balance_ledger/internal/apperrors"
	"github.com/SscSPs/balance_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ledgerState holds accounts and operations by value, so copies handed out
// never alias stored data.
type ledgerState struct {
	accounts   map[string]domain.Account
	operations map[string]domain.Operation
}

func newLedgerState() *ledgerState {
	return &ledgerState{
		accounts:   make(map[string]domain.Account),
		operations: make(map[string]domain.Operation),
	}
}

func (st *ledgerState) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	acc, ok := st.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return &acc, nil
}

func (st *ledgerState) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	result := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if acc, ok := st.accounts[id]; ok {
			result[id] = acc
		}
	}
	return result, nil
}

func (st *ledgerState) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts := make([]domain.Account, 0, len(st.accounts))
	for _, acc := range st.accounts {
		accounts = append(accounts, acc)
	}
	slices.SortFunc(accounts, func(a, b domain.Account) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.AccountID, b.AccountID)
	})
	return accounts, nil
}

func (st *ledgerState) FindOperationByID(ctx context.Context, operationID string) (*domain.Operation, error) {
	op, ok := st.operations[operationID]
	if !ok {
		return nil, fmt.Errorf("%w: operation %s", apperrors.ErrNotFound, operationID)
	}
	return &op, nil
}

func (st *ledgerState) FindOperationsOrdered(ctx context.Context, accountID string) ([]domain.Operation, error) {
	ops := []domain.Operation{}
	for _, op := range st.operations {
		if op.AccountID == accountID {
			ops = append(ops, op)
		}
	}
	domain.SortOperations(ops)
	return ops, nil
}

func (st *ledgerState) ListOperations(ctx context.Context, filter domain.OperationFilter) ([]domain.Operation, error) {
	ops := []domain.Operation{}
	for _, op := range st.operations {
		if filter.Matches(op) {
			ops = append(ops, op)
		}
	}
	slices.SortFunc(ops, func(a, b domain.Operation) int {
		return domain.CompareOperations(b, a)
	})
	if filter.Limit > 0 && len(ops) > filter.Limit {
		ops = ops[:filter.Limit]
	}
	return ops, nil
}

func (st *ledgerState) CountOperations(ctx context.Context, filter domain.OperationFilter) (int, error) {
	filter.Before = nil
	count := 0
	for _, op := range st.operations {
		if filter.Matches(op) {
			count++
		}
	}
	return count, nil
}

func (st *ledgerState) SaveAccount(ctx context.Context, account domain.Account) error {
	if _, exists := st.accounts[account.AccountID]; exists {
		return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, account.AccountID)
	}
	st.accounts[account.AccountID] = account
	return nil
}

func (st *ledgerState) UpdateAccount(ctx context.Context, account domain.Account) error {
	existing, ok := st.accounts[account.AccountID]
	if !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, account.AccountID)
	}
	existing.Name = account.Name
	existing.StartBalance = account.StartBalance
	existing.LastUpdatedAt = account.LastUpdatedAt
	st.accounts[account.AccountID] = existing
	return nil
}

func (st *ledgerState) UpdateAccountBalance(ctx context.Context, accountID string, balance decimal.Decimal) error {
	acc, ok := st.accounts[accountID]
	if !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	acc.CurrentBalance = balance
	st.accounts[accountID] = acc
	return nil
}

func (st *ledgerState) DeleteAccount(ctx context.Context, accountID string) error {
	if _, ok := st.accounts[accountID]; !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	for _, op := range st.operations {
		if op.AccountID == accountID {
			return fmt.Errorf("%w: account %s still has operations", apperrors.ErrValidation, accountID)
		}
	}
	delete(st.accounts, accountID)
	return nil
}

func (st *ledgerState) SaveOperation(ctx context.Context, operation domain.Operation) error {
	if _, ok := st.accounts[operation.AccountID]; !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, operation.AccountID)
	}
	st.operations[operation.OperationID] = operation
	return nil
}

func (st *ledgerState) UpdateOperationBalances(ctx context.Context, balances map[string]decimal.Decimal) error {
	for id, balance := range balances {
		op, ok := st.operations[id]
		if !ok {
			return fmt.Errorf("%w: operation %s", apperrors.ErrNotFound, id)
		}
		op.Balance = balance
		st.operations[id] = op
	}
	return nil
}

func (st *ledgerState) DeleteOperation(ctx context.Context, operationID string) error {
	if _, ok := st.operations[operationID]; !ok {
		return fmt.Errorf("%w: operation %s", apperrors.ErrNotFound, operationID)
	}
	delete(st.operations, operationID)
	return nil
}
