package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/balance_ledger/internal/apperrors"
	"github.com/SscSPs/balance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/balance_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/balance_ledger/internal/core/ports/services"
)

// LedgerEngine bundles what every ledger mutation needs: the store, the
// per-account locks and the recalculator. Operation, transfer and account
// services share one engine so they share one set of locks.
type LedgerEngine struct {
	BaseService
	store  portsrepo.LedgerStore
	locks  *accountLocks
	recalc *Recalculator
}

// NewLedgerEngine creates an engine. lockTimeout bounds the wait for account locks.
func NewLedgerEngine(store portsrepo.LedgerStore, currencies portssvc.CurrencyReaderSvc, lockTimeout time.Duration) *LedgerEngine {
	return &LedgerEngine{
		store:  store,
		locks:  newAccountLocks(lockTimeout),
		recalc: NewRecalculator(currencies),
	}
}

// requireAccount loads an account referenced by a mutation. An unknown id is a
// validation failure of the request, not a missing resource.
func (e *LedgerEngine) requireAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: account is required", apperrors.ErrValidation)
	}
	account, err := e.store.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown account %s", apperrors.ErrValidation, accountID)
		}
		return nil, err
	}
	return account, nil
}

// mutate runs fn in one store transaction while holding the locks of every
// given account, both in-process and in the store.
func (e *LedgerEngine) mutate(ctx context.Context, accountIDs []string, fn func(tx portsrepo.LedgerTx) error) error {
	ids := lockOrder(accountIDs)
	release, err := e.locks.Acquire(ctx, ids...)
	if err != nil {
		return err
	}
	defer release()

	return e.store.WithinTx(ctx, func(tx portsrepo.LedgerTx) error {
		if err := tx.LockAccounts(ctx, ids); err != nil {
			return err
		}
		return fn(tx)
	})
}

// reloadUnchanged re-reads an operation inside a transaction and fails with a
// conflict if it moved to an account that is not locked.
func reloadUnchanged(ctx context.Context, tx portsrepo.LedgerTx, seen domain.Operation) (*domain.Operation, error) {
	current, err := tx.FindOperationByID(ctx, seen.OperationID)
	if err != nil {
		return nil, err
	}
	if current.AccountID != seen.AccountID || current.IsTransfer() != seen.IsTransfer() {
		return nil, fmt.Errorf("%w: operation %s changed concurrently", apperrors.ErrConcurrencyConflict, seen.OperationID)
	}
	return current, nil
}

func normalizeCategory(categoryID *string) *string {
	if categoryID == nil || *categoryID == "" {
		return nil
	}
	c := *categoryID
	return &c
}
