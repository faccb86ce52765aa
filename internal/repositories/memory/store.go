package memory

import (
	"context"
	"maps"
	"sync"
	"sync/atomic"

	"github.com/SscSPs/balance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/balance_ledger/internal/core/ports/repositories"
)

// Store is an in-memory implementation of LedgerStore.
// It is safe for concurrent use. Write transactions are serialized: each one
// works on a private copy of the state that replaces the live state on commit.
// Data is lost on restart - for persistence, use the postgres store.
type Store struct {
	mu    sync.RWMutex // guards state
	txMu  sync.Mutex   // serializes write transactions
	state *ledgerState
	seq   atomic.Int64
}

// NewStore creates a new, empty in-memory ledger store.
func NewStore() *Store {
	return &Store{state: newLedgerState()}
}

// Ensure Store implements the LedgerStore interface.
var _ portsrepo.LedgerStore = (*Store)(nil)

// WithinTx implements portsrepo.TransactionManager.
func (s *Store) WithinTx(ctx context.Context, fn func(tx portsrepo.LedgerTx) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	staged := s.state.clone()
	s.mu.RUnlock()

	tx := &ledgerTx{ledgerState: staged, store: s}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.state = staged
	s.mu.Unlock()
	return nil
}

// ReadSnapshot implements portsrepo.TransactionManager.
func (s *Store) ReadSnapshot(ctx context.Context, fn func(r portsrepo.LedgerReader) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.state)
}

// Reads outside a transaction see the latest committed state.

func (s *Store) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.FindAccountByID(ctx, accountID)
}

func (s *Store) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.FindAccountsByIDs(ctx, accountIDs)
}

func (s *Store) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ListAccounts(ctx)
}

func (s *Store) FindOperationByID(ctx context.Context, operationID string) (*domain.Operation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.FindOperationByID(ctx, operationID)
}

func (s *Store) FindOperationsOrdered(ctx context.Context, accountID string) ([]domain.Operation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.FindOperationsOrdered(ctx, accountID)
}

func (s *Store) ListOperations(ctx context.Context, filter domain.OperationFilter) ([]domain.Operation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ListOperations(ctx, filter)
}

func (s *Store) CountOperations(ctx context.Context, filter domain.OperationFilter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CountOperations(ctx, filter)
}

// ledgerTx adds the write side to a staged copy of the state.
type ledgerTx struct {
	*ledgerState
	store *Store
}

var _ portsrepo.LedgerTx = (*ledgerTx)(nil)

// NextSequenceNo implements portsrepo.OperationWriter. Numbers are never reused,
// even when the transaction that drew them rolls back.
func (t *ledgerTx) NextSequenceNo(ctx context.Context) (int64, error) {
	return t.store.seq.Add(1), nil
}

// LockAccounts implements portsrepo.AccountLocker. Write transactions are
// already serialized, so this only checks existence.
func (t *ledgerTx) LockAccounts(ctx context.Context, accountIDs []string) error {
	for _, id := range accountIDs {
		if _, err := t.FindAccountByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (st *ledgerState) clone() *ledgerState {
	return &ledgerState{
		accounts:   maps.Clone(st.accounts),
		operations: maps.Clone(st.operations),
	}
}
