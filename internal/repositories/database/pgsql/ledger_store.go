package pgsql

import (
	"context"

	portsrepo "github.com/SscSPs/balance_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxLedgerStore is the postgres implementation of LedgerStore. Reads made
// directly on the store use the pool; transactional work goes through
// WithinTx and ReadSnapshot.
type PgxLedgerStore struct {
	BaseRepository
	*PgxAccountRepository
	*PgxOperationRepository
}

// NewLedgerStore creates a ledger store on a connection pool.
func NewLedgerStore(pool *pgxpool.Pool) *PgxLedgerStore {
	return &PgxLedgerStore{
		BaseRepository:         BaseRepository{Pool: pool},
		PgxAccountRepository:   newPgxAccountRepository(pool),
		PgxOperationRepository: newPgxOperationRepository(pool),
	}
}

var _ portsrepo.LedgerStore = (*PgxLedgerStore)(nil)

// pgxLedgerTx runs both repositories on one database transaction.
type pgxLedgerTx struct {
	*PgxAccountRepository
	*PgxOperationRepository
}

var _ portsrepo.LedgerTx = (*pgxLedgerTx)(nil)

func newLedgerTx(tx pgx.Tx) *pgxLedgerTx {
	return &pgxLedgerTx{
		PgxAccountRepository:   newPgxAccountRepository(tx),
		PgxOperationRepository: newPgxOperationRepository(tx),
	}
}

// WithinTx implements portsrepo.TransactionManager.
func (s *PgxLedgerStore) WithinTx(ctx context.Context, fn func(tx portsrepo.LedgerTx) error) (err error) {
	tx, err := s.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = s.Rollback(ctx, tx)
		}
	}()

	if err = fn(newLedgerTx(tx)); err != nil {
		return err
	}
	return s.Commit(ctx, tx)
}

// ReadSnapshot implements portsrepo.TransactionManager.
func (s *PgxLedgerStore) ReadSnapshot(ctx context.Context, fn func(r portsrepo.LedgerReader) error) error {
	tx, err := s.BeginSnapshot(ctx)
	if err != nil {
		return err
	}
	// Read-only: rolling back releases the snapshot without side effects.
	defer func() { _ = s.Rollback(ctx, tx) }()

	return fn(newLedgerTx(tx))
}
