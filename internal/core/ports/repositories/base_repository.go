package repositories

import (
	"context"
)

// LedgerReader is the read side of the ledger store.
type LedgerReader interface {
	AccountReader
	OperationReader
}

// LedgerTx is a unit of work against the ledger store. Every write made through
// it becomes visible atomically when the surrounding WithinTx returns nil, and
// none of them do otherwise.
type LedgerTx interface {
	LedgerReader
	AccountWriter
	AccountLocker
	OperationWriter
}

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// WithinTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithinTx(ctx context.Context, fn func(tx LedgerTx) error) error

	// ReadSnapshot runs fn against a consistent read-only view of the store.
	ReadSnapshot(ctx context.Context, fn func(r LedgerReader) error) error
}

// LedgerStore is the persistence collaborator of the ledger engine.
type LedgerStore interface {
	LedgerReader
	TransactionManager
}
