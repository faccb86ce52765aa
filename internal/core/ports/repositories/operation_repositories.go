package repositories

import (
	"context"

	"github.com/SscSPs/balance_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OperationReader defines read operations for operation data
type OperationReader interface {
	// FindOperationByID retrieves a specific operation by its unique identifier.
	FindOperationByID(ctx context.Context, operationID string) (*domain.Operation, error)

	// FindOperationsOrdered retrieves every operation of an account in canonical
	// (created, sequence_no) ascending order.
	FindOperationsOrdered(ctx context.Context, accountID string) ([]domain.Operation, error)

	// ListOperations retrieves operations matching the filter, newest first,
	// returning at most filter.Limit rows when Limit > 0.
	ListOperations(ctx context.Context, filter domain.OperationFilter) ([]domain.Operation, error)

	// CountOperations counts operations matching the account/category part of the filter.
	CountOperations(ctx context.Context, filter domain.OperationFilter) (int, error)
}

// OperationWriter defines write operations for operation data
type OperationWriter interface {
	// NextSequenceNo returns a new, strictly increasing sequence number.
	NextSequenceNo(ctx context.Context) (int64, error)

	// SaveOperation inserts or replaces an operation.
	SaveOperation(ctx context.Context, operation domain.Operation) error

	// UpdateOperationBalances writes derived balances keyed by operation id.
	UpdateOperationBalances(ctx context.Context, balances map[string]decimal.Decimal) error

	// DeleteOperation removes an operation.
	DeleteOperation(ctx context.Context, operationID string) error
}

// OperationRepositoryFacade combines all operation-related repository interfaces
type OperationRepositoryFacade interface {
	OperationReader
	OperationWriter
}
