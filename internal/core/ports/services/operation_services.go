package services

import (
	"context"

	"github.com/SscSPs/balance_ledger/internal/core/domain"
)

// OperationReaderSvc defines read operations for operation data
type OperationReaderSvc interface {
	// ListOperations lists operations newest first.
	ListOperations(ctx context.Context, filter domain.OperationFilter) (*domain.OperationPage, error)
}

// OperationWriterSvc defines mutations of single (non-transfer) operations
type OperationWriterSvc interface {
	// AddOperation posts a new operation. The result balance is the account's
	// current balance after the insert.
	AddOperation(ctx context.Context, input domain.OperationInput) (*domain.OperationResult, error)

	// UpdateOperation changes an operation. The result balance is the
	// operation's own balance at its new position.
	UpdateOperation(ctx context.Context, operationID string, patch domain.OperationPatch) (*domain.OperationResult, error)

	// DeleteOperation removes an operation and returns the account's resulting
	// current balance.
	DeleteOperation(ctx context.Context, operationID string) (*domain.OperationResult, error)
}

// OperationSvcFacade combines all operation-related service interfaces
type OperationSvcFacade interface {
	OperationReaderSvc
	OperationWriterSvc
}
