package services

import (
	"context"

	"github.com/SscSPs/balance_ledger/internal/core/domain"
)

// TransferSvcFacade defines mutations of transfers. Both legs of a transfer
// always change together.
type TransferSvcFacade interface {
	// AddTransfer posts both legs. Balance and TransferBalance are the current
	// balances of the from and to accounts.
	AddTransfer(ctx context.Context, input domain.TransferInput) (*domain.TransferResult, error)

	// UpdateTransfer changes a transfer identified by either leg. Balance and
	// TransferBalance are each leg's own balance at its new position.
	UpdateTransfer(ctx context.Context, operationID string, patch domain.TransferPatch) (*domain.TransferResult, error)

	// DeleteTransfer removes both legs and returns the current balances of both accounts.
	DeleteTransfer(ctx context.Context, operationID string) (*domain.TransferResult, error)
}
