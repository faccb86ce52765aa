package dto

import (
	"time"

	"github.com/SscSPs/balance_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateOperationRequest defines the data needed to post a single operation.
type CreateOperationRequest struct {
	AccountID  string           `json:"account" binding:"required"`
	CategoryID *string          `json:"category"`
	Amount     *decimal.Decimal `json:"amount" binding:"required,decimal_nonzero"`
	Created    string           `json:"created" binding:"required"`
}

// ToDomain converts the request, parsing its date.
func (r CreateOperationRequest) ToDomain() (domain.OperationInput, error) {
	created, err := ParseDate(r.Created)
	if err != nil {
		return domain.OperationInput{}, err
	}
	return domain.OperationInput{
		AccountID:  r.AccountID,
		CategoryID: r.CategoryID,
		Amount:     *r.Amount,
		Created:    created,
	}, nil
}

// UpdateOperationRequest holds the optional changes of an operation.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateOperationRequest struct {
	AccountID  *string          `json:"account"`
	CategoryID *string          `json:"category"`
	Amount     *decimal.Decimal `json:"amount" binding:"omitempty,decimal_nonzero"`
	Created    *string          `json:"created"`
}

// ToDomain converts the request into a patch.
func (r UpdateOperationRequest) ToDomain() (domain.OperationPatch, error) {
	patch := domain.OperationPatch{
		AccountID:  r.AccountID,
		CategoryID: r.CategoryID,
		Amount:     r.Amount,
	}
	if r.Created != nil {
		created, err := ParseDate(*r.Created)
		if err != nil {
			return domain.OperationPatch{}, err
		}
		patch.Created = &created
	}
	return patch, nil
}

// OperationResponse defines the data returned for an operation.
type OperationResponse struct {
	OperationID    string          `json:"operationID"`
	AccountID      string          `json:"account"`
	CategoryID     *string         `json:"category,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Created        time.Time       `json:"created"`
	Balance        decimal.Decimal `json:"balance"`
	TransferPeerID *string         `json:"transferPeerID,omitempty"`
}

// ToOperationResponse converts a domain.Operation to its response.
func ToOperationResponse(op domain.Operation) OperationResponse {
	return OperationResponse{
		OperationID:    op.OperationID,
		AccountID:      op.AccountID,
		CategoryID:     op.CategoryID,
		Amount:         op.Amount,
		Created:        op.Created,
		Balance:        op.Balance,
		TransferPeerID: op.TransferPeerID,
	}
}

// OperationMutationResponse is returned by operation add, update and delete.
// Balance follows the mutation: the account's current balance for add and
// delete, the operation's own positional balance for update.
type OperationMutationResponse struct {
	Operation OperationResponse `json:"operation"`
	Amount    decimal.Decimal   `json:"amount"`
	Balance   decimal.Decimal   `json:"balance"`
}

// ToOperationMutationResponse converts a service result.
func ToOperationMutationResponse(res *domain.OperationResult) OperationMutationResponse {
	return OperationMutationResponse{
		Operation: ToOperationResponse(res.Operation),
		Amount:    res.Operation.Amount,
		Balance:   res.Balance,
	}
}

// ListOperationsParams defines query parameters for listing operations.
type ListOperationsParams struct {
	AccountID  string `form:"account"`
	CategoryID string `form:"category"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=1000"`
	NextToken  string `form:"nextToken"`
}

// ListOperationsResponse is one page of operations, newest first.
type ListOperationsResponse struct {
	Operations []OperationResponse `json:"operations"`
	Total      int                 `json:"total"`
	NextToken  *string             `json:"nextToken,omitempty"`
}
