package dto

import (
	"github.com/SscSPs/balance_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransferRequest defines a transfer between two accounts. Amounts are
// positive magnitudes in each account's own currency.
type CreateTransferRequest struct {
	AccountFrom string           `json:"accountFrom" binding:"required"`
	AccountTo   string           `json:"accountTo" binding:"required,nefield=AccountFrom"`
	AmountFrom  *decimal.Decimal `json:"amountFrom" binding:"required,decimal_positive"`
	AmountTo    *decimal.Decimal `json:"amountTo" binding:"required,decimal_positive"`
	Created     string           `json:"created" binding:"required"`
	CategoryID  *string          `json:"category"`
}

// ToDomain converts the request, parsing its date.
func (r CreateTransferRequest) ToDomain() (domain.TransferInput, error) {
	created, err := ParseDate(r.Created)
	if err != nil {
		return domain.TransferInput{}, err
	}
	return domain.TransferInput{
		AccountFrom: r.AccountFrom,
		AccountTo:   r.AccountTo,
		AmountFrom:  *r.AmountFrom,
		AmountTo:    *r.AmountTo,
		Created:     created,
		CategoryID:  r.CategoryID,
	}, nil
}

// UpdateTransferRequest holds the optional changes of a transfer.
type UpdateTransferRequest struct {
	AccountFrom *string          `json:"accountFrom"`
	AccountTo   *string          `json:"accountTo"`
	AmountFrom  *decimal.Decimal `json:"amountFrom" binding:"omitempty,decimal_positive"`
	AmountTo    *decimal.Decimal `json:"amountTo" binding:"omitempty,decimal_positive"`
	Created     *string          `json:"created"`
}

// ToDomain converts the request into a patch.
func (r UpdateTransferRequest) ToDomain() (domain.TransferPatch, error) {
	patch := domain.TransferPatch{
		AccountFrom: r.AccountFrom,
		AccountTo:   r.AccountTo,
		AmountFrom:  r.AmountFrom,
		AmountTo:    r.AmountTo,
	}
	if r.Created != nil {
		created, err := ParseDate(*r.Created)
		if err != nil {
			return domain.TransferPatch{}, err
		}
		patch.Created = &created
	}
	return patch, nil
}

// TransferResponse is returned by transfer add, update and delete. Operation is
// the from-leg as stored. Transfer is the to-leg, and its balance is reported
// the same way as the top-level balance of the from-leg: the account's current
// balance after add and delete, the leg's own positional balance after update.
type TransferResponse struct {
	Operation OperationResponse `json:"operation"`
	Transfer  OperationResponse `json:"transfer"`
	Balance   decimal.Decimal   `json:"balance"`
}

// ToTransferResponse converts a service result.
func ToTransferResponse(res *domain.TransferResult) TransferResponse {
	transfer := ToOperationResponse(res.To)
	transfer.Balance = res.TransferBalance
	return TransferResponse{
		Operation: ToOperationResponse(res.From),
		Transfer:  transfer,
		Balance:   res.Balance,
	}
}
