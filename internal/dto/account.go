package dto

import (
	"time"

	"github.com/SscSPs/balance_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name         string           `json:"name" binding:"required,max=255"`
	CurrencyID   string           `json:"currency" binding:"required"`
	StartBalance *decimal.Decimal `json:"startBalance"`
}

// ToDomain converts the request. A missing start balance is zero.
func (r CreateAccountRequest) ToDomain() domain.AccountInput {
	in := domain.AccountInput{Name: r.Name, CurrencyID: r.CurrencyID}
	if r.StartBalance != nil {
		in.StartBalance = *r.StartBalance
	}
	return in
}

// UpdateAccountRequest defines the data allowed for updating an account.
type UpdateAccountRequest struct {
	Name         *string          `json:"name" binding:"omitempty,min=1,max=255"`
	CurrencyID   *string          `json:"currency"`
	StartBalance *decimal.Decimal `json:"startBalance"`
}

// ToDomain converts the request into a patch.
func (r UpdateAccountRequest) ToDomain() domain.AccountPatch {
	return domain.AccountPatch{Name: r.Name, CurrencyID: r.CurrencyID, StartBalance: r.StartBalance}
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string          `json:"accountID"`
	Name           string          `json:"name"`
	CurrencyID     string          `json:"currency"`
	StartBalance   decimal.Decimal `json:"startBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      acc.AccountID,
		Name:           acc.Name,
		CurrencyID:     acc.CurrencyID,
		StartBalance:   acc.StartBalance,
		CurrentBalance: acc.CurrentBalance,
		CreatedAt:      acc.CreatedAt,
		LastUpdatedAt:  acc.LastUpdatedAt,
	}
}

// ListAccountsResponse wraps the account list the way clients expect it.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToListAccountsResponse converts a slice of domain.Account
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return ListAccountsResponse{Accounts: res}
}
