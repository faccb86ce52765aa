package dto

import "github.com/shopspring/decimal"

// TotalBalanceParams defines query parameters of the total balance query.
// Account may repeat; no accounts means all accounts.
type TotalBalanceParams struct {
	AccountIDs []string `form:"account"`
	Date       string   `form:"date"`
}

// TotalBalanceResponse is the aggregate in the base currency.
type TotalBalanceResponse struct {
	Total      decimal.Decimal `json:"total"`
	CurrencyID string          `json:"currency"`
}

// AccountBalanceResponse defines the data returned for an account balance query.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
}
