package domain

import "github.com/shopspring/decimal"

// OperationResult is returned by single-operation mutations.
type OperationResult struct {
	Operation Operation
	Balance   decimal.Decimal
}

// TransferResult is returned by transfer mutations. Balance belongs to the
// from-leg's account and TransferBalance to the to-leg's account.
type TransferResult struct {
	From            Operation
	To              Operation
	Balance         decimal.Decimal
	TransferBalance decimal.Decimal
}

// TotalBalance is an aggregate balance converted into the base currency.
type TotalBalance struct {
	Total      decimal.Decimal `json:"total"`
	CurrencyID string          `json:"currency"`
}
