package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents a ledger account within the core domain.
// CurrentBalance is derived: it always equals the balance of the chronologically
// last operation on the account, or StartBalance when there are none. Only the
// balance recalculator writes it.
type Account struct {
	AccountID      string          `json:"accountID"`  // Primary Key (e.g., UUID)
	Name           string          `json:"name"`       // User-defined name
	CurrencyID     string          `json:"currencyID"` // FK -> currencies.currency_id (NON-NULL)
	StartBalance   decimal.Decimal `json:"startBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	AuditFields
}

// AccountInput describes a new account.
type AccountInput struct {
	Name         string
	CurrencyID   string
	StartBalance decimal.Decimal
}

// AccountPatch holds the optional changes of an account update.
type AccountPatch struct {
	Name         *string
	CurrencyID   *string
	StartBalance *decimal.Decimal
}
