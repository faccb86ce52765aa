package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields holds the audit columns shared by every table.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}

// Account represents a row of the accounts table.
type Account struct {
	AccountID      string          `db:"account_id"`
	Name           string          `db:"name"`
	CurrencyID     string          `db:"currency_id"`
	StartBalance   decimal.Decimal `db:"start_balance"`
	CurrentBalance decimal.Decimal `db:"current_balance"` // Derived, written by the recalculator only
	AuditFields
}
