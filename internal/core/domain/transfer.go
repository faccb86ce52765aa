package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferPatch holds the optional changes of a transfer update. Amounts are
// magnitudes: the from-leg is stored negated, the to-leg as given.
type TransferPatch struct {
	Created     *time.Time
	AmountFrom  *decimal.Decimal
	AmountTo    *decimal.Decimal
	AccountFrom *string
	AccountTo   *string
}

// IsEmpty reports whether the patch changes nothing.
func (p TransferPatch) IsEmpty() bool {
	return p.Created == nil && p.AmountFrom == nil && p.AmountTo == nil && p.AccountFrom == nil && p.AccountTo == nil
}

// TransferInput describes a new transfer. AmountFrom leaves AccountFrom and
// AmountTo arrives on AccountTo; both are positive magnitudes in their own
// account's currency.
type TransferInput struct {
	AccountFrom string
	AccountTo   string
	AmountFrom  decimal.Decimal
	AmountTo    decimal.Decimal
	Created     time.Time
	CategoryID  *string
}
