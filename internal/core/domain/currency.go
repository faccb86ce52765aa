package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency represents a supported currency in the domain. It is immutable
// reference data; DecimalDigits governs rounding of every amount and balance
// denominated in it.
type Currency struct {
	CurrencyID    string `json:"currencyID"`    // Primary Key
	Code          string `json:"code"`          // e.g., "USD"
	Name          string `json:"name"`          // e.g., "US Dollar"
	Symbol        string `json:"symbol"`        // e.g., "$"
	DecimalDigits int32  `json:"decimalDigits"` // e.g., 2
}

// RateTable is a static snapshot of conversion rates against one base currency.
// Rates[code] is the number of units of code per one unit of the base currency,
// so Rates[BaseCode] is always 1. There is no time dimension.
type RateTable struct {
	BaseCode string                     `json:"base"`
	Rates    map[string]decimal.Decimal `json:"rates"`
}

// Rate returns the rate for a currency code.
func (t RateTable) Rate(code string) (decimal.Decimal, bool) {
	r, ok := t.Rates[code]
	return r, ok
}

// Validate checks that the table has a base currency with rate 1 and that no rate is non-positive.
func (t RateTable) Validate() error {
	if t.BaseCode == "" {
		return fmt.Errorf("rate table has no base currency")
	}
	base, ok := t.Rates[t.BaseCode]
	if !ok {
		return fmt.Errorf("rate table has no rate for base currency %s", t.BaseCode)
	}
	if !base.Equal(decimal.NewFromInt(1)) {
		return fmt.Errorf("rate for base currency %s must be 1, got %s", t.BaseCode, base.String())
	}
	for code, r := range t.Rates {
		if !r.IsPositive() {
			return fmt.Errorf("rate for %s must be positive, got %s", code, r.String())
		}
	}
	return nil
}
