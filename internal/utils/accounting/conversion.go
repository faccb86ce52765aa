package accounting

import (
	"fmt"

	"github.com/SscSPs/balance_ledger/internal/apperrors"
	"github.com/SscSPs/balance_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyAmount is an amount denominated in a currency identified by id.
type CurrencyAmount struct {
	CurrencyID string
	Amount     decimal.Decimal
}

// Converter converts amounts into the base currency of a static rate table.
// It holds no mutable state and is safe for concurrent use.
type Converter struct {
	rates      domain.RateTable
	currencies map[string]domain.Currency // keyed by CurrencyID
	base       domain.Currency
}

// NewConverter builds a Converter. Every currency must have a rate and the
// base currency of the table must be one of the currencies.
func NewConverter(rates domain.RateTable, currencies []domain.Currency) (*Converter, error) {
	if err := rates.Validate(); err != nil {
		return nil, err
	}
	c := &Converter{
		rates:      rates,
		currencies: make(map[string]domain.Currency, len(currencies)),
	}
	foundBase := false
	for _, cur := range currencies {
		if _, ok := rates.Rate(cur.Code); !ok {
			return nil, fmt.Errorf("no rate for currency %s", cur.Code)
		}
		c.currencies[cur.CurrencyID] = cur
		if cur.Code == rates.BaseCode {
			c.base = cur
			foundBase = true
		}
	}
	if !foundBase {
		return nil, fmt.Errorf("base currency %s is not a known currency", rates.BaseCode)
	}
	return c, nil
}

// Base returns the base currency.
func (c *Converter) Base() domain.Currency {
	return c.base
}

// ToBase converts an amount into the base currency without rounding:
// amount * rate[base] / rate[currency].
func (c *Converter) ToBase(amount decimal.Decimal, currencyID string) (decimal.Decimal, error) {
	cur, ok := c.currencies[currencyID]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: unknown currency %s", apperrors.ErrValidation, currencyID)
	}
	if cur.Code == c.base.Code {
		return amount, nil
	}
	rate, _ := c.rates.Rate(cur.Code)
	baseRate, _ := c.rates.Rate(c.base.Code)
	return amount.Mul(baseRate).Div(rate), nil
}

// Total converts every amount into the base currency, sums them and rounds the
// sum to the base currency's decimal digits.
func (c *Converter) Total(amounts []CurrencyAmount) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, a := range amounts {
		converted, err := c.ToBase(a.Amount, a.CurrencyID)
		if err != nil {
			return decimal.Zero, err
		}
		sum = sum.Add(converted)
	}
	return Round(sum, c.base.DecimalDigits), nil
}
