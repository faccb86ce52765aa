package dto

import (
	"github.com/SscSPs/balance_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyID    string `json:"currencyID"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol,omitempty"`
	DecimalDigits int32  `json:"decimalDigits"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyID:    c.CurrencyID,
		Code:          c.Code,
		Name:          c.Name,
		Symbol:        c.Symbol,
		DecimalDigits: c.DecimalDigits,
	}
}

// ListCurrenciesResponse wraps the currency list under "currencyList".
type ListCurrenciesResponse struct {
	CurrencyList []CurrencyResponse `json:"currencyList"`
}

// ToListCurrenciesResponse converts a slice of domain.Currency
func ToListCurrenciesResponse(currencies []domain.Currency) ListCurrenciesResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i := range currencies {
		res[i] = ToCurrencyResponse(&currencies[i])
	}
	return ListCurrenciesResponse{CurrencyList: res}
}

// RateTableResponse exposes the static rate table.
type RateTableResponse struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}
