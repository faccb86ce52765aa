package services

import (
	"context"

	"github.com/SscSPs/balance_ledger/internal/core/domain"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// GetCurrencyByID retrieves a specific currency by its identifier.
	GetCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error)

	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all available currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// ExchangeRateReaderSvc defines read operations for the static rate table
type ExchangeRateReaderSvc interface {
	// GetRateTable returns the rate table every conversion uses.
	GetRateTable(ctx context.Context) domain.RateTable

	// GetBaseCurrency returns the currency totals are expressed in.
	GetBaseCurrency(ctx context.Context) domain.Currency
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	ExchangeRateReaderSvc
}
