package services

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"github.com/SscSPs/balance_ledger/internal/apperrors"
	"github.com/SscSPs/balance_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/balance_ledger/internal/core/ports/services"
	"github.com/SscSPs/balance_ledger/internal/utils/accounting"
)

// CurrencyService serves the static currency catalogue and rate table.
// Both are loaded once at startup and never change afterwards.
type CurrencyService struct {
	BaseService
	currencies []domain.Currency
	byID       map[string]domain.Currency
	byCode     map[string]domain.Currency
	rates      domain.RateTable
	converter  *accounting.Converter
}

// NewCurrencyService creates a currency service over a fixed catalogue.
// It fails if the rate table does not cover every currency.
func NewCurrencyService(currencies []domain.Currency, rates domain.RateTable) (*CurrencyService, error) {
	converter, err := accounting.NewConverter(rates, currencies)
	if err != nil {
		return nil, fmt.Errorf("invalid currency catalogue: %w", err)
	}
	s := &CurrencyService{
		currencies: append([]domain.Currency(nil), currencies...),
		byID:       make(map[string]domain.Currency, len(currencies)),
		byCode:     make(map[string]domain.Currency, len(currencies)),
		rates:      domain.RateTable{BaseCode: rates.BaseCode, Rates: maps.Clone(rates.Rates)},
		converter:  converter,
	}
	for _, c := range currencies {
		if _, dup := s.byID[c.CurrencyID]; dup {
			return nil, fmt.Errorf("%w: duplicate currency id %s", apperrors.ErrDuplicate, c.CurrencyID)
		}
		s.byID[c.CurrencyID] = c
		s.byCode[strings.ToUpper(c.Code)] = c
	}
	return s, nil
}

var _ portssvc.CurrencySvcFacade = (*CurrencyService)(nil)

// Converter returns the converter built from the catalogue.
func (s *CurrencyService) Converter() *accounting.Converter {
	return s.converter
}

func (s *CurrencyService) GetCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	c, ok := s.byID[currencyID]
	if !ok {
		return nil, fmt.Errorf("%w: currency %s", apperrors.ErrNotFound, currencyID)
	}
	return &c, nil
}

func (s *CurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	c, ok := s.byCode[strings.ToUpper(currencyCode)]
	if !ok {
		return nil, fmt.Errorf("%w: currency code %s", apperrors.ErrNotFound, currencyCode)
	}
	return &c, nil
}

func (s *CurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	return append([]domain.Currency(nil), s.currencies...), nil
}

func (s *CurrencyService) GetRateTable(ctx context.Context) domain.RateTable {
	return domain.RateTable{BaseCode: s.rates.BaseCode, Rates: maps.Clone(s.rates.Rates)}
}

func (s *CurrencyService) GetBaseCurrency(ctx context.Context) domain.Currency {
	return s.converter.Base()
}
