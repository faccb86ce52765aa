package services

import (
	"github.com/SscSPs/balance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/balance_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/balance_ledger/internal/core/ports/services"
	"github.com/SscSPs/balance_ledger/internal/platform/config"
)

// Catalogue is the static currency reference data the services are built on.
type Catalogue struct {
	Currencies []domain.Currency
	Rates      domain.RateTable
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, catalogue Catalogue) (*portssvc.ServiceContainer, error) {
	// Currency data first since every other service rounds with it
	currencySvc, err := NewCurrencyService(catalogue.Currencies, catalogue.Rates)
	if err != nil {
		return nil, err
	}

	// One engine, so operations, transfers and account changes share the same locks
	engine := NewLedgerEngine(repos.Ledger, currencySvc, cfg.LockTimeout)

	container := &portssvc.ServiceContainer{
		Currency:  currencySvc,
		Account:   NewAccountService(engine, currencySvc),
		Operation: NewOperationService(engine),
		Transfer:  NewTransferService(engine),
		Balance:   NewBalanceService(repos.Ledger, currencySvc.Converter()),
	}
	return container, nil
}
