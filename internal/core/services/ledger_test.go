package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/balance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/balance_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/balance_ledger/internal/core/ports/services"
	"github.com/SscSPs/balance_ledger/internal/core/services"
	"github.com/SscSPs/balance_ledger/internal/platform/config"
	"github.com/SscSPs/balance_ledger/internal/repositories/memory"
	"github.com/SscSPs/balance_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// testCatalogue uses USD as base: 1 USD = 0.9 EUR = 110 JPY = 70 RUB.
func testCatalogue() services.Catalogue {
	return services.Catalogue{
		Currencies: []domain.Currency{
			{CurrencyID: "usd", Code: "USD", Name: "US Dollar", DecimalDigits: 2},
			{CurrencyID: "eur", Code: "EUR", Name: "Euro", DecimalDigits: 2},
			{CurrencyID: "jpy", Code: "JPY", Name: "Japanese Yen", DecimalDigits: 0},
			{CurrencyID: "rub", Code: "RUB", Name: "Russian Ruble", DecimalDigits: 2},
		},
		Rates: domain.RateTable{
			BaseCode: "USD",
			Rates: map[string]decimal.Decimal{
				"USD": decimal.NewFromInt(1),
				"EUR": decimal.RequireFromString("0.9"),
				"JPY": decimal.NewFromInt(110),
				"RUB": decimal.NewFromInt(70),
			},
		},
	}
}

// ledgerSuite wires the real services to an in-memory store.
type ledgerSuite struct {
	suite.Suite
	ctx   context.Context
	store *memory.Store
	svc   *portssvc.ServiceContainer
}

func (s *ledgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	cfg := &config.Config{LockTimeout: time.Second}
	svc, err := services.NewServiceContainer(cfg, portsrepo.RepositoryProvider{Ledger: s.store}, testCatalogue())
	s.Require().NoError(err)
	s.svc = svc
}

func (s *ledgerSuite) createAccount(name, currencyID, start string) domain.Account {
	acc, err := s.svc.Account.CreateAccount(s.ctx, domain.AccountInput{
		Name:         name,
		CurrencyID:   currencyID,
		StartBalance: dec(start),
	})
	s.Require().NoError(err)
	return *acc
}

func (s *ledgerSuite) addOperation(accountID, amount, date string) *domain.OperationResult {
	res, err := s.svc.Operation.AddOperation(s.ctx, domain.OperationInput{
		AccountID: accountID,
		Amount:    dec(amount),
		Created:   day(date),
	})
	s.Require().NoError(err)
	return res
}

func (s *ledgerSuite) addTransfer(from, to, amountFrom, amountTo, date string) *domain.TransferResult {
	res, err := s.svc.Transfer.AddTransfer(s.ctx, domain.TransferInput{
		AccountFrom: from,
		AccountTo:   to,
		AmountFrom:  dec(amountFrom),
		AmountTo:    dec(amountTo),
		Created:     day(date),
	})
	s.Require().NoError(err)
	return res
}

// listAll returns every operation newest first.
func (s *ledgerSuite) listAll(accountID *string) []domain.Operation {
	page, err := s.svc.Operation.ListOperations(s.ctx, domain.OperationFilter{AccountID: accountID})
	s.Require().NoError(err)
	s.Equal(len(page.Operations), page.Total)
	return page.Operations
}

func (s *ledgerSuite) currentBalance(accountID string) decimal.Decimal {
	acc, err := s.svc.Account.GetAccountByID(s.ctx, accountID)
	s.Require().NoError(err)
	return acc.CurrentBalance
}

func (s *ledgerSuite) assertDecimal(expected string, actual decimal.Decimal, msgAndArgs ...any) {
	s.T().Helper()
	s.Truef(dec(expected).Equal(actual), "expected %s, got %s %v", expected, actual.String(), msgAndArgs)
}

func (s *ledgerSuite) assertBalances(expected []string, ops []domain.Operation) {
	s.T().Helper()
	s.Require().Len(ops, len(expected))
	for i, want := range expected {
		s.assertDecimal(want, ops[i].Balance, "operation", i)
	}
}

// assertConsistent checks the prefix-sum and current-balance invariants of
// every account directly against the store.
func (s *ledgerSuite) assertConsistent() {
	s.T().Helper()
	accounts, err := s.store.ListAccounts(s.ctx)
	s.Require().NoError(err)
	for _, acc := range accounts {
		cur, err := s.svc.Currency.GetCurrencyByID(s.ctx, acc.CurrencyID)
		s.Require().NoError(err)
		chain, err := s.store.FindOperationsOrdered(s.ctx, acc.AccountID)
		s.Require().NoError(err)

		amounts := make([]decimal.Decimal, len(chain))
		for i, op := range chain {
			amounts[i] = op.Amount
		}
		want := accounting.RunningBalances(acc.StartBalance, amounts, cur.DecimalDigits)
		current := accounting.Round(acc.StartBalance, cur.DecimalDigits)
		for i, op := range chain {
			s.Truef(want[i].Equal(op.Balance), "account %s position %d: want %s, got %s",
				acc.Name, i, want[i].String(), op.Balance.String())
			current = want[i]
			if op.IsTransfer() {
				peer, err := s.store.FindOperationByID(s.ctx, *op.TransferPeerID)
				s.Require().NoError(err, "transfer peer must exist")
				s.Require().NotNil(peer.TransferPeerID)
				s.Equal(op.OperationID, *peer.TransferPeerID)
			}
		}
		s.Truef(current.Equal(acc.CurrentBalance), "account %s current: want %s, got %s",
			acc.Name, current.String(), acc.CurrentBalance.String())
	}
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func day(v string) time.Time {
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr[T any](v T) *T {
	return &v
}
