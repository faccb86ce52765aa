package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/balance_ledger/internal/apperrors"
	"github.com/SscSPs/balance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/balance_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/balance_ledger/internal/core/ports/services"
	"github.com/SscSPs/balance_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// balanceService implements the BalanceSvcFacade interface.
// It never writes and never takes account locks; every query reads one
// consistent snapshot of the store.
type balanceService struct {
	BaseService
	store     portsrepo.LedgerStore
	converter *accounting.Converter
}

// NewBalanceService creates a balance service converting with the given converter
func NewBalanceService(store portsrepo.LedgerStore, converter *accounting.Converter) portssvc.BalanceSvcFacade {
	return &balanceService{store: store, converter: converter}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// balanceAt resolves the balance in effect at date: the balance of the latest
// operation created at or before it, or the start balance.
func balanceAt(ctx context.Context, r portsrepo.LedgerReader, account domain.Account, date *time.Time) (decimal.Decimal, error) {
	if date == nil {
		return account.CurrentBalance, nil
	}
	chain, err := r.FindOperationsOrdered(ctx, account.AccountID)
	if err != nil {
		return decimal.Zero, err
	}
	if i := domain.LastAtOrBefore(chain, *date); i >= 0 {
		return chain[i].Balance, nil
	}
	return account.StartBalance, nil
}

func (s *balanceService) BalanceAsOf(ctx context.Context, accountID string, date *time.Time) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := s.store.ReadSnapshot(ctx, func(r portsrepo.LedgerReader) error {
		account, err := r.FindAccountByID(ctx, accountID)
		if err != nil {
			return err
		}
		balance, err = balanceAt(ctx, r, *account, date)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve balance", slog.String("account_id", accountID))
		return decimal.Zero, err
	}
	return balance, nil
}

func (s *balanceService) TotalBalance(ctx context.Context, accountIDs []string, date *time.Time) (*domain.TotalBalance, error) {
	ids := lockOrder(accountIDs)

	var amounts []accounting.CurrencyAmount
	err := s.store.ReadSnapshot(ctx, func(r portsrepo.LedgerReader) error {
		var accounts []domain.Account
		if len(ids) == 0 {
			all, err := r.ListAccounts(ctx)
			if err != nil {
				return err
			}
			accounts = all
		} else {
			found, err := r.FindAccountsByIDs(ctx, ids)
			if err != nil {
				return err
			}
			var missing []string
			for _, id := range ids {
				acc, ok := found[id]
				if !ok {
					missing = append(missing, id)
					continue
				}
				accounts = append(accounts, acc)
			}
			if len(missing) > 0 {
				return fmt.Errorf("%w: %s", apperrors.ErrInvalidAccountReference, strings.Join(missing, ", "))
			}
		}

		// Fixed summation order keeps the total independent of store iteration order.
		slices.SortFunc(accounts, func(a, b domain.Account) int { return strings.Compare(a.AccountID, b.AccountID) })
		amounts = make([]accounting.CurrencyAmount, 0, len(accounts))
		for _, acc := range accounts {
			balance, err := balanceAt(ctx, r, acc, date)
			if err != nil {
				return err
			}
			amounts = append(amounts, accounting.CurrencyAmount{CurrencyID: acc.CurrencyID, Amount: balance})
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to compute total balance", slog.Int("accounts", len(accountIDs)))
		return nil, err
	}

	total, err := s.converter.Total(amounts)
	if err != nil {
		s.LogError(ctx, err, "Failed to convert balances")
		return nil, err
	}
	return &domain.TotalBalance{Total: total, CurrencyID: s.converter.Base().CurrencyID}, nil
}
